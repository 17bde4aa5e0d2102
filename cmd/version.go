package cmd

import (
	"fmt"
	"os"
)

// Version information (injected at build time via ldflags).
var (
	Version   = "development"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// runVersion displays version and key-configuration information.
func runVersion() {
	fmt.Printf("agentpay %s\n", Version)
	fmt.Printf("Build Time: %s\n", BuildTime)
	fmt.Printf("Git Commit: %s\n", GitCommit)
	fmt.Println()

	fmt.Println("Configuration:")
	printKeyState("GEMINI_API_KEY")
	printKeyState("TAVILY_API_KEY")
}

// printKeyState reports whether an API key is set without revealing it.
func printKeyState(name string) {
	v := os.Getenv(name)
	if v == "" {
		fmt.Printf("  %s: not set\n", name)
		return
	}
	if len(v) <= 8 {
		fmt.Printf("  %s: configured\n", name)
		return
	}
	fmt.Printf("  %s: %s...%s (configured)\n", name, v[:4], v[len(v)-4:])
}
