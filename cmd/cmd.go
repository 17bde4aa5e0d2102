// Package cmd provides CLI commands for the shopping agent.
//
// Commands:
//   - cli: Interactive terminal chat with Bubble Tea TUI
//   - serve: HTTP REST API server
//
// Signal handling and graceful shutdown are implemented
// for all commands via context cancellation.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/agentpay/agentpay/internal/log"
)

// Execute is the main entry point for the agentpay CLI application.
func Execute() error {
	logger := log.New(log.Config{Level: logLevel()})

	if len(os.Args) < 2 {
		runHelp()
		return nil
	}

	switch os.Args[1] {
	case "cli":
		return runCLI(logger)
	case "serve":
		return runServe(logger)
	case "version", "--version", "-v":
		runVersion()
		return nil
	case "help", "--help", "-h":
		runHelp()
		return nil
	default:
		return fmt.Errorf("unknown command: %s", os.Args[1])
	}
}

func logLevel() slog.Level {
	if os.Getenv("DEBUG") != "" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// runHelp displays the help message.
func runHelp() {
	fmt.Println("agentpay - conversational shopping assistant")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  agentpay cli          Start interactive chat mode")
	fmt.Println("  agentpay serve [addr] Start HTTP API server (default: 127.0.0.1:3400)")
	fmt.Println("  agentpay --version    Show version information")
	fmt.Println("  agentpay --help       Show this help")
	fmt.Println()
	fmt.Println("CLI Commands (in interactive mode):")
	fmt.Println("  /help                 Show available commands")
	fmt.Println("  /cart                 Show the cart")
	fmt.Println("  /orders               Show order history")
	fmt.Println("  /clear                Clear the screen")
	fmt.Println("  /exit, /quit          Exit")
	fmt.Println()
	fmt.Println("Shortcuts:")
	fmt.Println("  Ctrl+D                Exit")
	fmt.Println("  Ctrl+C                Cancel current input")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  GEMINI_API_KEY        Optional: enables the AI conversation path")
	fmt.Println("  TAVILY_API_KEY        Optional: enables web product resolution")
	fmt.Println("  DEBUG                 Optional: enable debug logging")
	fmt.Println()
	fmt.Println("Without API keys the assistant runs fully offline with rule-based replies.")
}
