package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/longregen/pipegen/internal/config"
	"github.com/longregen/pipegen/internal/llm"
)

// Version information (set via ldflags)
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

// Shared global variables
var (
	cfg       *config.Config
	llmClient *llm.Client
)

// promptLine prints a prompt and reads one trimmed line from the reader.
func promptLine(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptLineDefault reads one line, substituting a default when the answer is
// empty.
func promptLineDefault(reader *bufio.Reader, prompt, def string) (string, error) {
	answer, err := promptLine(reader, fmt.Sprintf("%s [%s]: ", prompt, def))
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// printConnectionHelp explains how to bring the model service up after a
// failed connection attempt.
func printConnectionHelp(model string) {
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Could not connect to the model service.")
	fmt.Fprintln(os.Stderr, "  1. Start it with:  ollama serve")
	fmt.Fprintf(os.Stderr, "  2. Pull the model: ollama pull %s\n", model)
	fmt.Fprintln(os.Stderr, "  3. Re-run this command.")
}
