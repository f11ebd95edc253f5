// Package cli provides terminal utilities for the salesnipe client: colored
// output, price-trend markers and interactive prompts.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorCyan   = "\033[36m"
	ColorBold   = "\033[1m"
)

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Colorize wraps s in the given color code when stdout is a terminal.
func Colorize(color, s string) string {
	if !isTerminal() {
		return s
	}
	return color + s + ColorReset
}

// Trend renders a price-trend label with a direction marker.
func Trend(trend string) string {
	switch strings.ToLower(trend) {
	case "up", "rising":
		return Colorize(ColorRed, "▲ "+trend)
	case "down", "falling":
		return Colorize(ColorGreen, "▼ "+trend)
	default:
		return Colorize(ColorYellow, "─ "+trend)
	}
}

// ReadLine prompts on stderr and reads a single line from r.
func ReadLine(r io.Reader, prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ReadPassword prompts on stderr and reads a password without echo. When
// stdin is not a terminal (tests, pipes) it falls back to a plain line read.
func ReadPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return ReadLine(os.Stdin, "")
	}
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}
