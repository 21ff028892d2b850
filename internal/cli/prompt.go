package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// PromptResult contains the result of a user prompt interaction.
type PromptResult struct {
	// Accepted is true if the user accepted the prompt (typed "y" or "yes")
	Accepted bool
	// Cancelled is true if input could not be read (e.g. Ctrl+C)
	Cancelled bool
}

// Confirm prompts the user with a yes/no question, defaulting to "No" on
// an empty answer. It returns immediately with Accepted=false in
// non-interactive (non-TTY) environments so scripted runs never hang.
func Confirm(writer io.Writer, reader io.Reader, question string) PromptResult {
	if f, ok := reader.(*os.File); ok && !isTerminal(f) {
		return PromptResult{Accepted: false}
	}

	fmt.Fprintf(writer, "? %s [y/N] ", question)

	scanner := bufio.NewScanner(reader)
	if !scanner.Scan() {
		if scanner.Err() != nil {
			return PromptResult{Cancelled: true}
		}
		// EOF without error: user pressed Ctrl+D, treat as decline.
		return PromptResult{Accepted: false}
	}

	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes":
		return PromptResult{Accepted: true}
	default:
		return PromptResult{Accepted: false}
	}
}
