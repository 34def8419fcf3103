package installer

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// input buffers stdin for the prompt helpers. Tests swap it for a canned
// reader; production code never touches it directly.
var input = bufio.NewReader(os.Stdin)

// Interactive reports whether stdin is attached to a terminal. Prompts and
// the confirmation gate only make sense when it is; piped or CI invocations
// must supply everything through flags.
func Interactive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// readLine prints the prompt and reads one trimmed line. A final line
// without a trailing newline still counts; a bare EOF is an error.
func readLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := input.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// confirm asks a yes/no question. Only an exact "y" (case-insensitive)
// proceeds; anything else, including read errors, declines.
func confirm(prompt string) bool {
	line, err := readLine(prompt)
	if err != nil {
		return false
	}
	return strings.EqualFold(line, "y")
}
