package editor

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// draftHeader explains the scratch file; lines starting with # are dropped
const draftHeader = `# Describe how the journey should change, then save and quit.
# Lines starting with # are ignored. An empty instruction cancels.
`

// NewDraft writes a scratch file for a refinement instruction, seeded with
// initial, and returns its path. The caller removes it.
func NewDraft(initial string) (string, error) {
	f, err := os.CreateTemp("", "vibary-instruction-*.md")
	if err != nil {
		return "", fmt.Errorf("failed to create draft: %w", err)
	}
	defer f.Close()

	content := draftHeader + "\n" + initial
	if _, err := f.WriteString(content); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write draft: %w", err)
	}
	return f.Name(), nil
}

// ReadDraft returns the instruction saved in the scratch file at path
func ReadDraft(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to read draft: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read draft: %w", err)
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}
