package shell

import (
	"fmt"
	"strings"

	"github.com/meiraka/mediaremote/internal/remote"
)

const (
	// Prompt is the initial session text.
	Prompt = "Enter media name : "
	// promptPrefix is what ParseInput requires; the space after ':' is optional.
	promptPrefix = "Enter media name :"
)

// ParseInput extracts the media name from the first line after the prompt.
func ParseInput(text string) (string, error) {
	if !strings.HasPrefix(text, promptPrefix) {
		return "", fmt.Errorf("%w: missing prompt %q", remote.ErrInvalidInput, promptPrefix)
	}
	line := strings.TrimPrefix(text, promptPrefix)
	if i := strings.IndexAny(line, "\r\n"); i >= 0 {
		line = line[:i]
	}
	name := strings.TrimSpace(line)
	if len(name) == 0 {
		return "", fmt.Errorf("%w: empty media name", remote.ErrInvalidInput)
	}
	return name, nil
}
