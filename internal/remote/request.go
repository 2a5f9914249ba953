package remote

import (
	"strings"
)

// Action selects the server command.
type Action int

const (
	// Search requests media information.
	Search Action = iota + 1
	// Play requests the server to play the media.
	Play
)

// Keyword returns the wire keyword for the action.
func (a Action) Keyword() string {
	switch a {
	case Search:
		return "printRequest"
	case Play:
		return "playRequest"
	}
	return ""
}

func (a Action) String() string {
	switch a {
	case Search:
		return "search"
	case Play:
		return "play"
	}
	return "unknown"
}

// Request represents one user command.
type Request struct {
	Action Action
	Target string
}

// NewRequest validates target and creates a Request.
func NewRequest(a Action, target string) (*Request, error) {
	if len(a.Keyword()) == 0 {
		return nil, invalidInput("unsupported action: %d", a)
	}
	t := strings.TrimSpace(target)
	if len(t) == 0 {
		return nil, invalidInput("empty media name")
	}
	if strings.ContainsAny(t, "\r\n") {
		return nil, invalidInput("media name contains line delimiter: %q", t)
	}
	return &Request{Action: a, Target: t}, nil
}

// String returns request line without line delimiter.
func (r *Request) String() string {
	return r.Action.Keyword() + " " + r.Target
}

// Encode formats user command to the request line.
func Encode(a Action, target string) (string, error) {
	r, err := NewRequest(a, target)
	if err != nil {
		return "", err
	}
	return r.String(), nil
}
