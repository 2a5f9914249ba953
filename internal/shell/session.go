// Package shell is the text session shown to the user: it keeps the
// prompt buffer, turns user actions into media server requests and
// appends their results.
package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/meiraka/mediaremote/internal/remote"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Action is a user action.
type Action int

const (
	// Search shows media information.
	Search Action = iota + 1
	// Play plays media on the server.
	Play
	// Clear resets the text to the prompt.
	Clear
	// Exit ends the session.
	Exit
	// Reconnect replaces a failed server connection.
	Reconnect
)

func (a Action) String() string {
	switch a {
	case Search:
		return "Search media"
	case Play:
		return "Play media"
	case Clear:
		return "Clear"
	case Exit:
		return "Exit"
	case Reconnect:
		return "Reconnect"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

//go:generate mockgen -destination=mock_requester_test.go -package=shell github.com/meiraka/mediaremote/internal/shell Requester

// Requester sends media requests to the server.
type Requester interface {
	Search(ctx context.Context, name string) (string, error)
	Play(ctx context.Context, name string) (string, error)
	Reconnect(ctx context.Context) error
}

// Logger is the subset of log.Logger used by Session.
type Logger interface {
	Printf(format string, v ...interface{})
	Debugf(format string, v ...interface{})
}

// Session holds the text buffer of one user session.
type Session struct {
	client  Requester
	printer *message.Printer
	logger  Logger
	mu      sync.Mutex
	text    string
	done    bool
}

// NewSession creates a Session starting with the prompt.
func NewSession(client Requester, lang language.Tag, logger Logger) *Session {
	return &Session{
		client:  client,
		printer: message.NewPrinter(lang),
		logger:  logger,
		text:    Prompt,
	}
}

// Text returns whole session text.
func (s *Session) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// SetText replaces whole session text.
func (s *Session) SetText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = text
}

// Type replaces the media name on the prompt line, keeping later lines.
func (s *Session) Type(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rest := ""
	if i := strings.IndexByte(s.text, '\n'); i >= 0 {
		rest = s.text[i:]
	}
	s.text = Prompt + name + rest
}

// Done reports whether Exit was handled.
func (s *Session) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Handle runs the action and returns the text appended by it.
// Request errors are appended and returned; the session stays usable.
func (s *Session) Handle(ctx context.Context, a Action) (string, error) {
	switch a {
	case Search, Play:
		return s.request(ctx, a)
	case Clear:
		s.SetText(Prompt)
		return "", nil
	case Exit:
		s.mu.Lock()
		s.done = true
		s.mu.Unlock()
		return "", nil
	case Reconnect:
		return s.reconnect(ctx)
	}
	return "", fmt.Errorf("shell: unsupported action: %v", a)
}

func (s *Session) request(ctx context.Context, a Action) (string, error) {
	name, err := ParseInput(s.Text())
	if err != nil {
		s.logger.Printf("%s: %v", msgInvalidInput, err)
		return "", err
	}
	s.logger.Debugf("user input: %s", name)
	var resp string
	if a == Search {
		resp, err = s.client.Search(ctx, name)
	} else {
		resp, err = s.client.Play(ctx, name)
	}
	var out string
	switch {
	case err != nil:
		s.logger.Printf("%s: %v", a, err)
		out = "\n" + s.printer.Sprintf(msgRequestFailed, err) + "\n"
	case len(resp) == 0:
		out = "\n" + s.printer.Sprintf(msgNotFound, name) + "\n"
	default:
		s.logger.Debugf("response: %s", resp)
		out = "\n" + resp
	}
	s.mu.Lock()
	s.text += out
	s.mu.Unlock()
	return out, err
}

func (s *Session) reconnect(ctx context.Context) (string, error) {
	err := s.client.Reconnect(ctx)
	out := "\n" + s.printer.Sprintf(msgReconnected) + "\n"
	if err != nil {
		s.logger.Printf("%s: %v", Reconnect, err)
		out = "\n" + s.printer.Sprintf(msgRequestFailed, err) + "\n"
	}
	s.mu.Lock()
	s.text += out
	s.mu.Unlock()
	return out, err
}

// Describe returns a localized message for an error returned by Handle.
func (s *Session) Describe(err error) string {
	if errors.Is(err, remote.ErrInvalidInput) {
		return s.printer.Sprintf(msgInvalidInput)
	}
	return s.printer.Sprintf(msgRequestFailed, err)
}
