package remote

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrClosed is returned when connection is closed by client.
	ErrClosed = errors.New("remote: connection closed")
	// ErrNotConnected is returned when the connection failed and was not re-established.
	ErrNotConnected = errors.New("remote: not connected")
	// ErrInvalidInput is returned when user text can not be encoded to a request.
	ErrInvalidInput = errors.New("remote: invalid input")
)

// ConnectError represents transport establishment failure.
type ConnectError struct {
	Network string
	Addr    string
	Err     error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("remote: couldn't connect to %s (%s): %v", e.Addr, e.Network, e.Err)
}

// Unwrap returns the dial error.
func (e *ConnectError) Unwrap() error {
	return e.Err
}

// IOError represents transport failure during a round trip.
type IOError struct {
	Request string
	Err     error
}

func (e *IOError) Error() string {
	if len(e.Request) == 0 {
		return fmt.Sprintf("remote: %v", e.Err)
	}
	return fmt.Sprintf("remote: %s: %v", e.Request, e.Err)
}

// Unwrap returns the transport error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// TimeoutError is returned when the server does not reply in time.
type TimeoutError struct {
	Request string
	Timeout time.Duration
	Err     error
}

func (e *TimeoutError) Error() string {
	if e.Timeout == 0 {
		return fmt.Sprintf("remote: %s: no reply: %v", e.Request, e.Err)
	}
	return fmt.Sprintf("remote: %s: no reply in %v", e.Request, e.Timeout)
}

// Unwrap returns the underlying deadline error.
func (e *TimeoutError) Unwrap() error {
	return e.Err
}

func invalidInput(format string, v ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, v...))
}
