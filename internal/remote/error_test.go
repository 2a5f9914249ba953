package remote

import (
	"context"
	"errors"
	"io"
	"testing"
)

func TestErrorUnwrap(t *testing.T) {
	for _, tt := range []struct {
		err    error
		target error
	}{
		{err: &ConnectError{Network: "tcp", Addr: "localhost:9999", Err: io.EOF}, target: io.EOF},
		{err: &IOError{Request: "printRequest a", Err: ErrClosed}, target: ErrClosed},
		{err: &TimeoutError{Request: "printRequest a", Err: context.DeadlineExceeded}, target: context.DeadlineExceeded},
		{err: invalidInput("empty media name"), target: ErrInvalidInput},
	} {
		if !errors.Is(tt.err, tt.target) {
			t.Errorf("%v is not %v", tt.err, tt.target)
		}
	}
}

func TestErrorMessage(t *testing.T) {
	for _, tt := range []struct {
		err  error
		want string
	}{
		{
			err:  &ConnectError{Network: "tcp", Addr: "localhost:9999", Err: errors.New("connection refused")},
			want: "remote: couldn't connect to localhost:9999 (tcp): connection refused",
		},
		{
			err:  &IOError{Request: "playRequest a", Err: io.ErrUnexpectedEOF},
			want: "remote: playRequest a: unexpected EOF",
		},
		{
			err:  &IOError{Err: ErrClosed},
			want: "remote: remote: connection closed",
		},
	} {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("got %q; want %q", got, tt.want)
		}
	}
}
