package remote

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/google/uuid"
)

// State represents connection state of the Client.
type State int

const (
	// Disconnected is the state before Dial and after Close.
	Disconnected State = iota
	// Connected means requests can be sent.
	Connected
	// Failed means the last dial or round trip broke the connection.
	Failed
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connected:
		return "connected"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Logger is the subset of log.Logger used by Client.
type Logger interface {
	Debugf(format string, v ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}

// ClientOptions contains options for media server connection.
type ClientOptions struct {
	// Timeout is the maximum amount of time a round trip will wait for a reply.
	// Zero means no timeout.
	Timeout time.Duration
	// DialTimeout is the maximum amount of time a dial will wait for a connect to complete.
	DialTimeout time.Duration
	// ReconnectionInterval enables background reconnection after a failure.
	// Zero keeps the client failed until Reconnect is called.
	ReconnectionInterval time.Duration
	// Path is the websocket request path for ws and wss networks.
	Path string
	// Proxy is the SOCKS5 proxy address.
	Proxy  string
	Logger Logger
}

// Client is a media server client.
type Client struct {
	pool    *pool
	network string
	addr    Address
	opts    *ClientOptions
	logger  Logger
}

// Dial connects to media server.
func Dial(network string, addr Address, opts *ClientOptions) (*Client, error) {
	if opts == nil {
		opts = &ClientOptions{}
	}
	if err := addr.Validate(); err != nil {
		return nil, &ConnectError{Network: network, Addr: addr.String(), Err: err}
	}
	c := &Client{
		network: network,
		addr:    addr,
		opts:    opts,
		logger:  opts.Logger,
	}
	if c.logger == nil {
		c.logger = nopLogger{}
	}
	d := &dialer{
		network:     network,
		addr:        addr,
		path:        opts.Path,
		proxy:       opts.Proxy,
		dialTimeout: opts.DialTimeout,
	}
	pool, err := newPool(d.Dial, opts.ReconnectionInterval)
	if err != nil {
		return nil, &ConnectError{Network: network, Addr: addr.String(), Err: err}
	}
	c.pool = pool
	return c, nil
}

// Addr returns media server address.
func (c *Client) Addr() Address {
	return c.addr
}

// State returns current connection state.
func (c *Client) State() State {
	s, _ := c.pool.State()
	return s
}

// Close closes media server connection.
func (c *Client) Close(ctx context.Context) error {
	return c.pool.Close(ctx)
}

// Reconnect replaces the connection with a new one.
func (c *Client) Reconnect(ctx context.Context) error {
	if err := c.pool.Reconnect(ctx); err != nil {
		if errors.Is(err, ErrClosed) {
			return err
		}
		return &ConnectError{Network: c.network, Addr: c.addr.String(), Err: err}
	}
	return nil
}

// Search requests media information by name.
// An empty string means the media was not found.
func (c *Client) Search(ctx context.Context, name string) (string, error) {
	return c.do(ctx, Search, name)
}

// Play requests the server to play the media.
// An empty string means the media was not found.
func (c *Client) Play(ctx context.Context, name string) (string, error) {
	return c.do(ctx, Play, name)
}

func (c *Client) do(ctx context.Context, a Action, name string) (string, error) {
	r, err := NewRequest(a, name)
	if err != nil {
		return "", err
	}
	return c.Send(ctx, r)
}

// Send writes the request line and waits for the reply.
func (c *Client) Send(ctx context.Context, r *Request) (string, error) {
	line := r.String()
	if c.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}
	id := uuid.New()
	c.logger.Debugf("remote: %s: send %q", id, line)
	var resp string
	err := c.pool.Exec(ctx, func(conn conn) (err error) {
		resp, err = roundTrip(conn, line)
		return
	})
	if err != nil {
		return "", c.wrapErr(id, line, err)
	}
	c.logger.Debugf("remote: %s: recv %q", id, resp)
	return resp, nil
}

// wrapErr classifies a round trip error and logs it with the request id.
func (c *Client) wrapErr(id uuid.UUID, line string, err error) error {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		err = &TimeoutError{Request: line, Timeout: c.opts.Timeout, Err: err}
	} else {
		err = &IOError{Request: line, Err: err}
	}
	c.logger.Debugf("remote: %s: %v", id, err)
	return err
}
