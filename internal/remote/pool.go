package remote

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// pool holds the only connection to the server.
// connC carries a single token: a live conn, or nil after an unrecovered failure.
// Holding the token is what makes a round trip exclusive.
type pool struct {
	dial                 func(context.Context) (conn, error)
	ReconnectionInterval time.Duration
	connC                chan conn
	connCtx              context.Context
	connCancel           context.CancelFunc
	mu                   sync.RWMutex
	state                State
	err                  error
	closed               bool
}

func newPool(dial func(context.Context) (conn, error), reconnectionInterval time.Duration) (*pool, error) {
	ctx, cancel := context.WithCancel(context.Background())
	p := &pool{
		dial:                 dial,
		ReconnectionInterval: reconnectionInterval,
		connC:                make(chan conn, 1),
		connCtx:              ctx,
		connCancel:           cancel,
		state:                Disconnected,
	}
	if err := p.connectOnce(); err != nil {
		cancel()
		return nil, err
	}
	return p, nil
}

func (c *pool) Exec(ctx context.Context, f func(conn) error) error {
	conn, err := c.get(ctx)
	if err != nil {
		return err
	}
	errs := make(chan error, 1)
	go func() {
		errs <- f(conn)
	}()
	select {
	case err = <-errs:
	case <-ctx.Done():
		err = ctx.Err()
		conn.SetDeadline(time.Now())
	case <-c.connCtx.Done():
		err = ErrClosed
		conn.SetDeadline(time.Now())
	}
	return c.returnConn(conn, err)
}

// Reconnect drops the current connection if any and dials a new one.
func (c *pool) Reconnect(ctx context.Context) error {
	select {
	case conn, ok := <-c.connC:
		if !ok {
			return ErrClosed
		}
		if conn != nil {
			conn.Close()
		}
	case <-ctx.Done():
		return ctx.Err()
	}
	conn, err := c.dial(ctx)
	if c.isClosed() {
		if conn != nil {
			conn.Close()
		}
		c.release()
		return ErrClosed
	}
	if err != nil {
		c.setState(Failed, err)
		c.connC <- nil
		return err
	}
	c.setState(Connected, nil)
	c.connC <- conn
	return nil
}

func (c *pool) Close(ctx context.Context) error {
	c.mu.Lock()
	closed := c.closed
	c.closed = true
	c.mu.Unlock()
	if closed {
		return ErrClosed
	}
	c.connCancel()
	select {
	case conn, ok := <-c.connC:
		if !ok {
			return nil
		}
		c.release()
		if conn != nil {
			return conn.Close()
		}
		return nil
	case <-ctx.Done():
		// the token holder releases the connection when it sees closed
		return ctx.Err()
	}
}

func (c *pool) isClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// release closes connC. Only the token holder may call it.
func (c *pool) release() {
	c.setState(Disconnected, nil)
	close(c.connC)
}

func (c *pool) State() (State, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state, c.err
}

func (c *pool) setState(s State, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
	c.err = err
}

func (c *pool) get(ctx context.Context) (conn, error) {
	select {
	case conn, ok := <-c.connC:
		if !ok {
			return nil, ErrClosed
		}
		if conn == nil {
			c.connC <- nil
			if _, err := c.State(); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrNotConnected, err)
			}
			return nil, ErrNotConnected
		}
		if d, ok := ctx.Deadline(); ok {
			conn.SetDeadline(d)
		} else {
			conn.SetDeadline(time.Time{})
		}
		return conn, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *pool) returnConn(conn conn, err error) error {
	if c.isClosed() {
		conn.Close()
		c.release()
		return err
	}
	if err != nil {
		// the stream may hold a late reply; never reuse it
		conn.Close()
		c.setState(Failed, err)
		if c.ReconnectionInterval > 0 {
			go c.connect()
		} else {
			c.connC <- nil
		}
		return err
	}
	c.connC <- conn
	return nil
}

func (c *pool) connect() {
	for {
		if err := c.connectOnce(); err != nil {
			c.setState(Failed, err)
			select {
			case <-c.connCtx.Done():
				c.release()
				return
			case <-time.After(c.ReconnectionInterval):
			}
			continue
		}
		return
	}
}

func (c *pool) connectOnce() error {
	conn, err := c.dial(c.connCtx)
	if err != nil {
		return err
	}
	if c.isClosed() {
		conn.Close()
		c.release()
		return nil
	}
	c.setState(Connected, nil)
	c.connC <- conn
	return nil
}
