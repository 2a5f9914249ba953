package remote

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/net/proxy"
)

// conn is a line oriented transport to the media server.
type conn interface {
	Writeln(line string) error
	Readln() (string, error)
	SetDeadline(t time.Time) error
	Close() error
}

// roundTrip writes one request line and reads exactly one reply line.
func roundTrip(c conn, line string) (string, error) {
	if err := c.Writeln(line); err != nil {
		return "", err
	}
	return c.Readln()
}

type dialer struct {
	network     string
	addr        Address
	path        string
	proxy       string
	dialTimeout time.Duration
}

func (d *dialer) Dial(ctx context.Context) (conn, error) {
	if d.dialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.dialTimeout)
		defer cancel()
	}
	switch d.network {
	case "tcp", "tcp4", "tcp6":
		return d.dialTCP(ctx)
	case "ws", "wss":
		return d.dialWebSocket(ctx)
	}
	return nil, fmt.Errorf("unsupported network: %q", d.network)
}

func (d *dialer) dialTCP(ctx context.Context) (conn, error) {
	var cd proxy.ContextDialer = &net.Dialer{}
	if len(d.proxy) != 0 {
		p, err := proxy.SOCKS5("tcp", d.proxy, nil, &net.Dialer{})
		if err != nil {
			return nil, err
		}
		var ok bool
		if cd, ok = p.(proxy.ContextDialer); !ok {
			return nil, errors.New("proxy dialer does not support context")
		}
	}
	c, err := cd.DialContext(ctx, d.network, d.addr.String())
	if err != nil {
		return nil, err
	}
	return newLineConn(c), nil
}

func (d *dialer) dialWebSocket(ctx context.Context) (conn, error) {
	wd := &websocket.Dialer{}
	if len(d.proxy) != 0 {
		wd.NetDialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
			p, err := proxy.SOCKS5("tcp", d.proxy, nil, &net.Dialer{})
			if err != nil {
				return nil, err
			}
			cd, ok := p.(proxy.ContextDialer)
			if !ok {
				return nil, errors.New("proxy dialer does not support context")
			}
			return cd.DialContext(ctx, network, addr)
		}
	}
	path := d.path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	ws, _, err := wd.DialContext(ctx, d.network+"://"+d.addr.String()+path, nil)
	if err != nil {
		return nil, err
	}
	return &wsConn{conn: ws}, nil
}

// lineConn is a stream socket transport.
type lineConn struct {
	*bufio.Reader
	conn net.Conn
}

func newLineConn(c net.Conn) *lineConn {
	return &lineConn{
		Reader: bufio.NewReader(c),
		conn:   c,
	}
}

func (c *lineConn) Readln() (string, error) {
	s, err := c.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", io.ErrUnexpectedEOF
		}
		return "", err
	}
	return trimLine(s), nil
}

func (c *lineConn) Writeln(line string) error {
	_, err := io.WriteString(c.conn, line+"\n")
	return err
}

func (c *lineConn) SetDeadline(t time.Time) error {
	return c.conn.SetDeadline(t)
}

func (c *lineConn) Close() error {
	return c.conn.Close()
}

// wsConn carries one line per websocket text message.
type wsConn struct {
	conn *websocket.Conn
}

func (c *wsConn) Readln() (string, error) {
	for {
		t, b, err := c.conn.ReadMessage()
		if err != nil {
			return "", err
		}
		if t == websocket.TextMessage {
			return trimLine(string(b)), nil
		}
	}
}

func (c *wsConn) Writeln(line string) error {
	return c.conn.WriteMessage(websocket.TextMessage, []byte(line+"\n"))
}

func (c *wsConn) SetDeadline(t time.Time) error {
	if err := c.conn.SetReadDeadline(t); err != nil {
		return err
	}
	return c.conn.SetWriteDeadline(t)
}

func (c *wsConn) Close() error {
	return c.conn.Close()
}

func trimLine(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
