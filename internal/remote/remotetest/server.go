// Package remotetest provides mock media servers for remote client tests.
package remotetest

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
)

// Server is mock media server.
type Server struct {
	ln     net.Listener
	hs     *httptest.Server
	Proto  string
	URL    string
	Host   string
	Port   int
	closeC chan struct{}
	rc     chan *rConn
	mu     sync.Mutex
	closed bool
}

type reply struct {
	line  string
	close bool
}

type rConn struct {
	read string
	wc   chan reply
}

// WR represents testserver Write / Read string
type WR struct {
	Read  string
	Write string
	// Disconnect closes the connection after Read instead of writing.
	Disconnect bool
}

// Close closes connection
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.closeC)
		if s.ln != nil {
			s.ln.Close()
		}
		if s.hs != nil {
			s.hs.Close()
		}
	}
}

// Expect expects request line and writes reply.
// A request which does not match m.Read is answered with a diagnostic line.
func (s *Server) Expect(ctx context.Context, m *WR) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case r := <-s.rc:
		w := reply{line: m.Write, close: m.Disconnect}
		if r.read != m.Read {
			w = reply{line: fmt.Sprintf("got %q; want %q\n", r.read, m.Read)}
		}
		select {
		case <-ctx.Done():
		case r.wc <- w:
		}
	}
	return nil
}

func newServer() *Server {
	return &Server{
		closeC: make(chan struct{}),
		rc:     make(chan *rConn),
	}
}

func (s *Server) setAddr(addr string) error {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return err
	}
	p, err := strconv.Atoi(port)
	if err != nil {
		return err
	}
	s.Host = host
	s.Port = p
	return nil
}

// NewServer creates new mock line server.
func NewServer() (*Server, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("remotetest: failed to listen on a port: %w", err)
	}
	s := newServer()
	s.ln = ln
	s.Proto = "tcp"
	s.URL = ln.Addr().String()
	if err := s.setAddr(s.URL); err != nil {
		ln.Close()
		return nil, err
	}
	go func(ln net.Listener) {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go s.serve(&lineConn{r: bufio.NewReader(conn), c: conn})
		}
	}(ln)
	return s, nil
}

// NewWebSocketServer creates new mock server which carries one line per websocket message.
func NewWebSocketServer() (*Server, error) {
	s := newServer()
	upgrader := websocket.Upgrader{}
	s.hs = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		s.serve(&wsConn{c: ws})
	}))
	s.Proto = "ws"
	s.URL = strings.Replace(s.hs.URL, "http://", "ws://", 1)
	if err := s.setAddr(s.hs.Listener.Addr().String()); err != nil {
		s.hs.Close()
		return nil, err
	}
	return s, nil
}

type conn interface {
	readln() (string, error)
	write(string) error
	Close() error
}

func (s *Server) serve(conn conn) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer cancel()
		defer conn.Close()
		wc := make(chan reply, 1)
		for {
			nl, err := conn.readln()
			if err != nil {
				return
			}
			select {
			case <-ctx.Done():
				return
			case s.rc <- &rConn{read: nl, wc: wc}:
			}
			select {
			case <-ctx.Done():
				return
			case l := <-wc:
				if l.close {
					return
				}
				if len(l.line) != 0 {
					if err := conn.write(l.line); err != nil {
						return
					}
				}
			}
		}
	}()
	select {
	case <-ctx.Done():
	case <-s.closeC:
	}
	conn.Close()
	cancel()
	wg.Wait()
}

type lineConn struct {
	r *bufio.Reader
	c net.Conn
}

func (c *lineConn) readln() (string, error) { return c.r.ReadString('\n') }
func (c *lineConn) write(s string) error {
	_, err := fmt.Fprint(c.c, s)
	return err
}
func (c *lineConn) Close() error { return c.c.Close() }

type wsConn struct {
	c *websocket.Conn
}

func (c *wsConn) readln() (string, error) {
	_, b, err := c.c.ReadMessage()
	return string(b), err
}
func (c *wsConn) write(s string) error { return c.c.WriteMessage(websocket.TextMessage, []byte(s)) }
func (c *wsConn) Close() error         { return c.c.Close() }
