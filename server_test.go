package main

import (
	"strings"
	"time"

	"github.com/shovelware/ircd/internal/message"
	"github.com/shovelware/ircd/internal/netpoll"
)

// fakePoller satisfies netpoll.Poller without touching any real fd. It
// lets tests exercise Server/Client/dispatch logic without a kernel
// socket in the loop, per the synthetic-harness approach the spec's
// testable-properties section calls for.
type fakePoller struct {
	writeInterest map[int]bool
}

func newFakePoller() *fakePoller {
	return &fakePoller{writeInterest: make(map[int]bool)}
}

func (p *fakePoller) Add(fd int, writable bool) error {
	p.writeInterest[fd] = writable
	return nil
}

func (p *fakePoller) Modify(fd int, writable bool) error {
	p.writeInterest[fd] = writable
	return nil
}

func (p *fakePoller) Remove(fd int) error {
	delete(p.writeInterest, fd)
	return nil
}

func (p *fakePoller) Wait(timeout time.Duration) ([]netpoll.Event, error) {
	return nil, nil
}

func (p *fakePoller) Close() error { return nil }

var nextTestFD = 1000

// newTestServer builds a Server wired to a fakePoller with no listening
// socket, suitable for dispatch/channel/registry tests.
func newTestServer() *Server {
	cfg := config{port: 6667, password: "", serverName: "testserver"}
	return newServer(cfg, newFakePoller(), -1)
}

// newTestClient registers a fresh fd with the server's fake poller and
// returns an unregistered (pre-PASS) Client.
func newTestClient(s *Server, now time.Time) *Client {
	nextTestFD++
	fd := nextTestFD
	c := newClient(fd, "127.0.0.1:0", now)
	c.host = "127.0.0.1"
	_ = s.poller.Add(fd, false)
	s.clients[fd] = c
	return c
}

// registerClient drives a client through PASS/NICK/USER so tests can start
// from a Registered state without repeating the handshake every time.
func registerClient(s *Server, c *Client, nick, user string) {
	if s.cfg.password != "" {
		s.dispatch(c, "PASS "+s.cfg.password)
	}
	s.dispatch(c, "NICK "+nick)
	s.dispatch(c, "USER "+user+" 0 * :"+user+" Real Name")
}

// drainOutbuf decodes and returns every line currently queued in c.outbuf,
// clearing it, so assertions can check exactly what was sent for one step.
func drainOutbuf(c *Client) []string {
	raw := string(c.outbuf)
	c.outbuf = nil
	var lines []string
	for _, l := range strings.Split(raw, "\r\n") {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func mustParse(line string) message.Message {
	m, err := message.ParseLine(line)
	if err != nil {
		panic(err)
	}
	return m
}
