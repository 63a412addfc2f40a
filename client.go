package main

import (
	"fmt"
	"time"

	"github.com/shovelware/ircd/internal/message"
)

// registrationState is the Client's position in the PASS/NICK/USER
// handshake (spec §3/§4.4).
type registrationState int

const (
	stateAwaitingPass registrationState = iota
	stateAwaitingNickUser
	stateRegistered
	stateQuitting
)

// outbufSoftCap is the SendQ limit from spec §4.5. Exceeding it marks the
// client for removal; no further writes are enqueued.
const outbufSoftCap = 64 * 1024

// inbufHardCap is the final backstop from spec §4.5, distinct from the
// per-line 512 byte limit the framer enforces (see framer.go).
const inbufHardCap = 8 * 1024

// Client holds all per-connection state. It is owned exclusively by the
// event loop; handlers never retain a Client reference across dispatch
// boundaries (spec §3 Registries).
type Client struct {
	fd         int
	remoteAddr string

	state      registrationState
	nick       string
	user       string
	realName   string
	host       string
	passwordOK bool

	// capNegotiating defers the welcome burst until CAP END, per spec §9's
	// resolution of the CAP/registration Open Question.
	capNegotiating bool

	isOperator bool

	inbuf          []byte
	discardingLine bool

	outbuf []byte

	lastRecvAt time.Time
	pingSentAt time.Time
	hasPing    bool

	channels   map[string]struct{}
	invitedTo  map[string]struct{}

	closeAfterFlush bool
	removeReason    string
	markedForRemove bool

	// wantsWrite tracks whether the Poller currently has this fd registered
	// for write readiness, so the event loop only calls Modify when the
	// interest set actually changes.
	wantsWrite bool
}

func newClient(fd int, remoteAddr string, now time.Time) *Client {
	return &Client{
		fd:         fd,
		remoteAddr: remoteAddr,
		state:      stateAwaitingPass,
		lastRecvAt: now,
		channels:   make(map[string]struct{}),
		invitedTo:  make(map[string]struct{}),
	}
}

func (c *Client) String() string {
	return fmt.Sprintf("fd=%d nick=%q addr=%s", c.fd, c.nick, c.remoteAddr)
}

// displayNickOrStar is used as the target nick in numeric replies sent
// before registration, matching catbox's messageClient behavior (it uses
// "*" for clients with no nick yet).
func (c *Client) displayNickOrStar() string {
	if c.nick == "" {
		return "*"
	}
	return c.nick
}

// hostmask renders "nick!user@host" for message prefixes.
func (c *Client) hostmask() string {
	return fmt.Sprintf("%s!%s@%s", c.nick, c.user, c.host)
}

// queue appends an already-built message to outbuf, subject to the SendQ
// cap (spec §4.5). It never blocks; actual writes happen in the event
// loop's flush step.
func (c *Client) queue(m message.Message) {
	if c.markedForRemove {
		return
	}

	line, err := m.Encode()
	if err != nil {
		// Only caused by a handler bug (too many params, misplaced
		// trailing). Drop the line rather than wedge the connection.
		return
	}

	if len(c.outbuf)+len(line) > outbufSoftCap {
		c.markRemove("SendQ exceeded")
		return
	}

	c.outbuf = append(c.outbuf, line...)
}

// markRemove flags the client for reaping by the event loop. Calling it
// more than once keeps the first reason.
func (c *Client) markRemove(reason string) {
	if c.markedForRemove {
		return
	}
	c.markedForRemove = true
	c.removeReason = reason
}

// clearLiveness resets the PING tracker; called on any inbound byte.
func (c *Client) clearLiveness(now time.Time) {
	c.lastRecvAt = now
	c.hasPing = false
}
