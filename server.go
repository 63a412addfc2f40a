package main

import (
	"log"
	"time"

	"github.com/shovelware/ircd/internal/message"
	"github.com/shovelware/ircd/internal/netpoll"
)

// Server is the top-level object the event loop drives. It owns the
// registry, the listening socket, and every connected Client. catbox's
// Server plays the same role (command dispatch table, nick/channel maps,
// config); this one additionally owns the Poller and raw listening fd
// since the spec's transport is hand-rolled rather than net.Listener.
type Server struct {
	cfg config
	reg *registry

	poller   netpoll.Poller
	listenFD int

	clients map[int]*Client // fd -> Client

	motd []string

	created time.Time
	name    string

	handlers map[string]commandHandler
}

func newServer(cfg config, poller netpoll.Poller, listenFD int) *Server {
	s := &Server{
		cfg:      cfg,
		reg:      newRegistry(),
		poller:   poller,
		listenFD: listenFD,
		clients:  make(map[int]*Client),
		created:  time.Now(),
		name:     cfg.serverName,
		motd: []string{
			"Welcome to the server.",
			"Be excellent to each other.",
		},
	}
	s.handlers = buildCommandTable()
	return s
}

// tell enqueues a single message to one client's outbuf and keeps the
// Poller's write interest in sync, matching catbox's messageClient/
// messageFromServer split of "build the line" from "schedule the write".
func (s *Server) tell(c *Client, m message.Message) {
	c.queue(m)
	s.syncWriteInterest(c)
}

func (s *Server) syncWriteInterest(c *Client) {
	wantsWrite := len(c.outbuf) > 0
	if wantsWrite == c.wantsWrite {
		return
	}
	if err := s.poller.Modify(c.fd, wantsWrite); err != nil {
		log.Printf("ircd: poller modify fd %d: %v", c.fd, err)
		c.markRemove("transport error")
		return
	}
	c.wantsWrite = wantsWrite
}

// tellFrom enqueues a message with prefix set to from's hostmask, the
// common shape for client-originated broadcasts (NICK, JOIN, PART, ...).
func (s *Server) tellFrom(to *Client, from *Client, command string, params ...string) {
	s.tell(to, message.Message{Prefix: from.hostmask(), Command: command, Params: params})
}

// broadcastChannel sends a message to every member of ch, optionally
// excluding one client (the sender, for PRIVMSG/NOTICE per spec §4.4).
func (s *Server) broadcastChannel(ch *Channel, exclude *Client, m message.Message) {
	for member := range ch.members {
		if member == exclude {
			continue
		}
		s.tell(member, m)
	}
}

// removeClient tears a client down: broadcasts QUIT to every shared
// channel, removes membership everywhere, drops now-empty channels,
// unregisters the fd, and closes the socket.
func (s *Server) removeClient(c *Client, reason string) {
	if len(c.channels) > 0 {
		quit := message.Message{Prefix: c.hostmask(), Command: "QUIT", Params: []string{reason}}
		notified := make(map[*Client]struct{})
		for name := range c.channels {
			ch, ok := s.reg.channel(name)
			if !ok {
				continue
			}
			for member := range ch.members {
				if member == c {
					continue
				}
				if _, done := notified[member]; done {
					continue
				}
				notified[member] = struct{}{}
				s.tell(member, quit)
			}
			ch.remove(c)
			s.reg.dropChannelIfEmpty(ch)
		}
	}

	if c.nick != "" {
		s.reg.unbindNick(c.nick)
	}

	_ = s.poller.Remove(c.fd)
	_ = closeFD(c.fd)
	delete(s.clients, c.fd)
}

// maybeCompleteRegistration promotes a client to Registered once it has a
// valid password, nick, and user, and (per spec §9's CAP resolution) is
// not still waiting on CAP END.
func (s *Server) maybeCompleteRegistration(c *Client) {
	if c.state != stateAwaitingNickUser {
		return
	}
	if c.nick == "" || c.user == "" {
		return
	}
	if c.capNegotiating {
		return
	}

	c.state = stateRegistered
	s.sendWelcome(c)
}

func (s *Server) sendWelcome(c *Client) {
	s.numeric(c, RPL_WELCOME, "Welcome to the Internet Relay Network "+c.hostmask())
	s.numeric(c, RPL_YOURHOST, "Your host is "+s.name+", running this server")
	s.numeric(c, RPL_CREATED, "This server was created "+s.created.Format(time.RFC1123))
	s.numeric(c, RPL_MYINFO, s.name, "ircd", "io", "itklo")
	s.sendMOTD(c)
}

func (s *Server) sendMOTD(c *Client) {
	if len(s.motd) == 0 {
		s.numeric(c, ERR_NOMOTD, "MOTD File is missing")
		return
	}
	s.numeric(c, RPL_MOTDSTART, "- "+s.name+" Message of the day -")
	for _, line := range s.motd {
		s.numeric(c, RPL_MOTD, "- "+line)
	}
	s.numeric(c, RPL_ENDOFMOTD, "End of MOTD command")
}
