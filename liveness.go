package main

import (
	"time"

	"github.com/shovelware/ircd/internal/message"
)

// livenessTimeout is both the idle threshold before a PING is sent and the
// grace period after it before the connection is dropped (spec §4.7).
const livenessTimeout = 60 * time.Second

// runLivenessTick applies the PING/PONG timeout rules to every client.
// Called at least once per second from the event loop.
func (s *Server) runLivenessTick(now time.Time) {
	for _, c := range s.clients {
		if c.markedForRemove {
			continue
		}

		if !c.hasPing {
			if now.Sub(c.lastRecvAt) > livenessTimeout {
				c.hasPing = true
				c.pingSentAt = now
				s.tell(c, message.Message{Prefix: s.name, Command: "PING", Params: []string{s.name}})
			}
			continue
		}

		if now.Sub(c.pingSentAt) > livenessTimeout {
			c.markRemove("Ping timeout")
		}
	}
}
