package main

import (
	"log"
	"net"
	"time"
)

// readChunkSize is the per-read buffer size; a single readable notification
// may be drained across several reads until EAGAIN.
const readChunkSize = 4096

// run is the top-level driver: wait on the Poller, service ready fds,
// run the liveness tick, and reap clients marked for removal. It returns
// only on a fatal Poller error.
func (s *Server) run() error {
	for {
		events, err := s.poller.Wait(time.Second)
		if err != nil {
			return err
		}

		now := time.Now()

		for _, ev := range events {
			if ev.FD == s.listenFD {
				s.acceptLoop(now)
				continue
			}

			c, ok := s.clients[ev.FD]
			if !ok {
				continue
			}

			if ev.Error {
				c.markRemove("connection error")
				continue
			}
			if ev.Readable {
				s.handleReadable(c, now)
			}
			if ev.Writable && (!c.markedForRemove || c.closeAfterFlush) {
				s.handleWritable(c)
			}
		}

		s.runLivenessTick(now)
		s.reapRemoved()
	}
}

// acceptLoop drains the listening socket's accept backlog (spec §4.1
// step 3).
func (s *Server) acceptLoop(now time.Time) {
	for {
		fd, remoteAddr, err := acceptOne(s.listenFD)
		if err != nil {
			if !isEAGAIN(err) {
				log.Printf("ircd: accept: %v", err)
			}
			return
		}

		c := newClient(fd, remoteAddr, now)
		if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
			c.host = host
		} else {
			c.host = remoteAddr
		}

		if err := s.poller.Add(fd, false); err != nil {
			log.Printf("ircd: poller add fd %d: %v", fd, err)
			_ = closeFD(fd)
			continue
		}

		s.clients[fd] = c
	}
}

// handleReadable drains one client's fd into inbuf and dispatches every
// complete line it yields.
func (s *Server) handleReadable(c *Client, now time.Time) {
	buf := make([]byte, readChunkSize)

	for {
		n, err := readFD(c.fd, buf)
		if n > 0 {
			c.inbuf = append(c.inbuf, buf[:n]...)
			c.clearLiveness(now)
		}
		if err != nil {
			if isEAGAIN(err) {
				break
			}
			c.markRemove("transport error")
			return
		}
		if n == 0 {
			c.markRemove("EOF")
			break
		}
		if n < len(buf) {
			break
		}
	}

	lines, overflowed, hardOverflow := c.extractLines()
	if overflowed {
		s.numeric(c, ERR_INPUTTOOLONG, "Input line too long")
	}
	if hardOverflow {
		c.markRemove("Input buffer exceeded")
		return
	}

	for _, line := range lines {
		if c.markedForRemove {
			return
		}
		s.dispatch(c, line)
	}
}

// handleWritable flushes as much of outbuf as the kernel accepts.
func (s *Server) handleWritable(c *Client) {
	for len(c.outbuf) > 0 {
		n, err := writeFD(c.fd, c.outbuf)
		if n > 0 {
			c.outbuf = c.outbuf[n:]
		}
		if err != nil {
			if isEAGAIN(err) {
				break
			}
			c.markRemove("transport error")
			return
		}
		if n == 0 {
			break
		}
	}

	s.syncWriteInterest(c)
}

// reapRemoved destroys every client marked for removal whose outbuf has
// finished draining (or that has no flush obligation at all).
func (s *Server) reapRemoved() {
	for _, c := range s.clients {
		if !c.markedForRemove {
			continue
		}
		if c.closeAfterFlush && len(c.outbuf) > 0 {
			continue
		}
		s.removeClient(c, c.removeReason)
	}
}
