package main

func cmdPass(s *Server, c *Client, params []string) {
	if c.state == stateRegistered {
		s.numeric(c, ERR_ALREADYREGISTRED, "You may not reregister")
		return
	}
	if len(params) < 1 {
		s.numeric(c, ERR_NEEDMOREPARAMS, "PASS", "Not enough parameters")
		return
	}
	if c.state != stateAwaitingPass {
		return
	}

	if s.cfg.password == "" || params[0] == s.cfg.password {
		c.passwordOK = true
		c.state = stateAwaitingNickUser
		return
	}

	s.numeric(c, ERR_PASSWDMISMATCH, "Password incorrect")
	c.state = stateQuitting
	c.closeAfterFlush = true
	c.markRemove("Password incorrect")
}

// promoteIfNoPassword lets a client skip straight past AwaitingPass when
// the server has no configured password, per spec §4.4.
func promoteIfNoPassword(s *Server, c *Client) {
	if s.cfg.password == "" && c.state == stateAwaitingPass {
		c.state = stateAwaitingNickUser
		c.passwordOK = true
	}
}

func cmdNick(s *Server, c *Client, params []string) {
	if len(params) < 1 {
		s.numeric(c, ERR_NONICKNAMEGIVEN, "No nickname given")
		return
	}

	promoteIfNoPassword(s, c)

	newNick := params[0]
	if !isValidNick(newNick) {
		s.numeric(c, ERR_ERRONEUSNICKNAME, newNick, "Erroneous nickname")
		return
	}

	if existing, ok := s.reg.clientByNick(newNick); ok && existing != c {
		s.numeric(c, ERR_NICKNAMEINUSE, newNick, "Nickname is already in use")
		return
	}

	oldNick := c.nick
	wasRegistered := c.state == stateRegistered

	if oldNick != "" {
		s.reg.unbindNick(oldNick)
	}
	c.nick = newNick
	s.reg.bindNick(c, newNick)

	if wasRegistered {
		s.broadcastNickChange(c, oldNick)
		return
	}

	s.maybeCompleteRegistration(c)
}

// broadcastNickChange announces a nick change to the client itself and to
// every channel it shares with others, each recipient notified once.
func (s *Server) broadcastNickChange(c *Client, oldNick string) {
	notified := make(map[*Client]struct{})
	s.tellFrom(c, c, "NICK", c.nick)
	notified[c] = struct{}{}

	for name := range c.channels {
		ch, ok := s.reg.channel(name)
		if !ok {
			continue
		}
		for member := range ch.members {
			if _, done := notified[member]; done {
				continue
			}
			notified[member] = struct{}{}
			s.tellFrom(member, c, "NICK", c.nick)
		}
	}
}

func cmdUser(s *Server, c *Client, params []string) {
	if c.state == stateRegistered {
		s.numeric(c, ERR_ALREADYREGISTRED, "You may not reregister")
		return
	}
	if len(params) < 4 {
		s.numeric(c, ERR_NEEDMOREPARAMS, "USER", "Not enough parameters")
		return
	}

	promoteIfNoPassword(s, c)

	user := params[0]
	if !isValidUser(user) {
		user = "user"
	}
	real := params[3]
	if !isValidRealName(real) {
		real = ""
	}

	c.user = user
	c.realName = real
	if c.host == "" {
		c.host = "localhost"
	}

	s.maybeCompleteRegistration(c)
}

// cmdCap implements the minimal negotiation from spec §4.4/§9: LS answers
// with an empty capability list and, if seen before registration
// completes, defers the welcome burst until END.
func cmdCap(s *Server, c *Client, params []string) {
	if len(params) < 1 {
		return
	}

	switch upperASCII(params[0]) {
	case "LS", "LIST":
		if c.state != stateRegistered {
			c.capNegotiating = true
		}
		s.tell(c, capMessage(c, "LS", ""))
	case "REQ":
		// No capabilities are actually supported; NAK whatever was asked.
		requested := ""
		if len(params) > 1 {
			requested = params[1]
		}
		s.tell(c, capMessage(c, "NAK", requested))
	case "END":
		c.capNegotiating = false
		s.maybeCompleteRegistration(c)
	}
}

func cmdOper(s *Server, c *Client, params []string) {
	if len(params) < 2 {
		s.numeric(c, ERR_NEEDMOREPARAMS, "OPER", "Not enough parameters")
		return
	}
	if params[0] != s.cfg.operName || params[1] != s.cfg.operPassword || s.cfg.operName == "" {
		s.numeric(c, ERR_PASSWDMISMATCH, "Password incorrect")
		return
	}
	c.isOperator = true
	s.numeric(c, RPL_YOUREOPER, "You are now an IRC operator")
}

func cmdQuit(s *Server, c *Client, params []string) {
	reason := "Client Quit"
	if len(params) > 0 {
		reason = params[0]
	}
	c.state = stateQuitting
	c.closeAfterFlush = true
	c.markRemove(reason)
}

func cmdPing(s *Server, c *Client, params []string) {
	if len(params) < 1 {
		s.numeric(c, ERR_NOORIGIN, "No origin specified")
		return
	}
	s.tell(c, pongMessage(s, params[0]))
}

func cmdPong(s *Server, c *Client, params []string) {
	c.hasPing = false
}
