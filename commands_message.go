package main

import (
	"strings"

	"github.com/shovelware/ircd/internal/message"
)

func cmdPrivmsg(s *Server, c *Client, params []string) {
	relay(s, c, "PRIVMSG", params)
}

func cmdNotice(s *Server, c *Client, params []string) {
	// NOTICE never generates automatic replies (spec §4.4), so errors are
	// swallowed rather than sent back to the client.
	relayQuiet(s, c, "NOTICE", params)
}

func relay(s *Server, c *Client, command string, params []string) {
	if len(params) < 1 {
		s.numeric(c, ERR_NORECIPIENT, "No recipient given ("+command+")")
		return
	}
	if len(params) < 2 || params[1] == "" {
		s.numeric(c, ERR_NOTEXTTOSEND, "No text to send")
		return
	}
	deliver(s, c, command, params[0], params[1], true)
}

func relayQuiet(s *Server, c *Client, command string, params []string) {
	if len(params) < 2 {
		return
	}
	deliver(s, c, command, params[0], params[1], false)
}

func deliver(s *Server, c *Client, command, targets, text string, reportErrors bool) {
	for _, target := range strings.Split(targets, ",") {
		if isValidChannel(target) {
			ch, ok := s.reg.channel(target)
			if !ok {
				if reportErrors {
					s.numeric(c, ERR_NOSUCHCHANNEL, target, "No such channel")
				}
				continue
			}
			if !ch.has(c) {
				if reportErrors {
					s.numeric(c, ERR_CANNOTSENDTOCHAN, ch.name, "Cannot send to channel")
				}
				continue
			}
			msg := message.Message{Prefix: c.hostmask(), Command: command, Params: []string{ch.name, text}}
			s.broadcastChannel(ch, c, msg)
			continue
		}

		recipient, ok := s.reg.clientByNick(target)
		if !ok {
			if reportErrors {
				s.numeric(c, ERR_NOSUCHNICK, target, "No such nick/channel")
			}
			continue
		}
		s.tellFrom(recipient, c, command, recipient.nick, text)
	}
}
