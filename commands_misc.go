package main

import (
	"strconv"
	"strings"

	"github.com/shovelware/ircd/internal/message"
)

func cmdMotd(s *Server, c *Client, params []string) {
	s.sendMOTD(c)
}

// cmdLusers implements RPL_LUSERCLIENT-style output via a generic NOTICE,
// since the spec's numeric list doesn't reserve the 251-255 LUSERS range;
// this keeps the behavior (a user/channel count summary) without
// inventing numerics the spec never names.
func cmdLusers(s *Server, c *Client, params []string) {
	s.tell(c, message.Message{
		Prefix:  s.name,
		Command: "NOTICE",
		Params: []string{c.displayNickOrStar(),
			"There are " + strconv.Itoa(len(s.clients)) + " users and " + strconv.Itoa(len(s.reg.channels)) + " channels"},
	})
}

// cmdWho answers "WHO <channel>" with one line per member. It is a
// deliberately local-only simplification of catbox's cross-server WHOIS
// reply, since this server never links to peers.
func cmdWho(s *Server, c *Client, params []string) {
	if len(params) < 1 {
		return
	}
	ch, ok := s.reg.channel(params[0])
	if !ok {
		return
	}
	for member := range ch.members {
		s.numeric(c, "352", ch.name, member.user, member.host, s.name, member.nick, "H", "0 "+member.realName)
	}
	s.numeric(c, "315", ch.name, "End of WHO list")
}

// cmdWhois answers "WHOIS <nick>" for a single local client.
func cmdWhois(s *Server, c *Client, params []string) {
	if len(params) < 1 {
		s.numeric(c, ERR_NOSUCHNICK, "*", "No such nick/channel")
		return
	}
	target, ok := s.reg.clientByNick(params[0])
	if !ok {
		s.numeric(c, ERR_NOSUCHNICK, params[0], "No such nick/channel")
		return
	}

	s.numeric(c, "311", target.nick, target.user, target.host, "*", target.realName)

	var chans []string
	for name := range target.channels {
		chans = append(chans, name)
	}
	if len(chans) > 0 {
		s.numeric(c, "319", target.nick, strings.Join(chans, " "))
	}
	s.numeric(c, "312", target.nick, s.name, "ircd server")
	s.numeric(c, "318", target.nick, "End of WHOIS list")
}

// cmdWallops broadcasts to every operator connected to this server. There
// is no server-to-server propagation since this server never links.
func cmdWallops(s *Server, c *Client, params []string) {
	if !c.isOperator {
		s.numeric(c, ERR_NOPRIVILEGES, "Permission Denied- You're not an IRC operator")
		return
	}
	if len(params) < 1 {
		return
	}
	for _, other := range s.clients {
		if other.isOperator {
			s.tellFrom(other, c, "WALLOPS", params[0])
		}
	}
}
