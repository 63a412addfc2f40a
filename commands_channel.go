package main

import (
	"strings"
	"time"

	"github.com/shovelware/ircd/internal/message"
)

// maxChannelsPerClient bounds how many channels one client may join at
// once (spec §4.4's 405 ERR_TOOMANYCHANNELS).
const maxChannelsPerClient = 10

func cmdJoin(s *Server, c *Client, params []string) {
	if len(params) < 1 {
		s.numeric(c, ERR_NEEDMOREPARAMS, "JOIN", "Not enough parameters")
		return
	}

	names := strings.Split(params[0], ",")
	var keys []string
	if len(params) > 1 {
		keys = strings.Split(params[1], ",")
		if len(keys) != len(names) {
			s.numeric(c, ERR_NEEDMOREPARAMS, "JOIN", "Key count does not match channel count")
			return
		}
	}

	for i, name := range names {
		key := ""
		if keys != nil {
			key = keys[i]
		}
		s.joinOne(c, name, key)
	}
}

func (s *Server) joinOne(c *Client, name, key string) {
	if !isValidChannel(name) {
		s.numeric(c, ERR_NOSUCHCHANNEL, name, "No such channel")
		return
	}
	if len(c.channels) >= maxChannelsPerClient {
		s.numeric(c, ERR_TOOMANYCHANNELS, name, "You have joined too many channels")
		return
	}

	canonNick := canonicalizeNick(c.nick)
	if existing, ok := s.reg.channel(name); ok {
		if existing.has(c) {
			return
		}
		if existing.inviteOnly && !existing.isInvited(canonNick) {
			s.numeric(c, ERR_INVITEONLYCHAN, name, "Cannot join channel (+i)")
			return
		}
		if existing.key != "" && existing.key != key {
			s.numeric(c, ERR_BADCHANNELKEY, name, "Cannot join channel (+k)")
			return
		}
		if existing.hasLimit && len(existing.members) >= existing.userLimit {
			s.numeric(c, ERR_CHANNELISFULL, name, "Cannot join channel (+l)")
			return
		}
	}

	ch := s.reg.getOrCreateChannel(name)
	ch.add(c)
	ch.clearInvite(canonNick)
	c.channels[canonicalizeChannel(ch.name)] = struct{}{}
	delete(c.invitedTo, canonicalizeChannel(ch.name))

	join := message.Message{Prefix: c.hostmask(), Command: "JOIN", Params: []string{ch.name}}
	s.broadcastChannel(ch, nil, join)

	if ch.topic == "" {
		s.numeric(c, RPL_NOTOPIC, ch.name, "No topic is set")
	} else {
		s.numeric(c, RPL_TOPIC, ch.name, ch.topic)
	}
	s.sendNames(c, ch)
}

func (s *Server) sendNames(c *Client, ch *Channel) {
	var names []string
	for member, m := range ch.members {
		n := member.nick
		if m.isOperator {
			n = "@" + n
		}
		names = append(names, n)
	}
	s.numeric(c, RPL_NAMREPLY, "=", ch.name, strings.Join(names, " "))
	s.numeric(c, RPL_ENDOFNAMES, ch.name, "End of NAMES list")
}

func cmdPart(s *Server, c *Client, params []string) {
	if len(params) < 1 {
		s.numeric(c, ERR_NEEDMOREPARAMS, "PART", "Not enough parameters")
		return
	}

	reason := c.nick
	if len(params) > 1 {
		reason = params[1]
	}

	for _, name := range strings.Split(params[0], ",") {
		ch, ok := s.reg.channel(name)
		if !ok {
			s.numeric(c, ERR_NOSUCHCHANNEL, name, "No such channel")
			continue
		}
		if !ch.has(c) {
			s.numeric(c, ERR_NOTONCHANNEL, ch.name, "You're not on that channel")
			continue
		}

		part := message.Message{Prefix: c.hostmask(), Command: "PART", Params: []string{ch.name, reason}}
		s.broadcastChannel(ch, nil, part)

		ch.remove(c)
		delete(c.channels, canonicalizeChannel(ch.name))
		s.reg.dropChannelIfEmpty(ch)
	}
}

func cmdTopic(s *Server, c *Client, params []string) {
	if len(params) < 1 {
		s.numeric(c, ERR_NEEDMOREPARAMS, "TOPIC", "Not enough parameters")
		return
	}

	ch, ok := s.reg.channel(params[0])
	if !ok {
		s.numeric(c, ERR_NOSUCHCHANNEL, params[0], "No such channel")
		return
	}
	if !ch.has(c) {
		s.numeric(c, ERR_NOTONCHANNEL, ch.name, "You're not on that channel")
		return
	}

	if len(params) < 2 {
		if ch.topic == "" {
			s.numeric(c, RPL_NOTOPIC, ch.name, "No topic is set")
		} else {
			s.numeric(c, RPL_TOPIC, ch.name, ch.topic)
		}
		return
	}

	if ch.topicLocked && !ch.isOperator(c) {
		s.numeric(c, ERR_CHANOPRIVSNEEDED, ch.name, "You're not channel operator")
		return
	}

	ch.topic = params[1]
	ch.topicSetBy = c.nick
	ch.topicSetAt = time.Now()

	topic := message.Message{Prefix: c.hostmask(), Command: "TOPIC", Params: []string{ch.name, ch.topic}}
	s.broadcastChannel(ch, nil, topic)
}

func cmdKick(s *Server, c *Client, params []string) {
	if len(params) < 2 {
		s.numeric(c, ERR_NEEDMOREPARAMS, "KICK", "Not enough parameters")
		return
	}

	ch, ok := s.reg.channel(params[0])
	if !ok {
		s.numeric(c, ERR_NOSUCHCHANNEL, params[0], "No such channel")
		return
	}
	if !ch.isOperator(c) {
		s.numeric(c, ERR_CHANOPRIVSNEEDED, ch.name, "You're not channel operator")
		return
	}

	target, ok := s.reg.clientByNick(params[1])
	if !ok || !ch.has(target) {
		s.numeric(c, ERR_USERNOTINCHANNEL, params[1], "They aren't on that channel")
		return
	}

	reason := c.nick
	if len(params) > 2 {
		reason = params[2]
	}

	kick := message.Message{Prefix: c.hostmask(), Command: "KICK", Params: []string{ch.name, target.nick, reason}}
	s.broadcastChannel(ch, nil, kick)

	ch.remove(target)
	delete(target.channels, canonicalizeChannel(ch.name))
	s.reg.dropChannelIfEmpty(ch)
}

func cmdInvite(s *Server, c *Client, params []string) {
	if len(params) < 2 {
		s.numeric(c, ERR_NEEDMOREPARAMS, "INVITE", "Not enough parameters")
		return
	}

	target, ok := s.reg.clientByNick(params[0])
	if !ok {
		s.numeric(c, ERR_NOSUCHNICK, params[0], "No such nick")
		return
	}

	ch, ok := s.reg.channel(params[1])
	if !ok {
		s.numeric(c, ERR_NOSUCHCHANNEL, params[1], "No such channel")
		return
	}
	if !ch.has(c) {
		s.numeric(c, ERR_NOTONCHANNEL, ch.name, "You're not on that channel")
		return
	}
	if ch.inviteOnly && !ch.isOperator(c) {
		s.numeric(c, ERR_CHANOPRIVSNEEDED, ch.name, "You're not channel operator")
		return
	}
	if ch.has(target) {
		s.numeric(c, ERR_USERONCHANNEL, target.nick, "is already on channel")
		return
	}

	ch.invite(canonicalizeNick(target.nick))
	target.invitedTo[canonicalizeChannel(ch.name)] = struct{}{}
	s.numeric(c, RPL_INVITING, target.nick, ch.name)
	s.tellFrom(target, c, "INVITE", target.nick, ch.name)
}

func cmdMode(s *Server, c *Client, params []string) {
	if len(params) < 1 {
		s.numeric(c, ERR_NEEDMOREPARAMS, "MODE", "Not enough parameters")
		return
	}

	ch, ok := s.reg.channel(params[0])
	if !ok {
		s.numeric(c, ERR_NOSUCHCHANNEL, params[0], "No such channel")
		return
	}

	if len(params) < 2 {
		modes, args := ch.modeString()
		s.numeric(c, RPL_CHANNELMODEIS, append([]string{ch.name, modes}, args...)...)
		return
	}

	if !ch.isOperator(c) {
		s.numeric(c, ERR_CHANOPRIVSNEEDED, ch.name, "You're not channel operator")
		return
	}

	applied, appliedArgs := applyChannelModes(s, c, ch, params[1], params[2:])
	if applied == "" {
		return
	}

	mode := message.Message{Prefix: c.hostmask(), Command: "MODE", Params: append([]string{ch.name, applied}, appliedArgs...)}
	s.broadcastChannel(ch, nil, mode)
}

// applyChannelModes parses a "+itk"-style mode string left to right,
// consuming args only for flags that take one in the direction applied
// (spec §4.4). It returns the mode string actually applied (may differ
// from the input if some flags were rejected with 472), plus the args
// consumed by those applied flags, for the MODE broadcast.
func applyChannelModes(s *Server, c *Client, ch *Channel, modes string, args []string) (string, []string) {
	var applied strings.Builder
	var appliedArgs []string
	adding := true
	argIdx := 0

	nextArg := func() (string, bool) {
		if argIdx >= len(args) {
			return "", false
		}
		v := args[argIdx]
		argIdx++
		return v, true
	}

	for _, r := range modes {
		switch r {
		case '+':
			adding = true
			continue
		case '-':
			adding = false
			continue
		case 'i':
			ch.inviteOnly = adding
		case 't':
			ch.topicLocked = adding
		case 'k':
			if adding {
				key, ok := nextArg()
				if !ok {
					continue
				}
				ch.key = key
				appliedArgs = append(appliedArgs, key)
			} else {
				ch.key = ""
			}
		case 'l':
			if adding {
				v, ok := nextArg()
				if !ok {
					continue
				}
				n := atoiOrZero(v)
				ch.hasLimit = true
				ch.userLimit = n
				appliedArgs = append(appliedArgs, v)
			} else {
				ch.hasLimit = false
				ch.userLimit = 0
			}
		case 'o':
			nick, ok := nextArg()
			if !ok {
				continue
			}
			target, ok := s.reg.clientByNick(nick)
			if !ok || !ch.has(target) {
				continue
			}
			ch.members[target].isOperator = adding
			appliedArgs = append(appliedArgs, target.nick)
		default:
			s.numeric(c, ERR_UNKNOWNMODE, string(r), "is unknown mode char to me")
			continue
		}

		if adding {
			applied.WriteByte('+')
		} else {
			applied.WriteByte('-')
		}
		applied.WriteRune(r)
	}

	return applied.String(), appliedArgs
}

func atoiOrZero(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return 0
		}
		n = n*10 + int(s[i]-'0')
	}
	return n
}
