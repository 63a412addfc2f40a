package main

import "github.com/shovelware/ircd/internal/message"

// commandHandler implements one IRC command. Params are exactly the
// parsed message's parameter list; the command token itself has already
// been consumed by dispatch.
type commandHandler func(s *Server, c *Client, params []string)

// preRegAllowed lists the commands usable before registration completes
// (spec §4.4).
var preRegAllowed = map[string]bool{
	"PASS": true,
	"NICK": true,
	"USER": true,
	"CAP":  true,
	"QUIT": true,
	"PING": true,
	"PONG": true,
}

func buildCommandTable() map[string]commandHandler {
	return map[string]commandHandler{
		"PASS": cmdPass,
		"NICK": cmdNick,
		"USER": cmdUser,
		"CAP":  cmdCap,
		"OPER": cmdOper,
		"QUIT": cmdQuit,
		"PING": cmdPing,
		"PONG": cmdPong,

		"JOIN":   cmdJoin,
		"PART":   cmdPart,
		"TOPIC":  cmdTopic,
		"MODE":   cmdMode,
		"KICK":   cmdKick,
		"INVITE": cmdInvite,

		"PRIVMSG": cmdPrivmsg,
		"NOTICE":  cmdNotice,

		"MOTD":    cmdMotd,
		"LUSERS":  cmdLusers,
		"WHO":     cmdWho,
		"WHOIS":   cmdWhois,
		"WALLOPS": cmdWallops,
	}
}

// dispatch parses one framed line and runs it through registration gating
// and the command table. Parse failures and unknown commands both reply
// ERR_UNKNOWNCOMMAND rather than silently dropping the line, so a client
// always sees why nothing happened. Lines from a client already marked for
// removal are ignored.
func (s *Server) dispatch(c *Client, line string) {
	if c.markedForRemove {
		return
	}

	msg, err := message.ParseLine(line)
	if err != nil {
		s.numeric(c, ERR_UNKNOWNCOMMAND, "*", "Unknown command")
		return
	}

	if c.state != stateRegistered && !preRegAllowed[msg.Command] {
		s.numeric(c, ERR_NOTREGISTERED, "You have not registered")
		return
	}

	handler, ok := s.handlers[msg.Command]
	if !ok {
		s.numeric(c, ERR_UNKNOWNCOMMAND, msg.Command, "Unknown command")
		return
	}

	handler(s, c, msg.Params)
}
