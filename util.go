package main

import "github.com/shovelware/ircd/internal/message"

func upperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}

// capMessage builds a "CAP <nick> <sub> :<data>" reply.
func capMessage(c *Client, sub, data string) message.Message {
	return message.Message{
		Command: "CAP",
		Params:  []string{c.displayNickOrStar(), sub, data},
	}
}

func pongMessage(s *Server, token string) message.Message {
	return message.Message{
		Prefix:  s.name,
		Command: "PONG",
		Params:  []string{s.name, token},
	}
}
