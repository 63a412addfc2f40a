// Package message encodes and decodes IRC protocol lines (RFC 1459/2812
// section 2.3.1). It knows nothing about sockets or buffering; callers hand
// it a single line with its terminator already stripped.
package message

import (
	"fmt"
	"strings"
)

// MaxLineLength is the maximum protocol message length including CRLF.
const MaxLineLength = 512

// MaxParams is the maximum number of parameters a message may carry.
const MaxParams = 15

// Message holds a parsed protocol line.
type Message struct {
	// Prefix is the optional leading ":name" token, without the colon. Blank
	// if the line had none.
	Prefix string

	// Command is folded to upper case. It is either all letters or exactly
	// three digits.
	Command string

	// Params holds up to MaxParams parameters. The last one may be a
	// "trailing" parameter that was introduced with ':' and can contain
	// spaces; it is stored without the leading colon.
	Params []string
}

func (m Message) String() string {
	return fmt.Sprintf("prefix=%q command=%q params=%q", m.Prefix, m.Command, m.Params)
}

// Encode renders the message as a line with a trailing CRLF. It does not
// enforce command-specific semantics, only the generic grammar: a
// parameter is sent as a trailing parameter (prefixed with ':') if it is
// empty, begins with ':', or contains a space, and such a parameter must
// be last.
func (m Message) Encode() (string, error) {
	var b strings.Builder

	if len(m.Prefix) > 0 {
		b.WriteByte(':')
		b.WriteString(m.Prefix)
		b.WriteByte(' ')
	}

	b.WriteString(m.Command)

	if len(m.Params) > MaxParams {
		return "", fmt.Errorf("message: too many parameters (%d)", len(m.Params))
	}

	for i, param := range m.Params {
		needsTrailing := param == "" || param[0] == ':' || strings.ContainsRune(param, ' ')
		if needsTrailing && i+1 != len(m.Params) {
			return "", fmt.Errorf("message: parameter %d needs ':' or contains a space but is not last", i)
		}

		b.WriteByte(' ')
		if needsTrailing {
			b.WriteByte(':')
		}
		b.WriteString(param)
	}

	b.WriteString("\r\n")

	s := b.String()
	if len(s) > MaxLineLength {
		// Truncate but keep the line well formed; drop whole trailing bytes
		// from the last parameter rather than splitting the CRLF off.
		s = s[:MaxLineLength-2] + "\r\n"
	}

	return s, nil
}

// SourceNick extracts the nick portion of a "nick!user@host" prefix. It
// returns the whole prefix if there is no '!'.
func SourceNick(prefix string) string {
	if idx := strings.IndexByte(prefix, '!'); idx != -1 {
		return prefix[:idx]
	}
	return prefix
}
