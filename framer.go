package main

// maxLineBytes is the per-line limit from spec §4.2, terminator included.
// A line that grows past this without (or with) a terminator is discarded
// rather than handed to the parser.
const maxLineBytes = 512

// extractLines pulls complete, terminator-stripped lines out of c.inbuf,
// mutating it in place. It tolerates "\r\n", a bare "\n", and a stray "\r"
// immediately before the "\n" (spec §4.2's terminator leniency).
//
// overflowed reports that at least one line was discarded for exceeding
// maxLineBytes (caller should send ERR_INPUTTOOLONG once per call).
// hardOverflow reports that inbuf grew past inbufHardCap while no
// terminator could be found at all; the caller must disconnect the client.
func (c *Client) extractLines() (lines []string, overflowed bool, hardOverflow bool) {
	for {
		idx := indexNewline(c.inbuf)

		if idx == -1 {
			// The hard cap is a backstop independent of the discard state:
			// even a client already being discarded must eventually be
			// disconnected if no terminator ever arrives.
			if len(c.inbuf) > inbufHardCap {
				return lines, overflowed, true
			}
			if !c.discardingLine && len(c.inbuf) > maxLineBytes {
				c.discardingLine = true
				c.inbuf = c.inbuf[:0]
				overflowed = true
			}
			return lines, overflowed, false
		}

		full := c.inbuf[:idx+1] // up to and including '\n'
		rest := c.inbuf[idx+1:]

		if c.discardingLine {
			c.discardingLine = false
			c.inbuf = rest
			continue
		}

		if len(full) > maxLineBytes {
			overflowed = true
			c.inbuf = rest
			continue
		}

		content := full[:len(full)-1] // drop '\n'
		if n := len(content); n > 0 && content[n-1] == '\r' {
			content = content[:n-1]
		}

		c.inbuf = rest
		if len(content) == 0 {
			continue
		}
		lines = append(lines, string(content))
	}
}

func indexNewline(buf []byte) int {
	for i, b := range buf {
		if b == '\n' {
			return i
		}
	}
	return -1
}
