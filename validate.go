package main

import "strings"

// maxNickLength is RFC 1459's traditional nick length limit. catbox enforces
// the same cap (its util.go maxNickLength), though catbox's own value is
// configurable; the spec fixes it at 9.
const maxNickLength = 9

// maxChannelLength comes straight from RFC 1459 (catbox's util.go uses the
// same constant and the same comment).
const maxChannelLength = 50

// nickSpecialChars covers spec §4.4's nick grammar: the first character is
// a letter or one of "`[]\{}^_|"; remaining characters may additionally be
// digits or a hyphen.
const nickSpecialChars = "`[]\\{}^_|"
const nickTailExtraChars = "-"

func isValidNick(n string) bool {
	if len(n) == 0 || len(n) > maxNickLength {
		return false
	}

	for i := 0; i < len(n); i++ {
		c := n[i]
		if isLetter(c) || strings.IndexByte(nickSpecialChars, c) != -1 {
			continue
		}
		if i > 0 && (isDigit(c) || strings.IndexByte(nickTailExtraChars, c) != -1) {
			continue
		}
		return false
	}

	return true
}

// isValidUser checks a USER command's <user> token. RFC 1459 is lenient
// here; we follow catbox's own isValidUser in spirit (bounded length, no
// NUL, CR, LF, space or '@') rather than its overly strict a-z0-9-only
// version, since real clients commonly send usernames with punctuation.
func isValidUser(u string) bool {
	if len(u) == 0 || len(u) > 64 {
		return false
	}
	for i := 0; i < len(u); i++ {
		c := u[i]
		if c == 0 || c == ' ' || c == '\r' || c == '\n' || c == '@' {
			return false
		}
	}
	return true
}

func isValidRealName(r string) bool {
	if len(r) > 256 {
		return false
	}
	for i := 0; i < len(r); i++ {
		if r[i] == 0 || r[i] == '\r' || r[i] == '\n' {
			return false
		}
	}
	return true
}

// isValidChannel checks a channel name for validity per spec §3: begins
// with '#' or '&'; 1-50 characters excluding space, comma, control bytes
// and ':'.
func isValidChannel(c string) bool {
	if len(c) < 2 || len(c) > maxChannelLength {
		return false
	}
	if c[0] != '#' && c[0] != '&' {
		return false
	}
	for i := 1; i < len(c); i++ {
		b := c[i]
		if b < 0x20 || b == 0x7f || b == ' ' || b == ',' || b == ':' {
			return false
		}
	}
	return true
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// canonicalizeChannel folds a channel name for case-insensitive lookup.
// Only ASCII letters are folded: isValidChannel accepts "{}|^" in channel
// names, and they are kept as they are rather than folded to "[]\~".
func canonicalizeChannel(c string) string {
	return strings.ToLower(c)
}

// canonicalizeNick folds a nick for case-insensitive lookup using the
// RFC 1459 "Scandinavian" rule: letters fold to lower case, and
// "{}|^" fold to "[]\~" respectively. catbox's own canonicalizeNick is a
// plain strings.ToLower, which under-normalizes nicks that differ only by
// these four characters; spec §4.4 calls for the full rule, so we extend
// catbox's helper rather than copy it verbatim.
func canonicalizeNick(n string) string {
	b := []byte(n)
	for i, c := range b {
		switch c {
		case '{':
			b[i] = '['
		case '}':
			b[i] = ']'
		case '|':
			b[i] = '\\'
		case '^':
			b[i] = '~'
		default:
			if c >= 'A' && c <= 'Z' {
				b[i] = c + ('a' - 'A')
			}
		}
	}
	return string(b)
}
