package main

import (
	"strconv"
	"time"
)

// member is a Client's state within one Channel: operator status plus
// whatever else becomes per-membership rather than per-client.
type member struct {
	isOperator bool
}

// Channel is the expanded channel model from SPEC_FULL.md's DOMAIN STACK:
// catbox's own Channel stops at a bare member set ("// TODO: Modes"); this
// one carries the operator/mode/invite/topic surface spec §3 and §9's
// supplemented operations call for.
type Channel struct {
	name string

	topic      string
	topicSetBy string
	topicSetAt time.Time

	members map[*Client]*member

	inviteOnly  bool
	topicLocked bool // MODE +t: only operators may set the topic
	key         string
	hasLimit    bool
	userLimit   int

	invited map[string]struct{} // canonicalized nicks with a standing invite
}

func newChannel(name string) *Channel {
	return &Channel{
		name:    name,
		members: make(map[*Client]*member),
		invited: make(map[string]struct{}),
	}
}

func (ch *Channel) isEmpty() bool { return len(ch.members) == 0 }

func (ch *Channel) has(c *Client) bool {
	_, ok := ch.members[c]
	return ok
}

func (ch *Channel) isOperator(c *Client) bool {
	m, ok := ch.members[c]
	return ok && m.isOperator
}

// add inserts c as a member. The first member to join an empty channel is
// granted operator status, matching the usual IRC channel-creation rule
// (spec §3, invariant: "a channel always has at least one operator while
// non-empty" relies on this).
func (ch *Channel) add(c *Client) {
	ch.members[c] = &member{isOperator: len(ch.members) == 0}
}

// remove drops c from the channel. If c was the last operator and other
// members remain, operator status is handed to an arbitrary remaining
// member to preserve the "always an operator" invariant.
func (ch *Channel) remove(c *Client) {
	wasOp := ch.isOperator(c)
	delete(ch.members, c)

	if !wasOp || len(ch.members) == 0 {
		return
	}

	for _, m := range ch.members {
		if m.isOperator {
			return
		}
	}

	for _, m := range ch.members {
		m.isOperator = true
		break
	}
}

func (ch *Channel) isInvited(canonNick string) bool {
	_, ok := ch.invited[canonNick]
	return ok
}

func (ch *Channel) invite(canonNick string) {
	ch.invited[canonNick] = struct{}{}
}

func (ch *Channel) clearInvite(canonNick string) {
	delete(ch.invited, canonNick)
}

// modeString renders the channel's boolean/value modes for RPL_CHANNELMODEIS
// and MODE broadcasts, e.g. "+itk" or "+l".
func (ch *Channel) modeString() (modes string, args []string) {
	flags := "+"
	if ch.inviteOnly {
		flags += "i"
	}
	if ch.topicLocked {
		flags += "t"
	}
	if ch.key != "" {
		flags += "k"
		args = append(args, ch.key)
	}
	if ch.hasLimit {
		flags += "l"
		args = append(args, strconv.Itoa(ch.userLimit))
	}
	if flags == "+" {
		return "+", nil
	}
	return flags, args
}
