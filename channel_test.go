package main

import "testing"

func TestChannelFirstMemberIsOperator(t *testing.T) {
	ch := newChannel("#test")
	alice := &Client{nick: "alice"}
	ch.add(alice)

	if !ch.isOperator(alice) {
		t.Fatalf("expected first joiner to be operator")
	}
}

func TestChannelOperatorHandoffOnPart(t *testing.T) {
	ch := newChannel("#test")
	alice := &Client{nick: "alice"}
	bob := &Client{nick: "bob"}
	ch.add(alice)
	ch.add(bob)

	if ch.isOperator(bob) {
		t.Fatalf("second joiner should not start as operator")
	}

	ch.remove(alice)

	if !ch.isOperator(bob) {
		t.Fatalf("remaining member should inherit operator status once the only operator leaves")
	}
}

func TestChannelMembershipSizeNeverExceedsOne(t *testing.T) {
	ch := newChannel("#test")
	alice := &Client{nick: "alice"}

	ch.add(alice)
	ch.add(alice) // duplicate JOIN must not create duplicate membership
	if len(ch.members) != 1 {
		t.Fatalf("expected membership size 1, got %d", len(ch.members))
	}

	ch.remove(alice)
	ch.remove(alice) // duplicate PART must be a no-op
	if len(ch.members) != 0 {
		t.Fatalf("expected membership size 0, got %d", len(ch.members))
	}
}

func TestChannelEmptyAfterLastPart(t *testing.T) {
	ch := newChannel("#test")
	alice := &Client{nick: "alice"}
	ch.add(alice)
	ch.remove(alice)

	if !ch.isEmpty() {
		t.Fatalf("expected channel to be empty once last member parts")
	}
}

func TestChannelModeString(t *testing.T) {
	ch := newChannel("#test")
	modes, args := ch.modeString()
	if modes != "+" || len(args) != 0 {
		t.Fatalf("expected no modes set, got %q %v", modes, args)
	}

	ch.inviteOnly = true
	ch.hasLimit = true
	ch.userLimit = 5

	modes, args = ch.modeString()
	if modes != "+il" {
		t.Fatalf("expected +il, got %q", modes)
	}
	if len(args) != 1 || args[0] != "5" {
		t.Fatalf("expected limit arg [5], got %v", args)
	}
}

func TestChannelInvite(t *testing.T) {
	ch := newChannel("#test")
	if ch.isInvited("bob") {
		t.Fatalf("bob should not be invited yet")
	}
	ch.invite("bob")
	if !ch.isInvited("bob") {
		t.Fatalf("expected bob to be invited")
	}
	ch.clearInvite("bob")
	if ch.isInvited("bob") {
		t.Fatalf("expected invite to be cleared")
	}
}
