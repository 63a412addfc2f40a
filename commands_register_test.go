package main

import (
	"testing"
	"time"
)

func TestRegistrationHappyPath(t *testing.T) {
	s := newTestServer()
	s.cfg.password = "serverpassword"
	now := time.Now()
	c := newTestClient(s, now)

	s.dispatch(c, "PASS serverpassword")
	s.dispatch(c, "NICK alice")
	s.dispatch(c, "USER alice 0 * :Alice")

	if c.state != stateRegistered {
		t.Fatalf("expected client to be registered, state=%v", c.state)
	}

	lines := drainOutbuf(c)
	if len(lines) < 4 {
		t.Fatalf("expected at least 4 welcome lines, got %d: %v", len(lines), lines)
	}
	first := mustParse(lines[0])
	if first.Command != RPL_WELCOME {
		t.Fatalf("expected first reply to be %s, got %s", RPL_WELCOME, first.Command)
	}
	if len(first.Params) < 2 || first.Params[1] == "" {
		t.Fatalf("expected 001 to mention the registered identity, got %#v", first.Params)
	}
}

func TestWrongPasswordClosesAfterFlush(t *testing.T) {
	s := newTestServer()
	s.cfg.password = "serverpassword"
	c := newTestClient(s, time.Now())

	s.dispatch(c, "PASS wrong")

	if !c.markedForRemove {
		t.Fatalf("expected client to be marked for removal after bad password")
	}
	if !c.closeAfterFlush {
		t.Fatalf("expected closeAfterFlush to be set so the 464 reply drains first")
	}

	lines := drainOutbuf(c)
	if len(lines) != 1 {
		t.Fatalf("expected exactly one reply, got %v", lines)
	}
	reply := mustParse(lines[0])
	if reply.Command != ERR_PASSWDMISMATCH {
		t.Fatalf("expected %s, got %s", ERR_PASSWDMISMATCH, reply.Command)
	}

	// Further lines must have no effect once marked for removal.
	s.dispatch(c, "NICK alice")
	if c.nick != "" {
		t.Fatalf("expected NICK after a fatal PASS failure to be ignored")
	}
}

func TestNickCollisionLeavesSecondClientUnchanged(t *testing.T) {
	s := newTestServer()
	now := time.Now()

	alice := newTestClient(s, now)
	registerClient(s, alice, "alice", "alice")
	drainOutbuf(alice)

	bob := newTestClient(s, now)
	registerClient(s, bob, "bob", "bob")
	drainOutbuf(bob)

	s.dispatch(bob, "NICK alice")

	lines := drainOutbuf(bob)
	if len(lines) != 1 {
		t.Fatalf("expected exactly one reply, got %v", lines)
	}
	reply := mustParse(lines[0])
	if reply.Command != ERR_NICKNAMEINUSE {
		t.Fatalf("expected %s, got %s", ERR_NICKNAMEINUSE, reply.Command)
	}
	if bob.nick != "bob" {
		t.Fatalf("expected bob's nick to remain unchanged, got %q", bob.nick)
	}
}

func TestCapLSDefersWelcomeUntilEnd(t *testing.T) {
	s := newTestServer()
	now := time.Now()
	c := newTestClient(s, now)

	s.dispatch(c, "CAP LS")
	s.dispatch(c, "NICK alice")
	s.dispatch(c, "USER alice 0 * :Alice")

	if c.state == stateRegistered {
		t.Fatalf("expected registration to be deferred while CAP negotiation is open")
	}

	s.dispatch(c, "CAP END")
	if c.state != stateRegistered {
		t.Fatalf("expected CAP END to complete registration, state=%v", c.state)
	}
}
