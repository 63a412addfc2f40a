package main

import "testing"

func TestIsValidNick(t *testing.T) {
	valid := []string{"alice", "bob-2", "a", "[bracket]", "^tilde", "nine9"}
	for _, n := range valid {
		if !isValidNick(n) {
			t.Errorf("expected %q to be a valid nick", n)
		}
	}

	invalid := []string{"", "9startswithdigit", "has space", "toolongnickname1", "semi;colon"}
	for _, n := range invalid {
		if isValidNick(n) {
			t.Errorf("expected %q to be an invalid nick", n)
		}
	}
}

func TestCanonicalizeNickScandinavianFold(t *testing.T) {
	cases := map[string]string{
		"Alice":    "alice",
		"a{b}c":    "a[b]c",
		"pipe|bar": "pipe\\bar",
		"Hat^":     "hat~",
	}
	for in, want := range cases {
		if got := canonicalizeNick(in); got != want {
			t.Errorf("canonicalizeNick(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCanonicalizeNickCollision(t *testing.T) {
	if canonicalizeNick("Alice{") != canonicalizeNick("alice[") {
		t.Errorf("Alice{ and alice[ should fold to the same key")
	}
}

func TestIsValidChannel(t *testing.T) {
	valid := []string{"#general", "&local"}
	for _, c := range valid {
		if !isValidChannel(c) {
			t.Errorf("expected %q to be a valid channel", c)
		}
	}

	invalid := []string{"", "general", "#has space", "#has,comma", "#"}
	for _, c := range invalid {
		if isValidChannel(c) {
			t.Errorf("expected %q to be an invalid channel", c)
		}
	}
}

func TestIsValidUser(t *testing.T) {
	if !isValidUser("alice") {
		t.Errorf("expected simple username to be valid")
	}
	if isValidUser("has space") {
		t.Errorf("expected username with a space to be invalid")
	}
	if isValidUser("") {
		t.Errorf("expected empty username to be invalid")
	}
}
