package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLineBasic(t *testing.T) {
	m, err := ParseLine("PRIVMSG #test :hello there")
	require.NoError(t, err)
	assert.Equal(t, "PRIVMSG", m.Command)
	assert.Equal(t, []string{"#test", "hello there"}, m.Params)
	assert.Empty(t, m.Prefix)
}

func TestParseLinePrefix(t *testing.T) {
	m, err := ParseLine(":alice!~alice@host NICK bob")
	require.NoError(t, err)
	assert.Equal(t, "alice!~alice@host", m.Prefix)
	assert.Equal(t, "NICK", m.Command)
	assert.Equal(t, []string{"bob"}, m.Params)
}

func TestParseLineCommandFoldedUpper(t *testing.T) {
	m, err := ParseLine("nick alice")
	require.NoError(t, err)
	assert.Equal(t, "NICK", m.Command)
}

func TestParseLineNumericCommand(t *testing.T) {
	m, err := ParseLine("001 alice :hi")
	require.NoError(t, err)
	assert.Equal(t, "001", m.Command)
}

func TestParseLineRejectsUnknownCommandShape(t *testing.T) {
	_, err := ParseLine("1A2 alice")
	assert.Error(t, err)
}

func TestParseLineCollapsesRunsOfSpaces(t *testing.T) {
	m, err := ParseLine("JOIN    #a   #b")
	require.NoError(t, err)
	assert.Equal(t, []string{"#a", "#b"}, m.Params)
}

func TestParseLineTrailingMustBeLast(t *testing.T) {
	m, err := ParseLine("PRIVMSG #test ::colon-leading middle param")
	require.NoError(t, err)
	assert.Equal(t, []string{":colon-leading middle param"}, m.Params)
}

func TestParseLineTooManyParams(t *testing.T) {
	line := "CMD a b c d e f g h i j k l m n o p"
	_, err := ParseLine(line)
	assert.Error(t, err)
}

func TestParseLineEmptyTrailing(t *testing.T) {
	m, err := ParseLine("TOPIC #a :")
	require.NoError(t, err)
	assert.Equal(t, []string{"#a", ""}, m.Params)
}

func TestEncodeRoundTrip(t *testing.T) {
	m := Message{Prefix: "irc.example.org", Command: "001", Params: []string{"alice", "Welcome"}}
	line, err := m.Encode()
	require.NoError(t, err)
	assert.Equal(t, ":irc.example.org 001 alice Welcome\r\n", line)

	parsed, err := ParseLine(line[:len(line)-2])
	require.NoError(t, err)
	assert.Equal(t, m.Prefix, parsed.Prefix)
	assert.Equal(t, m.Command, parsed.Command)
	assert.Equal(t, m.Params, parsed.Params)
}

func TestEncodeEmptyLastParamGetsColon(t *testing.T) {
	m := Message{Command: "TOPIC", Params: []string{"#a", ""}}
	line, err := m.Encode()
	require.NoError(t, err)
	assert.Equal(t, "TOPIC #a :\r\n", line)
}

func TestEncodeRejectsMisplacedTrailing(t *testing.T) {
	m := Message{Command: "CMD", Params: []string{"has space", "ok"}}
	_, err := m.Encode()
	assert.Error(t, err)
}

func TestSourceNick(t *testing.T) {
	assert.Equal(t, "alice", SourceNick("alice!~alice@host"))
	assert.Equal(t, "irc.example.org", SourceNick("irc.example.org"))
}
