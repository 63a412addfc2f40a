package main

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// defaultPort and defaultPassword match spec §6's CLI defaults: "server
// [<port> [<password>]]", defaulting to 6667/"42" when nothing is given,
// and requiring no password when only a port is given.
const (
	defaultPort     = 6667
	defaultPassword = "42"
)

// config is the resolved, validated startup configuration. catbox reads
// this kind of thing from a key=value file via horgh/config; the spec's
// CLI is positional-only, so config is built directly from os.Args here
// (see DESIGN.md for why horgh/config was dropped).
type config struct {
	host       string
	port       int
	password   string
	serverName string

	// operName/operPassword gate OPER (spec §9's supplemented operations).
	// The CLI has no way to set these; they default to a disabled state
	// (empty name never matches) until wired to a future config surface.
	operName     string
	operPassword string
}

// parseArgs implements "server [<port> [<password>]]". It returns a
// wrapped error (via pkg/errors, matching catbox's error-wrapping idiom)
// on any malformed argument; main() turns that into exit code 1.
func parseArgs(args []string) (config, error) {
	cfg := config{
		port:       defaultPort,
		password:   defaultPassword,
		serverName: "ircserver",
	}

	switch len(args) {
	case 0:
		// Defaults only: port 6667, password "42".
	case 1:
		port, err := strconv.Atoi(args[0])
		if err != nil {
			return config{}, errors.Wrapf(err, "invalid port %q", args[0])
		}
		cfg.port = port
		cfg.password = "" // only a port given: no password required
	case 2:
		port, err := strconv.Atoi(args[0])
		if err != nil {
			return config{}, errors.Wrapf(err, "invalid port %q", args[0])
		}
		cfg.port = port
		cfg.password = args[1]
	default:
		return config{}, errors.New("usage: ircd [<port> [<password>]]")
	}

	if cfg.port <= 0 || cfg.port > 65535 {
		return config{}, fmt.Errorf("port %d out of range", cfg.port)
	}

	return cfg, nil
}
