package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"

	"github.com/shovelware/ircd/internal/netpoll"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "ircd:", err)
		return 1
	}

	listenFD, err := listenStream(cfg.host, cfg.port)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ircd:", errors.Wrap(err, "listen"))
		return 2
	}

	poller, err := netpoll.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, "ircd:", errors.Wrap(err, "netpoll"))
		return 2
	}
	defer poller.Close()

	if err := poller.Add(listenFD, false); err != nil {
		fmt.Fprintln(os.Stderr, "ircd:", errors.Wrap(err, "register listening socket"))
		return 2
	}

	s := newServer(cfg, poller, listenFD)
	log.Printf("ircd: listening on port %d", cfg.port)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Printf("ircd: shutting down")
		os.Exit(0)
	}()

	if err := s.run(); err != nil {
		fmt.Fprintln(os.Stderr, "ircd:", errors.Wrap(err, "event loop"))
		return 2
	}

	return 0
}
