//go:build linux

package main

import (
	"fmt"
	"net"
	"strconv"

	"golang.org/x/sys/unix"
)

// listenStream creates a non-blocking listening TCP stream socket bound to
// host:port. host may be blank to bind all interfaces.
func listenStream(host string, port int) (int, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return -1, fmt.Errorf("socket: %w", err)
	}

	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		_ = unix.Close(fd)
		return -1, fmt.Errorf("setsockopt SO_REUSEADDR: %w", err)
	}

	addr, err := resolveIPv4(host)
	if err != nil {
		_ = unix.Close(fd)
		return -1, err
	}

	sa := &unix.SockaddrInet4{Port: port, Addr: addr}
	if err := unix.Bind(fd, sa); err != nil {
		_ = unix.Close(fd)
		return -1, fmt.Errorf("bind %s:%d: %w", host, port, err)
	}

	if err := unix.Listen(fd, 128); err != nil {
		_ = unix.Close(fd)
		return -1, fmt.Errorf("listen: %w", err)
	}

	return fd, nil
}

func resolveIPv4(host string) ([4]byte, error) {
	var out [4]byte
	if host == "" {
		return out, nil
	}

	ip := net.ParseIP(host)
	if ip == nil {
		ips, err := net.LookupIP(host)
		if err != nil || len(ips) == 0 {
			return out, fmt.Errorf("resolve host %q: %w", host, err)
		}
		ip = ips[0]
	}

	v4 := ip.To4()
	if v4 == nil {
		return out, fmt.Errorf("host %q is not an IPv4 address", host)
	}
	copy(out[:], v4)
	return out, nil
}

// acceptOne accepts a single pending connection from the listening fd. It
// returns unix.EAGAIN when there is nothing left to accept, which
// the event loop uses to know when to stop draining the accept backlog.
func acceptOne(listenFD int) (fd int, remoteAddr string, err error) {
	nfd, sa, err := unix.Accept4(listenFD, unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC)
	if err != nil {
		return -1, "", err
	}

	remoteAddr = sockaddrString(sa)
	return nfd, remoteAddr, nil
}

func sockaddrString(sa unix.Sockaddr) string {
	if in4, ok := sa.(*unix.SockaddrInet4); ok {
		ip := net.IP(in4.Addr[:])
		return net.JoinHostPort(ip.String(), strconv.Itoa(in4.Port))
	}
	return "unknown"
}

// readFD performs a single non-blocking read. The io-done/EAGAIN
// distinction is left to the caller: a read of 0 bytes with no error means
// the peer closed the connection (EOF).
func readFD(fd int, buf []byte) (int, error) {
	return unix.Read(fd, buf)
}

// writeFD performs a single non-blocking write, which may be partial.
func writeFD(fd int, buf []byte) (int, error) {
	return unix.Write(fd, buf)
}

func closeFD(fd int) error {
	return unix.Close(fd)
}

func isEAGAIN(err error) bool {
	return err == unix.EAGAIN || err == unix.EWOULDBLOCK
}
