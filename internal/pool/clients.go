// Package pool builds the HTTP clients shared by the probe workers and
// spreads clients and URLs over workers round-robin.
package pool

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"

	errs "httplatencies/internal/errors"
)

const (
	TCPDialTimeout       = 5 * time.Second
	TCPKeepAliveInterval = 30 * time.Second
	TLSHandshakeTimeout  = 10 * time.Second
	IdleConnTimeout      = 90 * time.Second
	MaxIdleConns         = 2000
)

// Size returns the number of clients to build: the explicit override when
// positive, otherwise one per local address, and never less than one.
func Size(override int, localAddrs int) int {
	n := localAddrs
	if override > 0 {
		n = override
	}

	return max(1, n)
}

// NewClients builds Size(count, len(localAddrs)) clients. With local
// addresses, client i is bound to localAddrs[i mod len(localAddrs)].
func NewClients(count int, localAddrs []string, timeout time.Duration) ([]*http.Client, error) {
	ips := make([]net.IP, 0, len(localAddrs))

	for _, addr := range localAddrs {
		ip, err := checkLocalAddr(addr)
		if err != nil {
			return nil, err
		}

		ips = append(ips, ip)
	}

	clients := make([]*http.Client, Size(count, len(ips)))
	for i := range clients {
		var ip net.IP
		if len(ips) > 0 {
			ip = Pick(ips, i)
		}

		clients[i] = newClient(ip, timeout)
	}

	return clients, nil
}

// checkLocalAddr parses addr and makes sure it can be bound on this host.
func checkLocalAddr(addr string) (net.IP, error) {
	ip := net.ParseIP(addr)
	if ip == nil {
		return nil, &errs.ClientConstructionError{Addr: addr, Err: fmt.Errorf("not an IP address")}
	}

	ln, err := net.Listen("tcp", net.JoinHostPort(ip.String(), "0"))
	if err != nil {
		return nil, &errs.ClientConstructionError{Addr: addr, Err: err}
	}

	_ = ln.Close()

	return ip, nil
}

func newClient(localIP net.IP, timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout:   TCPDialTimeout,
		KeepAlive: TCPKeepAliveInterval,
	}
	if localIP != nil {
		dialer.LocalAddr = &net.TCPAddr{IP: localIP}
	}

	t := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
		MaxIdleConns:        MaxIdleConns,
		MaxIdleConnsPerHost: MaxIdleConns,
		IdleConnTimeout:     IdleConnTimeout,
		TLSHandshakeTimeout: TLSHandshakeTimeout,
		ForceAttemptHTTP2:   true,
		TLSClientConfig:     &tls.Config{InsecureSkipVerify: true},
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: t,
	}
}

// Pick returns items[i mod len(items)]. items must not be empty.
func Pick[T any](items []T, i int) T {
	return items[i%len(items)]
}
