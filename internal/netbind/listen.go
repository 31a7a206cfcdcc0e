// Package netbind resolves the gateway's bind address, expressed either
// as a host:port pair or a raw multiaddr string, into a net.Listener.
package netbind

import (
	"fmt"
	"net"

	"github.com/multiformats/go-multiaddr"
	manet "github.com/multiformats/go-multiaddr/net"
)

// Listen resolves maddrString (e.g. "/ip4/0.0.0.0/tcp/8080") into a
// net.Listener.
func Listen(maddrString string) (net.Listener, error) {
	maddr, err := multiaddr.NewMultiaddr(maddrString)
	if err != nil {
		return nil, fmt.Errorf("invalid multiaddr %q: %w", maddrString, err)
	}

	listener, err := manet.Listen(maddr)
	if err != nil {
		return nil, err
	}
	return manet.NetListener(listener), nil
}

// FromHostPort builds the equivalent TCP/IPv4 multiaddr string for a
// bind address and port, for callers using the simpler --bind/--port
// flag pair instead of a raw --multiaddr.
func FromHostPort(bind string, port uint16) string {
	return fmt.Sprintf("/ip4/%s/tcp/%d", bind, port)
}
