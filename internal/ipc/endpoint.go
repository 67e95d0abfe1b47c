package ipc

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
)

// Endpoint describes where the control socket lives.
type Endpoint struct {
	Network string
	Address string
}

// ResolveEndpoint returns the control socket location:
// $XDG_RUNTIME_DIR/cradio/ctl.sock, falling back to the temp dir.
func ResolveEndpoint() (Endpoint, error) {
	base := os.Getenv("XDG_RUNTIME_DIR")
	if base == "" {
		base = os.TempDir()
	}
	if base == "" {
		return Endpoint{}, fmt.Errorf("no runtime directory available for the control socket")
	}

	dir := filepath.Join(base, "cradio")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return Endpoint{}, fmt.Errorf("create socket directory %s: %w", dir, err)
	}

	return Endpoint{
		Network: "unix",
		Address: filepath.Join(dir, "ctl.sock"),
	}, nil
}

// Listen binds the control socket, replacing a stale socket file from a
// previous session.
func Listen() (net.Listener, Endpoint, error) {
	ep, err := ResolveEndpoint()
	if err != nil {
		return nil, Endpoint{}, err
	}

	_ = os.Remove(ep.Address)
	listener, err := net.Listen(ep.Network, ep.Address)
	if err != nil {
		return nil, Endpoint{}, fmt.Errorf("listen on %s: %w", ep.Address, err)
	}
	return listener, ep, nil
}

// Dial connects to a running session's control socket.
func Dial() (net.Conn, error) {
	ep, err := ResolveEndpoint()
	if err != nil {
		return nil, err
	}
	return net.Dial(ep.Network, ep.Address)
}

// Cleanup removes the socket file.
func Cleanup(ep Endpoint) {
	if ep.Address != "" {
		_ = os.Remove(ep.Address)
	}
}
