package distribution

import (
	"fmt"
	"net"
)

// Listen binds a listener on an OS-assigned local port and returns it along
// with the port number. Handing the live listener to the server, rather than
// probing a port and binding later, means concurrent sessions cannot race
// for the same port.
func Listen() (net.Listener, int, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, 0, fmt.Errorf("allocating local port: %w", err)
	}
	return ln, ln.Addr().(*net.TCPAddr).Port, nil
}

// AvailablePort probes for a free local port. The port is released before
// returning, so callers that need a guaranteed bind should use Listen
// instead.
func AvailablePort() (int, error) {
	ln, port, err := Listen()
	if err != nil {
		return 0, err
	}
	_ = ln.Close()
	return port, nil
}
