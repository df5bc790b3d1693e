package distribution

import (
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/bascloin/mlflow/harness"
)

const serverReadyTimeout = time.Second * 10

// StaticServer serves a directory over HTTP for the lifetime of a test
// session. It owns the listener it is given and stops exactly once.
type StaticServer struct {
	url     string
	port    int
	server  *http.Server
	closing sync.Once
}

// ServeDirectory starts serving dir on the given listener and waits until
// the server is verifiably accepting requests. A server that cannot be
// confirmed listening is stopped and reported as an error; the caller is
// expected to treat that as fatal to the session rather than retry.
func ServeDirectory(dir string, ln net.Listener, logger harness.Logger) (*StaticServer, error) {
	return Serve(http.FileServer(http.Dir(dir)), ln, logger)
}

// Serve starts an HTTP server for the given handler on the listener and
// waits for it to be verifiably accepting requests. The server takes
// ownership of the listener.
func Serve(handler http.Handler, ln net.Listener, logger harness.Logger) (*StaticServer, error) {
	if logger == nil {
		logger = harness.NullLogger()
	}
	port := ln.Addr().(*net.TCPAddr).Port
	s := &StaticServer{
		url:    fmt.Sprintf("http://localhost:%d", port),
		port:   port,
		server: &http.Server{Handler: handler},
	}

	go func() {
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			logger.Printf("distribution server stopped unexpectedly: %s", err)
		}
	}()

	// Wait till the server is definitely listening for requests before any
	// installer is pointed at it
	deadline := time.NewTimer(serverReadyTimeout)
	defer deadline.Stop()
	ticker := time.NewTicker(time.Millisecond * 10)
	defer ticker.Stop()
	for {
		select {
		case <-deadline.C:
			_ = s.Close()
			return nil, fmt.Errorf("could not detect own listener at %s", s.url)
		case <-ticker.C:
			resp, err := http.DefaultClient.Head(s.url)
			if err == nil {
				_ = resp.Body.Close()
				if resp.StatusCode == 200 {
					logger.Printf("distribution server listening at %s", s.url)
					return s, nil
				}
			}
		}
	}
}

// URL returns the server's base URL, suitable for use as an extra package
// index.
func (s *StaticServer) URL() string { return s.url }

// Port returns the TCP port the server is bound to.
func (s *StaticServer) Port() int { return s.port }

// Close stops the server. It is safe to call more than once and safe to
// call on a server that already stopped; shutting down a dead server is not
// an error.
func (s *StaticServer) Close() error {
	var err error
	s.closing.Do(func() {
		err = s.server.Close()
	})
	return err
}
