// Package server implements the TCP (and optional TLS) accept loop,
// dispatching each accepted connection to a worker-pool goroutine that
// drives a keep-alive request loop against the shared router.
package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"

	"github.com/saulvaldelvira/http-server/pkg/config"
	"github.com/saulvaldelvira/http-server/pkg/logging"
	"github.com/saulvaldelvira/http-server/pkg/router"
	"github.com/saulvaldelvira/http-server/pkg/stream"
	"github.com/saulvaldelvira/http-server/pkg/workerpool"
	"golang.org/x/sync/errgroup"
)

// Server binds a TCP listener and dispatches every accepted connection
// through a worker pool to a Router.
type Server struct {
	listener *net.TCPListener
	pool     *workerpool.Pool
	router   *router.Router
	conf     config.ServerConfig
	tlsConf  *tls.Config
}

// New binds a listener on conf.Port and starts the worker pool that
// will process accepted connections. The router must already be fully
// configured; Server only dispatches to it, it never mutates it.
func New(conf config.ServerConfig, rt *router.Router) (*Server, error) {
	addr := &net.TCPAddr{Port: int(conf.Port)}
	ln, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("binding port %d: %w", conf.Port, err)
	}
	stream.ListenerTune(ln)

	maxInFlight := int(conf.Pool.PendingBufferSize)
	pool, err := workerpool.New(int(conf.Pool.NWorkers), maxInFlight)
	if err != nil {
		return nil, fmt.Errorf("starting worker pool: %w", err)
	}

	srv := &Server{
		listener: ln,
		pool:     pool,
		router:   rt,
		conf:     conf,
	}

	if conf.TLS.Enabled {
		cert, err := tls.LoadX509KeyPair(conf.TLS.CertFile, conf.TLS.PrivateKeyFile)
		if err != nil {
			return nil, fmt.Errorf("loading TLS certificate: %w", err)
		}
		srv.tlsConf = &tls.Config{Certificates: []tls.Certificate{cert}}
	}

	return srv, nil
}

// Addr returns the listener's bound address, useful when conf.Port was
// 0 and the OS picked an ephemeral port (as in tests).
func (s *Server) Addr() net.Addr { return s.listener.Addr() }

// Run accepts connections until ctx is canceled or the listener fails,
// dispatching each one to the worker pool. It blocks until the accept
// loop and every in-flight connection have finished.
func (s *Server) Run(ctx context.Context) error {
	logging.Infof("server listening on %s", s.listener.Addr())

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		<-ctx.Done()
		return s.listener.Close()
	})

	eg.Go(func() error {
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}

			submitErr := s.pool.Submit(func() {
				s.handleConnection(conn)
			})
			if submitErr != nil {
				logging.Errorf("dropping connection: %v", submitErr)
				conn.Close()
			}
		}
	})

	err := eg.Wait()
	s.pool.Shutdown()
	logging.Info("server shut down")
	return err
}

// handleConnection wraps the accepted TCP connection (in TLS if
// configured), runs the keep-alive request loop, and closes it when
// the loop exits.
func (s *Server) handleConnection(conn net.Conn) {
	var st stream.Stream
	if s.tlsConf != nil {
		tlsConn := tls.Server(conn, s.tlsConf)
		st = stream.NewTLS(tlsConn)
	} else {
		st = stream.NewTCP(conn)
	}
	defer st.Close()

	if err := serveKeepAlive(st, s.router, s.conf.KeepAliveTimeout, s.conf.KeepAliveRequests); err != nil {
		logging.Warnf("connection error: %v", err)
	}
}
