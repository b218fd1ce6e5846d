// Package server runs the http server that players use to play at tables.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	tabledb "github.com/jacobpatterson1549/selene-azul/db/table"
	"github.com/jacobpatterson1549/selene-azul/game"
	"github.com/jacobpatterson1549/selene-azul/game/engine"
	"github.com/jacobpatterson1549/selene-azul/server/auth"
	"github.com/jacobpatterson1549/selene-azul/server/log"
)

type (
	// Server runs the site.
	Server struct {
		wg     sync.WaitGroup
		log    log.Logger
		runner TableRunner
		// HTTPServer handles the api.
		HTTPServer *http.Server
		Config
	}

	// Config contains fields which describe the server.
	Config struct {
		// Port is the TCP port for server http requests.
		Port int
		// StopDur is the maximum duration the server waits for requests to finish when stopping.
		StopDur time.Duration
		// Version is reported by the monitor.
		Version string
		// TLSCertFile is the public HTTPS TLS certificate file.  If it and the key file are set, the server uses https.
		TLSCertFile string
		// TLSKeyFile is the private HTTPS TLS key file.
		TLSKeyFile string
		// SeedFunc supplies the seed of tables that are created without one.
		SeedFunc func() int64
	}

	// Parameters contains the interfaces needed to create a new server.
	Parameters struct {
		log.Logger
		Tokenizer
		Runner TableRunner
	}

	// Tokenizer creates and reads seat tokens.
	Tokenizer interface {
		Create(s auth.Seat) (string, error)
		Read(tokenString string) (*auth.Seat, error)
	}

	// TableRunner runs tables.
	TableRunner interface {
		Run(ctx context.Context, wg *sync.WaitGroup) error
		Create(ctx context.Context, seed int64, rules game.Rules, playerIDs ...string) (*tabledb.Table, error)
		Get(ctx context.Context, id game.ID) (*tabledb.Table, error)
		Move(ctx context.Context, id game.ID, playerIndex int, m engine.Move) (*engine.MoveResult, error)
		Delete(ctx context.Context, id game.ID) error
		NumLoaded() int
	}
)

// NewServer creates a Server from the Config.
func (cfg Config) NewServer(p Parameters) (*Server, error) {
	if err := cfg.validate(p); err != nil {
		return nil, fmt.Errorf("creating server: validation: %w", err)
	}
	s := Server{
		log:    p.Logger,
		runner: p.Runner,
		HTTPServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      cfg.handler(p),
			ReadTimeout:  60 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
		Config: cfg,
	}
	return &s, nil
}

// validate ensures the configuration and parameters have no errors.
func (cfg Config) validate(p Parameters) error {
	if err := p.validate(); err != nil {
		return err
	}
	switch {
	case cfg.Port <= 0:
		return fmt.Errorf("positive port required")
	case cfg.StopDur <= 0:
		return fmt.Errorf("stop timeout duration required")
	case cfg.SeedFunc == nil:
		return fmt.Errorf("seed func required")
	case (len(cfg.TLSCertFile) == 0) != (len(cfg.TLSKeyFile) == 0):
		return fmt.Errorf("both tls certificate and key files are required to use tls")
	}
	return nil
}

// validate ensures that all of the parameters are present.
func (p Parameters) validate() error {
	switch {
	case p.Logger == nil:
		return fmt.Errorf("log required")
	case p.Tokenizer == nil:
		return fmt.Errorf("tokenizer required")
	case p.Runner == nil:
		return fmt.Errorf("table runner required")
	}
	return nil
}

// Run the server asynchronously until it receives a shutdown signal.
// When the server stops, the error it stopped with is added to the channel.
func (s *Server) Run(ctx context.Context) <-chan error {
	errC := make(chan error, 1)
	ctx, cancelFunc := context.WithCancel(ctx)
	if err := s.runner.Run(ctx, &s.wg); err != nil {
		cancelFunc()
		errC <- fmt.Errorf("running table runner: %w", err)
		return errC
	}
	s.HTTPServer.RegisterOnShutdown(cancelFunc)
	go func() {
		switch {
		case s.useTLS():
			s.log.Printf("starting server at https://127.0.0.1%v", s.HTTPServer.Addr)
			errC <- s.HTTPServer.ListenAndServeTLS(s.TLSCertFile, s.TLSKeyFile)
		default:
			s.log.Printf("starting server at http://127.0.0.1%v", s.HTTPServer.Addr)
			errC <- s.HTTPServer.ListenAndServe()
		}
	}()
	return errC
}

// Stop asks the server to shutdown and waits for the shutdown to complete.
// An error is returned if the server if the context times out.
func (s *Server) Stop(ctx context.Context) error {
	ctx, cancelFunc := context.WithTimeout(ctx, s.StopDur)
	defer cancelFunc()
	if err := s.HTTPServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("stopping server: %w", err)
	}
	s.wg.Wait()
	return nil
}

// useTLS determines if the server uses https.
func (cfg Config) useTLS() bool {
	return len(cfg.TLSCertFile) != 0 && len(cfg.TLSKeyFile) != 0
}
