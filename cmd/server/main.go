// Package main starts the server after configuring it from supplied or standard arguments.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jacobpatterson1549/selene-azul/server"
	"github.com/jacobpatterson1549/selene-azul/server/log"
	"github.com/sirupsen/logrus"
)

// main configures and runs the server.
func main() {
	ctx := context.Background()
	m, err := newMainFlags(os.Args, environment(os.Environ()))
	if err != nil {
		logrus.Fatalf("reading configuration: %v", err)
	}
	log, err := m.newLogConfig().NewLogrus(os.Stdout)
	if err != nil {
		logrus.Fatalf("creating logger: %v", err)
	}
	e, err := newEmbedParameters(embeddedVersion, embeddedSQLFS)
	if err != nil {
		log.Fatalf("reading embedded files: %v", err)
	}
	backend, closeBackend, err := m.createTableBackend(ctx, *e)
	if err != nil {
		log.Fatalf("setting up table storage: %v", err)
	}
	defer closeBackend()
	server, err := m.createServer(log, backend, *e)
	if err != nil {
		log.Fatalf("creating server: %v", err)
	}
	if err := runServer(ctx, server, log); err != nil {
		log.Errorf("running server: %v", err)
		return
	}
	log.Info("server run stopped successfully")
}

// runServer runs the server until it is interrupted or terminated.
func runServer(ctx context.Context, server *server.Server, log log.Logger) error {
	done := make(chan os.Signal, 2)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(done)
	errC := server.Run(ctx)
	select { // BLOCKING
	case err := <-errC:
		switch {
		case errors.Is(err, http.ErrServerClosed):
			log.Printf("server shutdown triggered")
		default:
			log.Printf("server stopped unexpectedly: %v", err)
		}
	case signal := <-done:
		log.Printf("handled signal: %v", signal)
	}
	if err := server.Stop(ctx); err != nil {
		return fmt.Errorf("stopping server: %v", err)
	}
	return nil
}
