package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-google-login/auth"
	"github.com/jrsteele09/go-google-login/internal/config"
	apperrors "github.com/jrsteele09/go-google-login/internal/errors"
	"github.com/jrsteele09/go-google-login/internal/telemetry"
	"github.com/jrsteele09/go-google-login/server"
	"github.com/jrsteele09/go-google-login/sessions"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Error running server")
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	c, err := config.New()
	if err != nil {
		return err
	}
	setupLogging(c)
	if err := c.Validate(); err != nil {
		if errors.Is(err, apperrors.ErrConfigurationMissing) {
			log.Fatal().Err(err).Msg("Missing required configuration")
		}
		return err
	}
	displayAppname(c.GetAppName())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := telemetry.Setup(ctx, c.GetAppName(), c.GetOTelEndpoint())
	if err != nil {
		return fmt.Errorf("telemetry.Setup: %w", err)
	}
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Err(err).Msg("Failed to flush traces")
		}
	}()

	userRepo, closeUsers, err := openUserRepo(ctx, c)
	if err != nil {
		return err
	}
	defer closeUsers()

	sessionRepo, closeSessions, err := openSessionRepo(ctx, c)
	if err != nil {
		return err
	}
	defer closeSessions()

	idp, err := newProvider(ctx, c)
	if err != nil {
		return err
	}

	login, err := auth.NewLoginService(idp, userRepo)
	if err != nil {
		return err
	}
	signer, err := sessions.NewCookieSigner(c.GetSessionSecret())
	if err != nil {
		return err
	}
	handler, err := server.New(c, login, sessions.NewManager(sessionRepo, signer, c.GetMaxSessionAge()))
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              c.GetPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- listenAndServe(httpServer)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(httpServer)
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
