package main

import (
	"chat-events/domain"
	"chat-events/infrastructure/http/server"
	"chat-events/internal"
	"chat-events/repositories"
	"chat-events/runtime"
	"chat-events/services"
	"chat-events/sink"
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/mama165/sdk-go/logs"
)

// Exit codes of the server.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
	}
	os.Exit(code)
}

// run wires the store, the services and the HTTP surface, then serves until
// SIGINT or SIGTERM. Deferred cleanups run before main exits.
func run() (int, error) {
	// 1. Configuration & Logger
	config, err := internal.LoadConfig()
	if err != nil {
		return exitConfig, err
	}
	loc, err := config.Location()
	if err != nil {
		return exitConfig, err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Store
	store, err := repositories.OpenStore(config.StoreBackend, log)
	if err != nil {
		return exitConfig, err
	}
	defer func() {
		log.Info("Closing store...")
		if err := store.Close(); err != nil {
			log.Error("Store closing failed", "error", err)
		}
	}()
	if config.SeedDemoData {
		if err := repositories.Seed(store, loc); err != nil {
			return exitRuntime, fmt.Errorf("seeding failed: %w", err)
		}
		log.Info("Demonstration data loaded")
	}

	// 3. Services
	registry := runtime.NewRegistry()
	eventSink := sink.NewEventLogSink(store.Events, log)
	chat := services.NewChatService(store.Users, store.Rooms, eventSink, registry, domain.SystemClock(loc), log)
	events := services.NewEventService(store.Users, store.Rooms, store.Events, registry, log)

	// 4. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. HTTP Server
	listener, err := net.Listen("tcp", config.Address())
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to listen on %s: %w", config.Address(), err)
	}
	router := server.NewRouter(server.NewHandler(chat, events, loc, log), config.Origins(), log)
	srv := server.NewServer(config.Address(), router, log)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Serve(listener)
	}()

	// 6. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		if err != nil {
			return exitRuntime, err
		}
		return exitOK, nil
	}

	// 7. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return exitRuntime, err
	}
	log.Info("Program stopped cleanly")
	return exitOK, nil
}
