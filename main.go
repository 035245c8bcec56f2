// Command signaling-server starts the teleconference signaling relay.
//
// The relay lets browser clients discover each other inside named rooms and
// exchange WebRTC negotiation messages (offers, answers, ICE candidates)
// without ever inspecting the payloads. It exposes a WebSocket endpoint for
// signaling, a small JSON API for room administration, and static hosting
// for the web client.
//
// Flags control host/port, the liveness sweep period, debug logging, and
// version output.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/teleconf/signaling-server/api"
	"github.com/teleconf/signaling-server/room"
	"github.com/teleconf/signaling-server/signaling"
	"github.com/teleconf/signaling-server/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Teleconference Signaling Server"
)

var (
	port        = flag.Int("port", getPortDefault(), "HTTP server port")
	host        = flag.String("host", "", "HTTP server host (empty binds all interfaces)")
	sweepPeriod = flag.Duration("sweep-period", websocket.DefaultSweepPeriod, "Liveness probe period")
	debug       = flag.Bool("debug", false, "Enable debug logging")
	version     = flag.Bool("version", false, "Show version information")
)

// getPortDefault returns the default port. It honors the PORT environment
// variable and falls back to 8080.
func getPortDefault() int {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			return p
		}
	}
	return 8080
}

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	}

	flag.Parse()

	if *version {
		fmt.Printf("%s v%s\n", AppName, Version)
		os.Exit(0)
	}

	if *debug {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags)
	}

	log.Printf("Starting %s v%s", AppName, Version)

	// Relay state and routing
	registry := room.NewRegistry()
	directory := room.NewDirectory()
	router := signaling.NewRouter(registry, directory)

	// Liveness monitor
	monitor := websocket.NewMonitor(*sweepPeriod)
	go monitor.Run()

	apiServer := api.NewServer(directory, registry, router, monitor)

	addr := fmt.Sprintf("%s:%d", *host, *port)
	httpServer := &http.Server{
		Addr:        addr,
		Handler:     apiServer,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// Handle shutdown signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Signaling server listening on %s", addr)
		log.Printf("WebSocket: ws://%s/ws", addr)
		log.Printf("Admin API: http://%s/info", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	sig := <-stop
	log.Printf("Received signal: %v. Shutting down...", sig)

	monitor.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
