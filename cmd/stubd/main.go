// Command stubd runs the in-memory backend stub, standing in for the
// remote user API during local development.
package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"portal/internal/infra/backendstub"
)

func main() {
	addr := flag.String("addr", ":3000", "listen address")
	secret := flag.String("secret", "dev-secret", "session token signing secret")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	server := &http.Server{
		Addr:              *addr,
		Handler:           backendstub.New(*secret, logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("backend stub listening", slog.String("addr", *addr))
	if err := server.ListenAndServe(); err != nil {
		logger.Error("backend stub stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
