package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cexll/swe-mode/internal/logging"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

const serverVersion = "v1.0.0"

func main() {
	_ = godotenv.Load()

	// stdout carries the MCP protocol, so logs go to stderr
	logging.Setup(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), os.Stderr)
	logger := log.With().Str("component", "mcp-mode-server").Logger()

	logger.Info().Str("version", serverVersion).Msg("starting mode selection MCP server")

	server := newServer()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info().Msg("received shutdown signal")
		cancel()
	}()

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
	logger.Info().Msg("server stopped gracefully")
}

func newServer() *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "swe-mode-server",
		Version: serverVersion,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "select_mode",
		Description: "Select the mode (agent or tag) that should handle a GitHub event",
	}, HandleSelectMode)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate_mode",
		Description: "Check whether a mode name is part of the catalog",
	}, HandleValidateMode)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_modes",
		Description: "List the names of all known modes",
	}, HandleListModes)

	return server
}
