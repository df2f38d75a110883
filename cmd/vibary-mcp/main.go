package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"vibary/internal/adapters/htmlexport"
	mcpadapter "vibary/internal/adapters/mcp"
	"vibary/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("vibary-mcp: %v", err)
	}

	// stdout carries the protocol; log to a file only
	logger, closeLog, err := cfg.Logging.FileLogger(cfg.LogPath())
	if err != nil {
		log.Fatalf("vibary-mcp: %v", err)
	}
	defer closeLog()

	exporter, err := htmlexport.New(logger)
	if err != nil {
		log.Fatalf("vibary-mcp: %v", err)
	}

	mcpServer := server.NewMCPServer(
		"vibary-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer)
	mcpadapter.RegisterWriteTools(mcpServer, exporter)

	logger.Info("Serving MCP over stdio")
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Error("MCP server stopped", zap.Error(err))
		log.Fatalf("vibary-mcp: %v", err)
	}
}
