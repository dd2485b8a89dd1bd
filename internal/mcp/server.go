package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/mcp-docs-lookup/internal/lookup"
)

// ServerConfig contains configuration for creating an MCP server
type ServerConfig struct {
	Name      string
	Version   string
	LookupSvc *lookup.Service
}

// CreateServer creates and configures the MCP server
func CreateServer(cfg ServerConfig) *mcp.Server {
	s := mcp.NewServer(&mcp.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, nil)

	if cfg.LookupSvc != nil {
		lookup.RegisterTool(s, cfg.LookupSvc)
	}

	return s
}
