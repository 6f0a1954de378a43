// Package server holds the MCP server plumbing: the shared server context,
// health check endpoints, and the dedicated Prometheus metrics server.
package server
