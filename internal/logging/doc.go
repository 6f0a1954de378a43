// Package logging provides structured logging helpers for psiagenda.
//
// It centralizes attribute naming on top of the standard library's slog so
// log entries stay consistent across the CLI, the core schedule logic, and
// the MCP server. Patient names are hashed before logging: this is a
// medical scheduling tool, and names are PII that has no business in log
// storage.
package logging
