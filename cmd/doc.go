// Package cmd implements the command-line interface for psiagenda.
//
// This package provides the following commands:
//   - list: Show appointments, filtered by day, month or upcoming count
//   - add: Create a one-time appointment or a recurring series
//   - edit: Update a single appointment or part of a series
//   - delete: Remove a single appointment or a whole series
//   - export: Write the book as JSON backup, CSV report or ICS feed
//   - import: Restore a JSON backup, replacing the current book
//   - seed: Populate an empty book with example appointments
//   - ask: Query the schedule through the configured AI assistant
//   - serve: Start the MCP server to provide tools for AI assistants
//   - version: Display version information
//
// The list command is the default command when no subcommand is specified.
package cmd
