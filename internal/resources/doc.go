// Package resources provides MCP resources exposing read-only schedule
// data. Resources are data sources MCP clients can fetch directly, such as
// today's appointments and the backup freshness status, without going
// through a tool call.
package resources
