// Package common holds helpers shared by the MCP tool packages, chiefly the
// instrumented handler wrapper that attaches tracing spans and invocation
// metrics to every registered tool.
package common
