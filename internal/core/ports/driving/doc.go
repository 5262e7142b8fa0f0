// Package driving provides interfaces for user-facing adapters
// (primary/inbound ports): the CLI, the chat TUI and the MCP server.
package driving
