// Package mcp implements a minimal MCP (Model Context Protocol) client
// for streamable-HTTP servers. The client discovers tools via tools/list
// and can invoke them via tools/call; the `aide tools` command uses it to
// inspect what a server offers.
//
// MCP is JSON-RPC 2.0 over HTTP POST. Only the streamable HTTP transport
// is implemented: aide never spawns stdio MCP subprocesses, and it does
// not act as an MCP server.
package mcp
