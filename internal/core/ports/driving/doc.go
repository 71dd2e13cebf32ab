// Package driving provides interfaces for external actors
// (primary/inbound ports).
//
// Driving ports are implemented by core services and consumed by the
// CLI, REST API, MCP server and review TUI adapters.
package driving
