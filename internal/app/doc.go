// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the dispatch of CLI subcommands onto
// project operations, decoupled from any specific entrypoint.
package app
