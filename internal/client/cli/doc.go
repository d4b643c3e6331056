// Package cli provides the interactive furnistore command-line client.
//
// It wires configuration, a storefront over the configured bridge backend,
// and an interactive REPL. Cart and session state persist between runs, so
// a cart filled in one session is still there in the next.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See NewApp and runREPL for details.
package cli
