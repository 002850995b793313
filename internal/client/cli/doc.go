// Package cli provides the interactive botofarm operator client.
//
// It talks to the account-leasing HTTP API and offers a small REPL:
// create accounts, list them, acquire and release leases, and check server
// health. The REPL is started via App.Run(ctx), which blocks until the user
// exits. See runREPL for the command set.
package cli
