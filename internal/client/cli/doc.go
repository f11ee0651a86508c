// Package cli provides the interactive portfolio admin console.
//
// The console keeps a route history like the web admin does: admin
// commands first navigate to their /admin page, and the session guard sends
// unauthenticated users to /admin/login instead. After a successful login
// the console returns to the page that was asked for.
//
// Every input line is parsed and run through a fresh cobra command tree,
// so flags never leak from one line to the next. Type "help" for the list
// of commands or "<command> --help" for details.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
