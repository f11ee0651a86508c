// Package views keeps the client side copy of what the console shows: lists
// reconciled with the results of mutations, single record views and the
// dashboard. Views never panic on API failures; they record the error as
// state and tell the Notifier.
package views
