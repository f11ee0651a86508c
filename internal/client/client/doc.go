// Package client talks to the portfolio REST API.
//
// Transport wraps a resty client with two hooks: one attaches
// "Authorization: Bearer <token>" to every non-anonymous request, the other
// reacts to 401 responses by clearing the stored credential (only if it is
// still the token that was sent) and running the unauthorized handler,
// normally a redirect to the login route.
//
// Resource is the generic CRUD façade instantiated per entity; the typed
// clients in Client add the entity specific endpoints on top.
//
// Failures are returned as *APIError values that unwrap to ErrUnauthorized,
// ErrNotFound, ErrValidation, ErrConflict, ErrServer or ErrUnavailable.
package client
