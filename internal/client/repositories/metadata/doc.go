// Package metadata stores the console's small persistent key/value state
// (the bearer token and the serialized user) in SQLite or Redis.
package metadata
