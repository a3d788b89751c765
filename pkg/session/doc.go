// Package session keeps conversation histories in memory, keyed by an
// opaque caller-supplied identifier.
//
// A Store is built once per process and handed to whoever needs it; there
// is no package-level state. Each Session owns its message slice and a turn
// lock that serializes read-append-send-append cycles for one identifier.
// Nothing survives a restart.
//
// Two bounds apply. TrimHistory limits what is sent upstream on a turn,
// while the store's stored-message cap limits what is kept. An optional
// Sweeper evicts sessions that have been idle longer than a TTL.
package session
