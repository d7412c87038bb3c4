// Package album models a release (album, discs, tracks) and the TOML
// document codec that reads and writes it.
//
// The in-memory model mirrors the document: optional fields stay empty when
// the document omits them, so Decode and Encode round-trip exactly and an
// unmodified document re-encodes byte-stably in the canonical key order.
// Inheritance (a disc defaulting to the album's catalog, a track defaulting
// to its disc's artist) is resolved through the DiscView/TrackView
// accessors, never by rewriting the stored fields.
//
// Decoding is strict: unknown keys and track types outside the closed
// enumeration are errors, not values to be ignored.
package album
