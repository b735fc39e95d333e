// Package selector generates durable CSS selectors for elements.
//
// A selector is durable when it keeps addressing the same element across
// page reloads. Runtime-generated identifiers (framework ids, timestamp
// suffixes, hash suffixes, transient UI-state classes) defeat that, so the
// generator filters them out and verifies every candidate empirically
// against the live document: an id that looks stable but collides with
// other elements is never trusted.
package selector
