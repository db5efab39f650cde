// Package collection layers the Loom collection conventions over the graph
// substrate. Every collection is a graph with an access convention on top:
//
//   - Sequence: an ordered list stored as a chain graph (a head marker node
//     and "next" edges between element nodes)
//   - KeyedMap: a keyed map stored as a root node with one "entry" edge per
//     key to a content-addressed entry node
//
// Incoming values pass through the graph's behavior pipeline
// (Graph.TransformValue) before any node is created, and an active ordering
// rule adjusts where a sequence insertion lands.
//
// # Atomicity
//
// A single graph mutation is atomic with respect to validation, but compound
// collection operations (inserting at an index rebuilds part of the chain)
// are composed of several mutations and are not atomic across them. A
// failure mid-rebuild can leave partial state; callers that need stronger
// guarantees should operate on a Clone and swap on success.
package collection
