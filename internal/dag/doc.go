// Package dag orders registered features so that every named dependency
// precedes its dependents.
//
// The sorter builds an index-based adjacency list once per invocation:
// dependency groups are flattened into a single name set (OR/AND structure is
// irrelevant for ordering), names are resolved against the registered set,
// and names with no match are dropped. A depth-first traversal over features
// in registration order then yields a deterministic topological ordering.
//
// Unlike a naive recursive sort, the traversal tracks the nodes on the
// current recursion stack and fails fast with a descriptive error when the
// declared dependencies form a cycle.
package dag
