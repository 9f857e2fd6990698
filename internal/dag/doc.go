// Package dag holds the graph algorithms behind pipeline validation.
//
// A Graph is built once from an ordered node list and an ordered edge list
// (Build) and is read-only afterwards, so it is safe to share between
// goroutines. Two passes run over it:
//
//   - Sort runs Kahn's algorithm with a FIFO queue. The graph is acyclic iff
//     every node ends up in the order.
//   - FindCycle runs an iterative depth-first search and returns one concrete
//     cycle as a closed walk (the first id is repeated at the end).
//
// Both passes are deterministic: results depend only on node-list order and
// on the edge-list order that shaped each adjacency list.
//
// Edges that name an unknown node are tolerated. An edge contributes to the
// adjacency list when its source is known and to the in-degree map when its
// target is known; traversals skip successors that are not nodes.
package dag
