// Package node provides the node model and the arena that owns it.
//
// A [Store] is the only strong owner of every [Node] created while a tree is
// being built. Nodes refer to their parents and children by [ID]; those links
// are resolved through the Store on demand, so a parent/child pair never keeps
// each other alive and a link can fail to resolve once the Store has been
// closed. Callers treat a failed resolution as "node gone", never as a program
// error.
//
// # Paths
//
// Every node reachable from a root is assigned a dotted [Path] per traversal
// context (the application name):
//
//	.sample-application                    depth 1
//	.sample-application.service1           depth 2
//	.sample-application.service1.service5  depth 3
//
// The Store keeps a path → ID index so any assigned path resolves back to its
// node with [Store.ResolvePath].
//
// # Concurrency
//
// A Store serializes access to its arena and index with a read/write mutex.
// Node fields themselves are not synchronized; the build passes mutate them
// from a single goroutine.
package node
