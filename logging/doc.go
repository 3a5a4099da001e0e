/*
Package logging provides a per-module, hierarchical logging facility.

Callers request a logger by a dotted module name (e.g. "A.B.C") and
receive a handle on one node of a lazily built tree. Each node owns
its own severity threshold, output stream selection, optional log
file and propagation flag:

	h, err := logging.GetLogger("NET.ADDR", logging.Warning, logging.Stderr)
	...
	h.Error("resolving %s: %v", host, err)
	h.Release()

A message is rendered once and then walked from the originating node
toward the root; every ancestor whose own threshold is satisfied
emits the record to its own stream and file, until a node with
propagation disabled (or the root) ends the walk. A single call may
therefore produce several physical record lines, or none.

Repeated lookups of a live name return the same node, so threshold or
sink changes through one handle are visible through all of them. A
node only lives while handles to it (or to its descendants) exist;
once the last one is released the node is pruned from the tree and a
later lookup of the same name starts over with default configuration.

The root node is created lazily on first lookup and is never pruned.
Reset tears the whole tree down, which tests use for isolation.

Trees can also be configured declaratively from YAML (see Configure)
or from command-line flags (see Config). Nodes configured that way are
kept alive until Reset.

All operations are safe for concurrent use from multiple goroutines.
*/
package logging
