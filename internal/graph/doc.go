// Package graph builds a host-neutral shader node graph for a resolved
// material set.
//
// The graph starts from an embedded JSON template (nodes, links and
// default socket values) and is reshaped by structural edits that depend
// on the workflow and the passes present. The result marshals to JSON and
// is meant to be replayed by a small script inside the host application.
//
// # Building
//
//	g, edits, err := graph.Build(set, graph.Options{
//	    ConformUV: true,
//	    Sizer:     io.NewImageService(),
//	})
//
// # Edits
//
// Every edit is checked against the node type registry. Referencing a node
// that does not exist or a socket index outside the node type fails with
// an *EditError that unwraps to ErrUnknownNode or ErrUnknownSocket. Build
// keeps going after a failed edit and reports all failures at the end.
//
// Removing a node also removes its links and default values. An input
// socket holds a single link: linking into an occupied input replaces the
// old link.
package graph
