package graph

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrUnknownNode is returned when an edit references a node that is
	// not part of the graph.
	ErrUnknownNode = errors.New("unknown node")

	// ErrUnknownSocket is returned when a socket index is out of range
	// for the node type.
	ErrUnknownSocket = errors.New("unknown socket")

	// ErrUnknownNodeType is returned for node type identifiers missing
	// from the registry.
	ErrUnknownNodeType = errors.New("unknown node type")
)

// EditError describes a structural edit that could not be applied.
type EditError struct {
	Op     string
	Node   string
	Socket int
	Err    error
}

func (e *EditError) Error() string {
	if e.Socket >= 0 {
		return fmt.Sprintf("%s %q socket %d: %v", e.Op, e.Node, e.Socket, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Op, e.Node, e.Err)
}

func (e *EditError) Unwrap() error {
	return e.Err
}

// EditResult records the outcome of one structural edit performed by
// Build. Err is nil on success.
type EditResult struct {
	Op   string `json:"op"`
	Node string `json:"node"`
	Err  error  `json:"-"`
}

// OK reports whether the edit succeeded.
func (r EditResult) OK() bool {
	return r.Err == nil
}

// Node is one shader node of the graph.
type Node struct {
	Name       string         `json:"name"`
	TypeID     string         `json:"type_id"`
	Type       string         `json:"type"`
	Hide       bool           `json:"hide,omitempty"`
	Mute       bool           `json:"mute,omitempty"`
	Location   [2]float64     `json:"location"`
	Properties map[string]any `json:"properties,omitempty"`
	Image      string         `json:"image,omitempty"`
}

// Link connects an output socket to an input socket.
type Link struct {
	From       string `json:"from"`
	FromSocket int    `json:"from_socket"`
	To         string `json:"to"`
	ToSocket   int    `json:"to_socket"`
}

// Default is a constant value for an unlinked input socket.
type Default struct {
	Node  string `json:"node"`
	Input int    `json:"input"`
	Value any    `json:"value"`
}

// MaterialSettings are material level flags applied by the host.
type MaterialSettings struct {
	SampleAsLight         bool   `json:"sample_as_light"`
	DisplacementMethod    string `json:"displacement_method,omitempty"`
	UseMicroDisplacements bool   `json:"use_micro_displacements,omitempty"`
	UseFakeUser           bool   `json:"use_fake_user"`
}

// Graph is a host-neutral shader node graph. Nodes keep insertion order so
// the JSON output is stable.
type Graph struct {
	Material   string           `json:"material"`
	Engine     string           `json:"engine"`
	Nodes      []*Node          `json:"nodes"`
	Links      []Link           `json:"links"`
	Defaults   []Default        `json:"defaults"`
	ActiveNode string           `json:"active_node,omitempty"`
	Settings   MaterialSettings `json:"settings"`
}

// New creates an empty graph for the named material.
func New(material, engine string) *Graph {
	return &Graph{
		Material: material,
		Engine:   engine,
		Settings: MaterialSettings{SampleAsLight: true, UseFakeUser: true},
	}
}

// Node returns the node with the given name.
func (g *Graph) Node(name string) (*Node, error) {
	for _, n := range g.Nodes {
		if n.Name == name {
			return n, nil
		}
	}
	return nil, &EditError{Op: "lookup", Node: name, Socket: -1, Err: ErrUnknownNode}
}

// Has reports whether a node with the given name exists.
func (g *Graph) Has(name string) bool {
	_, err := g.Node(name)
	return err == nil
}

// AddNode adds a node of a registered type. The node's Type is filled in
// from the registry.
func (g *Graph) AddNode(n Node) error {
	t, err := LookupNodeType(n.TypeID)
	if err != nil {
		return &EditError{Op: "add", Node: n.Name, Socket: -1, Err: err}
	}
	if g.Has(n.Name) {
		return &EditError{Op: "add", Node: n.Name, Socket: -1, Err: errors.New("duplicate node name")}
	}
	n.Type = t.Kind
	g.Nodes = append(g.Nodes, &n)
	return nil
}

// RemoveNode deletes a node together with every link and default that
// references it.
func (g *Graph) RemoveNode(name string) error {
	idx := slices.IndexFunc(g.Nodes, func(n *Node) bool { return n.Name == name })
	if idx < 0 {
		return &EditError{Op: "remove", Node: name, Socket: -1, Err: ErrUnknownNode}
	}
	g.Nodes = slices.Delete(g.Nodes, idx, idx+1)
	g.Links = slices.DeleteFunc(g.Links, func(l Link) bool {
		return l.From == name || l.To == name
	})
	g.Defaults = slices.DeleteFunc(g.Defaults, func(d Default) bool {
		return d.Node == name
	})
	if g.ActiveNode == name {
		g.ActiveNode = ""
	}
	return nil
}

// Link connects from.outputs[fromSocket] to to.inputs[toSocket]. An input
// accepts a single link, so any existing link into the same input is
// replaced.
func (g *Graph) Link(from string, fromSocket int, to string, toSocket int) error {
	src, err := g.nodeType(from, "link")
	if err != nil {
		return err
	}
	if !src.HasOutput(fromSocket) {
		return &EditError{Op: "link", Node: from, Socket: fromSocket, Err: ErrUnknownSocket}
	}
	dst, err := g.nodeType(to, "link")
	if err != nil {
		return err
	}
	if !dst.HasInput(toSocket) {
		return &EditError{Op: "link", Node: to, Socket: toSocket, Err: ErrUnknownSocket}
	}

	g.Links = slices.DeleteFunc(g.Links, func(l Link) bool {
		return l.To == to && l.ToSocket == toSocket
	})
	g.Links = append(g.Links, Link{From: from, FromSocket: fromSocket, To: to, ToSocket: toSocket})
	return nil
}

// SetDefault sets the constant value of an input socket, replacing a
// previous value for the same input.
func (g *Graph) SetDefault(node string, input int, value any) error {
	t, err := g.nodeType(node, "default")
	if err != nil {
		return err
	}
	if !t.HasInput(input) {
		return &EditError{Op: "default", Node: node, Socket: input, Err: ErrUnknownSocket}
	}

	for i := range g.Defaults {
		if g.Defaults[i].Node == node && g.Defaults[i].Input == input {
			g.Defaults[i].Value = value
			return nil
		}
	}
	g.Defaults = append(g.Defaults, Default{Node: node, Input: input, Value: value})
	return nil
}

// Mute disables a node without removing it.
func (g *Graph) Mute(name string) error {
	n, err := g.Node(name)
	if err != nil {
		return err
	}
	n.Mute = true
	return nil
}

// SetImage assigns an image file to a node and unmutes it.
func (g *Graph) SetImage(name, path string) error {
	n, err := g.Node(name)
	if err != nil {
		return err
	}
	n.Image = path
	n.Mute = false
	return nil
}

// SetProperty sets a host property on a node.
func (g *Graph) SetProperty(name, key string, value any) error {
	n, err := g.Node(name)
	if err != nil {
		return err
	}
	if n.Properties == nil {
		n.Properties = make(map[string]any)
	}
	n.Properties[key] = value
	return nil
}

// SetActive marks a node as the active node of the material.
func (g *Graph) SetActive(name string) error {
	if !g.Has(name) {
		return &EditError{Op: "activate", Node: name, Socket: -1, Err: ErrUnknownNode}
	}
	g.ActiveNode = name
	return nil
}

func (g *Graph) nodeType(name, op string) (NodeType, error) {
	n, err := g.Node(name)
	if err != nil {
		return NodeType{}, &EditError{Op: op, Node: name, Socket: -1, Err: ErrUnknownNode}
	}
	t, err := LookupNodeType(n.TypeID)
	if err != nil {
		return NodeType{}, &EditError{Op: op, Node: name, Socket: -1, Err: err}
	}
	return t, nil
}
