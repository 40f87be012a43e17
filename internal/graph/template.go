package graph

import (
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed templates/*.json
var templateFS embed.FS

// EngineCyclesPrincipled is the only bundled template.
const EngineCyclesPrincipled = "cycles_principled"

// Template is the JSON description a material graph starts from.
type Template struct {
	Engine   string    `json:"engine"`
	Nodes    []Node    `json:"nodes"`
	Links    []Link    `json:"links"`
	Defaults []Default `json:"defaults"`
}

// LoadTemplate reads a bundled template by engine name.
func LoadTemplate(engine string) (*Template, error) {
	data, err := templateFS.ReadFile("templates/" + engine + ".json")
	if err != nil {
		return nil, fmt.Errorf("missing template for engine %s: %w", engine, err)
	}
	return ParseTemplate(data)
}

// ParseTemplate decodes a template from JSON.
func ParseTemplate(data []byte) (*Template, error) {
	var t Template
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return &t, nil
}

// Instantiate creates a graph from the template. Every node type, link
// and default is validated; the first invalid reference aborts with an
// *EditError wrapping ErrUnknownNodeType, ErrUnknownNode or
// ErrUnknownSocket.
func (t *Template) Instantiate(material string) (*Graph, error) {
	g := New(material, t.Engine)

	for _, n := range t.Nodes {
		n.Properties = cloneProperties(n.Properties)
		if err := g.AddNode(n); err != nil {
			return nil, fmt.Errorf("template %s: %w", t.Engine, err)
		}
	}
	for _, l := range t.Links {
		if err := g.Link(l.From, l.FromSocket, l.To, l.ToSocket); err != nil {
			return nil, fmt.Errorf("template %s: %w", t.Engine, err)
		}
	}
	for _, d := range t.Defaults {
		if err := g.SetDefault(d.Node, d.Input, d.Value); err != nil {
			return nil, fmt.Errorf("template %s: %w", t.Engine, err)
		}
	}

	return g, nil
}

func cloneProperties(props map[string]any) map[string]any {
	if props == nil {
		return nil
	}
	out := make(map[string]any, len(props))
	for k, v := range props {
		out[k] = v
	}
	return out
}
