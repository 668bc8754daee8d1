// Package treedump (de)serializes a parsed tree to YAML for golden-fixture
// tests: fixtures too large to read comfortably as Go literals are
// snapshotted as YAML and diffed structurally against a fresh Dump.
package treedump

import (
	"gopkg.in/yaml.v3"

	"github.com/tolerantparse/php/syntax"
)

// Node is the serializable shape of one arena node: its kind, byte span,
// and ordered children (each either a Token or a nested Node, tagged with
// the role it was attached under).
type Node struct {
	Kind     string  `yaml:"kind"`
	Span     [2]int  `yaml:"span,flow"`
	Children []Child `yaml:"children,omitempty"`
}

// Child is one role-tagged slot: exactly one of Token or Node is set.
type Child struct {
	Role  string `yaml:"role,omitempty"`
	Token *Token `yaml:"token,omitempty"`
	Node  *Node  `yaml:"node,omitempty"`
}

// Token is the serializable shape of a leaf token.
type Token struct {
	Kind string `yaml:"kind"`
	Text string `yaml:"text"`
	Flag string `yaml:"flag,omitempty"`
}

// Dump converts the subtree rooted at h into its serializable form.
func Dump(a *syntax.Arena, h syntax.Handle, source string) *Node {
	n := &Node{Kind: a.Kind(h).String()}
	span := a.Span(h)
	n.Span = [2]int{span.Start, span.End()}
	for _, rc := range a.ChildrenWithRoles(h) {
		c := Child{Role: rc.Role.String()}
		if rc.Child.IsToken {
			c.Token = dumpToken(rc.Child.Token, source)
		} else {
			c.Node = Dump(a, rc.Child.Node, source)
		}
		n.Children = append(n.Children, c)
	}
	return n
}

func dumpToken(t syntax.Token, source string) *Token {
	out := &Token{Kind: t.Kind.String(), Text: t.Text(source)}
	switch {
	case t.IsMissing():
		out.Flag = "missing"
	case t.IsSkipped():
		out.Flag = "skipped"
	}
	return out
}

// Marshal renders a dumped tree as YAML, for writing or comparing golden
// fixtures.
func Marshal(n *Node) ([]byte, error) {
	return yaml.Marshal(n)
}

// Unmarshal parses a YAML golden fixture back into a Node, for comparison
// against a freshly computed Dump via reflect.DeepEqual or go-cmp.
func Unmarshal(data []byte) (*Node, error) {
	var n Node
	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, err
	}
	return &n, nil
}
