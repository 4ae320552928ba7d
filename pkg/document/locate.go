package document

import (
	"strconv"

	"gopkg.in/yaml.v3"
)

// locate follows path from root and returns the source line of the deepest
// node reached, plus the name of the nearest enclosing mapping that has a
// scalar "name" key.
func locate(root *yaml.Node, path []string) (line int, entity string) {
	node := root
	line = root.Line
	for depth := 0; ; depth++ {
		if node.Kind == yaml.AliasNode && node.Alias != nil {
			node = node.Alias
		}
		if name := nameOf(node); name != "" {
			entity = name
		}
		if depth == len(path) {
			return line, entity
		}

		next := child(node, path[depth])
		if next == nil {
			// Missing keys point at the mapping that should hold them.
			return line, entity
		}
		node = next
		line = next.Line
	}
}

// child returns the value under segment in a mapping or sequence node.
func child(node *yaml.Node, segment string) *yaml.Node {
	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == segment {
				return node.Content[i+1]
			}
		}
	case yaml.SequenceNode:
		i, err := strconv.Atoi(segment)
		if err == nil && i >= 0 && i < len(node.Content) {
			return node.Content[i]
		}
	}
	return nil
}

func nameOf(node *yaml.Node) string {
	if node.Kind != yaml.MappingNode {
		return ""
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == "name" {
			if v := node.Content[i+1]; v.Kind == yaml.ScalarNode && v.ShortTag() != "!!null" {
				return v.Value
			}
		}
	}
	return ""
}
