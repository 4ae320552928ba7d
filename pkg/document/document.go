package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/leapstack-labs/leapcube/pkg/core"
	"github.com/leapstack-labs/leapcube/pkg/schema"
	"gopkg.in/yaml.v3"
)

// Source is the raw content of one project file.
type Source struct {
	// Name identifies the file in issues, usually its path relative to the project root.
	Name    string
	Content []byte
}

// Document is a structurally valid cube/view document.
type Document struct {
	File  string
	Cubes []schema.Cube
	Views []schema.View
}

// Parse deserializes and validates one document. It returns either a
// Document and no issues, or nil and every issue found in the document.
func Parse(src Source) (*Document, []core.Issue) {
	root, err := decodeSingle(src.Content)
	if err != nil {
		return nil, []core.Issue{parseIssue(src.Name, err)}
	}
	if issues := duplicateKeys(src.Name, &root); len(issues) > 0 {
		return nil, issues
	}

	body := documentBody(&root)
	if body == nil || body.Kind != yaml.MappingNode {
		return nil, []core.Issue{{
			Kind:    core.KindSchema,
			File:    src.Name,
			Message: "file is empty or not a YAML object",
		}}
	}

	d := newDecoder(src.Name, body)
	var file schema.File
	d.decodeFile(&file)
	d.checkConstraints(&file)
	d.checkRules(&file)

	if len(d.issues) > 0 {
		issues := d.issues
		sort.SliceStable(issues, func(i, j int) bool {
			return issues[i].Line < issues[j].Line
		})
		return nil, issues
	}

	return &Document{
		File:  src.Name,
		Cubes: file.Cubes,
		Views: file.Views,
	}, nil
}

// multiDocError reports a stream holding more than one YAML document.
type multiDocError struct {
	line int
}

func (e *multiDocError) Error() string {
	return fmt.Sprintf("yaml: line %d: source contains multiple documents; expected a single document", e.line)
}

// decodeSingle reads the one document in content. An empty stream yields a
// zero node; a second document is an error.
func decodeSingle(content []byte) (yaml.Node, error) {
	var root yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(content))
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return yaml.Node{}, nil
		}
		return yaml.Node{}, err
	}

	var next yaml.Node
	switch err := dec.Decode(&next); {
	case errors.Is(err, io.EOF):
		return root, nil
	case err != nil:
		return yaml.Node{}, err
	default:
		return yaml.Node{}, &multiDocError{line: next.Line}
	}
}

func parseIssue(file string, err error) core.Issue {
	return core.Issue{
		Kind:    core.KindParse,
		File:    file,
		Line:    errorLine(err),
		Message: "YAML parse error — " + strings.TrimPrefix(err.Error(), "yaml: "),
	}
}

// duplicateKeys reports every mapping key repeated within the same mapping,
// anywhere in the tree. Merge keys may repeat.
func duplicateKeys(file string, root *yaml.Node) []core.Issue {
	var issues []core.Issue
	var walk func(n *yaml.Node)
	walk = func(n *yaml.Node) {
		if n.Kind == yaml.MappingNode {
			first := make(map[string]int, len(n.Content)/2)
			for i := 0; i+1 < len(n.Content); i += 2 {
				key := n.Content[i]
				if key.Kind != yaml.ScalarNode || key.ShortTag() == "!!merge" {
					continue
				}
				if line, ok := first[key.Value]; ok {
					issues = append(issues, parseIssue(file, fmt.Errorf(
						"yaml: line %d: mapping key %q already defined at line %d", key.Line, key.Value, line)))
					continue
				}
				first[key.Value] = key.Line
			}
		}
		for _, child := range n.Content {
			walk(child)
		}
	}
	walk(root)
	return issues
}

// documentBody unwraps the document node and resolves a top-level alias.
func documentBody(root *yaml.Node) *yaml.Node {
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil
	}
	node := root
	if node.Kind == yaml.DocumentNode {
		node = node.Content[0]
	}
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		return nil
	}
	return node
}

// errorLine extracts the line number yaml.v3 embeds in syntax errors.
func errorLine(err error) int {
	var line int
	msg := strings.TrimPrefix(err.Error(), "yaml: ")
	if _, scanErr := fmt.Sscanf(msg, "line %d:", &line); scanErr != nil {
		return 0
	}
	return line
}
