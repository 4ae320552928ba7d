package document

import (
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/leapstack-labs/leapcube/pkg/core"
	"github.com/leapstack-labs/leapcube/pkg/schema"
	"gopkg.in/yaml.v3"
)

var (
	includesType    = reflect.TypeOf(schema.Includes{})
	includeItemType = reflect.TypeOf(schema.IncludeItem{})
	boolMapType     = reflect.TypeOf(map[string]bool{})
)

// decoder walks a yaml.Node tree into schema types, recording every shape
// violation instead of stopping at the first.
type decoder struct {
	file   string
	root   *yaml.Node
	issues []core.Issue
	// shapeFailures holds the paths that failed the shape pass.
	shapeFailures [][]string
}

func newDecoder(file string, root *yaml.Node) *decoder {
	return &decoder{file: file, root: root}
}

func (d *decoder) decodeFile(f *schema.File) {
	d.decodeStruct(d.root, reflect.ValueOf(f).Elem(), nil)
}

// shapeIssue records a shape violation at path.
func (d *decoder) shapeIssue(path []string, message string) {
	d.shapeFailures = append(d.shapeFailures, path)
	d.addIssue(path, message)
}

func (d *decoder) addIssue(path []string, message string) {
	line, entity := locate(d.root, path)
	d.issues = append(d.issues, core.Issue{
		Kind:    core.KindSchema,
		File:    d.file,
		Path:    path,
		Entity:  entity,
		Line:    line,
		Message: message,
	})
}

// underFailure reports whether path equals or lies below a path that
// already failed the shape pass.
func (d *decoder) underFailure(path []string) bool {
	for _, failed := range d.shapeFailures {
		if hasPrefix(path, failed) {
			return true
		}
	}
	return false
}

func hasPrefix(path, prefix []string) bool {
	if len(prefix) > len(path) {
		return false
	}
	for i := range prefix {
		if path[i] != prefix[i] {
			return false
		}
	}
	return true
}

func childPath(path []string, segment string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, segment)
}

// decode assigns node to v, reporting mismatches at path.
func (d *decoder) decode(node *yaml.Node, v reflect.Value, path []string) {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}

	switch v.Type() {
	case includesType:
		d.decodeIncludes(node, v, path)
		return
	case includeItemType:
		d.decodeIncludeItem(node, v, path)
		return
	}

	switch v.Kind() {
	case reflect.Ptr:
		elem := reflect.New(v.Type().Elem())
		d.decode(node, elem.Elem(), path)
		v.Set(elem)

	case reflect.String:
		if !isStringNode(node) {
			d.shapeIssue(path, mismatch("string", node))
			return
		}
		v.SetString(node.Value)

	case reflect.Bool:
		if node.Kind != yaml.ScalarNode || node.ShortTag() != "!!bool" {
			d.shapeIssue(path, mismatch("boolean", node))
			return
		}
		var b bool
		if err := node.Decode(&b); err != nil {
			d.shapeIssue(path, mismatch("boolean", node))
			return
		}
		v.SetBool(b)

	case reflect.Slice:
		if node.Kind != yaml.SequenceNode {
			d.shapeIssue(path, mismatch("array", node))
			return
		}
		slice := reflect.MakeSlice(v.Type(), len(node.Content), len(node.Content))
		for i, item := range node.Content {
			d.decode(item, slice.Index(i), childPath(path, strconv.Itoa(i)))
		}
		v.Set(slice)

	case reflect.Map:
		if node.Kind != yaml.MappingNode {
			d.shapeIssue(path, mismatch("object", node))
			return
		}
		m := reflect.New(v.Type())
		if err := node.Decode(m.Interface()); err != nil {
			d.shapeIssue(path, err.Error())
			return
		}
		v.Set(m.Elem())

	case reflect.Struct:
		d.decodeStruct(node, v, path)
	}
}

// decodeStruct decodes a mapping into a struct by yaml tag. Unknown keys are
// ignored; keys tagged schema:"required" must be present.
func (d *decoder) decodeStruct(node *yaml.Node, v reflect.Value, path []string) {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		d.shapeIssue(path, mismatch("object", node))
		return
	}

	fields := fieldsOf(v.Type())
	seen := make(map[string]bool, len(fields.byKey))
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i].Value, node.Content[i+1]
		f, ok := fields.byKey[key]
		if !ok {
			continue
		}
		seen[key] = true
		d.decode(value, v.Field(f.index), childPath(path, key))
	}

	if fields.keys >= 0 {
		v.Field(fields.keys).Set(reflect.ValueOf(seen))
	}

	for _, f := range fields.ordered {
		if f.required && !seen[f.key] {
			d.shapeIssue(childPath(path, f.key), "required")
		}
	}

	if fields.line >= 0 {
		v.Field(fields.line).SetInt(int64(node.Line))
	}
}

// decodeIncludes accepts either the wildcard string or a list of members.
func (d *decoder) decodeIncludes(node *yaml.Node, v reflect.Value, path []string) {
	switch {
	case isStringNode(node) && node.Value == schema.Wildcard:
		v.Set(reflect.ValueOf(schema.Includes{All: true}))
	case node.Kind == yaml.SequenceNode:
		items := make([]schema.IncludeItem, len(node.Content))
		for i, item := range node.Content {
			d.decodeIncludeItem(item, reflect.ValueOf(&items[i]).Elem(), childPath(path, strconv.Itoa(i)))
		}
		v.Set(reflect.ValueOf(schema.Includes{Items: items}))
	default:
		d.shapeIssue(path, `expected "*" or an array of members, received `+kindOf(node))
	}
}

// decodeIncludeItem accepts a bare member name or an object with a name.
func (d *decoder) decodeIncludeItem(node *yaml.Node, v reflect.Value, path []string) {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	switch {
	case isStringNode(node):
		v.Set(reflect.ValueOf(schema.IncludeItem{Name: node.Value, Bare: true}))
	case node.Kind == yaml.MappingNode:
		d.decodeStruct(node, v, path)
	default:
		d.shapeIssue(path, "expected a member name or an object with a name, received "+kindOf(node))
	}
}

// isStringNode reports whether node holds a value the grammar treats as a
// string. Unquoted dates resolve to !!timestamp but are kept as text.
func isStringNode(node *yaml.Node) bool {
	if node.Kind != yaml.ScalarNode {
		return false
	}
	switch node.ShortTag() {
	case "!!str", "!!timestamp":
		return true
	}
	return false
}

func mismatch(expected string, node *yaml.Node) string {
	return "expected " + expected + ", received " + kindOf(node)
}

// kindOf names the value type of node for messages.
func kindOf(node *yaml.Node) string {
	switch node.Kind {
	case yaml.SequenceNode:
		return "array"
	case yaml.MappingNode:
		return "object"
	case yaml.ScalarNode:
		switch node.ShortTag() {
		case "!!int", "!!float":
			return "number"
		case "!!bool":
			return "boolean"
		case "!!null":
			return "null"
		}
		return "string"
	}
	return "unknown"
}

// =============================================================================
// Field cache
// =============================================================================

type structField struct {
	key      string
	index    int
	required bool
}

type structFields struct {
	ordered []structField
	byKey   map[string]structField
	// line is the index of the int Line field, or -1.
	line int
	// keys is the index of the map[string]bool Keys field, or -1.
	keys int
}

var fieldCache sync.Map // reflect.Type -> *structFields

func fieldsOf(t reflect.Type) *structFields {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.(*structFields)
	}

	fields := &structFields{byKey: make(map[string]structField), line: -1, keys: -1}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		key := strings.SplitN(sf.Tag.Get("yaml"), ",", 2)[0]
		if key == "-" {
			switch {
			case sf.Name == "Line" && sf.Type.Kind() == reflect.Int:
				fields.line = i
			case sf.Name == "Keys" && sf.Type == boolMapType:
				fields.keys = i
			}
			continue
		}
		if key == "" || !sf.IsExported() {
			continue
		}
		f := structField{key: key, index: i, required: sf.Tag.Get("schema") == "required"}
		fields.ordered = append(fields.ordered, f)
		fields.byKey[key] = f
	}

	actual, _ := fieldCache.LoadOrStore(t, fields)
	return actual.(*structFields)
}
