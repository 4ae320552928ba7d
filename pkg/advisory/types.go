package advisory

import (
	"github.com/leapstack-labs/leapcube/pkg/core"
	"github.com/leapstack-labs/leapcube/pkg/document"
	"github.com/leapstack-labs/leapcube/pkg/schema"
)

// Context provides the parsed documents of a valid project to the rules.
type Context struct {
	docs []*document.Document
}

// NewContext creates a new advisory context over docs, in project order.
func NewContext(docs []*document.Document) *Context {
	return &Context{docs: docs}
}

// Documents returns the documents in project order.
func (c *Context) Documents() []*document.Document {
	return c.docs
}

// EachCube calls fn for every cube in project order.
func (c *Context) EachCube(fn func(file string, cube *schema.Cube)) {
	for _, doc := range c.docs {
		for i := range doc.Cubes {
			fn(doc.File, &doc.Cubes[i])
		}
	}
}

// EachView calls fn for every view in project order.
func (c *Context) EachView(fn func(file string, view *schema.View)) {
	for _, doc := range c.docs {
		for i := range doc.Views {
			fn(doc.File, &doc.Views[i])
		}
	}
}

// EntityType names the kind of definition a finding is about.
type EntityType string

// Entity types reported by advisories.
const (
	EntityCube      EntityType = "cube"
	EntityView      EntityType = "view"
	EntityMeasure   EntityType = "measure"
	EntityDimension EntityType = "dimension"
)

// MissingDescription is a cube, view, measure or dimension without a description.
type MissingDescription struct {
	// Parent is the enclosing cube or view; for cubes and views it is the entity itself.
	Parent string     `json:"parent"`
	Type   EntityType `json:"type"`
	Name   string     `json:"name"`
}

// SuspectPrimaryKey is a primary-key dimension whose type is rarely unique.
type SuspectPrimaryKey struct {
	Cube      string `json:"cube"`
	Dimension string `json:"dimension"`
	Type      string `json:"type"`
}

// Diagnostic represents an advisory finding.
//
// Exactly one of the finding fields is set, depending on the rule.
type Diagnostic struct {
	RuleID   string
	Severity core.Severity
	Message  string
	File     string
	Line     int

	MissingDescription *MissingDescription
	// CubeWithoutDataSource names a cube that relies on the default data source.
	CubeWithoutDataSource string
	SuspectPrimaryKey     *SuspectPrimaryKey
}
