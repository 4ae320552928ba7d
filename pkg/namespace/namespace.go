// Package namespace builds the project-wide name table shared by cubes and
// views.
//
// Names are global: a cube and a view may not share a name, and a name may
// only be defined once across all files. The first definition in document
// order wins; every later one is reported as a duplicate.
package namespace

import (
	"fmt"

	"github.com/leapstack-labs/leapcube/pkg/core"
	"github.com/leapstack-labs/leapcube/pkg/document"
	"github.com/leapstack-labs/leapcube/pkg/schema"
)

// EntityKind distinguishes the two kinds of named definitions.
type EntityKind string

// Entity kinds.
const (
	KindCube EntityKind = "cube"
	KindView EntityKind = "view"
)

// Entry records where a name was first defined.
type Entry struct {
	Name string
	Kind EntityKind
	File string
	Line int
}

// CubeMembers holds the member names a cube exposes, in declaration order.
type CubeMembers struct {
	Measures   []string
	Dimensions []string
	Segments   []string
}

// All returns measures, dimensions and segments concatenated in that order.
func (m CubeMembers) All() []string {
	all := make([]string, 0, len(m.Measures)+len(m.Dimensions)+len(m.Segments))
	all = append(all, m.Measures...)
	all = append(all, m.Dimensions...)
	return append(all, m.Segments...)
}

// Namespace is the immutable name table of one validation run.
type Namespace struct {
	entries map[string]Entry
	cubes   []string
	views   []string
	members map[string]CubeMembers

	viewDefs []ViewRef
}

// ViewRef is a view definition together with the file that defined it.
type ViewRef struct {
	File string
	View *schema.View
}

// Build walks docs in order and returns the namespace plus one duplicate
// issue for every name defined more than once. Duplicates are left out of
// every list and lookup.
func Build(docs []*document.Document) (*Namespace, []core.Issue) {
	ns := &Namespace{
		entries: make(map[string]Entry),
		members: make(map[string]CubeMembers),
	}

	var issues []core.Issue
	register := func(e Entry) bool {
		if existing, ok := ns.entries[e.Name]; ok {
			issues = append(issues, core.Issue{
				Kind:    core.KindDuplicateName,
				File:    e.File,
				Entity:  e.Name,
				Line:    e.Line,
				Message: fmt.Sprintf("duplicate name '%s' (also defined in %s)", e.Name, existing.File),
			})
			return false
		}
		ns.entries[e.Name] = e
		return true
	}

	for _, doc := range docs {
		for i := range doc.Cubes {
			cube := &doc.Cubes[i]
			if !register(Entry{Name: cube.Name, Kind: KindCube, File: doc.File, Line: cube.Line}) {
				continue
			}
			ns.cubes = append(ns.cubes, cube.Name)
			ns.members[cube.Name] = CubeMembers{
				Measures:   cube.MeasureNames(),
				Dimensions: cube.DimensionNames(),
				Segments:   cube.SegmentNames(),
			}
		}
		for i := range doc.Views {
			view := &doc.Views[i]
			if !register(Entry{Name: view.Name, Kind: KindView, File: doc.File, Line: view.Line}) {
				continue
			}
			ns.views = append(ns.views, view.Name)
			ns.viewDefs = append(ns.viewDefs, ViewRef{File: doc.File, View: view})
		}
	}

	return ns, issues
}

// Cubes returns cube names in definition order.
func (ns *Namespace) Cubes() []string {
	return append([]string(nil), ns.cubes...)
}

// Views returns view names in definition order.
func (ns *Namespace) Views() []string {
	return append([]string(nil), ns.views...)
}

// Members returns the member names of a cube.
func (ns *Namespace) Members(cube string) (CubeMembers, bool) {
	m, ok := ns.members[cube]
	return m, ok
}

// ViewDefinitions returns the winning view definitions in definition order.
func (ns *Namespace) ViewDefinitions() []ViewRef {
	return append([]ViewRef(nil), ns.viewDefs...)
}
