// Package compose resolves the flattened member set of each view.
//
// A view exposes its own direct members plus members pulled from cubes
// through an ordered list of references. Each reference expands its
// includes, drops excluded names, and optionally prefixes the result with
// the target cube name. Two sources producing the same final name is a
// conflict; conflicts are reported and never renamed away.
package compose

import (
	"fmt"

	"github.com/leapstack-labs/leapcube/pkg/core"
	"github.com/leapstack-labs/leapcube/pkg/namespace"
	"github.com/leapstack-labs/leapcube/pkg/schema"
)

// MemberLookup resolves a cube name to its member names.
type MemberLookup interface {
	Members(cube string) (namespace.CubeMembers, bool)
}

// Member is one resolved view member.
type Member struct {
	// Name is the final exposed name after alias and prefix.
	Name string `json:"name"`
	// Source is the join path the member came from, or "<view> (direct)".
	Source string `json:"source"`
}

// ResolvedView is the conflict-free member set of one view.
type ResolvedView struct {
	View    string   `json:"view"`
	File    string   `json:"file"`
	Members []Member `json:"members"`

	index map[string]int
}

// Source returns the origin of a final member name.
func (r *ResolvedView) Source(name string) (string, bool) {
	i, ok := r.index[name]
	if !ok {
		return "", false
	}
	return r.Members[i].Source, true
}

// Names returns the final member names in resolution order.
func (r *ResolvedView) Names() []string {
	names := make([]string, len(r.Members))
	for i, m := range r.Members {
		names[i] = m.Name
	}
	return names
}

func (r *ResolvedView) add(name, source string) (existing string, conflict bool) {
	if i, ok := r.index[name]; ok {
		return r.Members[i].Source, true
	}
	r.index[name] = len(r.Members)
	r.Members = append(r.Members, Member{Name: name, Source: source})
	return "", false
}

// DirectSource is the source label of a view's own members.
func DirectSource(view string) string {
	return view + " (direct)"
}

// Resolve resolves every view of the namespace in definition order.
func Resolve(ns *namespace.Namespace) ([]*ResolvedView, []core.Issue) {
	refs := ns.ViewDefinitions()
	resolved := make([]*ResolvedView, 0, len(refs))
	var issues []core.Issue
	for _, ref := range refs {
		rv, viewIssues := ResolveView(ref.File, ref.View, ns)
		resolved = append(resolved, rv)
		issues = append(issues, viewIssues...)
	}
	return resolved, issues
}

// ResolveView resolves one view against lookup.
//
// References whose target cube is not in lookup contribute nothing, as do
// references without includes. Excludes match the name after alias
// substitution, before prefixing.
func ResolveView(file string, view *schema.View, lookup MemberLookup) (*ResolvedView, []core.Issue) {
	rv := &ResolvedView{
		View:  view.Name,
		File:  file,
		index: make(map[string]int),
	}

	direct := DirectSource(view.Name)
	for _, name := range view.DirectMemberNames() {
		rv.add(name, direct)
	}

	var issues []core.Issue
	for i := range view.Cubes {
		ref := &view.Cubes[i]
		target := ref.TargetCube()

		for _, candidate := range candidates(ref, target, lookup) {
			final := candidate
			if ref.Prefix {
				final = target + "_" + candidate
			}
			if existing, conflict := rv.add(final, ref.JoinPath); conflict {
				issues = append(issues, core.Issue{
					Kind:   core.KindCompositionConflict,
					File:   file,
					Entity: view.Name,
					Line:   view.Line,
					Message: fmt.Sprintf("view '%s' — member '%s' from '%s' conflicts with '%s'. Use prefix: true or an alias.",
						view.Name, final, ref.JoinPath, existing),
				})
			}
		}
	}

	return rv, issues
}

// candidates returns the names a reference contributes before prefixing.
func candidates(ref *schema.CubeReference, target string, lookup MemberLookup) []string {
	members, ok := lookup.Members(target)
	if !ok || ref.Includes == nil {
		return nil
	}

	var names []string
	if ref.Includes.All {
		names = members.All()
	} else {
		names = make([]string, 0, len(ref.Includes.Items))
		for _, item := range ref.Includes.Items {
			if !item.Bare && item.Name == "" {
				continue
			}
			names = append(names, item.ExposedName())
		}
	}

	if len(ref.Excludes) == 0 {
		return names
	}
	excluded := make(map[string]bool, len(ref.Excludes))
	for _, name := range ref.Excludes {
		excluded[name] = true
	}
	kept := names[:0:0]
	for _, name := range names {
		if !excluded[name] {
			kept = append(kept, name)
		}
	}
	return kept
}
