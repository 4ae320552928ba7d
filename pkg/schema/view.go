package schema

import "strings"

// Wildcard is the includes value that pulls in every member of a cube.
const Wildcard = "*"

// View composes direct members with members pulled from one or more cubes.
type View struct {
	Name        string          `yaml:"name" schema:"required" validate:"identifier"`
	Description string          `yaml:"description"`
	Title       string          `yaml:"title"`
	Public      *bool           `yaml:"public"`
	Cubes       []CubeReference `yaml:"cubes" validate:"dive"`
	Measures    []ViewMeasure   `yaml:"measures" validate:"dive"`
	Dimensions  []ViewDimension `yaml:"dimensions" validate:"dive"`
	Segments    []ViewSegment   `yaml:"segments" validate:"dive"`
	Folders     []Folder        `yaml:"folders"`

	// Line is the 1-based source line of the view mapping.
	Line int `yaml:"-"`
}

// DirectMemberNames returns the names of the view's own measures,
// dimensions and segments, in that order.
func (v *View) DirectMemberNames() []string {
	names := make([]string, 0, len(v.Measures)+len(v.Dimensions)+len(v.Segments))
	for _, m := range v.Measures {
		names = append(names, m.Name)
	}
	for _, d := range v.Dimensions {
		names = append(names, d.Name)
	}
	for _, s := range v.Segments {
		names = append(names, s.Name)
	}
	return names
}

// CubeReference pulls members of one cube into a view.
type CubeReference struct {
	JoinPath string    `yaml:"join_path" schema:"required"`
	Includes *Includes `yaml:"includes"`
	Excludes []string  `yaml:"excludes"`
	Prefix   bool      `yaml:"prefix"`
}

// TargetCube returns the cube the reference resolves to: the last
// dot-separated segment of the join path.
func (r *CubeReference) TargetCube() string {
	if i := strings.LastIndex(r.JoinPath, "."); i >= 0 {
		return r.JoinPath[i+1:]
	}
	return r.JoinPath
}

// Includes is either the wildcard or an explicit ordered list of members.
type Includes struct {
	All   bool
	Items []IncludeItem
}

// IncludeItem names one member to pull in. A bare string item only sets Name.
type IncludeItem struct {
	Name        string         `yaml:"name" schema:"required"`
	Alias       string         `yaml:"alias"`
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Format      string         `yaml:"format"`
	Meta        map[string]any `yaml:"meta"`

	// Bare is true when the item was written as a plain string.
	Bare bool `yaml:"-"`
}

// ExposedName is the name the member is exposed under before prefixing:
// the alias when present, the original name otherwise.
func (i IncludeItem) ExposedName() string {
	if i.Alias != "" {
		return i.Alias
	}
	return i.Name
}

// ViewMeasure is a measure defined inline on a view.
type ViewMeasure struct {
	Name        string         `yaml:"name" schema:"required" validate:"identifier"`
	SQL         string         `yaml:"sql" schema:"required"`
	Type        string         `yaml:"type" schema:"required"`
	Format      string         `yaml:"format"`
	Description string         `yaml:"description"`
	Meta        map[string]any `yaml:"meta"`
}

// ViewDimension is a dimension defined inline on a view.
type ViewDimension struct {
	Name        string         `yaml:"name" schema:"required" validate:"identifier"`
	SQL         string         `yaml:"sql" schema:"required"`
	Type        string         `yaml:"type" schema:"required"`
	Description string         `yaml:"description"`
	Meta        map[string]any `yaml:"meta"`
}

// ViewSegment is a segment defined inline on a view.
type ViewSegment struct {
	Name        string `yaml:"name" schema:"required" validate:"identifier"`
	SQL         string `yaml:"sql" schema:"required"`
	Description string `yaml:"description"`
}

// Folder groups member names for presentation. Folders nest to any depth
// and their members are never checked against the view.
type Folder struct {
	Name    string   `yaml:"name" schema:"required"`
	Members []string `yaml:"members"`
	Folders []Folder `yaml:"folders"`
}
