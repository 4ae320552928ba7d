package schema

// File is the top-level shape of a cube/view document. At least one of
// Cubes or Views must be non-empty.
type File struct {
	Cubes []Cube `yaml:"cubes" validate:"dive"`
	Views []View `yaml:"views" validate:"dive"`
}

// IsEmpty reports whether the document defines neither cubes nor views.
func (f *File) IsEmpty() bool {
	return len(f.Cubes) == 0 && len(f.Views) == 0
}
