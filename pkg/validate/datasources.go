package validate

import "github.com/leapstack-labs/leapcube/pkg/document"

// DefaultDataSource is the implicit data source of cubes that set none.
const DefaultDataSource = "default"

// DataSourceRef lists the cubes that query one data source.
type DataSourceRef struct {
	Name  string   `json:"name"`
	Cubes []string `json:"cubes"`
}

// DataSources returns every explicitly referenced data source in order of
// first use, with the cubes that reference it. Cubes on the default data
// source are left out.
func DataSources(docs []*document.Document) []DataSourceRef {
	refs := []DataSourceRef{}
	index := make(map[string]int)

	for _, doc := range docs {
		for _, cube := range doc.Cubes {
			ds := cube.DataSource
			if ds == "" || ds == DefaultDataSource {
				continue
			}
			i, ok := index[ds]
			if !ok {
				i = len(refs)
				index[ds] = i
				refs = append(refs, DataSourceRef{Name: ds})
			}
			refs[i].Cubes = append(refs[i].Cubes, cube.Name)
		}
	}

	return refs
}
