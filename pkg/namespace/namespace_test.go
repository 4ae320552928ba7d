package namespace

import (
	"testing"

	"github.com/leapstack-labs/leapcube/pkg/core"
	"github.com/leapstack-labs/leapcube/pkg/document"
	"github.com/leapstack-labs/leapcube/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cubeDoc(file string, cubes ...schema.Cube) *document.Document {
	return &document.Document{File: file, Cubes: cubes}
}

func viewDoc(file string, views ...schema.View) *document.Document {
	return &document.Document{File: file, Views: views}
}

func TestBuild_Basic(t *testing.T) {
	docs := []*document.Document{
		cubeDoc("cubes/orders.yaml", schema.Cube{
			Name:       "orders",
			SQL:        "select 1",
			Measures:   []schema.Measure{{Name: "count", Type: schema.MeasureCount}},
			Dimensions: []schema.Dimension{{Name: "status", Type: schema.DimensionString}},
			Segments:   []schema.Segment{{Name: "completed", SQL: "1=1"}},
		}),
		viewDoc("views/sales.yaml", schema.View{Name: "sales"}),
	}

	ns, issues := Build(docs)
	require.Empty(t, issues)

	assert.Equal(t, []string{"orders"}, ns.Cubes())
	assert.Equal(t, []string{"sales"}, ns.Views())

	members, ok := ns.Members("orders")
	require.True(t, ok)
	assert.Equal(t, []string{"count", "status", "completed"}, members.All())

	_, ok = ns.Members("sales")
	assert.False(t, ok, "views have no member lookup")

	require.Len(t, ns.ViewDefinitions(), 1)
	assert.Equal(t, "views/sales.yaml", ns.ViewDefinitions()[0].File)
}

func TestBuild_Duplicates(t *testing.T) {
	tests := []struct {
		name      string
		docs      []*document.Document
		wantCubes []string
		wantViews []string
		wantFile  string
		wantMsg   string
	}{
		{
			name: "same cube in two files",
			docs: []*document.Document{
				cubeDoc("cubes/a.yaml", schema.Cube{Name: "orders", SQL: "a"}),
				cubeDoc("cubes/b.yaml", schema.Cube{Name: "orders", SQL: "b"}),
			},
			wantCubes: []string{"orders"},
			wantFile:  "cubes/b.yaml",
			wantMsg:   "duplicate name 'orders' (also defined in cubes/a.yaml)",
		},
		{
			name: "same cube twice in one file",
			docs: []*document.Document{
				cubeDoc("cubes/a.yaml",
					schema.Cube{Name: "orders", SQL: "a"},
					schema.Cube{Name: "orders", SQL: "b"},
				),
			},
			wantCubes: []string{"orders"},
			wantFile:  "cubes/a.yaml",
			wantMsg:   "duplicate name 'orders' (also defined in cubes/a.yaml)",
		},
		{
			name: "view shadows cube",
			docs: []*document.Document{
				cubeDoc("cubes/orders.yaml", schema.Cube{Name: "orders", SQL: "a"}),
				viewDoc("views/orders.yaml", schema.View{Name: "orders"}),
			},
			wantCubes: []string{"orders"},
			wantFile:  "views/orders.yaml",
			wantMsg:   "duplicate name 'orders' (also defined in cubes/orders.yaml)",
		},
		{
			name: "cube after view in one file",
			docs: []*document.Document{
				{
					File:  "mixed.yaml",
					Cubes: []schema.Cube{{Name: "sales", SQL: "a"}},
					Views: []schema.View{{Name: "sales"}},
				},
			},
			wantCubes: []string{"sales"},
			wantFile:  "mixed.yaml",
			wantMsg:   "duplicate name 'sales' (also defined in mixed.yaml)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ns, issues := Build(tt.docs)

			require.Len(t, issues, 1)
			assert.Equal(t, core.KindDuplicateName, issues[0].Kind)
			assert.Equal(t, tt.wantFile, issues[0].File)
			assert.Equal(t, tt.wantMsg, issues[0].Message)
			assert.Equal(t, tt.wantFile+": "+tt.wantMsg, issues[0].Error())

			assert.Equal(t, tt.wantCubes, ns.Cubes())
			assert.Equal(t, tt.wantViews, ns.Views())
		})
	}
}

func TestBuild_FirstDefinitionWins(t *testing.T) {
	docs := []*document.Document{
		cubeDoc("cubes/a.yaml", schema.Cube{
			Name:     "orders",
			SQL:      "a",
			Measures: []schema.Measure{{Name: "first", Type: schema.MeasureCount}},
		}),
		cubeDoc("cubes/b.yaml", schema.Cube{
			Name:     "orders",
			SQL:      "b",
			Measures: []schema.Measure{{Name: "second", Type: schema.MeasureCount}},
		}),
		cubeDoc("cubes/c.yaml", schema.Cube{Name: "orders", SQL: "c"}),
	}

	ns, issues := Build(docs)
	require.Len(t, issues, 2)
	for _, issue := range issues {
		assert.Contains(t, issue.Message, "also defined in cubes/a.yaml")
	}

	members, ok := ns.Members("orders")
	require.True(t, ok)
	assert.Equal(t, []string{"first"}, members.Measures)
	assert.Equal(t, []string{"orders"}, ns.Cubes())
}

func TestBuild_Empty(t *testing.T) {
	ns, issues := Build(nil)
	assert.Empty(t, issues)
	assert.Empty(t, ns.Cubes())
	assert.Empty(t, ns.Views())
	assert.Empty(t, ns.ViewDefinitions())
}
