package compose

import (
	"testing"

	"github.com/leapstack-labs/leapcube/pkg/core"
	"github.com/leapstack-labs/leapcube/pkg/document"
	"github.com/leapstack-labs/leapcube/pkg/namespace"
	"github.com/leapstack-labs/leapcube/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapLookup map[string]namespace.CubeMembers

func (m mapLookup) Members(cube string) (namespace.CubeMembers, bool) {
	members, ok := m[cube]
	return members, ok
}

var testCubes = mapLookup{
	"orders": {
		Measures:   []string{"count"},
		Dimensions: []string{"status"},
	},
	"customers": {
		Measures:   []string{"count"},
		Dimensions: []string{"name", "email"},
		Segments:   []string{"active"},
	},
}

func wildcard(joinPath string) schema.CubeReference {
	return schema.CubeReference{JoinPath: joinPath, Includes: &schema.Includes{All: true}}
}

func explicit(joinPath string, items ...schema.IncludeItem) schema.CubeReference {
	return schema.CubeReference{JoinPath: joinPath, Includes: &schema.Includes{Items: items}}
}

func bare(name string) schema.IncludeItem {
	return schema.IncludeItem{Name: name, Bare: true}
}

func sources(rv *ResolvedView) map[string]string {
	out := make(map[string]string, len(rv.Members))
	for _, m := range rv.Members {
		out[m.Name] = m.Source
	}
	return out
}

func TestResolveView(t *testing.T) {
	tests := []struct {
		name        string
		view        schema.View
		want        map[string]string
		wantOrder   []string
		wantIssues  int
		wantMessage string
	}{
		{
			name: "wildcard",
			view: schema.View{Name: "sales", Cubes: []schema.CubeReference{wildcard("orders")}},
			want: map[string]string{"count": "orders", "status": "orders"},
		},
		{
			name: "wildcard with prefix",
			view: schema.View{Name: "sales", Cubes: []schema.CubeReference{
				{JoinPath: "orders", Includes: &schema.Includes{All: true}, Prefix: true},
			}},
			want: map[string]string{"orders_count": "orders", "orders_status": "orders"},
		},
		{
			name: "prefix uses the last join path segment",
			view: schema.View{Name: "sales", Cubes: []schema.CubeReference{
				{JoinPath: "orders.customers", Includes: &schema.Includes{All: true}, Prefix: true},
			}},
			want: map[string]string{
				"customers_count":  "orders.customers",
				"customers_name":   "orders.customers",
				"customers_email":  "orders.customers",
				"customers_active": "orders.customers",
			},
			wantOrder: []string{"customers_count", "customers_name", "customers_email", "customers_active"},
		},
		{
			name: "direct member conflicts with wildcard",
			view: schema.View{
				Name:     "sales",
				Measures: []schema.ViewMeasure{{Name: "count", SQL: "1", Type: "number"}},
				Cubes:    []schema.CubeReference{wildcard("orders")},
			},
			want:        map[string]string{"count": "sales (direct)", "status": "orders"},
			wantIssues:  1,
			wantMessage: "view 'sales' — member 'count' from 'orders' conflicts with 'sales (direct)'. Use prefix: true or an alias.",
		},
		{
			name: "two cubes expose the same member",
			view: schema.View{Name: "sales", Cubes: []schema.CubeReference{
				wildcard("orders"),
				explicit("orders.customers", bare("count"), bare("email")),
			}},
			want:        map[string]string{"count": "orders", "status": "orders", "email": "orders.customers"},
			wantIssues:  1,
			wantMessage: "view 'sales' — member 'count' from 'orders.customers' conflicts with 'orders'. Use prefix: true or an alias.",
		},
		{
			name: "alias avoids the conflict",
			view: schema.View{Name: "sales", Cubes: []schema.CubeReference{
				wildcard("orders"),
				explicit("orders.customers", schema.IncludeItem{Name: "count", Alias: "customer_count"}),
			}},
			want: map[string]string{"count": "orders", "status": "orders", "customer_count": "orders.customers"},
		},
		{
			name: "excludes remove wildcard members",
			view: schema.View{Name: "sales", Cubes: []schema.CubeReference{
				{JoinPath: "customers", Includes: &schema.Includes{All: true}, Excludes: []string{"email", "active"}},
			}},
			want: map[string]string{"count": "customers", "name": "customers"},
		},
		{
			name: "excludes match the aliased name",
			view: schema.View{Name: "sales", Cubes: []schema.CubeReference{
				{
					JoinPath: "customers",
					Includes: &schema.Includes{Items: []schema.IncludeItem{
						{Name: "email", Alias: "contact"},
						{Name: "name", Alias: "customer_name"},
					}},
					Excludes: []string{"email", "customer_name"},
				},
			}},
			want: map[string]string{"contact": "customers"},
		},
		{
			name: "excludes apply before prefix",
			view: schema.View{Name: "sales", Cubes: []schema.CubeReference{
				{JoinPath: "orders", Includes: &schema.Includes{All: true}, Prefix: true, Excludes: []string{"orders_status", "count"}},
			}},
			want: map[string]string{"orders_status": "orders"},
		},
		{
			name: "unknown cube is skipped",
			view: schema.View{Name: "sales", Cubes: []schema.CubeReference{
				wildcard("missing"),
				explicit("missing", bare("count")),
			}},
			want: map[string]string{},
		},
		{
			name: "reference without includes contributes nothing",
			view: schema.View{Name: "sales", Cubes: []schema.CubeReference{{JoinPath: "orders"}}},
			want: map[string]string{},
		},
		{
			name: "explicit members need not exist on the cube",
			view: schema.View{Name: "sales", Cubes: []schema.CubeReference{explicit("orders", bare("revenue"))}},
			want: map[string]string{"revenue": "orders"},
		},
		{
			name: "include objects without a name contribute nothing",
			view: schema.View{Name: "sales", Cubes: []schema.CubeReference{explicit("orders",
				schema.IncludeItem{},
				schema.IncludeItem{},
				schema.IncludeItem{Alias: "renamed"},
				bare("count"),
			)}},
			want:      map[string]string{"count": "orders"},
			wantOrder: []string{"count"},
		},
		{
			name:        "repeated include within one reference",
			view:        schema.View{Name: "sales", Cubes: []schema.CubeReference{explicit("orders", bare("count"), bare("count"))}},
			want:        map[string]string{"count": "orders"},
			wantIssues:  1,
			wantMessage: "view 'sales' — member 'count' from 'orders' conflicts with 'orders'. Use prefix: true or an alias.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rv, issues := ResolveView("views/sales.yaml", &tt.view, testCubes)

			assert.Equal(t, tt.want, sources(rv))
			if tt.wantOrder != nil {
				assert.Equal(t, tt.wantOrder, rv.Names())
			}

			require.Len(t, issues, tt.wantIssues)
			if tt.wantIssues > 0 {
				issue := issues[0]
				assert.Equal(t, core.KindCompositionConflict, issue.Kind)
				assert.Equal(t, "views/sales.yaml", issue.File)
				assert.Equal(t, "sales", issue.Entity)
				assert.Equal(t, tt.wantMessage, issue.Message)
				assert.Equal(t, "views/sales.yaml: "+tt.wantMessage, issue.Error())
			}
		})
	}
}

func TestResolveView_ConflictsDoNotOverwrite(t *testing.T) {
	view := schema.View{
		Name:       "sales",
		Dimensions: []schema.ViewDimension{{Name: "status", SQL: "'x'", Type: "string"}},
		Cubes: []schema.CubeReference{
			wildcard("orders"),
			explicit("orders.customers", schema.IncludeItem{Name: "name", Alias: "status"}),
		},
	}

	rv, issues := ResolveView("views/sales.yaml", &view, testCubes)
	require.Len(t, issues, 2)

	source, ok := rv.Source("status")
	require.True(t, ok)
	assert.Equal(t, "sales (direct)", source)

	assert.Contains(t, issues[0].Message, "from 'orders' conflicts with 'sales (direct)'")
	assert.Contains(t, issues[1].Message, "from 'orders.customers' conflicts with 'sales (direct)'")
}

func TestResolve_Namespace(t *testing.T) {
	docs := []*document.Document{
		{
			File: "cubes/orders.yaml",
			Cubes: []schema.Cube{{
				Name:       "orders",
				SQLTable:   "orders",
				Measures:   []schema.Measure{{Name: "count", Type: schema.MeasureCount}},
				Dimensions: []schema.Dimension{{Name: "status", Type: schema.DimensionString}},
			}},
		},
		{
			File: "views/sales.yaml",
			Views: []schema.View{
				{Name: "sales", Cubes: []schema.CubeReference{wildcard("orders")}},
				{
					Name:     "ops",
					Measures: []schema.ViewMeasure{{Name: "status", SQL: "1", Type: "number"}},
					Cubes:    []schema.CubeReference{wildcard("orders")},
				},
			},
		},
	}

	ns, nsIssues := namespace.Build(docs)
	require.Empty(t, nsIssues)

	resolved, issues := Resolve(ns)
	require.Len(t, resolved, 2)
	assert.Equal(t, "sales", resolved[0].View)
	assert.Equal(t, []string{"count", "status"}, resolved[0].Names())
	assert.Equal(t, "ops", resolved[1].View)
	assert.Equal(t, "views/sales.yaml", resolved[1].File)

	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "view 'ops' — member 'status'")
}

func TestDirectSource(t *testing.T) {
	assert.Equal(t, "sales (direct)", DirectSource("sales"))
}
