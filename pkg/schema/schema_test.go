package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnumSizes(t *testing.T) {
	assert.Len(t, MeasureTypes, 13)
	assert.Len(t, DimensionTypes, 6)
	assert.Len(t, Relationships, 3)
	assert.Len(t, Granularities, 8)
	assert.Len(t, PreAggregationTypes, 4)
	assert.Len(t, Formats, 6)
}

func TestEnumValuesCoverTags(t *testing.T) {
	for _, tag := range []string{
		TagMeasureType, TagDimensionType, TagRelationship, TagGranularity,
		TagPreAggregationType, TagFormat, TagDimensionFormat,
	} {
		assert.NotEmpty(t, EnumValues[tag], "tag %q should have values", tag)
	}
	assert.Equal(t, "count", EnumValues[TagMeasureType][0])
	assert.Equal(t, "number_agg", EnumValues[TagMeasureType][12])
}

func TestIsIdentifier(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"simple", "orders", true},
		{"leading underscore", "_internal", true},
		{"mixed case digits", "Order_Items2", true},
		{"leading digit", "1abc", false},
		{"dash", "a-b", false},
		{"empty", "", false},
		{"dot", "orders.count", false},
		{"space", "order count", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsIdentifier(tt.input))
		})
	}
}

func TestIsRefreshInterval(t *testing.T) {
	assert.True(t, IsRefreshInterval("1 hour"))
	assert.True(t, IsRefreshInterval("30 minutes"))
	assert.True(t, IsRefreshInterval("1  day"))
	assert.True(t, IsRefreshInterval("2 weeks"))
	assert.False(t, IsRefreshInterval("1 month"))
	assert.False(t, IsRefreshInterval("hourly"))
	assert.False(t, IsRefreshInterval("1hour"))
}

func TestFormat_IsTimeFormat(t *testing.T) {
	assert.True(t, Format("%Y-%m-%d").IsTimeFormat())
	assert.False(t, FormatCurrency.IsTimeFormat())
}

func TestCubeReference_TargetCube(t *testing.T) {
	tests := []struct {
		joinPath string
		want     string
	}{
		{"orders", "orders"},
		{"orders.customers", "customers"},
		{"line_items.orders.customers", "customers"},
	}

	for _, tt := range tests {
		t.Run(tt.joinPath, func(t *testing.T) {
			ref := CubeReference{JoinPath: tt.joinPath}
			assert.Equal(t, tt.want, ref.TargetCube())
		})
	}
}

func TestIncludeItem_ExposedName(t *testing.T) {
	assert.Equal(t, "count", IncludeItem{Name: "count"}.ExposedName())
	assert.Equal(t, "order_count", IncludeItem{Name: "count", Alias: "order_count"}.ExposedName())
}

func TestCube_MemberNames(t *testing.T) {
	cube := Cube{
		Name:       "orders",
		SQLTable:   "public.orders",
		Measures:   []Measure{{Name: "count"}, {Name: "total"}},
		Dimensions: []Dimension{{Name: "status"}},
		Segments:   []Segment{{Name: "completed"}},
	}

	assert.True(t, cube.HasSource())
	assert.Equal(t, []string{"count", "total"}, cube.MeasureNames())
	assert.Equal(t, []string{"status"}, cube.DimensionNames())
	assert.Equal(t, []string{"completed"}, cube.SegmentNames())
	assert.False(t, (&Cube{Name: "x"}).HasSource())
}

func TestCube_HasSource(t *testing.T) {
	tests := []struct {
		name string
		cube Cube
		want bool
	}{
		{name: "none", cube: Cube{Name: "x"}, want: false},
		{name: "sql", cube: Cube{SQL: "select 1"}, want: true},
		{name: "extends", cube: Cube{Extends: "base"}, want: true},
		{name: "empty sql key present", cube: Cube{Keys: map[string]bool{"sql": true}}, want: true},
		{name: "empty sql_table key present", cube: Cube{Keys: map[string]bool{"name": true, "sql_table": true}}, want: true},
		{name: "only unrelated keys", cube: Cube{Keys: map[string]bool{"name": true, "title": true}}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cube.HasSource())
		})
	}
}
