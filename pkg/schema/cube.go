package schema

// Cube is a named set of measures, dimensions and joins over one SQL source
// or another cube it extends.
type Cube struct {
	Name            string           `yaml:"name" schema:"required" validate:"identifier"`
	SQL             string           `yaml:"sql"`
	SQLTable        string           `yaml:"sql_table"`
	Extends         string           `yaml:"extends"`
	DataSource      string           `yaml:"data_source"`
	Description     string           `yaml:"description"`
	Title           string           `yaml:"title"`
	Public          *bool            `yaml:"public"`
	RefreshKey      *RefreshKey      `yaml:"refresh_key"`
	Measures        []Measure        `yaml:"measures" validate:"dive"`
	Dimensions      []Dimension      `yaml:"dimensions" validate:"dive"`
	Joins           []Join           `yaml:"joins" validate:"dive"`
	Segments        []Segment        `yaml:"segments" validate:"dive"`
	PreAggregations []PreAggregation `yaml:"pre_aggregations" validate:"dive"`
	Hierarchies     []Hierarchy      `yaml:"hierarchies" validate:"dive"`

	// Line is the 1-based source line of the cube mapping.
	Line int `yaml:"-"`
	// Keys records which mapping keys appeared in the source, so an explicit
	// empty string can be told apart from an absent key.
	Keys map[string]bool `yaml:"-"`
}

// sourceKeys are the keys that name where a cube's rows come from.
var sourceKeys = []string{"sql", "sql_table", "extends"}

// HasSource reports whether at least one of sql, sql_table or extends is
// present, even if empty.
func (c *Cube) HasSource() bool {
	for _, key := range sourceKeys {
		if c.Keys[key] {
			return true
		}
	}
	return c.SQL != "" || c.SQLTable != "" || c.Extends != ""
}

// MeasureNames returns measure names in declaration order.
func (c *Cube) MeasureNames() []string {
	names := make([]string, 0, len(c.Measures))
	for _, m := range c.Measures {
		if m.Name != "" {
			names = append(names, m.Name)
		}
	}
	return names
}

// DimensionNames returns dimension names in declaration order.
func (c *Cube) DimensionNames() []string {
	names := make([]string, 0, len(c.Dimensions))
	for _, d := range c.Dimensions {
		if d.Name != "" {
			names = append(names, d.Name)
		}
	}
	return names
}

// SegmentNames returns segment names in declaration order.
func (c *Cube) SegmentNames() []string {
	names := make([]string, 0, len(c.Segments))
	for _, s := range c.Segments {
		if s.Name != "" {
			names = append(names, s.Name)
		}
	}
	return names
}

// RefreshKey controls cache invalidation: either a fixed interval or a SQL query.
type RefreshKey struct {
	Every string `yaml:"every" validate:"omitempty,refresh_interval"`
	SQL   string `yaml:"sql"`
}

// Measure is an aggregation exposed by a cube.
type Measure struct {
	Name          string          `yaml:"name" schema:"required" validate:"identifier"`
	Type          MeasureType     `yaml:"type" schema:"required" validate:"measure_type"`
	SQL           string          `yaml:"sql"`
	Description   string          `yaml:"description"`
	Title         string          `yaml:"title"`
	Format        Format          `yaml:"format" validate:"omitempty,format"`
	Public        *bool           `yaml:"public"`
	Filters       []MeasureFilter `yaml:"filters"`
	RollingWindow *RollingWindow  `yaml:"rolling_window"`
	DrillMembers  []string        `yaml:"drill_members"`
	Meta          map[string]any  `yaml:"meta"`
}

// MeasureFilter restricts the rows a measure aggregates.
type MeasureFilter struct {
	SQL string `yaml:"sql" schema:"required"`
}

// RollingWindow turns a measure into a rolling aggregate.
type RollingWindow struct {
	Trailing string `yaml:"trailing"`
	Leading  string `yaml:"leading"`
	Offset   string `yaml:"offset"`
}

// Dimension is an attribute exposed by a cube.
type Dimension struct {
	Name                       string         `yaml:"name" schema:"required" validate:"identifier"`
	Type                       DimensionType  `yaml:"type" schema:"required" validate:"dimension_type"`
	SQL                        string         `yaml:"sql"`
	PrimaryKey                 bool           `yaml:"primary_key"`
	SubQuery                   bool           `yaml:"sub_query"`
	PropagateFiltersToSubQuery bool           `yaml:"propagate_filters_to_sub_query"`
	Description                string         `yaml:"description"`
	Title                      string         `yaml:"title"`
	Format                     Format         `yaml:"format" validate:"omitempty,dimension_format"`
	Public                     *bool          `yaml:"public"`
	Meta                       map[string]any `yaml:"meta"`
	Latitude                   *SQLRef        `yaml:"latitude"`
	Longitude                  *SQLRef        `yaml:"longitude"`
	Case                       *SwitchCase    `yaml:"case"`
}

// SQLRef wraps a single SQL expression, as used by geo coordinates.
type SQLRef struct {
	SQL string `yaml:"sql" schema:"required"`
}

// SwitchCase defines the labelled branches of a switch dimension.
type SwitchCase struct {
	When []SwitchWhen `yaml:"when" schema:"required"`
	Else *SwitchElse  `yaml:"else"`
}

// SwitchWhen is one labelled condition of a switch dimension.
type SwitchWhen struct {
	SQL   string `yaml:"sql" schema:"required"`
	Label string `yaml:"label" schema:"required"`
}

// SwitchElse is the fallback label of a switch dimension.
type SwitchElse struct {
	Label string `yaml:"label" schema:"required"`
}

// Join links a cube to another cube.
type Join struct {
	Name         string       `yaml:"name" schema:"required" validate:"identifier"`
	Relationship Relationship `yaml:"relationship" schema:"required" validate:"relationship"`
	SQL          string       `yaml:"sql" schema:"required"`
}

// Segment is a named, reusable row filter.
type Segment struct {
	Name        string `yaml:"name" schema:"required" validate:"identifier"`
	SQL         string `yaml:"sql" schema:"required"`
	Description string `yaml:"description"`
	Title       string `yaml:"title"`
	Public      *bool  `yaml:"public"`
}

// PreAggregation declares a materialized rollup of a cube.
type PreAggregation struct {
	Name                 string             `yaml:"name" schema:"required" validate:"identifier"`
	Type                 PreAggregationType `yaml:"type" validate:"omitempty,pre_aggregation_type"`
	Measures             []string           `yaml:"measures"`
	Dimensions           []string           `yaml:"dimensions"`
	TimeDimension        string             `yaml:"time_dimension"`
	Granularity          Granularity        `yaml:"granularity" validate:"omitempty,granularity"`
	PartitionGranularity Granularity        `yaml:"partition_granularity" validate:"omitempty,granularity"`
	RefreshKey           *RefreshKey        `yaml:"refresh_key"`
	ScheduledRefresh     *bool              `yaml:"scheduled_refresh"`
}

// Hierarchy is an ordered drill path over dimensions.
type Hierarchy struct {
	Name   string   `yaml:"name" schema:"required" validate:"identifier"`
	Levels []string `yaml:"levels" schema:"required"`
	Title  string   `yaml:"title"`
	Public *bool    `yaml:"public"`
}
