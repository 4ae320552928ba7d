package schema

import "strings"

// MeasureType is the aggregation or value type of a cube measure.
type MeasureType string

// Measure types.
const (
	MeasureCount               MeasureType = "count"
	MeasureCountDistinct       MeasureType = "count_distinct"
	MeasureCountDistinctApprox MeasureType = "count_distinct_approx"
	MeasureSum                 MeasureType = "sum"
	MeasureAvg                 MeasureType = "avg"
	MeasureMin                 MeasureType = "min"
	MeasureMax                 MeasureType = "max"
	MeasureNumber              MeasureType = "number"
	MeasureString              MeasureType = "string"
	MeasureTime                MeasureType = "time"
	MeasureBoolean             MeasureType = "boolean"
	MeasureRunningTotal        MeasureType = "running_total"
	MeasureNumberAgg           MeasureType = "number_agg"
)

// MeasureTypes lists every valid measure type in declaration order.
var MeasureTypes = []MeasureType{
	MeasureCount, MeasureCountDistinct, MeasureCountDistinctApprox,
	MeasureSum, MeasureAvg, MeasureMin, MeasureMax,
	MeasureNumber, MeasureString, MeasureTime, MeasureBoolean,
	MeasureRunningTotal, MeasureNumberAgg,
}

// DimensionType is the value type of a cube dimension.
type DimensionType string

// Dimension types.
const (
	DimensionString  DimensionType = "string"
	DimensionNumber  DimensionType = "number"
	DimensionBoolean DimensionType = "boolean"
	DimensionTime    DimensionType = "time"
	DimensionGeo     DimensionType = "geo"
	DimensionSwitch  DimensionType = "switch"
)

// DimensionTypes lists every valid dimension type in declaration order.
var DimensionTypes = []DimensionType{
	DimensionString, DimensionNumber, DimensionBoolean,
	DimensionTime, DimensionGeo, DimensionSwitch,
}

// Relationship is the cardinality of a cube join.
type Relationship string

// Join relationships.
const (
	ManyToOne Relationship = "many_to_one"
	OneToMany Relationship = "one_to_many"
	OneToOne  Relationship = "one_to_one"
)

// Relationships lists every valid join relationship.
var Relationships = []Relationship{ManyToOne, OneToMany, OneToOne}

// Granularity is a time bucket size.
type Granularity string

// Time granularities, finest first.
const (
	GranularitySecond  Granularity = "second"
	GranularityMinute  Granularity = "minute"
	GranularityHour    Granularity = "hour"
	GranularityDay     Granularity = "day"
	GranularityWeek    Granularity = "week"
	GranularityMonth   Granularity = "month"
	GranularityQuarter Granularity = "quarter"
	GranularityYear    Granularity = "year"
)

// Granularities lists every valid granularity, finest first.
var Granularities = []Granularity{
	GranularitySecond, GranularityMinute, GranularityHour, GranularityDay,
	GranularityWeek, GranularityMonth, GranularityQuarter, GranularityYear,
}

// PreAggregationType selects how a pre-aggregation is built.
type PreAggregationType string

// Pre-aggregation types.
const (
	PreAggRollup       PreAggregationType = "rollup"
	PreAggOriginalSQL  PreAggregationType = "original_sql"
	PreAggRollupJoin   PreAggregationType = "rollup_join"
	PreAggRollupLambda PreAggregationType = "rollup_lambda"
)

// PreAggregationTypes lists every valid pre-aggregation type.
var PreAggregationTypes = []PreAggregationType{
	PreAggRollup, PreAggOriginalSQL, PreAggRollupJoin, PreAggRollupLambda,
}

// Format is a display format for measures and dimensions.
type Format string

// Display formats.
const (
	FormatPercent  Format = "percent"
	FormatCurrency Format = "currency"
	FormatNumber   Format = "number"
	FormatImageURL Format = "imageUrl"
	FormatLink     Format = "link"
	FormatID       Format = "id"
)

// Formats lists every named display format.
var Formats = []Format{
	FormatPercent, FormatCurrency, FormatNumber, FormatImageURL, FormatLink, FormatID,
}

// StrftimePrefix starts a POSIX strftime-style dimension format, e.g. "%Y-%m-%d".
const StrftimePrefix = "%"

// IsTimeFormat reports whether f is a strftime-style format string.
func (f Format) IsTimeFormat() bool {
	return strings.HasPrefix(string(f), StrftimePrefix)
}

// Strings converts a slice of any string-backed enum to plain strings.
func Strings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// Contains reports whether v is one of values.
func Contains[T ~string](values []T, v string) bool {
	for _, candidate := range values {
		if string(candidate) == v {
			return true
		}
	}
	return false
}
