package schema

import "regexp"

// IdentifierPattern is the rule every cube, view and member name must match.
const IdentifierPattern = `^[A-Za-z_][A-Za-z0-9_]*$`

// RefreshIntervalPattern is the rule for refresh_key.every values, e.g. "1 hour".
const RefreshIntervalPattern = `^\d+\s+(second|minute|hour|day|week)s?$`

var (
	identifierRe      = regexp.MustCompile(IdentifierPattern)
	refreshIntervalRe = regexp.MustCompile(RefreshIntervalPattern)
)

// IsIdentifier reports whether s is a valid entity name.
func IsIdentifier(s string) bool {
	return identifierRe.MatchString(s)
}

// IsRefreshInterval reports whether s is a valid refresh interval.
func IsRefreshInterval(s string) bool {
	return refreshIntervalRe.MatchString(s)
}

// Constraint tags understood by the structural validator.
const (
	TagIdentifier         = "identifier"
	TagMeasureType        = "measure_type"
	TagDimensionType      = "dimension_type"
	TagRelationship       = "relationship"
	TagGranularity        = "granularity"
	TagPreAggregationType = "pre_aggregation_type"
	TagFormat             = "format"
	TagDimensionFormat    = "dimension_format"
	TagRefreshInterval    = "refresh_interval"
)

// EnumValues maps every enum constraint tag to its allowed values, in
// declaration order. Validation messages list these values verbatim.
var EnumValues = map[string][]string{
	TagMeasureType:        Strings(MeasureTypes),
	TagDimensionType:      Strings(DimensionTypes),
	TagRelationship:       Strings(Relationships),
	TagGranularity:        Strings(Granularities),
	TagPreAggregationType: Strings(PreAggregationTypes),
	TagFormat:             Strings(Formats),
	TagDimensionFormat:    Strings(Formats),
}
