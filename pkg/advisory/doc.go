// Package advisory provides non-blocking diagnostics over a valid project.
//
// Advisory rules look at the parsed documents of a project that has
// already passed structural, namespace and composition checks, and point
// out definitions that are legal but likely to surprise: members without
// descriptions, cubes relying on the default data source, and so on.
// Advisories never make a project invalid.
//
// # Architecture
//
// Rules register themselves with a global registry from init functions in
// the rules subpackage:
//
//	func init() {
//	    advisory.Register(advisory.RuleDef{
//	        ID:       "AD01",
//	        Name:     "missing-description",
//	        Severity: core.SeverityInfo,
//	        Check:    checkMissingDescriptions,
//	    })
//	}
//
// The Analyzer runs every registered rule in ID order, skipping disabled
// rules and applying severity overrides from configuration.
package advisory
