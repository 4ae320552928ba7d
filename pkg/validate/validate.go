// Package validate runs the full validation pipeline over a project.
//
// The pipeline is staged:
//
//  1. every document is parsed and structurally validated on its own;
//  2. documents that passed are merged into the project namespace, which
//     reports duplicate names;
//  3. views are resolved, but only when stages 1 and 2 produced no issues
//     anywhere in the project;
//  4. advisories run over the parsed documents of a clean project.
//
// Malformed input never produces a Go error: it surfaces as issues in the
// Result. Only I/O failures while loading the project are returned as errors.
package validate

import (
	"context"
	"log/slog"

	"github.com/leapstack-labs/leapcube/pkg/advisory"
	_ "github.com/leapstack-labs/leapcube/pkg/advisory/rules" // registers AD* rules
	"github.com/leapstack-labs/leapcube/pkg/compose"
	"github.com/leapstack-labs/leapcube/pkg/core"
	"github.com/leapstack-labs/leapcube/pkg/document"
	"github.com/leapstack-labs/leapcube/pkg/namespace"
)

// Result is the aggregate outcome of validating a project.
type Result struct {
	Valid  bool         `json:"valid"`
	Errors []string     `json:"errors"`
	Issues []core.Issue `json:"issues"`
	Cubes  []string     `json:"cubes"`
	Views  []string     `json:"views"`

	MissingDescriptions    []advisory.MissingDescription `json:"missingDescriptions"`
	CubesMissingDataSource []string                      `json:"cubesMissingDataSource"`
	SuspectPrimaryKeys     []advisory.SuspectPrimaryKey  `json:"suspectPrimaryKeys"`

	// Diagnostics holds every advisory finding with its rule and severity.
	Diagnostics []advisory.Diagnostic `json:"-"`
	// Documents holds the documents that passed structural validation.
	Documents []*document.Document `json:"-"`
	// Resolved holds the resolved views of a valid project.
	Resolved []*compose.ResolvedView `json:"-"`
}

func newResult() *Result {
	return &Result{
		Valid:                  true,
		Errors:                 []string{},
		Issues:                 []core.Issue{},
		Cubes:                  []string{},
		Views:                  []string{},
		MissingDescriptions:    []advisory.MissingDescription{},
		CubesMissingDataSource: []string{},
		SuspectPrimaryKeys:     []advisory.SuspectPrimaryKey{},
	}
}

func (r *Result) addIssues(issues []core.Issue) {
	if len(issues) == 0 {
		return
	}
	r.Valid = false
	r.Issues = append(r.Issues, issues...)
	r.Errors = append(r.Errors, core.RenderIssues(issues)...)
}

// Loader supplies the raw documents of a project, in project order.
type Loader interface {
	Load(ctx context.Context) ([]document.Source, error)
}

// Config holds validator configuration.
type Config struct {
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
	// Advisories configures advisory rules (optional, all rules enabled if nil)
	Advisories *advisory.AnalyzerConfig
}

// Validator runs the validation pipeline. It holds no state between runs
// and is safe to reuse.
type Validator struct {
	logger   *slog.Logger
	analyzer *advisory.Analyzer
}

// New creates a validator.
func New(cfg Config) *Validator {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Validator{
		logger:   logger,
		analyzer: advisory.NewAnalyzer(cfg.Advisories),
	}
}

// ValidateProject loads every document through loader and validates them.
func (v *Validator) ValidateProject(ctx context.Context, loader Loader) (*Result, error) {
	sources, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	return v.ValidateFiles(sources), nil
}

// ValidateFiles validates sources, which must be in project order.
func (v *Validator) ValidateFiles(sources []document.Source) *Result {
	result := newResult()
	if len(sources) == 0 {
		v.logger.Debug("no documents found")
		return result
	}

	// Stage 1: parse and structurally validate each document.
	docs := make([]*document.Document, 0, len(sources))
	for _, src := range sources {
		doc, issues := document.Parse(src)
		if len(issues) > 0 {
			v.logger.Debug("document rejected", "file", src.Name, "issues", len(issues))
			result.addIssues(issues)
			continue
		}
		docs = append(docs, doc)
	}
	result.Documents = docs

	// Stage 2: project namespace.
	ns, dupes := namespace.Build(docs)
	result.addIssues(dupes)
	result.Cubes = append(result.Cubes, ns.Cubes()...)
	result.Views = append(result.Views, ns.Views()...)

	if !result.Valid {
		v.logger.Debug("skipping view composition", "issues", len(result.Issues))
		return result
	}

	// Stage 3: view composition.
	resolved, conflicts := compose.Resolve(ns)
	result.Resolved = resolved
	result.addIssues(conflicts)
	if !result.Valid {
		return result
	}

	// Stage 4: advisories.
	v.applyAdvisories(result, v.analyzer.Analyze(advisory.NewContext(docs)))

	v.logger.Debug("validation completed",
		"documents", len(docs),
		"cubes", len(result.Cubes),
		"views", len(result.Views),
		"advisories", len(result.Diagnostics))

	return result
}

func (v *Validator) applyAdvisories(result *Result, diags []advisory.Diagnostic) {
	result.Diagnostics = diags
	for _, d := range diags {
		switch {
		case d.MissingDescription != nil:
			result.MissingDescriptions = append(result.MissingDescriptions, *d.MissingDescription)
		case d.CubeWithoutDataSource != "":
			result.CubesMissingDataSource = append(result.CubesMissingDataSource, d.CubeWithoutDataSource)
		case d.SuspectPrimaryKey != nil:
			result.SuspectPrimaryKeys = append(result.SuspectPrimaryKeys, *d.SuspectPrimaryKey)
		}
	}
}

// ValidateFiles validates sources with a default validator.
func ValidateFiles(sources []document.Source) *Result {
	return New(Config{}).ValidateFiles(sources)
}
