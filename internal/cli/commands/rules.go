package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/leapstack-labs/leapcube/internal/cli/output"
	"github.com/leapstack-labs/leapcube/pkg/advisory"
	_ "github.com/leapstack-labs/leapcube/pkg/advisory/rules" // register advisory rules
	"github.com/leapstack-labs/leapcube/pkg/core"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group   string // Filter by group
	Verbose bool   // Show full documentation
	Format  string // Output format
}

// RuleStatus is a rule with its effective configuration.
type RuleStatus struct {
	core.RuleInfo
	Enabled  bool          `json:"enabled"`
	Severity core.Severity `json:"severity"`
}

// RulesJSONOutput is the JSON output structure for rules listing.
type RulesJSONOutput struct {
	Rules []RuleStatus `json:"rules"`
	Count struct {
		Enabled int `json:"enabled"`
		Total   int `json:"total"`
	} `json:"count"`
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List advisory rules",
		Long: `List the advisory rules run after a successful validation.

Advisories never fail validation. They can be disabled or given another
severity in leapcube.yaml:

  advisories:
    disabled: [AD01]
    severity:
      AD03: error`,
		Example: `  # List all rules
  leapcube rules

  # Show details for a specific rule
  leapcube rules AD03

  # List rules in the modeling group
  leapcube rules --group modeling

  # Output as JSON
  leapcube rules --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "V", false, "Show full documentation")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")

	return cmd
}

// ruleStatuses resolves each rule against the advisory configuration.
func ruleStatuses(rules []advisory.RuleDef, cfg *core.AdvisoryConfig) ([]RuleStatus, error) {
	ac, err := advisory.ConfigFromProject(cfg)
	if err != nil {
		return nil, err
	}
	statuses := make([]RuleStatus, 0, len(rules))
	for _, rule := range rules {
		sev := rule.Severity
		if override, ok := ac.SeverityOverrides[rule.ID]; ok {
			sev = override
		}
		statuses = append(statuses, RuleStatus{
			RuleInfo: rule.Info(),
			Enabled:  !ac.DisabledRules[rule.ID],
			Severity: sev,
		})
	}
	return statuses, nil
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	cmdCtx := NewCommandContextWithoutValidator(cmd)
	cmdCtx.WithFormat(cmd, opts.Format)
	r := cmdCtx.Renderer

	rules := advisory.GetAll()
	if opts.Group != "" {
		rules = advisory.GetByGroup(opts.Group)
	}

	statuses, err := ruleStatuses(rules, cmdCtx.Cfg.Advisories)
	if err != nil {
		return err
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		out := RulesJSONOutput{Rules: statuses}
		for _, s := range statuses {
			if s.Enabled {
				out.Count.Enabled++
			}
		}
		out.Count.Total = advisory.Count()
		return r.JSON(out)
	case output.ModeMarkdown:
		listRulesMarkdown(r, statuses, opts.Verbose)
	default:
		listRulesText(r, statuses, opts.Verbose)
	}
	return nil
}

func showRule(cmd *cobra.Command, ruleID string, opts *RulesOptions) error {
	cmdCtx := NewCommandContextWithoutValidator(cmd)
	cmdCtx.WithFormat(cmd, opts.Format)
	r := cmdCtx.Renderer

	rule, ok := advisory.GetByID(ruleID)
	if !ok {
		return fmt.Errorf("rule %q not found", ruleID)
	}
	statuses, err := ruleStatuses([]advisory.RuleDef{rule}, cmdCtx.Cfg.Advisories)
	if err != nil {
		return err
	}
	status := statuses[0]

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(status)
	case output.ModeMarkdown:
		showRuleMarkdown(r, status)
	default:
		showRuleText(r, status)
	}
	return nil
}

// listRulesText outputs rules in styled text format.
func listRulesText(r *output.Renderer, rules []RuleStatus, verbose bool) {
	styles := r.Styles()
	titleCaser := cases.Title(language.English)

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("Advisory Rules (%d)", len(rules))))
	r.Println("")

	currentGroup := ""
	for _, rule := range rules {
		if rule.Group != currentGroup {
			currentGroup = rule.Group
			r.Println(styles.Bold.Render("  " + titleCaser.String(currentGroup)))
		}

		state := getSeverityStyle(styles, rule.Severity).Render(rule.Severity.String())
		if !rule.Enabled {
			state = styles.Muted.Render("disabled")
		}
		r.Printf("    %s  %s - %s\n", styles.Muted.Render(rule.ID), rule.Name, state)

		if verbose {
			r.Println(styles.Muted.Render("        " + rule.Description))
			if rule.Rationale != "" {
				r.Println(styles.Muted.Render("        Why: " + rule.Rationale))
			}
			r.Println("")
		}
	}

	r.Println("")
	r.Println(styles.Muted.Render("Use 'leapcube rules <rule-id>' for detailed documentation"))
	r.Println("")
}

// listRulesMarkdown outputs rules in markdown format.
func listRulesMarkdown(r *output.Renderer, rules []RuleStatus, verbose bool) {
	titleCaser := cases.Title(language.English)
	r.Println(output.FormatHeader(1, "Advisory Rules"))
	r.Println("")

	currentGroup := ""
	for _, rule := range rules {
		if rule.Group != currentGroup {
			currentGroup = rule.Group
			r.Println(output.FormatHeader(2, titleCaser.String(currentGroup)))
			r.Println("")
		}

		state := rule.Severity.String()
		if !rule.Enabled {
			state = "disabled"
		}
		r.Printf("- **%s** - %s (`%s`)\n", rule.ID, rule.Name, state)
		if verbose {
			r.Println("  " + rule.Description)
			if rule.Rationale != "" {
				r.Println("  > " + rule.Rationale)
			}
		}
	}
	r.Println("")
}

// showRuleText displays detailed rule info in text format.
func showRuleText(r *output.Renderer, rule RuleStatus) {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("%s - %s", rule.ID, rule.Name)))
	r.Println("")

	r.Printf("  %s: %s\n", styles.Bold.Render("Group"), rule.Group)
	r.Printf("  %s: %s\n", styles.Bold.Render("Severity"), rule.Severity.String())
	if rule.Severity != rule.DefaultSeverity {
		r.Printf("  %s: %s\n", styles.Bold.Render("Default"), rule.DefaultSeverity.String())
	}
	if !rule.Enabled {
		r.Printf("  %s: %s\n", styles.Bold.Render("Status"), styles.Muted.Render("disabled"))
	}
	r.Println("")

	r.Println(styles.Bold.Render("Description"))
	r.Println("  " + rule.Description)
	r.Println("")

	if rule.Rationale != "" {
		r.Println(styles.Bold.Render("Why This Matters"))
		r.Println("  " + rule.Rationale)
		r.Println("")
	}

	if rule.Fix != "" {
		r.Println(styles.Bold.Render("How to Fix"))
		r.Println("  " + rule.Fix)
		r.Println("")
	}
}

// showRuleMarkdown displays detailed rule info in markdown format.
func showRuleMarkdown(r *output.Renderer, rule RuleStatus) {
	r.Printf("# %s - %s\n\n", rule.ID, rule.Name)
	state := rule.Severity.String()
	if !rule.Enabled {
		state = "disabled"
	}
	r.Printf("**Group:** %s | **Severity:** `%s`\n\n", rule.Group, state)
	r.Println(rule.Description)
	r.Println("")

	if rule.Rationale != "" {
		r.Println(output.FormatHeader(2, "Why This Matters"))
		r.Println("")
		r.Println(rule.Rationale)
		r.Println("")
	}

	if rule.Fix != "" {
		r.Println(output.FormatHeader(2, "How to Fix"))
		r.Println("")
		r.Println(rule.Fix)
		r.Println("")
	}
}

func getSeverityStyle(styles *output.Styles, sev core.Severity) lipgloss.Style {
	switch sev {
	case core.SeverityError:
		return styles.Error
	case core.SeverityWarning:
		return styles.Warning
	case core.SeverityInfo:
		return styles.Info
	default:
		return styles.Muted
	}
}
