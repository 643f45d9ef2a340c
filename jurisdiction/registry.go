package jurisdiction

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var (
	ErrDuplicateCode = errors.New("jurisdiction: rule set already registered for code")
	ErrInvalidRules  = errors.New("jurisdiction: invalid rule set")
)

// Registry resolves jurisdiction codes to their statute parameter tables.
// Lookup is exact-match only.
type Registry struct {
	rules map[string]RuleSet
}

// NewRegistry returns a registry seeded with the built-in California rules.
func NewRegistry() *Registry {
	r := &Registry{rules: make(map[string]RuleSet)}
	if err := r.Register(californiaRules()); err != nil {
		panic(err)
	}
	return r
}

func californiaRules() RuleSet {
	return RuleSet{
		Code:               "CA",
		Name:               "California",
		ReturnDeadlineDays: 21,
		PenaltyMultiplier:  decimal.NewFromInt(2),
		MaxDepositMonths: DepositCaps{
			UnfurnishedMonths: 2,
			FurnishedMonths:   3,
		},
		ReceiptThreshold: decimal.NewFromInt(126),
		AllowableDeductionCategories: []string{
			"Unpaid rent",
			"Damage beyond normal wear and tear",
			"Cleaning to return to move-in condition",
		},
		RequiredDocumentation: []string{
			"Itemized statement of deductions",
			"Receipts for repairs over $126",
			"Before and after photos",
		},
		Statutes: StatuteRefs{
			Base:        "California Civil Code Section 1950.5",
			Deadline:    "Civil Code Section 1950.5(g)(1)",
			Itemization: "Civil Code Section 1950.5(g)(2)",
			Receipts:    "Civil Code Section 1950.5(g)(2)",
			BadFaith:    "Civil Code Section 1950.5(l)",
		},
	}
}

// Register adds a rule set to the registry. The code must be unique.
func (r *Registry) Register(rs RuleSet) error {
	rs.Code = strings.ToUpper(strings.TrimSpace(rs.Code))
	if err := validateRuleSet(rs); err != nil {
		return err
	}
	if _, exists := r.rules[rs.Code]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateCode, rs.Code)
	}
	r.rules[rs.Code] = rs
	return nil
}

// RulesFor returns the rule set for an exact jurisdiction code match. The
// second return value is false when the jurisdiction is not supported.
func (r *Registry) RulesFor(code string) (RuleSet, bool) {
	rs, ok := r.rules[strings.ToUpper(strings.TrimSpace(code))]
	return rs, ok
}

// Supported lists the registered jurisdictions sorted by code.
func (r *Registry) Supported() []Option {
	out := make([]Option, 0, len(r.rules))
	for _, rs := range r.rules {
		out = append(out, Option{Code: rs.Code, Name: rs.Name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func validateRuleSet(rs RuleSet) error {
	if rs.Code == "" {
		return fmt.Errorf("%w: code required", ErrInvalidRules)
	}
	if rs.Name == "" {
		return fmt.Errorf("%w: name required for %s", ErrInvalidRules, rs.Code)
	}
	if rs.ReturnDeadlineDays <= 0 {
		return fmt.Errorf("%w: return deadline must be positive for %s", ErrInvalidRules, rs.Code)
	}
	if rs.PenaltyMultiplier.IsNegative() {
		return fmt.Errorf("%w: penalty multiplier must not be negative for %s", ErrInvalidRules, rs.Code)
	}
	if rs.ReceiptThreshold.IsNegative() {
		return fmt.Errorf("%w: receipt threshold must not be negative for %s", ErrInvalidRules, rs.Code)
	}
	if rs.Statutes.Base == "" {
		return fmt.Errorf("%w: base statute citation required for %s", ErrInvalidRules, rs.Code)
	}
	return nil
}

// ruleSetFile is the on-disk YAML shape. Monetary figures travel as strings
// so they parse through decimal instead of float64.
type ruleSetFile struct {
	Jurisdictions []struct {
		Code               string `yaml:"code"`
		Name               string `yaml:"name"`
		ReturnDeadlineDays int    `yaml:"return_deadline_days"`
		PenaltyMultiplier  string `yaml:"penalty_multiplier"`
		MaxDepositMonths   struct {
			Unfurnished int `yaml:"unfurnished"`
			Furnished   int `yaml:"furnished"`
		} `yaml:"max_deposit_months"`
		ReceiptThreshold             string   `yaml:"receipt_threshold"`
		AllowableDeductionCategories []string `yaml:"allowable_deduction_categories"`
		RequiredDocumentation        []string `yaml:"required_documentation"`
		MailingRequirements          string   `yaml:"mailing_requirements"`
		Statutes                     struct {
			Base        string `yaml:"base"`
			Deadline    string `yaml:"deadline"`
			Itemization string `yaml:"itemization"`
			Receipts    string `yaml:"receipts"`
			BadFaith    string `yaml:"bad_faith"`
		} `yaml:"statutes"`
	} `yaml:"jurisdictions"`
}

// LoadFile merges YAML-defined rule sets into the registry so new
// jurisdictions ship as data files rather than code changes.
func (r *Registry) LoadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("jurisdiction: read rules file: %w", err)
	}

	var file ruleSetFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("jurisdiction: parse rules file: %w", err)
	}

	for _, j := range file.Jurisdictions {
		multiplier, err := decimal.NewFromString(j.PenaltyMultiplier)
		if err != nil {
			return fmt.Errorf("jurisdiction: %s: penalty multiplier: %w", j.Code, err)
		}
		threshold := decimal.Zero
		if j.ReceiptThreshold != "" {
			threshold, err = decimal.NewFromString(j.ReceiptThreshold)
			if err != nil {
				return fmt.Errorf("jurisdiction: %s: receipt threshold: %w", j.Code, err)
			}
		}

		rs := RuleSet{
			Code:               j.Code,
			Name:               j.Name,
			ReturnDeadlineDays: j.ReturnDeadlineDays,
			PenaltyMultiplier:  multiplier,
			MaxDepositMonths: DepositCaps{
				UnfurnishedMonths: j.MaxDepositMonths.Unfurnished,
				FurnishedMonths:   j.MaxDepositMonths.Furnished,
			},
			ReceiptThreshold:             threshold,
			AllowableDeductionCategories: j.AllowableDeductionCategories,
			RequiredDocumentation:        j.RequiredDocumentation,
			MailingRequirements:          j.MailingRequirements,
			Statutes: StatuteRefs{
				Base:        j.Statutes.Base,
				Deadline:    j.Statutes.Deadline,
				Itemization: j.Statutes.Itemization,
				Receipts:    j.Statutes.Receipts,
				BadFaith:    j.Statutes.BadFaith,
			},
		}
		if err := r.Register(rs); err != nil {
			return err
		}
	}
	return nil
}
