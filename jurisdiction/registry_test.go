package jurisdiction

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

func TestRegistry_BuiltinCalifornia(t *testing.T) {
	r := NewRegistry()

	rs, ok := r.RulesFor("CA")
	if !ok {
		t.Fatal("expected CA rule set to be registered")
	}
	if rs.ReturnDeadlineDays != 21 {
		t.Fatalf("expected 21 day deadline, got %d", rs.ReturnDeadlineDays)
	}
	if !rs.PenaltyMultiplier.Equal(decimal.NewFromInt(2)) {
		t.Fatalf("expected 2x penalty multiplier, got %s", rs.PenaltyMultiplier)
	}
	if !rs.ReceiptThreshold.Equal(decimal.NewFromInt(126)) {
		t.Fatalf("expected $126 receipt threshold, got %s", rs.ReceiptThreshold)
	}
	if len(rs.RequiredDocumentation) != 3 {
		t.Fatalf("expected 3 required documentation items, got %d", len(rs.RequiredDocumentation))
	}
	if rs.Statutes.Base == "" {
		t.Fatal("expected base statute citation")
	}
}

func TestRegistry_LookupNormalizesCode(t *testing.T) {
	r := NewRegistry()

	if _, ok := r.RulesFor(" ca "); !ok {
		t.Fatal("expected lookup to trim and uppercase the code")
	}
}

func TestRegistry_UnknownCodeAbsent(t *testing.T) {
	r := NewRegistry()

	if _, ok := r.RulesFor("TX"); ok {
		t.Fatal("expected TX to be unsupported")
	}
}

func TestRegistry_DuplicateCodeRejected(t *testing.T) {
	r := NewRegistry()

	err := r.Register(californiaRules())
	if !errors.Is(err, ErrDuplicateCode) {
		t.Fatalf("expected ErrDuplicateCode, got %v", err)
	}
}

func TestRegistry_RegisterValidation(t *testing.T) {
	r := NewRegistry()

	rs := californiaRules()
	rs.Code = "NV"
	rs.ReturnDeadlineDays = 0
	if err := r.Register(rs); !errors.Is(err, ErrInvalidRules) {
		t.Fatalf("expected ErrInvalidRules for zero deadline, got %v", err)
	}
}

func TestRegistry_Supported(t *testing.T) {
	r := NewRegistry()

	opts := r.Supported()
	if len(opts) != 1 {
		t.Fatalf("expected 1 supported jurisdiction, got %d", len(opts))
	}
	if opts[0].Code != "CA" || opts[0].Name != "California" {
		t.Fatalf("unexpected option: %+v", opts[0])
	}
}

const washingtonYAML = `
jurisdictions:
  - code: WA
    name: Washington
    return_deadline_days: 30
    penalty_multiplier: "2"
    max_deposit_months:
      unfurnished: 0
      furnished: 0
    receipt_threshold: "0"
    allowable_deduction_categories:
      - Unpaid rent
      - Damage beyond wear resulting from ordinary use
    required_documentation:
      - Full and specific statement of the basis for retention
    mailing_requirements: Deliver the statement personally or by first-class mail to the tenant's last known address.
    statutes:
      base: RCW 59.18.280
      deadline: RCW 59.18.280(1)(a)
      itemization: RCW 59.18.280(1)(a)
      bad_faith: RCW 59.18.280(2)
`

func TestRegistry_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte(washingtonYAML), 0o600); err != nil {
		t.Fatalf("write rules file: %v", err)
	}

	r := NewRegistry()
	if err := r.LoadFile(path); err != nil {
		t.Fatalf("load rules file: %v", err)
	}

	rs, ok := r.RulesFor("WA")
	if !ok {
		t.Fatal("expected WA rule set after load")
	}
	if rs.ReturnDeadlineDays != 30 {
		t.Fatalf("expected 30 day deadline, got %d", rs.ReturnDeadlineDays)
	}
	if rs.MailingRequirements == "" {
		t.Fatal("expected mailing requirements to survive the load")
	}
	if got := len(r.Supported()); got != 2 {
		t.Fatalf("expected 2 supported jurisdictions, got %d", got)
	}
}

func TestRegistry_LoadFileBadMultiplier(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	bad := `
jurisdictions:
  - code: OR
    name: Oregon
    return_deadline_days: 31
    penalty_multiplier: "two"
    statutes:
      base: ORS 90.300
`
	if err := os.WriteFile(path, []byte(bad), 0o600); err != nil {
		t.Fatalf("write rules file: %v", err)
	}

	r := NewRegistry()
	if err := r.LoadFile(path); err == nil {
		t.Fatal("expected error for unparseable multiplier")
	}
}
