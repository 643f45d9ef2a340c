package claim

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"49", "$49.00"},
		{"126", "$126.00"},
		{"2000", "$2,000.00"},
		{"6000", "$6,000.00"},
		{"1234567.5", "$1,234,567.50"},
		{"999.999", "$1,000.00"},
	}
	for _, c := range cases {
		d, err := decimal.NewFromString(c.in)
		if err != nil {
			t.Fatalf("parse %q: %v", c.in, err)
		}
		if got := FormatCurrency(d); got != c.want {
			t.Fatalf("FormatCurrency(%s) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSynthesizeLetter_PenaltyCase(t *testing.T) {
	rec := baseRecord(t)
	rules := caRules(t)
	outcome := ComputeOutcome(rec, rules, fixedToday)

	letter := SynthesizeLetter(rec, outcome, rules, fixedToday)

	for _, want := range []string{
		"March 15, 2026",
		"Jordan Tenant",
		"12 Main St, Oakland, CA",
		"landlord@example.com",
		"Re: Demand for Return of Security Deposit",
		"Dear Landlord,",
		"$2,000.00",
		"LEASE DETAILS:",
		"- Lease End Date: January 14, 2026",
		"- Amount Returned: $0.00",
		"CALIFORNIA LAW REQUIREMENTS:",
		"Under California Civil Code Section 1950.5, you were required to return my security deposit within 21 days of move-out",
		"1. Itemized statement of deductions",
		"2. Receipts for repairs over $126",
		"3. Before and after photos",
		"I have not received the required itemization.",
		"DEMAND:",
		"I demand the immediate return of $2,000.00 within 10 days of receipt of this letter.",
		"small claims court for $6,000.00",
		"statutory penalties of up to $4,000.00",
		"Please send payment to:",
		"I expect your prompt attention to this matter.",
		"Sincerely,",
	} {
		if !strings.Contains(letter, want) {
			t.Fatalf("letter missing %q:\n%s", want, letter)
		}
	}

	if strings.Contains(letter, "MAILING REQUIREMENTS:") {
		t.Fatal("expected mailing requirements section to be omitted for CA")
	}
	if !strings.HasSuffix(letter, "Sincerely,\nJordan Tenant") {
		t.Fatalf("expected signature block at the end, got:\n%s", letter[len(letter)-80:])
	}
}

func TestSynthesizeLetter_ReceivedItemizationLeadIn(t *testing.T) {
	rec := baseRecord(t)
	itemized := rec.LeaseEndDate.AddDate(0, 0, 30)
	rec.Itemization = ItemizationReceived
	rec.ItemizationDate = &itemized
	rec.DeductionCharacter = DeductionExcessive
	rules := caRules(t)
	outcome := ComputeOutcome(rec, rules, fixedToday)

	letter := SynthesizeLetter(rec, outcome, rules, fixedToday)

	if !strings.Contains(letter, "I received an itemization on February 13, 2026, however, the deductions appear excessive") {
		t.Fatalf("expected received-itemization lead-in, got:\n%s", letter)
	}
	if strings.Contains(letter, "I have not received") {
		t.Fatal("letter must not contain the not-received lead-in")
	}
}

func TestSynthesizeLetter_ViolationNarrativeBranches(t *testing.T) {
	rules := caRules(t)
	cases := []struct {
		deduction DeductionCharacter
		want      string
	}{
		{DeductionUnclear, "unclear and not properly documented"},
		{DeductionExcessive, "excessive and beyond normal wear and tear"},
		{DeductionNormalWear, "normal wear and tear, which is not permissible under California law"},
		{DeductionFraudulent, "appear to be fraudulent"},
	}
	for _, c := range cases {
		rec := baseRecord(t)
		rec.DeductionCharacter = c.deduction
		outcome := ComputeOutcome(rec, rules, fixedToday)
		letter := SynthesizeLetter(rec, outcome, rules, fixedToday)
		if !strings.Contains(letter, c.want) {
			t.Fatalf("deduction %s: letter missing %q", c.deduction, c.want)
		}
	}
}

func TestSynthesizeLetter_MailingRequirementsIncludedWhenPresent(t *testing.T) {
	rec := baseRecord(t)
	rules := caRules(t)
	rules.MailingRequirements = "Send by certified mail to the landlord's address of record."
	outcome := ComputeOutcome(rec, rules, fixedToday)

	letter := SynthesizeLetter(rec, outcome, rules, fixedToday)

	if !strings.Contains(letter, "MAILING REQUIREMENTS:\nSend by certified mail") {
		t.Fatalf("expected mailing requirements section, got:\n%s", letter)
	}
}

func TestSynthesizeLetter_ByteIdentical(t *testing.T) {
	rec := baseRecord(t)
	rules := caRules(t)
	outcome := ComputeOutcome(rec, rules, fixedToday)

	first := SynthesizeLetter(rec, outcome, rules, fixedToday)
	second := SynthesizeLetter(rec, outcome, rules, fixedToday)

	if first != second {
		t.Fatal("expected byte-identical letters for identical inputs")
	}
}
