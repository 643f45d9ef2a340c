package claim

import (
	"math"
	"time"

	"depositflow/jurisdiction"

	"github.com/shopspring/decimal"
)

// ComputeOutcome evaluates the statute rules for one case. It is pure:
// the caller supplies the current date, so identical inputs always produce
// an identical outcome.
func ComputeOutcome(rec Record, rules jurisdiction.RuleSet, today time.Time) Outcome {
	withheld := rec.DepositAmount.Sub(rec.AmountReturned)
	if withheld.IsNegative() {
		// A landlord that returned more than the deposit never owes a
		// negative amount.
		withheld = decimal.Zero
	}

	// overdue keeps its sign: the penalty trigger needs to know whether the
	// deadline was actually missed, while the reported figure floors at 0.
	overdue := daysBetween(rec.LeaseEndDate, today) - rules.ReturnDeadlineDays
	daysLate := overdue
	if daysLate < 0 {
		daysLate = 0
	}

	penalty := decimal.Zero
	if badFaith(rec, overdue) {
		penalty = rec.DepositAmount.Mul(rules.PenaltyMultiplier)
	}

	class := classify(rec, rules)

	return Outcome{
		DepositWithheld:    withheld,
		DaysLate:           daysLate,
		PenaltyAmount:      penalty,
		TotalClaim:         withheld.Add(penalty),
		Classification:     class,
		Explanation:        explanations[class],
		ApplicableStatutes: statutesFor(class, rules),
	}
}

// badFaith decides whether the statutory penalty multiplier applies: the
// deadline was missed and the landlord either never itemized or the
// deductions are substantively characterized. A missed deadline whose only
// issue is an "unclear" characterization does not trigger the penalty;
// that asymmetry is pending legal review and must not change without it.
func badFaith(rec Record, overdueDays int) bool {
	if overdueDays <= 0 {
		return false
	}
	return rec.Itemization != ItemizationReceived || rec.DeductionCharacter != DeductionUnclear
}

// daysBetween returns whole days elapsed from one date to another, floored.
func daysBetween(from, to time.Time) int {
	return int(math.Floor(to.Sub(from).Hours() / 24))
}

// classify picks the strongest applicable tier in fixed priority order.
func classify(rec Record, rules jurisdiction.RuleSet) Classification {
	if rec.Itemization != ItemizationReceived {
		return ClassificationNoItemization
	}
	deadline := rec.LeaseEndDate.AddDate(0, 0, rules.ReturnDeadlineDays)
	if rec.ItemizationDate != nil && rec.ItemizationDate.After(deadline) {
		return ClassificationLateItemization
	}
	if rec.ReceiptsIncluded == ReceiptsNo {
		return ClassificationMissingReceipts
	}
	if rec.DeductionCharacter == DeductionNormalWear {
		return ClassificationNormalWear
	}
	return ClassificationDisputable
}

var explanations = map[Classification]string{
	ClassificationNoItemization:   "Your landlord failed to provide an itemization within the legal deadline. This is the strongest case for full deposit return plus penalties.",
	ClassificationLateItemization: "Your landlord provided itemization late, missing the legal deadline. You may be entitled to the full deposit plus penalties.",
	ClassificationMissingReceipts: "Your landlord withheld money without providing required receipts. This strengthens your case significantly.",
	ClassificationNormalWear:      "The deductions appear to be for normal wear and tear without proper documentation. You have grounds to dispute.",
	ClassificationDisputable:      "While the itemization was timely, you may still dispute deductions that appear improper or lack documentation.",
}

// statutesFor maps every classification to its citation list. The table is
// total over the classification set; blank refs (jurisdictions without a
// particular citation) are dropped.
func statutesFor(class Classification, rules jurisdiction.RuleSet) []string {
	refs := rules.Statutes
	table := map[Classification][]string{
		ClassificationNoItemization:   {refs.Base, refs.Deadline, refs.Itemization, refs.BadFaith},
		ClassificationLateItemization: {refs.Base, refs.Deadline, refs.BadFaith},
		ClassificationMissingReceipts: {refs.Base, refs.Receipts},
		ClassificationNormalWear:      {refs.Base, refs.Itemization},
		ClassificationDisputable:      {refs.Base},
	}

	cited := table[class]
	out := make([]string, 0, len(cited))
	seen := make(map[string]bool, len(cited))
	for _, c := range cited {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
