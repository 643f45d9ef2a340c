package jurisdiction

import "github.com/shopspring/decimal"

// StatuteRefs holds the citation strings for one jurisdiction's deposit
// statute, broken out by the concern each citation governs.
type StatuteRefs struct {
	Base        string
	Deadline    string
	Itemization string
	Receipts    string
	BadFaith    string
}

// DepositCaps limits the deposit a landlord may collect, in months of rent.
type DepositCaps struct {
	UnfurnishedMonths int
	FurnishedMonths   int
}

// RuleSet is the static statute parameter table for one jurisdiction.
// The outcome calculator and letter synthesizer consume it as data; adding
// a jurisdiction never requires touching either.
type RuleSet struct {
	Code                         string
	Name                         string
	ReturnDeadlineDays           int
	PenaltyMultiplier            decimal.Decimal
	MaxDepositMonths             DepositCaps
	ReceiptThreshold             decimal.Decimal
	AllowableDeductionCategories []string
	RequiredDocumentation        []string
	MailingRequirements          string
	Statutes                     StatuteRefs
}

// Option is the code/name pair exposed to hosts for jurisdiction pickers.
type Option struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
