package claim

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the case lifecycle state. A case starts pending and moves to
// paid exactly once; there is no other transition.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// ItemizationStatus records whether the landlord sent an itemized statement
// of deductions.
type ItemizationStatus string

const (
	ItemizationReceived    ItemizationStatus = "received"
	ItemizationNotReceived ItemizationStatus = "not_received"
)

// ReceiptsStatus records whether repair receipts accompanied the
// itemization. Meaningful only when an itemization was received.
type ReceiptsStatus string

const (
	ReceiptsYes     ReceiptsStatus = "yes"
	ReceiptsNo      ReceiptsStatus = "no"
	ReceiptsUnclear ReceiptsStatus = "unclear"
)

// DeductionCharacter is the tenant's characterization of the deductions.
type DeductionCharacter string

const (
	DeductionUnclear    DeductionCharacter = "unclear"
	DeductionExcessive  DeductionCharacter = "excessive"
	DeductionNormalWear DeductionCharacter = "normal_wear"
	DeductionFraudulent DeductionCharacter = "fraudulent"
)

// IntakeFields is the raw intake submitted by the tenant, before
// validation. Monetary amounts are decimals, never floats.
type IntakeFields struct {
	Jurisdiction       string
	LeaseEndDate       time.Time
	DepositAmount      decimal.Decimal
	AmountReturned     decimal.Decimal
	Itemization        ItemizationStatus
	ItemizationDate    *time.Time
	ReceiptsIncluded   ReceiptsStatus
	DeductionCharacter DeductionCharacter
	LandlordEmail      string
	TenantName         string
	TenantAddress      string
}

// Record is one tenant's validated claim. Intake fields are immutable once
// the record exists; only Status transitions.
type Record struct {
	ID                 string
	Jurisdiction       string
	LeaseEndDate       time.Time
	DepositAmount      decimal.Decimal
	AmountReturned     decimal.Decimal
	Itemization        ItemizationStatus
	ItemizationDate    *time.Time
	ReceiptsIncluded   ReceiptsStatus
	DeductionCharacter DeductionCharacter
	LandlordEmail      string
	TenantName         string
	TenantAddress      string
	Status             Status
	CreatedAt          time.Time
}

// Classification is the legal strength tier computed for a case, strongest
// first.
type Classification string

const (
	// ClassificationNoItemization: the landlord never sent an itemization.
	ClassificationNoItemization Classification = "no_itemization"
	// ClassificationLateItemization: an itemization arrived after the
	// statutory deadline.
	ClassificationLateItemization Classification = "late_itemization"
	// ClassificationMissingReceipts: deductions were taken without the
	// required receipts.
	ClassificationMissingReceipts Classification = "missing_receipts"
	// ClassificationNormalWear: deductions cover ordinary wear and tear.
	ClassificationNormalWear Classification = "normal_wear_deductions"
	// ClassificationDisputable: timely and documented, but still contestable.
	ClassificationDisputable Classification = "disputable_deductions"
)

// Outcome is the computed monetary claim and classification for a case. It
// is derived on demand and never persisted.
type Outcome struct {
	DepositWithheld    decimal.Decimal
	DaysLate           int
	PenaltyAmount      decimal.Decimal
	TotalClaim         decimal.Decimal
	Classification     Classification
	Explanation        string
	ApplicableStatutes []string
}

// Result bundles the outcome with the synthesized demand letter.
type Result struct {
	Outcome Outcome
	Letter  string
}
