package claim

import (
	"fmt"
	"net/mail"
	"strings"
)

// FieldError names one invalid intake field and why it was rejected.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports every invalid intake field at once so hosts can
// surface per-field messages. Nothing is coerced.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "claim: invalid intake: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, format string, args ...any) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// ValidateIntake checks the intake fields and returns a *ValidationError
// listing every problem, or nil when the intake is acceptable.
func ValidateIntake(f IntakeFields) error {
	var verr ValidationError

	if strings.TrimSpace(f.Jurisdiction) == "" {
		verr.add("jurisdiction", "jurisdiction code is required")
	}
	if f.LeaseEndDate.IsZero() {
		verr.add("lease_end_date", "lease end date is required")
	}
	if f.DepositAmount.IsNegative() {
		verr.add("deposit_amount", "deposit amount cannot be negative")
	}
	if f.AmountReturned.IsNegative() {
		verr.add("amount_returned", "amount returned cannot be negative")
	}

	switch f.Itemization {
	case ItemizationReceived:
		if f.ItemizationDate == nil || f.ItemizationDate.IsZero() {
			verr.add("itemization_date", "itemization date is required when an itemization was received")
		}
	case ItemizationNotReceived:
		if f.ItemizationDate != nil {
			verr.add("itemization_date", "itemization date must be empty when no itemization was received")
		}
	default:
		verr.add("itemization_received", "must be %q or %q", ItemizationReceived, ItemizationNotReceived)
	}

	switch f.ReceiptsIncluded {
	case ReceiptsYes, ReceiptsNo, ReceiptsUnclear, "":
	default:
		verr.add("receipts_included", "must be %q, %q, or %q", ReceiptsYes, ReceiptsNo, ReceiptsUnclear)
	}

	switch f.DeductionCharacter {
	case DeductionUnclear, DeductionExcessive, DeductionNormalWear, DeductionFraudulent:
	default:
		verr.add("deduction_character", "must be %q, %q, %q, or %q",
			DeductionUnclear, DeductionExcessive, DeductionNormalWear, DeductionFraudulent)
	}

	if strings.TrimSpace(f.LandlordEmail) == "" {
		verr.add("landlord_email", "landlord email is required")
	} else if _, err := mail.ParseAddress(f.LandlordEmail); err != nil {
		verr.add("landlord_email", "invalid email address")
	}

	if strings.TrimSpace(f.TenantName) == "" {
		verr.add("tenant_name", "tenant name is required")
	}
	if strings.TrimSpace(f.TenantAddress) == "" {
		verr.add("tenant_address", "tenant address is required")
	}

	if len(verr.Fields) > 0 {
		return &verr
	}
	return nil
}

// normalizeIntake trims free-text fields and applies enum defaults before
// validation. Jurisdiction codes compare case-insensitively everywhere, so
// they are stored uppercased.
func normalizeIntake(f IntakeFields) IntakeFields {
	f.Jurisdiction = strings.ToUpper(strings.TrimSpace(f.Jurisdiction))
	f.LandlordEmail = strings.TrimSpace(f.LandlordEmail)
	f.TenantName = strings.TrimSpace(f.TenantName)
	f.TenantAddress = strings.TrimSpace(f.TenantAddress)
	if f.ReceiptsIncluded == "" {
		f.ReceiptsIncluded = ReceiptsUnclear
	}
	return f
}
