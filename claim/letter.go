package claim

import (
	"strings"
	"time"

	"depositflow/jurisdiction"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// responseWindowDays is how long the letter gives the landlord to comply.
const responseWindowDays = 10

var usPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders a dollar amount with two decimals and thousands
// separators. Every figure in a letter goes through this one renderer.
func FormatCurrency(d decimal.Decimal) string {
	cents := d.Round(2).Mul(decimal.NewFromInt(100)).IntPart()
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return usPrinter.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

// formatDate is the single long-form date style used throughout a letter.
func formatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

// SynthesizeLetter produces the formal demand letter for a computed
// outcome. Pure: same record, outcome, rules, and date yield identical
// text. Optional sections are omitted entirely, never rendered empty.
func SynthesizeLetter(rec Record, outcome Outcome, rules jurisdiction.RuleSet, today time.Time) string {
	var b strings.Builder

	b.WriteString(formatDate(today))
	b.WriteString("\n\n")
	b.WriteString(rec.TenantName)
	b.WriteString("\n")
	b.WriteString(rec.TenantAddress)
	b.WriteString("\n\n")
	b.WriteString(rec.LandlordEmail)
	b.WriteString("\n\n")
	b.WriteString("Re: Demand for Return of Security Deposit\n\n")
	b.WriteString("Dear Landlord,\n\n")

	usPrinter.Fprintf(&b, "I am writing to formally demand the return of my security deposit in the amount of %s.\n\n",
		FormatCurrency(rec.DepositAmount))

	b.WriteString("LEASE DETAILS:\n")
	usPrinter.Fprintf(&b, "- Property Address: %s\n", rec.TenantAddress)
	usPrinter.Fprintf(&b, "- Lease End Date: %s\n", formatDate(rec.LeaseEndDate))
	usPrinter.Fprintf(&b, "- Security Deposit: %s\n", FormatCurrency(rec.DepositAmount))
	usPrinter.Fprintf(&b, "- Amount Returned: %s\n\n", FormatCurrency(rec.AmountReturned))

	writeStatutorySection(&b, rules)
	writeViolationSection(&b, rec, rules)

	b.WriteString("DEMAND:\n")
	usPrinter.Fprintf(&b, "I demand the immediate return of %s within %d days of receipt of this letter.\n\n",
		FormatCurrency(outcome.DepositWithheld), responseWindowDays)

	usPrinter.Fprintf(&b, "If you fail to comply, I will pursue all available legal remedies, including filing a claim in small claims court for %s, which includes the security deposit amount plus statutory penalties of up to %s.\n\n",
		FormatCurrency(outcome.TotalClaim), FormatCurrency(outcome.PenaltyAmount))

	if rules.MailingRequirements != "" {
		b.WriteString("MAILING REQUIREMENTS:\n")
		b.WriteString(rules.MailingRequirements)
		b.WriteString("\n\n")
	}

	b.WriteString("Please send payment to:\n")
	b.WriteString(rec.TenantName)
	b.WriteString("\n")
	b.WriteString(rec.TenantAddress)
	b.WriteString("\n\n")
	b.WriteString("I expect your prompt attention to this matter.\n\n")
	b.WriteString("Sincerely,\n")
	b.WriteString(rec.TenantName)

	return b.String()
}

func writeStatutorySection(b *strings.Builder, rules jurisdiction.RuleSet) {
	usPrinter.Fprintf(b, "%s LAW REQUIREMENTS:\n", strings.ToUpper(rules.Name))
	usPrinter.Fprintf(b, "Under %s, you were required to return my security deposit within %d days of move-out and to provide:\n",
		rules.Statutes.Base, rules.ReturnDeadlineDays)
	for i, doc := range rules.RequiredDocumentation {
		usPrinter.Fprintf(b, "%d. %s\n", i+1, doc)
	}
	b.WriteString("\n")
}

func writeViolationSection(b *strings.Builder, rec Record, rules jurisdiction.RuleSet) {
	violation := violationText(rec.DeductionCharacter, rules)
	if rec.Itemization == ItemizationReceived && rec.ItemizationDate != nil {
		usPrinter.Fprintf(b, "I received an itemization on %s, however, %s\n\n",
			formatDate(*rec.ItemizationDate), violation)
		return
	}
	usPrinter.Fprintf(b, "I have not received the required itemization. %s\n\n",
		strings.ToUpper(violation[:1])+violation[1:])
}

// violationText is the narrative branch keyed by the same deduction
// character used in classification.
func violationText(d DeductionCharacter, rules jurisdiction.RuleSet) string {
	switch d {
	case DeductionUnclear:
		return "the deductions are unclear and not properly documented."
	case DeductionExcessive:
		return "the deductions appear excessive and beyond normal wear and tear."
	case DeductionNormalWear:
		return "the deductions are for normal wear and tear, which is not permissible under " + rules.Name + " law."
	case DeductionFraudulent:
		return "the deductions appear to be fraudulent."
	}
	return "the itemization does not comply with " + rules.Name + " law."
}
