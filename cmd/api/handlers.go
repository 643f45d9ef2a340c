package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"depositflow/claim"
	"depositflow/jurisdiction"
	"depositflow/payment"

	"github.com/shopspring/decimal"
)

// Server is the thin HTTP host over the engine. Handlers only decode,
// delegate, and map errors; no rule logic lives here.
type Server struct {
	cases    *claim.Service
	payments *payment.Service
	rules    *jurisdiction.Registry
	logger   *slog.Logger
}

func NewServer(cases *claim.Service, payments *payment.Service, rules *jurisdiction.Registry, logger *slog.Logger) *Server {
	return &Server{
		cases:    cases,
		payments: payments,
		rules:    rules,
		logger:   logger,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/cases", s.handleCreateCase)
	mux.HandleFunc("GET /api/cases/{id}", s.handleGetCase)
	mux.HandleFunc("POST /api/cases/{id}/checkout", s.handleCheckout)
	mux.HandleFunc("POST /api/cases/{id}/letter", s.handleGenerateLetter)
	mux.HandleFunc("POST /api/payments/confirm", s.handleConfirmPayment)
	mux.HandleFunc("GET /api/jurisdictions", s.handleJurisdictions)
	return mux
}

const dateLayout = "2006-01-02"

type intakeRequest struct {
	Jurisdiction        string      `json:"jurisdiction"`
	LeaseEndDate        string      `json:"lease_end_date"`
	DepositAmount       json.Number `json:"deposit_amount"`
	AmountReturned      json.Number `json:"amount_returned"`
	ItemizationReceived string      `json:"itemization_received"`
	ItemizationDate     string      `json:"itemization_date"`
	ReceiptsIncluded    string      `json:"receipts_included"`
	DeductionCharacter  string      `json:"deduction_character"`
	LandlordEmail       string      `json:"landlord_email"`
	TenantName          string      `json:"tenant_name"`
	TenantAddress       string      `json:"tenant_address"`
}

// toIntakeFields converts the wire payload, collecting per-field problems
// for anything that cannot even be parsed.
func (r intakeRequest) toIntakeFields() (claim.IntakeFields, []claim.FieldError) {
	var fieldErrs []claim.FieldError

	fields := claim.IntakeFields{
		Jurisdiction:       r.Jurisdiction,
		Itemization:        claim.ItemizationStatus(r.ItemizationReceived),
		ReceiptsIncluded:   claim.ReceiptsStatus(r.ReceiptsIncluded),
		DeductionCharacter: claim.DeductionCharacter(r.DeductionCharacter),
		LandlordEmail:      r.LandlordEmail,
		TenantName:         r.TenantName,
		TenantAddress:      r.TenantAddress,
	}

	if r.LeaseEndDate != "" {
		t, err := time.Parse(dateLayout, r.LeaseEndDate)
		if err != nil {
			fieldErrs = append(fieldErrs, claim.FieldError{Field: "lease_end_date", Message: "must be a YYYY-MM-DD date"})
		} else {
			fields.LeaseEndDate = t
		}
	}
	if r.ItemizationDate != "" {
		t, err := time.Parse(dateLayout, r.ItemizationDate)
		if err != nil {
			fieldErrs = append(fieldErrs, claim.FieldError{Field: "itemization_date", Message: "must be a YYYY-MM-DD date"})
		} else {
			fields.ItemizationDate = &t
		}
	}

	fields.DepositAmount = parseAmount(r.DepositAmount, "deposit_amount", &fieldErrs)
	fields.AmountReturned = parseAmount(r.AmountReturned, "amount_returned", &fieldErrs)

	return fields, fieldErrs
}

func parseAmount(n json.Number, field string, fieldErrs *[]claim.FieldError) decimal.Decimal {
	if n == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		*fieldErrs = append(*fieldErrs, claim.FieldError{Field: field, Message: "must be a numeric amount"})
		return decimal.Zero
	}
	return d
}

func (s *Server) handleCreateCase(w http.ResponseWriter, r *http.Request) {
	var req intakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}

	fields, fieldErrs := req.toIntakeFields()
	if len(fieldErrs) > 0 {
		s.writeError(w, http.StatusBadRequest, "invalid intake", fieldErrs)
		return
	}

	caseID, err := s.cases.CreateCase(r.Context(), fields)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]string{"case_id": caseID})
}

type caseResponse struct {
	ID                  string `json:"id"`
	Jurisdiction        string `json:"jurisdiction"`
	LeaseEndDate        string `json:"lease_end_date"`
	DepositAmount       string `json:"deposit_amount"`
	AmountReturned      string `json:"amount_returned"`
	ItemizationReceived string `json:"itemization_received"`
	ItemizationDate     string `json:"itemization_date,omitempty"`
	ReceiptsIncluded    string `json:"receipts_included"`
	DeductionCharacter  string `json:"deduction_character"`
	Status              string `json:"status"`
	CreatedAt           string `json:"created_at"`
}

func (s *Server) handleGetCase(w http.ResponseWriter, r *http.Request) {
	rec, err := s.cases.GetCase(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	resp := caseResponse{
		ID:                  rec.ID,
		Jurisdiction:        rec.Jurisdiction,
		LeaseEndDate:        rec.LeaseEndDate.Format(dateLayout),
		DepositAmount:       rec.DepositAmount.StringFixed(2),
		AmountReturned:      rec.AmountReturned.StringFixed(2),
		ItemizationReceived: string(rec.Itemization),
		ReceiptsIncluded:    string(rec.ReceiptsIncluded),
		DeductionCharacter:  string(rec.DeductionCharacter),
		Status:              string(rec.Status),
		CreatedAt:           rec.CreatedAt.Format(time.RFC3339),
	}
	if rec.ItemizationDate != nil {
		resp.ItemizationDate = rec.ItemizationDate.Format(dateLayout)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	caseID := r.PathValue("id")
	if _, err := s.cases.GetCase(r.Context(), caseID); err != nil {
		s.writeServiceError(w, err)
		return
	}

	token, err := s.payments.StartCheckout(caseID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]string{"session_token": token})
}

type outcomeResponse struct {
	DepositWithheld    string   `json:"deposit_withheld"`
	DaysLate           int      `json:"days_late"`
	PenaltyAmount      string   `json:"penalty_amount"`
	TotalClaim         string   `json:"total_claim"`
	Classification     string   `json:"classification"`
	Explanation        string   `json:"explanation"`
	ApplicableStatutes []string `json:"applicable_statutes"`
}

func (s *Server) handleGenerateLetter(w http.ResponseWriter, r *http.Request) {
	result, err := s.cases.GenerateOutcomeAndLetter(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, struct {
		Letter  string          `json:"letter"`
		Outcome outcomeResponse `json:"outcome"`
	}{
		Letter: result.Letter,
		Outcome: outcomeResponse{
			DepositWithheld:    result.Outcome.DepositWithheld.StringFixed(2),
			DaysLate:           result.Outcome.DaysLate,
			PenaltyAmount:      result.Outcome.PenaltyAmount.StringFixed(2),
			TotalClaim:         result.Outcome.TotalClaim.StringFixed(2),
			Classification:     string(result.Outcome.Classification),
			Explanation:        result.Outcome.Explanation,
			ApplicableStatutes: result.Outcome.ApplicableStatutes,
		},
	})
}

func (s *Server) handleConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionToken string `json:"session_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SessionToken == "" {
		s.writeError(w, http.StatusBadRequest, "session_token is required", nil)
		return
	}

	caseID, err := s.payments.Confirm(r.Context(), req.SessionToken)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"case_id": caseID, "status": string(claim.StatusPaid)})
}

func (s *Server) handleJurisdictions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, struct {
		Items []jurisdiction.Option `json:"items"`
	}{Items: s.rules.Supported()})
}

type errorResponse struct {
	Error  string             `json:"error"`
	Fields []claim.FieldError `json:"fields,omitempty"`
}

func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	var verr *claim.ValidationError
	switch {
	case errors.As(err, &verr):
		s.writeError(w, http.StatusBadRequest, "invalid intake", verr.Fields)
	case errors.Is(err, claim.ErrNotFound):
		s.writeError(w, http.StatusNotFound, "case not found", nil)
	case errors.Is(err, claim.ErrPaymentRequired), errors.Is(err, payment.ErrPaymentIncomplete):
		s.writeError(w, http.StatusPaymentRequired, "payment required", nil)
	case errors.Is(err, claim.ErrUnsupportedJurisdiction):
		s.writeError(w, http.StatusUnprocessableEntity, "jurisdiction not available", nil)
	case errors.Is(err, payment.ErrTokenInvalid):
		s.writeError(w, http.StatusBadRequest, "invalid session token", nil)
	default:
		s.logger.Error("internal error", "err", err)
		s.writeError(w, http.StatusInternalServerError, "internal error", nil)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string, fields []claim.FieldError) {
	s.writeJSON(w, status, errorResponse{Error: msg, Fields: fields})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}
