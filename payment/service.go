package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// SessionStatus is the only fact the engine consumes from a payment
// provider: whether a checkout session has been paid.
type SessionStatus string

const (
	SessionStatusPending SessionStatus = "pending"
	SessionStatusPaid    SessionStatus = "paid"
)

// ErrPaymentIncomplete signals a confirmation attempt for a session the
// gateway has not reported as paid.
var ErrPaymentIncomplete = errors.New("payment: payment not completed")

// Gateway is the external payment provider. The engine never calls a
// provider SDK directly; hosts supply an adapter.
type Gateway interface {
	SessionStatus(ctx context.Context, sessionID string) (SessionStatus, error)
}

// CaseMarker is the slice of the case lifecycle the payment flow needs.
type CaseMarker interface {
	MarkPaid(ctx context.Context, caseID string) error
}

// Service drives the checkout-confirmation flow: it mints session tokens
// at checkout time and, on confirmation, verifies the token, asks the
// gateway, and marks the case paid.
type Service struct {
	gateway Gateway
	tokens  *TokenIssuer
	cases   CaseMarker

	sessionID func() string
}

func NewService(gateway Gateway, tokens *TokenIssuer, cases CaseMarker) *Service {
	return &Service{
		gateway:   gateway,
		tokens:    tokens,
		cases:     cases,
		sessionID: func() string { return uuid.NewString() },
	}
}

func (s *Service) WithSessionIDGenerator(gen func() string) *Service {
	s.sessionID = gen
	return s
}

// StartCheckout allocates a session id for a case and returns the signed
// token the host hands to the payment page.
func (s *Service) StartCheckout(caseID string) (string, error) {
	token, err := s.tokens.Mint(caseID, s.sessionID())
	if err != nil {
		return "", err
	}
	return token, nil
}

// Confirm verifies a session token, checks the gateway's completion fact,
// and marks the case paid. Confirming an already-paid case succeeds again:
// the underlying transition is idempotent.
func (s *Service) Confirm(ctx context.Context, token string) (string, error) {
	caseID, sessionID, err := s.tokens.Verify(token)
	if err != nil {
		return "", err
	}

	status, err := s.gateway.SessionStatus(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("payment: gateway status: %w", err)
	}
	if status != SessionStatusPaid {
		return "", fmt.Errorf("%w: session %s", ErrPaymentIncomplete, sessionID)
	}

	if err := s.cases.MarkPaid(ctx, caseID); err != nil {
		return "", err
	}
	return caseID, nil
}
