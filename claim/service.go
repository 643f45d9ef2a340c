package claim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"depositflow/jurisdiction"

	"github.com/google/uuid"
)

var (
	// ErrNotFound signals an unknown case id.
	ErrNotFound = errors.New("claim: case not found")
	// ErrPaymentRequired signals letter generation on an unpaid case.
	ErrPaymentRequired = errors.New("claim: payment required")
	// ErrUnsupportedJurisdiction signals a jurisdiction with no rule set.
	ErrUnsupportedJurisdiction = errors.New("claim: jurisdiction not supported")
)

// Store is the persistence contract the engine depends on. Implementations
// own their lifecycle; the engine never deletes.
type Store interface {
	Get(ctx context.Context, id string) (Record, error)
	Put(ctx context.Context, rec Record) error
}

// RuleProvider resolves a jurisdiction code to its statute parameters.
type RuleProvider interface {
	RulesFor(code string) (jurisdiction.RuleSet, bool)
}

// Service is the case lifecycle controller: it validates intake, guards
// letter generation behind payment, and drives the pure outcome and letter
// computations.
type Service struct {
	store       Store
	rules       RuleProvider
	idGenerator func() string
	now         func() time.Time
}

func NewService(store Store, rules RuleProvider) *Service {
	return &Service{
		store:       store,
		rules:       rules,
		idGenerator: func() string { return uuid.NewString() },
		now:         time.Now,
	}
}

func (s *Service) WithIDGenerator(gen func() string) *Service {
	s.idGenerator = gen
	return s
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CreateCase validates the intake and stores a new pending case, returning
// its id. Validation failures come back as *ValidationError with every
// offending field listed.
func (s *Service) CreateCase(ctx context.Context, fields IntakeFields) (string, error) {
	fields = normalizeIntake(fields)
	if err := ValidateIntake(fields); err != nil {
		return "", err
	}
	if _, ok := s.rules.RulesFor(fields.Jurisdiction); !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedJurisdiction, fields.Jurisdiction)
	}

	rec := Record{
		ID:                 s.idGenerator(),
		Jurisdiction:       fields.Jurisdiction,
		LeaseEndDate:       fields.LeaseEndDate,
		DepositAmount:      fields.DepositAmount,
		AmountReturned:     fields.AmountReturned,
		Itemization:        fields.Itemization,
		ItemizationDate:    fields.ItemizationDate,
		ReceiptsIncluded:   fields.ReceiptsIncluded,
		DeductionCharacter: fields.DeductionCharacter,
		LandlordEmail:      fields.LandlordEmail,
		TenantName:         fields.TenantName,
		TenantAddress:      fields.TenantAddress,
		Status:             StatusPending,
		CreatedAt:          s.now().UTC(),
	}

	if err := s.store.Put(ctx, rec); err != nil {
		return "", fmt.Errorf("claim: store case: %w", err)
	}
	return rec.ID, nil
}

// GetCase returns the stored record for host display.
func (s *Service) GetCase(ctx context.Context, id string) (Record, error) {
	return s.store.Get(ctx, id)
}

// MarkPaid transitions a case to paid. Marking an already-paid case is a
// no-op success; the transition is monotonic, so concurrent calls are safe.
func (s *Service) MarkPaid(ctx context.Context, id string) error {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if rec.Status == StatusPaid {
		return nil
	}
	rec.Status = StatusPaid
	if err := s.store.Put(ctx, rec); err != nil {
		return fmt.Errorf("claim: mark paid: %w", err)
	}
	return nil
}

// GenerateOutcomeAndLetter loads the case, requires a paid status, and runs
// the outcome calculator and letter synthesizer. Beyond the store read it
// is side-effect-free: repeated calls on a paid case return identical text
// for the same clock reading.
func (s *Service) GenerateOutcomeAndLetter(ctx context.Context, id string) (Result, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return Result{}, err
	}
	if rec.Status != StatusPaid {
		return Result{}, fmt.Errorf("%w: case %s", ErrPaymentRequired, id)
	}

	rules, ok := s.rules.RulesFor(rec.Jurisdiction)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupportedJurisdiction, rec.Jurisdiction)
	}

	today := s.now()
	outcome := ComputeOutcome(rec, rules, today)
	letter := SynthesizeLetter(rec, outcome, rules, today)

	return Result{Outcome: outcome, Letter: letter}, nil
}
