package claim

import (
	"context"
	"testing"

	"golang.org/x/sync/errgroup"
)

// The pending->paid transition is monotonic and idempotent, so concurrent
// MarkPaid calls for the same case must all succeed.
func TestService_ConcurrentMarkPaid(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	id, err := svc.CreateCase(ctx, intakeForService())
	if err != nil {
		t.Fatalf("create case: %v", err)
	}

	var g errgroup.Group
	for range 16 {
		g.Go(func() error {
			return svc.MarkPaid(ctx, id)
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent mark paid: %v", err)
	}

	rec, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("get case: %v", err)
	}
	if rec.Status != StatusPaid {
		t.Fatalf("expected paid, got %s", rec.Status)
	}
}
