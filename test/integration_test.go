package test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"herdflow/animal"
	"herdflow/herd"
	"herdflow/lifecycle"
	"herdflow/test/infra"
)

func TestSaleSequencingAgainstPostgres(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pgC, dsn, usedShared := startDatabase(t, ctx)
	defer pgC.Terminate(context.Background())

	pool, teardown, err := infra.ApplySchema(ctx, dsn, usedShared)
	if err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	defer pool.Close()
	defer func() {
		if err := teardown(context.Background()); err != nil {
			t.Logf("teardown warning: %v", err)
		}
	}()

	repo := herd.NewRepository(pool)
	registry := herd.NewService(repo, nil)
	engine := lifecycle.NewService(repo, nil)

	now := time.Now()
	heiferBirth := now.AddDate(0, -18, 0)

	cow, err := registry.Register(ctx, herd.RegisterParams{
		TagNumber: fmt.Sprintf("IT-COW-%d", now.UnixNano()),
		Sex:       animal.SexFemale,
		Role:      "COW",
	})
	if err != nil {
		t.Fatalf("register cow: %v", err)
	}
	heifer, err := registry.Register(ctx, herd.RegisterParams{
		TagNumber: fmt.Sprintf("IT-HFR-%d", now.UnixNano()),
		Sex:       animal.SexFemale,
		BirthDate: &heiferBirth,
	})
	if err != nil {
		t.Fatalf("register heifer: %v", err)
	}
	if heifer.Category != animal.CategoryHeifer {
		t.Fatalf("heifer category = %s, want HEIFER", heifer.Category)
	}

	// A negative test routes the heifer to GULVET and makes it sellable.
	tested, err := engine.ProcessTestResult(ctx, heifer.ID, lifecycle.TestResultInput{Result: animal.TestNegative})
	if err != nil {
		t.Fatalf("process test result: %v", err)
	}
	if tested.Destination == nil || *tested.Destination != animal.DestinationGulvet {
		t.Fatalf("destination = %v, want GULVET", tested.Destination)
	}
	if tested.SaleStatus != animal.SaleReady {
		t.Fatalf("sale status = %s, want READY_FOR_SALE", tested.SaleStatus)
	}

	// The unsold cow blocks the heifer sale.
	_, err = engine.CompleteSale(ctx, heifer.ID, 15000)
	var violation *lifecycle.SaleOrderViolationError
	if !errors.As(err, &violation) {
		t.Fatalf("got %v, want SaleOrderViolationError", err)
	}
	if violation.BlockingCategory != animal.CategoryCow {
		t.Fatalf("blocking category = %s, want COW", violation.BlockingCategory)
	}

	// Clear the cow tier, then the heifer sale goes through.
	if _, err := registry.MarkReadyForSale(ctx, cow.ID); err != nil {
		t.Fatalf("mark cow ready: %v", err)
	}
	if _, err := engine.CompleteSale(ctx, cow.ID, 30000); err != nil {
		t.Fatalf("sell cow: %v", err)
	}

	sold, err := engine.CompleteSale(ctx, heifer.ID, 15000)
	if err != nil {
		t.Fatalf("sell heifer after cow cleared: %v", err)
	}
	if sold.SaleStatus != animal.SaleSold || sold.SalePrice == nil || *sold.SalePrice != 15000 || sold.SaleDate == nil {
		t.Fatalf("heifer sale not recorded: %+v", sold)
	}

	counts, err := registry.UnsoldCounts(ctx)
	if err != nil {
		t.Fatalf("unsold counts: %v", err)
	}
	if counts[animal.PriorityLow] != 0 {
		t.Errorf("unsold LOW = %d, want 0", counts[animal.PriorityLow])
	}

	// Persisted record round-trips through the repository.
	reloaded, err := registry.Get(ctx, heifer.ID)
	if err != nil {
		t.Fatalf("reload heifer: %v", err)
	}
	if reloaded.SaleStatus != animal.SaleSold || reloaded.TestResult != animal.TestNegative {
		t.Fatalf("reloaded heifer = %+v, want SOLD with NEGATIVE test", reloaded)
	}
}
