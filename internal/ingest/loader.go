// Package ingest loads a generated dataset into the graph store through the
// repository write path, phase by phase so edges always find their endpoints.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/ananya/fraudlens/backend/internal/domain"
	"github.com/ananya/fraudlens/backend/internal/repository"
)

// TaskError accumulates the individual failures of one bulk phase.
type TaskError struct {
	Errors []error
}

func (e *TaskError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := "multiple errors:"
	for _, err := range e.Errors {
		msg += " " + err.Error() + ";"
	}
	return msg
}

func (e *TaskError) append(err error) {
	if err != nil {
		e.Errors = append(e.Errors, err)
	}
}

func (e *TaskError) asError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// Loader pushes datasets into the graph with a bounded worker pool per phase.
type Loader struct {
	repo    *repository.Repository
	workers int
	logger  *slog.Logger
}

// NewLoader creates a Loader with the provided concurrency.
func NewLoader(repo *repository.Repository, workers int, logger *slog.Logger) *Loader {
	if workers <= 0 {
		workers = 4
	}
	return &Loader{repo: repo, workers: workers, logger: logger}
}

// ReadDataset decodes a dataset file produced by the generator.
func ReadDataset(path string) (domain.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	var ds domain.Dataset
	if err := json.NewDecoder(f).Decode(&ds); err != nil {
		return domain.Dataset{}, fmt.Errorf("decode dataset %s: %w", path, err)
	}
	return ds, nil
}

// Load ensures constraints and ingests the dataset. Node phases run before
// the edge-bearing phases that reference them.
func (l *Loader) Load(ctx context.Context, ds domain.Dataset) error {
	if err := l.repo.EnsureConstraints(ctx); err != nil {
		return err
	}

	witnessByID := make(map[string]domain.Witness, len(ds.Witnesses))
	for _, w := range ds.Witnesses {
		witnessByID[w.ID] = w
	}

	phases := []struct {
		name  string
		total int
		fn    func(idx int) error
	}{
		{"claimants", len(ds.Claimants), func(i int) error {
			return l.repo.UpsertClaimant(ctx, ds.Claimants[i])
		}},
		{"repair shops", len(ds.RepairShops), func(i int) error {
			return l.repo.UpsertServiceProvider(ctx, ds.RepairShops[i])
		}},
		{"medical providers", len(ds.MedicalProviders), func(i int) error {
			return l.repo.UpsertServiceProvider(ctx, ds.MedicalProviders[i])
		}},
		{"lawyers", len(ds.Lawyers), func(i int) error {
			return l.repo.UpsertServiceProvider(ctx, ds.Lawyers[i])
		}},
		{"policies", len(ds.Policies), func(i int) error {
			return l.repo.UpsertPolicy(ctx, ds.Policies[i])
		}},
		{"vehicles", len(ds.Vehicles), func(i int) error {
			return l.repo.UpsertVehicle(ctx, ds.Vehicles[i])
		}},
		{"claims", len(ds.Claims), func(i int) error {
			rec := ds.Claims[i]
			return l.repo.UpsertClaim(ctx, rec.Claim, rec.VehicleID, rec.ShopID, rec.ProviderID, rec.LawyerID)
		}},
		{"witnesses", len(ds.Claims), func(i int) error {
			return l.attachWitnesses(ctx, ds.Claims[i], witnessByID)
		}},
		{"relationships", len(ds.Relationships), func(i int) error {
			return l.repo.CreateRelationalEdge(ctx, ds.Relationships[i])
		}},
	}

	for _, phase := range phases {
		if l.logger != nil {
			l.logger.Info("ingest phase", "phase", phase.name, "items", phase.total)
		}
		if err := l.run(ctx, phase.total, phase.fn); err != nil {
			return fmt.Errorf("ingest %s: %w", phase.name, err)
		}
	}
	return nil
}

func (l *Loader) attachWitnesses(ctx context.Context, rec domain.ClaimRecord, byID map[string]domain.Witness) error {
	if len(rec.WitnessIDs) == 0 {
		return nil
	}
	for _, wid := range rec.WitnessIDs {
		w, ok := byID[wid]
		if !ok {
			return fmt.Errorf("claim %s references unknown witness %s", rec.Claim.ID, wid)
		}
		if err := l.repo.AttachWitness(ctx, rec.Claim.ID, w); err != nil {
			return err
		}
	}
	return nil
}

// run fans workFn over [0,total) with the loader's worker pool. Context
// cancellation aborts the phase; other failures are accumulated so a bad
// record does not hide the rest of the report.
func (l *Loader) run(ctx context.Context, total int, workFn func(idx int) error) error {
	if total == 0 {
		return nil
	}

	indexCh := make(chan int)
	errCh := make(chan error, total)
	var wg sync.WaitGroup

	for i := 0; i < l.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indexCh {
				if err := workFn(idx); err != nil {
					select {
					case errCh <- err:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

Loop:
	for i := 0; i < total; i++ {
		select {
		case indexCh <- i:
		case <-ctx.Done():
			break Loop
		}
	}
	close(indexCh)
	wg.Wait()
	close(errCh)

	var taskErr TaskError
	for err := range errCh {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		taskErr.append(err)
	}
	return taskErr.asError()
}
