package detect

import (
	"context"
	"sync"

	"github.com/ananya/fraudlens/backend/internal/domain"
)

// Sweeper fans the four read-only detection operations out concurrently.
// They share no mutable state and each issues its own bounded reads, so the
// only coordination needed is cancelling the rest once one fails.
type Sweeper struct {
	Communities *CommunityDetector
	RepairShops *SharedResourceDetector
	Providers   *SharedResourceDetector
	Witnesses   *RecurringWitnessDetector
}

// Run executes one full detection sweep with each detector's configured
// defaults. The first error cancels the remaining detectors and is returned.
func (s *Sweeper) Run(ctx context.Context) (domain.SweepResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		result domain.SweepResult
		wg     sync.WaitGroup
		errCh  = make(chan error, 4)
	)

	run := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				select {
				case errCh <- err:
					cancel()
				default:
				}
			}
		}()
	}

	run(func() error {
		communities, err := s.Communities.Detect(ctx)
		if err == nil {
			result.Communities = communities
		}
		return err
	})
	run(func() error {
		clusters, err := s.RepairShops.Detect(ctx, s.RepairShops.Defaults())
		if err == nil {
			result.RepairShops = clusters
		}
		return err
	})
	run(func() error {
		clusters, err := s.Providers.Detect(ctx, s.Providers.Defaults())
		if err == nil {
			result.MedicalProviders = clusters
		}
		return err
	})
	run(func() error {
		clusters, err := s.Witnesses.Detect(ctx, s.Witnesses.Defaults())
		if err == nil {
			result.Witnesses = clusters
		}
		return err
	})

	wg.Wait()
	close(errCh)
	if err := <-errCh; err != nil {
		return domain.SweepResult{}, err
	}
	return result, nil
}
