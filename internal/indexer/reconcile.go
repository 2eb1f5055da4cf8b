package indexer

import (
	"context"
	"fmt"
	"time"

	"imagesearch/internal/contextutil"
)

// ReconcileStats summarizes one reconciliation pass over stale pending rows.
type ReconcileStats struct {
	Checked   int
	Finalized int
	Removed   int
	Failed    int
}

// Reconcile resolves metadata rows that have been pending since before
// olderThan. A pending row whose vector made it into the index is finalized;
// one with no vector is an orphan of a crashed indexing run and is removed
// together with its files. Rows that cannot be checked are left for the next
// pass.
func (p *Pipeline) Reconcile(ctx context.Context, olderThan time.Time) (ReconcileStats, error) {
	logger := contextutil.LoggerFromContext(ctx)

	var stats ReconcileStats

	pending, err := p.imageRepo.ListPending(ctx, olderThan)
	if err != nil {
		return stats, fmt.Errorf("failed to list pending records: %w", err)
	}

	for _, record := range pending {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.Checked++

		exists, err := p.vectorStore.Exists(ctx, p.collection, record.UUID)
		if err != nil {
			stats.Failed++
			logger.WarnContext(ctx, "failed to check vector during reconciliation",
				"uuid", record.UUID, "error", err)
			continue
		}

		if exists {
			if err := p.imageRepo.MarkIndexed(ctx, record.UUID); err != nil {
				stats.Failed++
				logger.WarnContext(ctx, "failed to finalize pending record",
					"uuid", record.UUID, "error", err)
				continue
			}
			stats.Finalized++
			logger.InfoContext(ctx, "finalized pending record", "uuid", record.UUID)
			continue
		}

		if err := p.imageRepo.Delete(ctx, record.UUID); err != nil {
			stats.Failed++
			logger.WarnContext(ctx, "failed to remove orphaned record",
				"uuid", record.UUID, "error", err)
			continue
		}
		if err := p.files.Remove(record.UUID); err != nil {
			logger.WarnContext(ctx, "failed to remove files for orphaned record",
				"uuid", record.UUID, "error", err)
		}
		stats.Removed++
		logger.InfoContext(ctx, "removed orphaned pending record", "uuid", record.UUID)
	}

	if stats.Checked > 0 {
		logger.InfoContext(ctx, "reconciliation pass completed",
			"checked", stats.Checked, "finalized", stats.Finalized,
			"removed", stats.Removed, "failed", stats.Failed)
	}
	return stats, nil
}

// RunReconcileLoop runs reconciliation on a fixed interval until the context
// is cancelled. cutoff is how long a row may stay pending before it is
// considered stale.
func (p *Pipeline) RunReconcileLoop(ctx context.Context, interval, cutoff time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := p.Reconcile(ctx, time.Now().Add(-cutoff)); err != nil {
				p.logger.Error("reconciliation pass failed", "error", err)
			}
		}
	}
}
