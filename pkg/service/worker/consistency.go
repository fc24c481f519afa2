package worker

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/secmon-lab/gridcell/pkg/usecase"
	"github.com/secmon-lab/gridcell/pkg/utils/errutil"
	"github.com/secmon-lab/gridcell/pkg/utils/logging"
)

var inconsistentCells = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: "gridcell",
		Name:      "inconsistent_cells",
		Help:      "Number of stored cells that disagree with the field schema at the last check.",
	},
)

// Validator runs a read-only consistency check of stored cells
type Validator interface {
	ValidateDB(ctx context.Context) (*usecase.ValidationResult, error)
}

// ConsistencyWorker periodically checks stored cells against the field schema
// and reports stale option references.
//
// Assumes a single server instance; concurrent instances would each run the
// same read-only check.
type ConsistencyWorker struct {
	validator Validator
	interval  time.Duration
	stopCh    chan struct{}
	doneCh    chan struct{}
}

// NewConsistencyWorker creates a new worker running validator every interval
func NewConsistencyWorker(validator Validator, interval time.Duration) *ConsistencyWorker {
	return &ConsistencyWorker{
		validator: validator,
		interval:  interval,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins the background check loop without blocking
func (w *ConsistencyWorker) Start(ctx context.Context) error {
	if w.interval <= 0 {
		return goerr.New("consistency check interval must be positive", goerr.V("interval", w.interval))
	}

	logging.Default().Info("Consistency worker starting",
		"interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *ConsistencyWorker) Stop() {
	logging.Default().Info("Consistency worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Consistency worker stopped")
}

func (w *ConsistencyWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	if err := w.check(ctx); err != nil {
		errutil.Handle(ctx, err, "initial consistency check failed (will retry next interval)")
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.check(ctx); err != nil {
				errutil.Handle(ctx, err, "consistency check failed (will retry next interval)")
			}

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.Default().Info("Consistency worker context cancelled")
			return
		}
	}
}

// check performs a single consistency check
func (w *ConsistencyWorker) check(ctx context.Context) error {
	startTime := time.Now()

	result, err := w.validator.ValidateDB(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to validate stored cells")
	}

	inconsistentCells.Set(float64(len(result.Issues)))
	for _, issue := range result.Issues {
		logging.Default().Warn("Inconsistent cell found",
			"row_id", issue.RowID,
			"field_id", issue.FieldID,
			"message", issue.Message,
			"actual", issue.Actual,
		)
	}

	logging.Default().Info("Consistency check completed",
		"issues", len(result.Issues),
		"duration", time.Since(startTime).String())

	return nil
}
