package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/secmon-lab/gridcell/pkg/usecase"
)

type mockValidator struct {
	mu     sync.Mutex
	calls  int
	result *usecase.ValidationResult
	err    error
}

func (m *mockValidator) ValidateDB(ctx context.Context) (*usecase.ValidationResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockValidator) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func TestConsistencyWorker_Check(t *testing.T) {
	v := &mockValidator{result: &usecase.ValidationResult{
		Issues: []usecase.ValidationIssue{
			{RowID: "row-1", FieldID: "tags", Message: "stale option", Actual: "myspace"},
			{RowID: "row-2", FieldID: "tags", Message: "stale option", Actual: "myspace"},
		},
	}}
	w := NewConsistencyWorker(v, time.Hour)

	gt.NoError(t, w.check(context.Background())).Required()
	gt.Value(t, testutil.ToFloat64(inconsistentCells)).Equal(2.0)

	v.result = &usecase.ValidationResult{}
	gt.NoError(t, w.check(context.Background())).Required()
	gt.Value(t, testutil.ToFloat64(inconsistentCells)).Equal(0.0)
}

func TestConsistencyWorker_CheckError(t *testing.T) {
	v := &mockValidator{err: errors.New("repository down")}
	w := NewConsistencyWorker(v, time.Hour)

	gt.Value(t, w.check(context.Background())).NotNil()
}

func TestConsistencyWorker_StartStop(t *testing.T) {
	v := &mockValidator{result: &usecase.ValidationResult{}}
	w := NewConsistencyWorker(v, 10*time.Millisecond)

	gt.NoError(t, w.Start(context.Background())).Required()

	deadline := time.Now().Add(2 * time.Second)
	for v.callCount() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	w.Stop()

	gt.B(t, v.callCount() >= 2).True()
}

func TestConsistencyWorker_InvalidInterval(t *testing.T) {
	w := NewConsistencyWorker(&mockValidator{}, 0)
	gt.Value(t, w.Start(context.Background())).NotNil()
}
