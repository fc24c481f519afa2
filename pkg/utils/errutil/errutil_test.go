package errutil_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/gridcell/pkg/utils/errutil"
	"github.com/secmon-lab/gridcell/pkg/utils/logging"
)

func TestHandle(t *testing.T) {
	var buf bytes.Buffer
	ctx := logging.With(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))

	gt.Value(t, errutil.Handle(ctx, nil, "noop")).Nil()

	err := goerr.New("boom", goerr.V("row_id", "r1"))
	gt.Value(t, errutil.Handle(ctx, err, "failed")).Equal(error(err))
	gt.S(t, buf.String()).Contains("failed")
	gt.S(t, buf.String()).Contains("r1")
}

func TestHandleHTTP(t *testing.T) {
	var buf bytes.Buffer
	ctx := logging.With(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))

	w := httptest.NewRecorder()
	errutil.HandleHTTP(ctx, w, goerr.New("bad input"), http.StatusBadRequest)

	gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	gt.S(t, w.Body.String()).Contains("bad input")
	gt.S(t, buf.String()).Contains("HTTP error")
}
