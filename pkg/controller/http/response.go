package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/gridcell/pkg/domain/model"
	"github.com/secmon-lab/gridcell/pkg/domain/model/typeoption"
	"github.com/secmon-lab/gridcell/pkg/domain/types"
	"github.com/secmon-lab/gridcell/pkg/usecase"
	"github.com/secmon-lab/gridcell/pkg/utils/errutil"
	"github.com/secmon-lab/gridcell/pkg/utils/safe"
)

const maxBodySize = 1 << 20

// statusOf maps domain errors to HTTP status codes
func statusOf(err error) int {
	switch {
	case errors.Is(err, usecase.ErrFieldNotFound),
		errors.Is(err, usecase.ErrFilterNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidChangeset),
		errors.Is(err, types.ErrInvalidData),
		errors.Is(err, typeoption.ErrUnsupportedFieldType):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func handleError(w http.ResponseWriter, r *http.Request, err error) {
	errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	defer safe.Close(r.Context(), r.Body)
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		return nil, goerr.Wrap(types.ErrInvalidData, "failed to read request body", goerr.V("cause", err.Error()))
	}
	return body, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body, err := readBody(w, r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return goerr.Wrap(types.ErrInvalidData, "malformed JSON request body", goerr.V("cause", err.Error()))
	}
	return nil
}
