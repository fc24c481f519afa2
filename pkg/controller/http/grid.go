package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/gridcell/pkg/domain/model"
	"github.com/secmon-lab/gridcell/pkg/domain/model/config"
)

func fieldsHandler(schema *config.FieldSchema) http.HandlerFunc {
	type response struct {
		Fields []config.FieldDefinition `json:"fields"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		resp := response{Fields: []config.FieldDefinition{}}
		if schema != nil {
			resp.Fields = append(resp.Fields, schema.Fields...)
		}
		writeJSON(w, r, http.StatusOK, resp)
	}
}

func getCellHandler(grid GridUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		decoded, err := grid.GetCell(r.Context(), chi.URLParam(r, "rowID"), chi.URLParam(r, "fieldID"))
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, decoded)
	}
}

// updateCellHandler takes the raw changeset text as request body
func updateCellHandler(grid GridUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := readBody(w, r)
		if err != nil {
			handleError(w, r, err)
			return
		}

		cell, err := grid.UpdateCell(r.Context(), chi.URLParam(r, "rowID"), chi.URLParam(r, "fieldID"), string(body))
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, cell)
	}
}

type filterRequest struct {
	FieldID   string `json:"field_id"`
	Condition uint8  `json:"condition"`
	Content   string `json:"content"`
}

func listFiltersHandler(grid GridUseCase) http.HandlerFunc {
	type response struct {
		Filters []*model.FilterRevision `json:"filters"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		revs, err := grid.ListFilters(r.Context())
		if err != nil {
			handleError(w, r, err)
			return
		}
		if revs == nil {
			revs = []*model.FilterRevision{}
		}
		writeJSON(w, r, http.StatusOK, response{Filters: revs})
	}
}

func getFilterHandler(grid GridUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rev, err := grid.GetFilter(r.Context(), model.FilterID(chi.URLParam(r, "filterID")))
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, rev)
	}
}

func putFilterHandler(grid GridUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req filterRequest
		if err := decodeJSON(w, r, &req); err != nil {
			handleError(w, r, err)
			return
		}

		rev, err := grid.PutFilter(r.Context(), &model.FilterRevision{
			ID:        model.FilterID(chi.URLParam(r, "filterID")),
			FieldID:   req.FieldID,
			Condition: req.Condition,
			Content:   req.Content,
		})
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, rev)
	}
}

func deleteFilterHandler(grid GridUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := grid.DeleteFilter(r.Context(), model.FilterID(chi.URLParam(r, "filterID"))); err != nil {
			handleError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type rowsRequest struct {
	RowIDs []string `json:"row_ids"`
}

func filterRowsHandler(grid GridUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req rowsRequest
		if err := decodeJSON(w, r, &req); err != nil {
			handleError(w, r, err)
			return
		}

		matched, err := grid.FilterRows(r.Context(), req.RowIDs)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, rowsRequest{RowIDs: matched})
	}
}
