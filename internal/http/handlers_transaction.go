package http

import (
	"fmt"
	"net/http"
	"time"

	"duit/internal/core"
	"duit/internal/store"
)

type transactionRequest struct {
	CategoryID  string `json:"categoryId"`
	Amount      int64  `json:"amount"`
	Kind        string `json:"kind"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

type transactionUpdateRequest struct {
	CategoryID  *string `json:"categoryId"`
	Amount      *int64  `json:"amount"`
	Kind        *string `json:"kind"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
}

// parseDate accepts RFC 3339 timestamps and plain calendar days.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(core.DateKey, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: unparsable date %q", core.ErrZeroDate, s)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.finance.ComputeSnapshot(r.Context(), core.PeriodAll, time.Now(), core.FilterAll)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, snapshot.Transactions)
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	transaction, err := s.finance.GetTransaction(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, transaction)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	kind, err := core.ParseKind(req.Kind)
	if err != nil {
		respondError(w, r, err)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		respondError(w, r, err)
		return
	}

	fields := store.TransactionFields{
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Kind:        kind,
		Description: req.Description,
		Date:        date,
	}
	probe := core.Transaction{
		CategoryID: fields.CategoryID,
		Amount:     fields.Amount,
		Kind:       fields.Kind,
		Date:       fields.Date,
	}
	if err := probe.Validate(); err != nil {
		respondError(w, r, err)
		return
	}

	transaction, err := s.finance.CreateTransaction(r.Context(), fields)
	if err != nil {
		respondError(w, r, err)
		return
	}

	s.purgeDerived()
	respondData(w, http.StatusCreated, transaction)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	update := store.TransactionUpdate{
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Description: req.Description,
	}
	if req.Kind != nil {
		kind, err := core.ParseKind(*req.Kind)
		if err != nil {
			respondError(w, r, err)
			return
		}
		update.Kind = &kind
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			respondError(w, r, err)
			return
		}
		update.Date = &date
	}
	if req.Amount != nil && *req.Amount <= 0 {
		respondError(w, r, core.ErrInvalidAmount)
		return
	}

	id := r.PathValue("id")
	if err := s.finance.UpdateTransaction(r.Context(), id, update); err != nil {
		respondError(w, r, err)
		return
	}

	s.purgeDerived()
	respondMessage(w, http.StatusOK, "transaction updated")
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.finance.DeleteTransaction(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, r, err)
		return
	}

	s.purgeDerived()
	respondMessage(w, http.StatusOK, "transaction deleted")
}
