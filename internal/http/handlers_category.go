package http

import (
	"net/http"

	"duit/internal/core"
	"duit/internal/store"
)

type categoryRequest struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

type categoryUpdateRequest struct {
	Name  *string `json:"name"`
	Kind  *string `json:"kind"`
	Icon  *string `json:"icon"`
	Color *string `json:"color"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.finance.ListCategories(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, categories)
}

func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := s.finance.GetCategory(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, category)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	kind, err := core.ParseKind(req.Kind)
	if err != nil {
		respondError(w, r, err)
		return
	}

	fields := store.CategoryFields{
		Name:  req.Name,
		Kind:  kind,
		Icon:  req.Icon,
		Color: req.Color,
	}
	if err := (core.Category{Name: fields.Name, Kind: fields.Kind}).Validate(); err != nil {
		respondError(w, r, err)
		return
	}

	category, err := s.finance.CreateCategory(r.Context(), fields)
	if err != nil {
		respondError(w, r, err)
		return
	}

	s.purgeDerived()
	respondData(w, http.StatusCreated, category)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	update := store.CategoryUpdate{
		Name:  req.Name,
		Icon:  req.Icon,
		Color: req.Color,
	}
	if req.Kind != nil {
		kind, err := core.ParseKind(*req.Kind)
		if err != nil {
			respondError(w, r, err)
			return
		}
		update.Kind = &kind
	}
	if req.Name != nil {
		if err := (core.Category{Name: *req.Name, Kind: core.Expense}).Validate(); err != nil {
			respondError(w, r, err)
			return
		}
	}

	id := r.PathValue("id")
	if err := s.finance.UpdateCategory(r.Context(), id, update); err != nil {
		respondError(w, r, err)
		return
	}

	s.purgeDerived()
	respondMessage(w, http.StatusOK, "category updated")
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.finance.DeleteCategory(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, r, err)
		return
	}

	s.purgeDerived()
	respondMessage(w, http.StatusOK, "category deleted")
}
