package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Veraticus/reviewlens/internal/model"
	"github.com/Veraticus/reviewlens/internal/storage"
	"github.com/gorilla/mux"
)

// categoryView is a category as returned by the API.
type categoryView struct {
	Name         string `json:"name"`
	Keywords     string `json:"keywords"`
	KeywordCount int    `json:"keyword_count"`
}

func viewOf(c model.Category) categoryView {
	return categoryView{Name: c.Name, Keywords: c.Keywords, KeywordCount: c.KeywordCount()}
}

// presetView is a built-in category with its import state.
type presetView struct {
	Name     string `json:"name"`
	Keywords string `json:"keywords"`
	Preview  string `json:"preview"`
	Imported bool   `json:"imported"`
}

type categoryRequest struct {
	Name     string `json:"name"`
	Keywords string `json:"keywords"`
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", errBadRequest, err)
	}
	return nil
}

func (s *Server) listCategories(w http.ResponseWriter, _ *http.Request) {
	categories := s.store.List()
	out := make([]categoryView, 0, len(categories))
	for _, c := range categories {
		out = append(out, viewOf(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := s.store.Add(r.Context(), req.Name, req.Keywords); err != nil {
		writeError(w, err)
		return
	}

	c, err := s.store.Get(req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, viewOf(c))
}

func (s *Server) updateCategory(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var req categoryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := s.store.Update(r.Context(), name, req.Keywords); err != nil {
		writeError(w, err)
		return
	}

	c, err := s.store.Get(name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(c))
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), mux.Vars(r)["name"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listPresets(w http.ResponseWriter, _ *http.Request) {
	presets := storage.Presets()
	out := make([]presetView, 0, len(presets))
	for _, p := range presets {
		out = append(out, presetView{
			Name:     p.Name,
			Keywords: p.Keywords,
			Preview:  storage.PresetPreview(p),
			Imported: s.store.IsImported(p.Name),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) importPreset(w http.ResponseWriter, r *http.Request) {
	preset, err := s.store.ImportPreset(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(preset))
}
