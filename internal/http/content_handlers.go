package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type ContentRequest struct {
	PageName string `json:"page_name"`
	Content  string `json:"content"`
}

func (s *Server) GetContent(w http.ResponseWriter, r *http.Request) {
	page, err := s.Content.Get(r.Context(), chi.URLParam(r, "page_name"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, page)
}

func (s *Server) PutContent(w http.ResponseWriter, r *http.Request) {
	var req ContentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	page, err := s.Content.Upsert(r.Context(), req.PageName, req.Content)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, page)
}
