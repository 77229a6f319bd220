package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"cattery-backend-go/internal/services"

	"github.com/creasty/defaults"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/schema"
)

// ListQuery holds the optional list filters.
type ListQuery struct {
	AvailableOnly bool   `schema:"available_only"`
	Category      string `schema:"category"`
}

var queryDecoder = newQueryDecoder()

func newQueryDecoder() *schema.Decoder {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	return decoder
}

// catalogRoutes serves one record kind. Reads are public, writes go through
// the admin guard.
type catalogRoutes[T any, F services.Fields] struct {
	repo       *services.Repository[T, F]
	filters    func(q ListQuery) []services.Predicate
	deletedMsg string
}

func (c catalogRoutes[T, F]) mount(requireAdmin func(http.Handler) http.Handler) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/", c.list)
		r.Get("/{id}", c.get)
		r.Group(func(admin chi.Router) {
			admin.Use(requireAdmin)
			admin.Post("/", c.create)
			admin.Put("/{id}", c.update)
			admin.Delete("/{id}", c.delete)
		})
	}
}

func (c catalogRoutes[T, F]) list(w http.ResponseWriter, r *http.Request) {
	var preds []services.Predicate
	if c.filters != nil {
		var query ListQuery
		if err := queryDecoder.Decode(&query, r.URL.Query()); err != nil {
			WriteError(w, http.StatusUnprocessableEntity, "Invalid query parameters")
			return
		}
		preds = c.filters(query)
	}
	items, err := c.repo.List(r.Context(), preds...)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

func (c catalogRoutes[T, F]) get(w http.ResponseWriter, r *http.Request) {
	id, ok := c.pathID(w, r)
	if !ok {
		return
	}
	item, err := c.repo.Get(r.Context(), id)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, item)
}

func (c catalogRoutes[T, F]) create(w http.ResponseWriter, r *http.Request) {
	fields, ok := c.decodeFields(w, r)
	if !ok {
		return
	}
	item, err := c.repo.Create(r.Context(), fields)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, item)
}

func (c catalogRoutes[T, F]) update(w http.ResponseWriter, r *http.Request) {
	id, ok := c.pathID(w, r)
	if !ok {
		return
	}
	fields, ok := c.decodeFields(w, r)
	if !ok {
		return
	}
	item, err := c.repo.Update(r.Context(), id, fields)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, item)
}

func (c catalogRoutes[T, F]) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := c.pathID(w, r)
	if !ok {
		return
	}
	if err := c.repo.Delete(r.Context(), id); err != nil {
		writeFailure(w, r, err)
		return
	}
	message := c.deletedMsg
	if message == "" {
		message = c.repo.Noun + " deleted successfully"
	}
	WriteJSON(w, http.StatusOK, MessageResponse{Message: message})
}

// decodeFields reads a payload over the field defaults. Omitted keys keep
// their `default` tag value; keys without one must be sent.
func (c catalogRoutes[T, F]) decodeFields(w http.ResponseWriter, r *http.Request) (F, bool) {
	var fields F
	if err := defaults.Set(&fields); err != nil {
		writeFailure(w, r, err)
		return fields, false
	}
	raw, ok := readBody(w, r, &fields)
	if !ok {
		return fields, false
	}
	if err := services.CheckRequired(raw, fields); err != nil {
		writeFailure(w, r, err)
		return fields, false
	}
	return fields, true
}

func (c catalogRoutes[T, F]) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, http.StatusNotFound, c.repo.Noun+" not found")
		return 0, false
	}
	return id, true
}

func availabilityFilter(q ListQuery) []services.Predicate {
	if q.AvailableOnly {
		return []services.Predicate{services.AvailableOnly()}
	}
	return nil
}

func productFilters(q ListQuery) []services.Predicate {
	preds := availabilityFilter(q)
	if category := strings.TrimSpace(q.Category); category != "" {
		preds = append(preds, services.InCategory(category))
	}
	return preds
}
