package httpapi

import (
	"net/http"

	"cattery-backend-go/internal/services"
)

func (s *Server) System(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, services.CaptureSystem(s.Config.ImagesDir))
}
