package httpapi

import (
	"errors"
	"mime/multipart"
	"net/http"

	"cattery-backend-go/internal/services"
)

const maxImageUpload = 20 << 20

func (s *Server) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageUpload+1<<20)
	if err := r.ParseMultipartForm(maxImageUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || errors.Is(err, multipart.ErrMessageTooLarge) {
			WriteError(w, http.StatusRequestEntityTooLarge, "File is too large")
			return
		}
		WriteError(w, http.StatusBadRequest, "Invalid upload")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "File is empty")
		return
	}
	defer file.Close()
	stored, err := services.SaveImage(s.Config.ImagesDir, file)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, stored)
}
