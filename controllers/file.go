package controllers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"nautika-backend/models"
	"nautika-backend/utils"
)

type FileController struct {
	UploadDir string
	EventDir  string
}

func NewFileController() *FileController {
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	eventDir := os.Getenv("EVENT_STORAGE_DIR")
	if eventDir == "" {
		eventDir = "storage/event"
	}
	return &FileController{UploadDir: uploadDir, EventDir: eventDir}
}

// GetFile streams a stored image. Names containing "/event" resolve under
// the event storage directory, everything else under the general uploads
// directory. Only the base name is used, so a request can never escape
// those two roots.
func (fc *FileController) GetFile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		image := r.URL.Query().Get("image")
		if image == "" {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: `Query parameter "image" is required`})
			return
		}

		dir := fc.UploadDir
		if strings.Contains(image, "/event") {
			dir = fc.EventDir
		}
		path := filepath.Join(dir, filepath.Base(image))

		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Image not found"})
			return
		}

		http.ServeFile(w, r, path)
	}
}
