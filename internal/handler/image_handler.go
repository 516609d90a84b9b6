package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go-cms-app/internal/middleware"
)

// imageExtensions lists the file types offered to the image block picker.
var imageExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
}

// ImageHandler lists the images available to image blocks. The files
// themselves are served as static content; blocks reference them by bare
// filename.
type ImageHandler struct {
	dir string
}

// NewImageHandler creates a new ImageHandler over the given directory.
func NewImageHandler(dir string) *ImageHandler {
	return &ImageHandler{dir: dir}
}

// listImages returns the image filenames in the static directory.
func (h *ImageHandler) listImages(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	entries, err := os.ReadDir(h.dir)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to read the images directory.", Code: http.StatusInternalServerError}
	}

	images := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			images = append(images, e.Name())
		}
	}
	return writeJSON(w, http.StatusOK, images)
}
