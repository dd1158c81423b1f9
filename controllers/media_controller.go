package controllers

import (
	"encoding/json"
	"net/http"

	"saathi_server/services"
)

// MediaController handles presigned URL endpoints for gallery photos
type MediaController struct {
	MediaService *services.MediaService
}

// NewMediaController creates a new instance of MediaController
func NewMediaController(mediaService *services.MediaService) *MediaController {
	return &MediaController{MediaService: mediaService}
}

// HandleUploadURL returns a presigned PUT URL for a new gallery photo
func (c *MediaController) HandleUploadURL(w http.ResponseWriter, r *http.Request) {
	var request struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.FileName == "" || request.FileType == "" {
		http.Error(w, `{"error": "Missing required fields: fileName, fileType"}`, http.StatusBadRequest)
		return
	}

	uploadURL, key, err := c.MediaService.GenerateUploadURL(request.FileName, request.FileType)
	if err != nil {
		http.Error(w, `{"error": "Failed to generate upload URL"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"uploadUrl": uploadURL,
		"key":       key,
	})
}

// HandleReadURL returns a presigned GET URL for a stored photo
func (c *MediaController) HandleReadURL(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, `{"error": "key is required"}`, http.StatusBadRequest)
		return
	}

	readURL, err := c.MediaService.GenerateReadURL(key)
	if err != nil {
		http.Error(w, `{"error": "Failed to generate read URL"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"readUrl": readURL})
}
