package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/wadjakorntonsri/linkboard/pkg/ports"
)

type FileHandler struct {
	service  ports.FileService
	maxBytes int64
	log      logrus.FieldLogger
}

func NewFileHandler(service ports.FileService, maxBytes int64, logger logrus.FieldLogger) *FileHandler {
	return &FileHandler{service: service, maxBytes: maxBytes, log: logger}
}

type UploadResponse struct {
	URL string `json:"url"`
}

// Upload accepts one multipart file in the "file" field.
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// Headroom for the multipart envelope around the file itself.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+1<<20)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeMessage(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		writeMessage(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		h.log.WithError(err).Warn("No file received")
		writeMessage(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	url, err := h.service.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		h.log.WithError(err).WithField("file", header.Filename).Error("S3 upload error")
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "S3 upload failed", Error: err.Error()})
		return
	}

	uploadBytes.Add(float64(header.Size))
	writeJSON(w, http.StatusOK, UploadResponse{URL: url})
}

// Download streams an object back by key. No existence check is made up front.
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "filename")

	obj, err := h.service.Download(r.Context(), key)
	if err != nil {
		writeServerError(w, h.log, err, "Error downloading file")
		return
	}
	defer obj.Body.Close()

	if obj.ContentType != "" {
		w.Header().Set("Content-Type", obj.ContentType)
	}
	if obj.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(obj.ContentLength, 10))
	}
	if _, err := io.Copy(w, obj.Body); err != nil {
		h.log.WithError(err).WithField("key", key).Warn("Download interrupted")
	}
}
