package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/wadjakorntonsri/linkboard/pkg/core/domain"
	"github.com/wadjakorntonsri/linkboard/pkg/ports"
)

type LinkHandler struct {
	service ports.LinkService
	log     logrus.FieldLogger
}

func NewLinkHandler(service ports.LinkService, logger logrus.FieldLogger) *LinkHandler {
	return &LinkHandler{service: service, log: logger}
}

// Create Link
func (h *LinkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.LinkInput
	if err := decodeJSON(r, &in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.service.CreateLink(r.Context(), in); err != nil {
		writeServerError(w, h.log, err, "Failed to post link")
		return
	}
	writeMessage(w, http.StatusOK, "Link posted")
}

// List all links, newest first
func (h *LinkHandler) List(w http.ResponseWriter, r *http.Request) {
	links, err := h.service.ListLinks(r.Context())
	if err != nil {
		writeServerError(w, h.log, err, "Failed to list links")
		return
	}
	if links == nil {
		links = []domain.Link{}
	}
	writeJSON(w, http.StatusOK, links)
}

// Update overwrites the editable fields of a link
func (h *LinkHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var in domain.LinkInput
	if err := decodeJSON(r, &in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.UpdateLink(r.Context(), id, in); err != nil {
		writeServerError(w, h.log, err, "Failed to update link")
		return
	}
	writeMessage(w, http.StatusOK, "Link updated")
}

// Delete Link
func (h *LinkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteLink(r.Context(), id); err != nil {
		writeServerError(w, h.log, err, "Failed to delete link")
		return
	}
	writeMessage(w, http.StatusOK, "Link deleted")
}
