package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/wadjakorntonsri/linkboard/pkg/core/domain"
	"github.com/wadjakorntonsri/linkboard/pkg/ports"
)

var validate = validator.New()

type DomainHandler struct {
	service ports.DomainService
	log     logrus.FieldLogger
}

func NewDomainHandler(service ports.DomainService, logger logrus.FieldLogger) *DomainHandler {
	return &DomainHandler{service: service, log: logger}
}

type DomainRequest struct {
	Name string `json:"name" validate:"required"`
}

func (h *DomainHandler) List(w http.ResponseWriter, r *http.Request) {
	domains, err := h.service.ListDomains(r.Context())
	if err != nil {
		writeServerError(w, h.log, err, "Failed to list domains")
		return
	}
	if domains == nil {
		domains = []domain.Domain{}
	}
	writeJSON(w, http.StatusOK, domains)
}

func (h *DomainHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req DomainRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Name is required")
		return
	}

	_, err := h.service.CreateDomain(r.Context(), req.Name)
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeMessage(w, http.StatusBadRequest, "Name is required")
	case err != nil:
		h.log.WithError(err).WithField("name", req.Name).Warn("Domain create failed")
		writeMessage(w, http.StatusBadRequest, "Domain already exists or error")
	default:
		writeMessage(w, http.StatusOK, "Domain created")
	}
}

// Update renames a domain. Links filed under the old name are left alone.
func (h *DomainHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req DomainRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.service.UpdateDomain(r.Context(), id, req.Name)
	switch {
	case errors.Is(err, domain.ErrDuplicateDomain):
		writeMessage(w, http.StatusBadRequest, "Domain already exists or error")
	case err != nil:
		writeServerError(w, h.log, err, "Failed to update domain")
	default:
		writeMessage(w, http.StatusOK, "Domain updated")
	}
}

// Delete removes the domain and every link posted under its name.
func (h *DomainHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.service.DeleteDomain(r.Context(), id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Domain not found")
	case err != nil:
		writeServerError(w, h.log, err, "Failed to delete domain")
	default:
		writeMessage(w, http.StatusOK, "Domain and related posts deleted")
	}
}
