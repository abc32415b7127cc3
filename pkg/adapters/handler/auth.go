package handler

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/wadjakorntonsri/linkboard/pkg/core/domain"
	"github.com/wadjakorntonsri/linkboard/pkg/ports"
)

type AuthHandler struct {
	auth ports.AuthService
	log  logrus.FieldLogger
}

func NewAuthHandler(auth ports.AuthService, logger logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{auth: auth, log: logger}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.auth.Login(req.Username, req.Password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		h.log.WithField("username", req.Username).Warn("Login failed")
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		writeServerError(w, h.log, err, "Login failed")
		return
	}

	h.log.WithField("username", req.Username).Info("Login successful")
	writeJSON(w, http.StatusOK, LoginResponse{Token: token})
}
