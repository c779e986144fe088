package installer

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/prizepacket/prizepacket/internal/apperrors"
	"github.com/prizepacket/prizepacket/internal/config"
)

// installForm echoes the submitted non-secret inputs back on failure so the
// operator can correct and resubmit. The password is never echoed.
type installForm struct {
	DBHost string `json:"db_host"`
	DBName string `json:"db_name"`
	DBUser string `json:"db_user"`
	AppURL string `json:"app_url"`
}

type installError struct {
	Error string      `json:"error"`
	Form  installForm `json:"form"`
}

// Handler serves the installer entry point.
type Handler struct {
	installer *Installer
}

// NewHandler creates a handler over the given installer.
func NewHandler(installer *Installer) *Handler {
	return &Handler{installer: installer}
}

// Install handles POST /install: form-style connection parameters in,
// either a success report or a structured error out.
func (h *Handler) Install(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form submission", http.StatusBadRequest)
		return
	}

	params := config.Params{
		DBHost:     r.PostFormValue("db_host"),
		DBName:     r.PostFormValue("db_name"),
		DBUser:     r.PostFormValue("db_user"),
		DBPassword: r.PostFormValue("db_pass"),
		AppURL:     r.PostFormValue("app_url"),
	}

	report, err := h.installer.Run(r.Context(), params)
	if err != nil {
		writeInstallError(w, params, err)
		return
	}

	log.Printf("installation complete, seeded user %q", report.Username)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(report)
}

func writeInstallError(w http.ResponseWriter, params config.Params, err error) {
	status := http.StatusInternalServerError

	var validation *apperrors.ValidationError
	var connection *apperrors.ConnectionError
	switch {
	case errors.Is(err, apperrors.ErrAlreadyInstalled):
		status = http.StatusConflict
	case errors.As(err, &validation):
		status = http.StatusUnprocessableEntity
	case errors.As(err, &connection):
		status = http.StatusBadGateway
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(installError{
		Error: err.Error(),
		Form: installForm{
			DBHost: params.DBHost,
			DBName: params.DBName,
			DBUser: params.DBUser,
			AppURL: params.AppURL,
		},
	})
}
