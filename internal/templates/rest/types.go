package rest

import (
	"github.com/geoirb/doc-templater/internal/auth"
	"github.com/geoirb/doc-templater/internal/templates"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool      `json:"success"`
	User    auth.User `json:"user"`
}

type uploadResponse struct {
	Success  bool                `json:"success"`
	Message  string              `json:"message"`
	Template *templates.Template `json:"template"`
}

type listResponse struct {
	Templates []*templates.Template `json:"templates"`
}

type healthResponse struct {
	Status      string `json:"status"`
	LibreOffice bool   `json:"libreoffice"`
	Timestamp   string `json:"timestamp"`
}
