package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"

	"github.com/geoirb/doc-templater/internal/auth"
	"github.com/geoirb/doc-templater/internal/response"
	"github.com/geoirb/doc-templater/internal/templates"
)

type sessionManager interface {
	Token(r *http.Request) (string, bool)
	SignIn(w http.ResponseWriter, r *http.Request, token string) error
	SignOut(w http.ResponseWriter, r *http.Request) error
}

type authClient interface {
	SignIn(ctx context.Context, email, password string) (string, auth.User, error)
	User(ctx context.Context, token string) (auth.User, error)
}

type converter interface {
	Available(ctx context.Context) bool
	Convert(ctx context.Context, content []byte, filename string) ([]byte, error)
}

type handler struct {
	svc       templates.Service
	sessions  sessionManager
	auth      authClient
	converter converter

	maxFileSize int64

	logger log.Logger
}

// NewHandler returns the service's http api.
func NewHandler(
	svc templates.Service,
	sessions sessionManager,
	auth authClient,
	converter converter,
	maxFileSize int64,
	logger log.Logger,
) http.Handler {
	h := &handler{
		svc:         svc,
		sessions:    sessions,
		auth:        auth,
		converter:   converter,
		maxFileSize: maxFileSize,
		logger:      logger,
	}

	r := chi.NewRouter()
	r.Post("/api/login", h.login)
	r.Post("/api/logout", h.logout)
	r.Get("/api/pdf-service-health", h.pdfHealth)

	r.Group(func(r chi.Router) {
		r.Use(h.authenticate)
		r.Post("/api/templates/upload", h.upload)
		r.Get("/api/templates/list", h.list)
		r.Get("/api/templates/{templateID}/download", h.download)
		r.Post("/api/templates/{templateID}/generate", h.generate)
		r.Delete("/api/templates/{templateID}", h.remove)
		r.Post("/api/convert-to-pdf", h.convertToPDF)
	})
	return r
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		response.Error(w, http.StatusBadRequest, "email and password are required", "")
		return
	}

	token, user, err := h.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			response.Error(w, http.StatusUnauthorized, "invalid email or password", "")
			return
		}
		level.Error(h.logger).Log("msg", "sign in", "err", err)
		response.Error(w, http.StatusInternalServerError, "login failed", "")
		return
	}

	if err = h.sessions.SignIn(w, r, token); err != nil {
		level.Error(h.logger).Log("msg", "store session", "err", err)
		response.Error(w, http.StatusInternalServerError, "login failed", "")
		return
	}
	response.JSON(w, http.StatusOK, loginResponse{Success: true, User: user})
}

func (h *handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.SignOut(w, r); err != nil {
		level.Error(h.logger).Log("msg", "drop session", "err", err)
		response.Error(w, http.StatusInternalServerError, "logout failed", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) upload(w http.ResponseWriter, r *http.Request) {
	name, filename, content, ok := h.formFile(w, r, "templateFile")
	if !ok {
		return
	}

	template, err := h.svc.Upload(r.Context(), templates.UploadRequest{
		UserID:   userID(r.Context()),
		Name:     name,
		Filename: filename,
		Content:  content,
	})
	if err != nil {
		response.Error(w, status(err), err.Error(), "")
		return
	}

	response.JSON(w, http.StatusOK, uploadResponse{
		Success:  true,
		Message:  "template uploaded",
		Template: template,
	})
}

func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context(), userID(r.Context()))
	if err != nil {
		response.Error(w, status(err), err.Error(), "")
		return
	}
	if list == nil {
		list = []*templates.Template{}
	}
	response.JSON(w, http.StatusOK, listResponse{Templates: list})
}

func (h *handler) download(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.Download(r.Context(), userID(r.Context()), chi.URLParam(r, "templateID"))
	if err != nil {
		response.Error(w, status(err), err.Error(), "")
		return
	}
	response.Attachment(w, doc.Filename, doc.ContentType, doc.Content)
}

func (h *handler) generate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxFileSize))
	if err != nil || len(body) == 0 {
		response.Error(w, http.StatusBadRequest, "placeholder data is required", "")
		return
	}

	var payload map[string]interface{}
	if err = json.Unmarshal(body, &payload); err != nil || payload == nil {
		response.Error(w, http.StatusBadRequest, "placeholder data must be a json object", "")
		return
	}

	doc, err := h.svc.Generate(r.Context(), userID(r.Context()), chi.URLParam(r, "templateID"), payload)
	if err != nil {
		response.Error(w, status(err), err.Error(), "")
		return
	}
	response.Attachment(w, doc.Filename, doc.ContentType, doc.Content)
}

func (h *handler) remove(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), userID(r.Context()), chi.URLParam(r, "templateID")); err != nil {
		response.Error(w, status(err), err.Error(), "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) convertToPDF(w http.ResponseWriter, r *http.Request) {
	_, filename, content, ok := h.formFile(w, r, "file")
	if !ok {
		return
	}

	if !h.converter.Available(r.Context()) {
		response.Error(w, http.StatusServiceUnavailable, "pdf conversion service is unavailable", "")
		return
	}

	result, err := h.converter.Convert(r.Context(), content, filename)
	if err != nil {
		level.Error(h.logger).Log("msg", "convert to pdf", "file", filename, "err", err)
		response.Error(w, http.StatusInternalServerError, "pdf conversion failed", err.Error())
		return
	}

	pdfName := strings.TrimSuffix(filename, "."+extension(filename)) + ".pdf"
	response.Attachment(w, pdfName, "application/pdf", result)
}

func (h *handler) pdfHealth(w http.ResponseWriter, r *http.Request) {
	available := h.converter.Available(r.Context())
	state := "unavailable"
	if available {
		state = "healthy"
	}
	response.JSON(w, http.StatusOK, healthResponse{
		Status:      state,
		LibreOffice: available,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	})
}

// formFile reads a multipart upload, enforcing the file size cap
// before anything is buffered.
func (h *handler) formFile(w http.ResponseWriter, r *http.Request, field string) (name, filename string, content []byte, ok bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+formOverhead)
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(w, http.StatusRequestEntityTooLarge, "file size exceeds limit", "")
			return
		}
		response.Error(w, http.StatusBadRequest, "invalid multipart form", "")
		return
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "no file provided", "")
		return
	}
	defer file.Close()

	if content, err = io.ReadAll(file); err != nil {
		response.Error(w, http.StatusBadRequest, "failed to read file", "")
		return
	}
	return r.FormValue("templateName"), header.Filename, content, true
}

func extension(filename string) string {
	if idx := strings.LastIndex(filename, "."); idx >= 0 {
		return filename[idx+1:]
	}
	return ""
}

// formOverhead leaves room for multipart boundaries and text fields on
// top of the file size cap.
const formOverhead = 1 << 20
