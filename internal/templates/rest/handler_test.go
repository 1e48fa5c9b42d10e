package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-kit/kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoirb/doc-templater/internal/auth"
	"github.com/geoirb/doc-templater/internal/templates"
)

type fakeService struct {
	template *templates.Template
	document *templates.Document
	err      error

	uploaded  *templates.UploadRequest
	generated map[string]interface{}
}

func (s *fakeService) Upload(_ context.Context, req templates.UploadRequest) (*templates.Template, error) {
	s.uploaded = &req
	return s.template, s.err
}

func (s *fakeService) List(_ context.Context, _ string) ([]*templates.Template, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []*templates.Template{s.template}, nil
}

func (s *fakeService) Download(_ context.Context, _, _ string) (*templates.Document, error) {
	return s.document, s.err
}

func (s *fakeService) Generate(_ context.Context, _, _ string, payload map[string]interface{}) (*templates.Document, error) {
	s.generated = payload
	return s.document, s.err
}

func (s *fakeService) Delete(_ context.Context, _, _ string) error {
	return s.err
}

type fakeSessions struct {
	token string
}

func (s *fakeSessions) Token(_ *http.Request) (string, bool) {
	return s.token, s.token != ""
}

func (s *fakeSessions) SignIn(_ http.ResponseWriter, _ *http.Request, token string) error {
	s.token = token
	return nil
}

func (s *fakeSessions) SignOut(_ http.ResponseWriter, _ *http.Request) error {
	s.token = ""
	return nil
}

type fakeAuth struct{}

func (fakeAuth) SignIn(_ context.Context, email, password string) (string, auth.User, error) {
	if password != "secret" {
		return "", auth.User{}, auth.ErrInvalidCredentials
	}
	return "token-1", auth.User{ID: "user-1", Email: email}, nil
}

func (fakeAuth) User(_ context.Context, token string) (auth.User, error) {
	if token != "token-1" {
		return auth.User{}, auth.ErrUnauthorized
	}
	return auth.User{ID: "user-1"}, nil
}

type fakeConverter struct {
	available bool
}

func (c *fakeConverter) Available(_ context.Context) bool { return c.available }

func (c *fakeConverter) Convert(_ context.Context, _ []byte, _ string) ([]byte, error) {
	return []byte("%PDF-1.4"), nil
}

type env struct {
	svc       *fakeService
	sessions  *fakeSessions
	converter *fakeConverter
	handler   http.Handler
}

func newEnv() *env {
	e := &env{
		svc:       &fakeService{},
		sessions:  &fakeSessions{},
		converter: &fakeConverter{},
	}
	e.handler = NewHandler(e.svc, e.sessions, fakeAuth{}, e.converter, 1<<20, log.NewNopLogger())
	return e
}

func (e *env) do(r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, r)
	return rec
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("templateName", "Invoice"))
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func attachmentFilename(t *testing.T, rec *httptest.ResponseRecorder) string {
	mediaType, params, err := mime.ParseMediaType(rec.Header().Get("Content-Disposition"))
	require.NoError(t, err)
	require.Equal(t, "attachment", mediaType)
	return params["filename"]
}

func TestLogin(t *testing.T) {
	e := newEnv()

	rec := e.do(httptest.NewRequest(http.MethodPost, "/api/login",
		bytes.NewBufferString(`{"email":"ana@example.com","password":"secret"}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "token-1", e.sessions.token)

	rec = e.do(httptest.NewRequest(http.MethodPost, "/api/login",
		bytes.NewBufferString(`{"email":"ana@example.com","password":"wrong"}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUploadRequiresSession(t *testing.T) {
	e := newEnv()

	body, contentType := multipartBody(t, "templateFile", "invoice.xlsx", []byte("workbook"))
	r := httptest.NewRequest(http.MethodPost, "/api/templates/upload", body)
	r.Header.Set("Content-Type", contentType)

	assert.Equal(t, http.StatusUnauthorized, e.do(r).Code)
}

func TestUpload(t *testing.T) {
	e := newEnv()
	e.sessions.token = "token-1"
	e.svc.template = &templates.Template{ID: "template-1", Name: "Invoice"}

	body, contentType := multipartBody(t, "templateFile", "invoice.xlsx", []byte("workbook"))
	r := httptest.NewRequest(http.MethodPost, "/api/templates/upload", body)
	r.Header.Set("Content-Type", contentType)

	rec := e.do(r)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, e.svc.uploaded)
	assert.Equal(t, "user-1", e.svc.uploaded.UserID)
	assert.Equal(t, "Invoice", e.svc.uploaded.Name)
	assert.Equal(t, "invoice.xlsx", e.svc.uploaded.Filename)
	assert.Equal(t, []byte("workbook"), e.svc.uploaded.Content)

	var res uploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Success)
	assert.Equal(t, "template-1", res.Template.ID)
}

func TestGenerate(t *testing.T) {
	e := newEnv()
	e.sessions.token = "token-1"
	e.svc.document = &templates.Document{
		Filename:    "Generated-Invoice.xlsx",
		ContentType: templates.ContentType("xlsx"),
		Content:     []byte("filled"),
	}

	r := httptest.NewRequest(http.MethodPost, "/api/templates/template-1/generate",
		bytes.NewBufferString(`{"name":"Ana","amount":42}`))
	rec := e.do(r)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Generated-Invoice.xlsx", attachmentFilename(t, rec))
	assert.Equal(t, "filled", rec.Body.String())
	assert.Equal(t, map[string]interface{}{"name": "Ana", "amount": float64(42)}, e.svc.generated)
}

func TestGenerateInvalidBody(t *testing.T) {
	e := newEnv()
	e.sessions.token = "token-1"

	rec := e.do(httptest.NewRequest(http.MethodPost, "/api/templates/template-1/generate", bytes.NewBufferString("")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(httptest.NewRequest(http.MethodPost, "/api/templates/template-1/generate", bytes.NewBufferString("[1,2]")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestErrorMapping(t *testing.T) {
	e := newEnv()
	e.sessions.token = "token-1"

	for expected, err := range map[int]error{
		http.StatusNotFound:  templates.ErrNotFound,
		http.StatusForbidden: templates.ErrForbidden,
		http.StatusInternalServerError: errors.New("boom"),
	} {
		e.svc.err = err
		rec := e.do(httptest.NewRequest(http.MethodPost, "/api/templates/template-1/generate",
			bytes.NewBufferString(`{}`)))
		assert.Equal(t, expected, rec.Code, err)
		assert.Contains(t, rec.Body.String(), `"error"`)
	}
}

func TestDelete(t *testing.T) {
	e := newEnv()
	e.sessions.token = "token-1"

	rec := e.do(httptest.NewRequest(http.MethodDelete, "/api/templates/template-1", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestConvertToPDFUnavailable(t *testing.T) {
	e := newEnv()
	e.sessions.token = "token-1"

	body, contentType := multipartBody(t, "file", "report.docx", []byte("document"))
	r := httptest.NewRequest(http.MethodPost, "/api/convert-to-pdf", body)
	r.Header.Set("Content-Type", contentType)

	assert.Equal(t, http.StatusServiceUnavailable, e.do(r).Code)
}

func TestConvertToPDF(t *testing.T) {
	e := newEnv()
	e.sessions.token = "token-1"
	e.converter.available = true

	body, contentType := multipartBody(t, "file", "report.docx", []byte("document"))
	r := httptest.NewRequest(http.MethodPost, "/api/convert-to-pdf", body)
	r.Header.Set("Content-Type", contentType)

	rec := e.do(r)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "report.pdf", attachmentFilename(t, rec))
}

func TestPDFServiceHealth(t *testing.T) {
	e := newEnv()

	rec := e.do(httptest.NewRequest(http.MethodGet, "/api/pdf-service-health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var res healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "unavailable", res.Status)
	assert.False(t, res.LibreOffice)
}
