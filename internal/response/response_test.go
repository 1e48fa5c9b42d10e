package response

import (
	"mime"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusOK, map[string]string{"data": "test-data"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":"test-data"}`, rec.Body.String())
}

func TestError(t *testing.T) {
	t.Run("with details", func(t *testing.T) {
		rec := httptest.NewRecorder()
		Error(rec, http.StatusNotFound, "template not found", "id unknown")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"template not found","details":"id unknown"}`, rec.Body.String())
	})

	t.Run("without details", func(t *testing.T) {
		rec := httptest.NewRecorder()
		Error(rec, http.StatusBadRequest, "no file provided", "")

		assert.JSONEq(t, `{"error":"no file provided"}`, rec.Body.String())
	})
}

func TestAttachment(t *testing.T) {
	rec := httptest.NewRecorder()
	Attachment(rec, "Generated-report.xlsx", "application/octet-stream", []byte("content"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "7", rec.Header().Get("Content-Length"))
	assert.Equal(t, "content", rec.Body.String())

	mediaType, params, err := mime.ParseMediaType(rec.Header().Get("Content-Disposition"))
	assert.NoError(t, err)
	assert.Equal(t, "attachment", mediaType)
	assert.Equal(t, "Generated-report.xlsx", params["filename"])
}

func TestAttachmentQuotesInFilename(t *testing.T) {
	rec := httptest.NewRecorder()
	Attachment(rec, `Generated-"report".xlsx`, "application/octet-stream", []byte("content"))

	mediaType, params, err := mime.ParseMediaType(rec.Header().Get("Content-Disposition"))
	assert.NoError(t, err)
	assert.Equal(t, "attachment", mediaType)
	assert.Equal(t, `Generated-"report".xlsx`, params["filename"])
}
