package response

import (
	"encoding/json"
	"mime"
	"net/http"
	"strconv"
)

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// JSON writes payload with status.
func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// Error writes the service error envelope.
func Error(w http.ResponseWriter, status int, message, details string) {
	JSON(w, status, errorBody{
		Error:   message,
		Details: details,
	})
}

// Attachment writes a binary download. Only emitted on full success,
// errors always go through Error. The filename comes from user input,
// so the disposition header is built with proper parameter escaping.
func Attachment(w http.ResponseWriter, filename, contentType string, content []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	w.WriteHeader(http.StatusOK)
	w.Write(content)
}
