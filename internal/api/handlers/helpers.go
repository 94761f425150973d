package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// maxBodyBytes bounds tool argument bodies.
const maxBodyBytes = 1 << 20

// writeJSON encodes v without HTML escaping so dataset text such as "&"
// reaches the client unchanged.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}
	writeRaw(w, statusCode, bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
}

// writeRaw writes an already encoded JSON body.
func writeRaw(w http.ResponseWriter, statusCode int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		http.Error(w, `{"error":"failed to encode error response"}`, http.StatusInternalServerError)
	}
}
