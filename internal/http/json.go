package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// Every response from this service uses the same envelope the sales backend
// uses, so the browser only ever sees one shape:
//
//	{"success": bool, "message": string, "data": any}

// DecodeJSON decodes JSON from the request body into the destination and handles errors.
// Returns true if successful, false if there was an error (error response already written).
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_json", Err: err})
		return false
	}

	return true
}

// WriteData writes a success envelope with the given status code and data.
func WriteData(w http.ResponseWriter, code int, data any) {
	writeJSON(w, code, map[string]any{
		"success": true,
		"data":    data,
	})
}

// ErrorParams groups parameters for WriteError.
type ErrorParams struct {
	Code    int
	ErrCode string
	Err     error
}

// WriteError writes a failure envelope using ErrorParams.
func WriteError(w http.ResponseWriter, p ErrorParams) {
	writeJSON(w, p.Code, map[string]any{
		"success": false,
		"error":   p.ErrCode,
		"message": p.Err.Error(),
	})
}

// writeJSON encodes to a buffer first so an encoding failure can still
// produce a clean 500.
func writeJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		// Response writer errors (e.g., client disconnect) can't be recovered from here.
		return
	}
}
