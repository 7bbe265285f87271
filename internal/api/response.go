// internal/api/response.go
package api

import (
	"encoding/json"
	"net/http"
	"time"

	apperrors "sake-reco/internal/common/errors"
)

// Response is the envelope of every API reply.
type Response struct {
	Status    string      `json:"status"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

const maxBodyBytes = 64 << 10

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	s.write(w, status, &Response{Status: "success", Data: data, Timestamp: time.Now().UTC()})
}

// respondError writes err with the status its code maps to.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	stdErr, ok := apperrors.As(err)
	if !ok {
		stdErr = apperrors.New(apperrors.ErrCodeInternal, "Unexpected error")
	}
	status := statusFor(stdErr.Code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", map[string]interface{}{
			"path":      r.URL.Path,
			"errorCode": string(stdErr.Code),
			"error":     err,
		})
	}
	s.write(w, status, &Response{
		Status: "error",
		Error: &APIError{
			Code:    string(stdErr.Code),
			Message: stdErr.Message,
			Details: stdErr.Details,
		},
		Timestamp: time.Now().UTC(),
	})
}

func (s *Server) write(w http.ResponseWriter, status int, resp *Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		s.logger.Error("failed to marshal response", map[string]interface{}{"error": err})
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		s.logger.Debug("failed to write response", map[string]interface{}{"error": err})
	}
}

func statusFor(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidPreferences, apperrors.ErrCodeUnknownOption:
		return http.StatusBadRequest
	case apperrors.ErrCodeInvalidStepAction:
		return http.StatusConflict
	case apperrors.ErrCodeSessionNotFound, apperrors.ErrCodeAnchorNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeCatalogFetchFailed, apperrors.ErrCodeCatalogHTTPStatus,
		apperrors.ErrCodeCatalogNotOK, apperrors.ErrCodeCatalogDecodeFailed:
		return http.StatusBadGateway
	case apperrors.ErrCodeCatalogTimeout:
		return http.StatusGatewayTimeout
	case apperrors.ErrCodeCacheUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody reads a JSON body into v. An empty body leaves v as is.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return apperrors.NewInvalidInputError("malformed JSON body: " + err.Error())
	}
	return nil
}
