package identity

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
)

// APIError is a non-2xx answer from the auth service.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return "auth service: " + e.Code + ": " + e.Message
	}
	return "auth service: " + strconv.Itoa(e.Status) + ": " + e.Message
}

// errorBody covers the shapes the service uses across versions.
type errorBody struct {
	Code             any    `json:"code"`
	ErrorCode        string `json:"error_code"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func decodeAPIError(status int, raw []byte) *APIError {
	apiErr := &APIError{Status: status}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		apiErr.Message = http.StatusText(status)
		return apiErr
	}

	switch {
	case body.ErrorCode != "":
		apiErr.Code = body.ErrorCode
	case body.Error != "":
		apiErr.Code = body.Error
	}
	if code, ok := body.Code.(string); ok && apiErr.Code == "" {
		apiErr.Code = code
	}

	for _, msg := range []string{body.Msg, body.Message, body.ErrorDescription, body.Error} {
		if msg != "" {
			apiErr.Message = msg
			break
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}

// IsClientError reports whether the service rejected the request itself
// (4xx), as opposed to being unreachable or failing internally.
func IsClientError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status >= 400 && apiErr.Status < 500
}
