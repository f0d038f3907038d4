// ABOUTME: Raw response wrapper with tolerant JSON decoding
// ABOUTME: Non-JSON bodies fail with a diagnosable status + preview error

package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const previewLimit = 300

// Response is the raw result of one backend call. Domain methods decode it;
// callers of Request get it as-is.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK reports whether the status code is in the 2xx range.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// JSON decodes the body into v. The content type header is ignored: some
// misconfigured backends return JSON as text/plain, so a parse is always
// attempted. An empty body decodes to nothing. A body that is not JSON
// yields an error embedding the status, content type and a body preview so
// a misrouted backend is diagnosable instead of an opaque parse failure.
func (r *Response) JSON(v any) error {
	trimmed := bytes.TrimSpace(r.Body)
	if len(trimmed) == 0 {
		return nil
	}
	if err := json.Unmarshal(trimmed, v); err != nil {
		return &APIError{
			StatusCode: r.StatusCode,
			Message: fmt.Sprintf("server did not return JSON (status %d, content-type %q): %s",
				r.StatusCode, r.Header.Get("Content-Type"), preview(r.Body)),
		}
	}
	return nil
}

// errorEnvelope matches the backend's error body shapes.
type errorEnvelope struct {
	Detail         string          `json:"detail"`
	Message        string          `json:"message"`
	Errors         json.RawMessage `json:"errors"`
	NonFieldErrors []string        `json:"non_field_errors"`
}

// apiError extracts a user-facing error from a non-2xx response. Precedence:
// detail, message, validation errors, then the operation's fallback text.
func (r *Response) apiError(fallback string) *APIError {
	var env errorEnvelope
	if err := json.Unmarshal(bytes.TrimSpace(r.Body), &env); err == nil {
		switch {
		case env.Detail != "":
			return &APIError{StatusCode: r.StatusCode, Message: env.Detail}
		case env.Message != "":
			return &APIError{StatusCode: r.StatusCode, Message: env.Message}
		case len(env.NonFieldErrors) > 0:
			return &APIError{StatusCode: r.StatusCode, Message: env.NonFieldErrors[0]}
		case len(env.Errors) > 0 && string(env.Errors) != "null":
			return &APIError{StatusCode: r.StatusCode, Message: string(env.Errors)}
		}
	}
	return &APIError{StatusCode: r.StatusCode, Message: fallback}
}

// decode is the unwrap-or-throw contract shared by every domain method:
// non-2xx becomes an APIError with the extracted message, 2xx is decoded
// tolerantly into v (nil v skips decoding).
func (c *Client) decode(resp *Response, v any, fallback string) error {
	if !resp.OK() {
		return resp.apiError(fallback)
	}
	if v == nil {
		return nil
	}
	return resp.JSON(v)
}

// envelope is the backend's standard success wrapper.
type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Count   int    `json:"count"`
	Data    T      `json:"data"`
}

// preview returns the first 300 bytes of body with whitespace collapsed,
// for inclusion in error messages.
func preview(body []byte) string {
	s := string(body)
	if len(s) > previewLimit {
		s = s[:previewLimit]
	}
	return strings.Join(strings.Fields(s), " ")
}
