// ABOUTME: Tests for tolerant response decoding and error-message extraction
// ABOUTME: Exercises the detail/message/errors precedence and body previews

package client

import (
	"net/http"
	"strings"
	"testing"
)

func textResponse(status int, contentType, body string) *Response {
	h := http.Header{}
	h.Set("Content-Type", contentType)
	return &Response{StatusCode: status, Header: h, Body: []byte(body)}
}

func TestJSONAcceptsMislabeledContentType(t *testing.T) {
	resp := textResponse(200, "text/plain", `{"success":true,"data":[1,2]}`)
	var out struct {
		Success bool  `json:"success"`
		Data    []int `json:"data"`
	}
	if err := resp.JSON(&out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Success || len(out.Data) != 2 {
		t.Errorf("unexpected decode: %+v", out)
	}
}

func TestJSONNonJSONBodyIsDiagnosable(t *testing.T) {
	resp := textResponse(200, "text/plain", "not json")
	var out map[string]any
	err := resp.JSON(&out)
	if err == nil {
		t.Fatal("expected error for non-JSON body")
	}
	msg := err.Error()
	if !strings.Contains(msg, "not json") {
		t.Errorf("expected body preview in %q", msg)
	}
	if !strings.Contains(msg, "200") {
		t.Errorf("expected status in %q", msg)
	}
	if !strings.Contains(msg, "text/plain") {
		t.Errorf("expected content type in %q", msg)
	}
}

func TestJSONEmptyBody(t *testing.T) {
	resp := textResponse(204, "application/json", "")
	var out map[string]any
	if err := resp.JSON(&out); err != nil {
		t.Errorf("expected empty body to decode to nothing, got %v", err)
	}
}

func TestAPIErrorPrecedenceDetailWins(t *testing.T) {
	resp := textResponse(400, "application/json",
		`{"detail":"the detail","message":"the message","non_field_errors":["nfe"]}`)
	if got := resp.apiError("fallback").Message; got != "the detail" {
		t.Errorf("expected detail to win, got %q", got)
	}
}

func TestAPIErrorPrecedenceMessage(t *testing.T) {
	resp := textResponse(400, "application/json", `{"message":"the message","errors":{"name":["required"]}}`)
	if got := resp.apiError("fallback").Message; got != "the message" {
		t.Errorf("expected message, got %q", got)
	}
}

func TestAPIErrorPrecedenceNonFieldErrors(t *testing.T) {
	resp := textResponse(400, "application/json", `{"non_field_errors":["password too short"]}`)
	if got := resp.apiError("fallback").Message; got != "password too short" {
		t.Errorf("expected first non_field_error, got %q", got)
	}
}

func TestAPIErrorPrecedenceStringifiedErrors(t *testing.T) {
	resp := textResponse(400, "application/json", `{"errors":{"name":["This field is required."]}}`)
	got := resp.apiError("fallback").Message
	if !strings.Contains(got, "This field is required.") {
		t.Errorf("expected stringified errors, got %q", got)
	}
}

func TestAPIErrorFallback(t *testing.T) {
	resp := textResponse(500, "text/html", "<html>Internal Server Error</html>")
	if got := resp.apiError("Failed to fetch products").Message; got != "Failed to fetch products" {
		t.Errorf("expected fallback, got %q", got)
	}
	if resp.apiError("x").StatusCode != 500 {
		t.Error("expected status carried on APIError")
	}
}

func TestPreviewCollapsesWhitespaceAndTruncates(t *testing.T) {
	long := strings.Repeat("word  \n\t", 100)
	got := preview([]byte(long))
	if len(got) > previewLimit {
		t.Errorf("preview too long: %d", len(got))
	}
	if strings.Contains(got, "\n") || strings.Contains(got, "  ") {
		t.Errorf("whitespace not collapsed: %q", got)
	}
}
