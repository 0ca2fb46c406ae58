package cxserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wikimedia/cxserver-lineardoc/lineardoc"
)

func identityBoundary(text string) ([]int, error) {
	if text == "" {
		return nil, nil
	}
	return []int{0}, nil
}

func TestHandler_Translate(t *testing.T) {
	ctx, err := lineardoc.NewMWContextualizer(lineardoc.RemovableSectionsConfig{})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name          string
		method        string
		path          string
		body          string
		wantStatus    int
		wantResultHas string
	}{
		{
			name:          "translate simple paragraph",
			method:        http.MethodPost,
			path:          "/translate/html",
			body:          `{"html": "<p>Hello world.</p>"}`,
			wantStatus:    http.StatusOK,
			wantResultHas: "cx-segment",
		},
		{
			name:          "empty html rejected",
			method:        http.MethodPost,
			path:          "/translate/html",
			body:          `{"html": ""}`,
			wantStatus:    http.StatusInternalServerError,
			wantResultHas: "Empty content",
		},
		{
			name:       "unknown path",
			method:     http.MethodGet,
			path:       "/nope",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			h := &Handler{Contextualizer: ctx, Boundary: identityBoundary}
			h.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("status code: got %v, want %v (body %q)", rr.Code, tt.wantStatus, rr.Body.String())
			}

			if tt.wantResultHas == "" {
				return
			}
			var resp translateResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if !strings.Contains(resp.Result, tt.wantResultHas) {
				t.Errorf("result %q does not contain %q", resp.Result, tt.wantResultHas)
			}
		})
	}
}

func TestHandler_DecodeRequestError(t *testing.T) {
	ctx, err := lineardoc.NewMWContextualizer(lineardoc.RemovableSectionsConfig{})
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/translate/html", strings.NewReader("not json"))
	rr := httptest.NewRecorder()

	h := &Handler{Contextualizer: ctx, Boundary: identityBoundary}
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status code: got %v, want %v", rr.Code, http.StatusInternalServerError)
	}
}
