package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MrSnakeDoc/navboard/internal/domain"
)

func TestIndexUnmarshal(t *testing.T) {
	tests := []struct {
		in      string
		want    Index
		wantErr bool
	}{
		{in: `3`, want: 3},
		{in: `"3"`, want: 3},
		{in: `" 7 "`, want: 7},
		{in: `-1`, want: -1},
		{in: `"-2"`, want: -2},
		{in: `1.5`, wantErr: true},
		{in: `"abc"`, wantErr: true},
		{in: `""`, wantErr: true},
		{in: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var got Index
			err := json.Unmarshal([]byte(tt.in), &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Unmarshal(%s) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecodeBody(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
		wantErr   bool
	}{
		{name: "valid", body: `{"categoryIndex":"1","siteIndex":0}`},
		{name: "extra fields ignored", body: `{"categoryIndex":1,"siteIndex":0,"newProperty":"x"}`},
		{name: "missing category", body: `{"siteIndex":0}`, wantField: "categoryIndex", wantErr: true},
		{name: "null site", body: `{"categoryIndex":1,"siteIndex":null}`, wantField: "siteIndex", wantErr: true},
		{name: "two objects", body: `{"categoryIndex":1,"siteIndex":0}{}`, wantErr: true},
		{name: "array", body: `[1,2]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/delete-site", strings.NewReader(tt.body))
			var req deleteSiteRequest
			err := decodeBody(httptest.NewRecorder(), r, 1024, &req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("decodeBody() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var perr *domain.PayloadError
			if !errors.As(err, &perr) {
				t.Fatalf("error %T is not a *domain.PayloadError", err)
			}
			if tt.wantField != "" && perr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", perr.Field, tt.wantField)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"payload", &domain.PayloadError{Field: "siteName", Reason: "is required"}, http.StatusBadRequest, CodeMalformedPayload},
		{"index", fmt.Errorf("add_site failed: %w", &domain.IndexError{Kind: domain.IndexCategory, Index: 4, Len: 1}), http.StatusUnprocessableEntity, CodeIndexOutOfRange},
		{"stale revision", fmt.Errorf("wrapped: %w", &domain.ConflictError{ExpectedRevision: "a", CurrentRevision: "b"}), http.StatusPreconditionFailed, CodePreconditionFailed},
		{"lost race", fmt.Errorf("update: %w", domain.ErrConcurrentModification), http.StatusConflict, CodeConflict},
		{"corrupt", fmt.Errorf("load: %w", domain.ErrStorageCorruption), http.StatusInternalServerError, CodeStorageCorruption},
		{"other", errors.New("dial tcp: connection refused"), http.StatusServiceUnavailable, CodeUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := classify(tt.err)
			if status != tt.wantStatus || code != tt.wantCode {
				t.Errorf("classify() = (%d, %q), want (%d, %q)", status, code, tt.wantStatus, tt.wantCode)
			}
		})
	}
}

func TestParseIfMatch(t *testing.T) {
	tests := map[string]string{
		"":            "",
		"*":           "",
		`"abc"`:       "abc",
		`W/"abc"`:     "abc",
		` "deadbeef"`: "deadbeef",
		"bare":        "bare",
	}
	for in, want := range tests {
		if got := parseIfMatch(in); got != want {
			t.Errorf("parseIfMatch(%q) = %q, want %q", in, got, want)
		}
	}
}
