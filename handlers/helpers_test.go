package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dosada05/tt-championship/services"
)

func TestMapServiceErrorToHTTP(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", &services.ValidationError{Errors: map[string]string{"sets[0]": "invalid"}}, http.StatusUnprocessableEntity},
		{"championship not found", services.ErrChampionshipNotFound, http.StatusNotFound},
		{"wrapped match not found", fmt.Errorf("%w: m1", services.ErrMatchNotFound), http.StatusNotFound},
		{"groups incomplete", services.ErrGroupsIncomplete, http.StatusConflict},
		{"match locked", fmt.Errorf("%w: semifinal", services.ErrMatchLocked), http.StatusConflict},
		{"status transition", services.ErrInvalidStatusTransition, http.StatusConflict},
		{"roster locked", services.ErrRosterLocked, http.StatusConflict},
		{"unexpected", errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mapServiceErrorToHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
}

func TestValidationErrorBodyCarriesFields(t *testing.T) {
	rec := httptest.NewRecorder()
	err := &services.ValidationError{Errors: map[string]string{"name": "name is required"}}
	mapServiceErrorToHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil), err)

	var body struct {
		Error map[string]string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Error["name"] != "name is required" {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestReadJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"valid", `{"name":"Ana"}`, ""},
		{"empty", ``, "body must not be empty"},
		{"unknown field", `{"nome":"Ana"}`, "unknown key"},
		{"wrong type", `{"name":3}`, "incorrect JSON type"},
		{"two values", `{"name":"Ana"}{}`, "single JSON value"},
		{"broken", `{"name":`, "badly-formed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst struct {
				Name string `json:"name"`
			}
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			err := readJSON(httptest.NewRecorder(), r, &dst)
			if tt.wantErr == "" {
				if err != nil || dst.Name != "Ana" {
					t.Fatalf("err = %v, dst = %+v", err, dst)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want %q", err, tt.wantErr)
			}
		})
	}
}
