package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewMeta(t *testing.T) {
	cases := []struct {
		limit int
		total int64
		pages int
	}{
		{limit: 20, total: 0, pages: 0},
		{limit: 20, total: 20, pages: 1},
		{limit: 20, total: 21, pages: 2},
		{limit: 0, total: 5, pages: 0},
	}
	for _, c := range cases {
		meta := NewMeta(1, c.limit, c.total)
		if meta.TotalPages != c.pages {
			t.Errorf("limit=%d total=%d: expected %d pages, got %d", c.limit, c.total, c.pages, meta.TotalPages)
		}
	}
}

func TestSuccessWithMetaEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	SuccessWithMeta(rec, http.StatusOK, "ok", []string{"a"}, NewMeta(2, 10, 15))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("unexpected content type %q", ct)
	}

	var body Response
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || body.Meta == nil || body.Meta.Page != 2 || body.Meta.TotalPages != 2 {
		t.Errorf("unexpected envelope: %+v", body)
	}
}

func TestErrorHelpersDefaultMessages(t *testing.T) {
	rec := httptest.NewRecorder()
	Conflict(rec, "")

	var body Response
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Code != http.StatusConflict || body.Success || body.Message != "Conflict" {
		t.Errorf("unexpected response %d %+v", rec.Code, body)
	}
}
