package selection_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/opsdeck/opsdeck/internal/app/features/selection"
	"github.com/opsdeck/opsdeck/internal/app/system/gate"
	"go.uber.org/zap"
)

func postForm(path, body string) *http.Request {
	r := httptest.NewRequest("POST", path, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func cookieByName(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestHandleSelectBusiness(t *testing.T) {
	h := selection.NewHandler(false, zap.NewNop())

	rec := httptest.NewRecorder()
	h.HandleSelectBusiness(rec, postForm("/select-business", "business_id=biz-7"))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/select-location" {
		t.Errorf("Location = %q, want /select-location", loc)
	}

	biz := cookieByName(t, rec, gate.BusinessCookie)
	if biz == nil || biz.Value != "biz-7" {
		t.Fatalf("business cookie not set: %+v", biz)
	}
	if !biz.HttpOnly || biz.Path != "/" {
		t.Errorf("business cookie attributes wrong: %+v", biz)
	}

	// Switching businesses must drop the old location context.
	for _, name := range []string{gate.WarehouseCookie, gate.LocationCookie} {
		c := cookieByName(t, rec, name)
		if c == nil || c.MaxAge != -1 {
			t.Errorf("%s was not cleared: %+v", name, c)
		}
	}
}

func TestHandleSelectLocation(t *testing.T) {
	tests := []struct {
		name       string
		form       string
		wantCookie string
	}{
		{"location", "location_id=loc-3", gate.LocationCookie},
		{"warehouse", "warehouse_id=wh-9", gate.WarehouseCookie},
		{"location wins over warehouse", "location_id=loc-3&warehouse_id=wh-9", gate.LocationCookie},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := selection.NewHandler(false, zap.NewNop())

			rec := httptest.NewRecorder()
			h.HandleSelectLocation(rec, postForm("/select-location", tc.form))

			if rec.Code != http.StatusSeeOther {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
			}
			if loc := rec.Header().Get("Location"); loc != "/dashboard" {
				t.Errorf("Location = %q, want /dashboard", loc)
			}
			if c := cookieByName(t, rec, tc.wantCookie); c == nil {
				t.Errorf("%s cookie not set", tc.wantCookie)
			}
		})
	}
}
