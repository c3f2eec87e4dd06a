package handler

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestI18nHandler_LangQueryWins(t *testing.T) {
	handler := NewI18nHandler()

	c, rec := newTestContext(t, http.MethodGet, "/api/translations?lang=ar", "")
	c.Request().Header.Set("Accept-Language", "en-US")

	if err := handler.Translations(c); err != nil {
		t.Fatalf("translations: %v", err)
	}

	var resp translationsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Language != "ar" {
		t.Fatalf("language = %s, want ar", resp.Language)
	}
	if resp.Messages["dashboard"] != "لوحة المعلومات" {
		t.Fatalf("unexpected arabic dashboard: %q", resp.Messages["dashboard"])
	}
}

func TestI18nHandler_NegotiatesAcceptLanguage(t *testing.T) {
	handler := NewI18nHandler()

	c, rec := newTestContext(t, http.MethodGet, "/api/translations", "")
	c.Request().Header.Set("Accept-Language", "ar-SA, en;q=0.8")

	if err := handler.Translations(c); err != nil {
		t.Fatalf("translations: %v", err)
	}

	var resp translationsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Language != "ar" {
		t.Fatalf("language = %s, want ar", resp.Language)
	}
}

func TestI18nHandler_UnknownLangFallsBack(t *testing.T) {
	handler := NewI18nHandler()

	c, rec := newTestContext(t, http.MethodGet, "/api/translations?lang=ru", "")
	if err := handler.Translations(c); err != nil {
		t.Fatalf("translations: %v", err)
	}

	var resp translationsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Language != "en" {
		t.Fatalf("language = %s, want en", resp.Language)
	}
	if resp.Messages["dashboard"] != "Dashboard" {
		t.Fatalf("unexpected dashboard: %q", resp.Messages["dashboard"])
	}
}
