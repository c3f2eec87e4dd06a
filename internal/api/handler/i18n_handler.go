package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agencyops/crm-system/internal/pkg/i18n"
)

// I18nHandler serves the bilingual UI string catalog.
type I18nHandler struct{}

func NewI18nHandler() *I18nHandler {
	return &I18nHandler{}
}

type translationsResponse struct {
	Language  string            `json:"language"`
	Supported []string          `json:"supported"`
	Messages  map[string]string `json:"messages"`
}

// Translations handles GET /api/translations. The language is chosen from
// the ?lang= query parameter when present and supported, otherwise
// negotiated from Accept-Language; unknown languages serve English.
//
// @Summary      UI translation catalog
// @Tags         i18n
// @Produce      json
// @Param        lang  query     string  false  "Language code (en, ar)"
// @Success      200   {object}  translationsResponse
// @Router       /api/translations [get]
func (h *I18nHandler) Translations(c echo.Context) error {
	lang := c.QueryParam("lang")
	if lang == "" || !i18n.IsSupported(lang) {
		lang = i18n.MatchLanguage(c.Request().Header.Get("Accept-Language"))
	}

	return c.JSON(http.StatusOK, translationsResponse{
		Language:  lang,
		Supported: i18n.SupportedLanguages,
		Messages:  i18n.Catalog(lang),
	})
}
