package server

import (
	"strings"
	"unicode"

	"medialane/internal/middleware"
	"medialane/internal/models"
	"medialane/internal/paging"
	"medialane/internal/service"

	"github.com/gofiber/fiber/v2"
)

// parseID extracts a route parameter by name as a positive uint.
// The error message is derived from the parameter name (e.g. "id" -> "Invalid ID",
// "videoId" -> "Invalid video ID").
func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		return 0, models.NewValidationError("Invalid " + humanizeParam(param))
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	if strings.HasSuffix(param, "Id") {
		words := splitCamel(param[:len(param)-2])
		return strings.ToLower(strings.Join(words, " ")) + " ID"
	}
	return param
}

// splitCamel splits a camelCase string into words.
func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	return append(words, s[start:])
}

// pageQuery reads ?page and ?size, with ?limit as an alias for size.
// Out-of-range values are clamped by the services.
func pageQuery(c *fiber.Ctx) service.PageQuery {
	return service.PageQuery{
		Page: c.QueryInt("page", 1),
		Size: c.QueryInt("size", c.QueryInt("limit", paging.DefaultSize)),
	}
}

// searchQuery reads "search", falling back to "q".
func searchQuery(c *fiber.Ctx) string {
	if search := c.Query("search"); search != "" {
		return search
	}
	return c.Query("q")
}

// actor builds the service caller from the verified claims. Anonymous
// requests yield the zero Actor.
func actor(c *fiber.Ctx) service.Actor {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		return service.Actor{}
	}
	return service.Actor{ID: claims.ID, UserName: claims.UserName, Role: claims.Role}
}

// parseBody decodes the JSON request body into out.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return models.NewValidationError("Invalid request body")
	}
	return nil
}

// promotionKind maps the :kind route segment onto a promotion kind.
func promotionKind(c *fiber.Ctx) (models.PromotionKind, error) {
	switch kind := models.PromotionKind(strings.ToLower(c.Params("kind"))); kind {
	case models.PromotionAds, models.PromotionStory:
		return kind, nil
	}
	return "", models.NewValidationError("Promotion kind must be ads or stories")
}
