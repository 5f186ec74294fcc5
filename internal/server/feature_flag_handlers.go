package server

import (
	"medialane/internal/middleware"
	"medialane/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetFeatureFlags returns configured feature flags and evaluated state for current user.
// @Summary Feature flags
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Envelope
// @Router /admin/feature-flags [get]
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	userID, _ := middleware.CurrentUserID(c)

	if s.featureFlags == nil {
		return models.RespondOK(c, "FEATURE_FLAGS_FETCHED", "", fiber.Map{
			"raw":       map[string]string{},
			"evaluated": map[string]bool{},
		})
	}

	return models.RespondOK(c, "FEATURE_FLAGS_FETCHED", "", fiber.Map{
		"raw":       s.featureFlags.Raw(),
		"evaluated": s.featureFlags.Snapshot(userID),
	})
}
