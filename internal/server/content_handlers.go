package server

import (
	"medialane/internal/models"

	"github.com/gofiber/fiber/v2"
)

// SearchContents handles GET /api/contents
// @Summary Mixed feed
// @Description Active videos and articles matching search, paged side by side
// @Tags contents
// @Produce json
// @Param search query string false "Search term"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} models.Envelope{data=service.Feed}
// @Router /contents [get]
func (s *Server) SearchContents(c *fiber.Ctx) error {
	feed, err := s.feedService.Search(c.UserContext(), searchQuery(c), pageQuery(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "CONTENTS_FETCHED", "", feed)
}

// GetTrending handles GET /api/contents/trending
// @Summary Trending content
// @Description Top-rated videos and most-liked articles
// @Tags contents
// @Produce json
// @Success 200 {object} models.Envelope{data=service.Trending}
// @Router /contents/trending [get]
func (s *Server) GetTrending(c *fiber.Ctx) error {
	trending, err := s.feedService.Trending(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "TRENDING_FETCHED", "", trending)
}
