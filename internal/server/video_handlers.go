package server

import (
	"medialane/internal/models"
	"medialane/internal/notifications"
	"medialane/internal/repository"
	"medialane/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetVideos handles GET /api/videos
// @Summary List videos
// @Tags videos
// @Produce json
// @Param search query string false "Title or description fragment"
// @Param tag query string false "Tag"
// @Param category query string false "Category"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} models.Envelope
// @Router /videos [get]
func (s *Server) GetVideos(c *fiber.Ctx) error {
	page, err := s.videoService.List(c.UserContext(), service.ListVideosInput{
		PageQuery: pageQuery(c),
		Search:    searchQuery(c),
		Tag:       c.Query("tag"),
		Category:  models.CategoryName(c.Query("category")),
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "VIDEOS_FETCHED", "", page)
}

// GetVideoCategories handles GET /api/videos/categories
// @Summary Video categories
// @Tags videos
// @Produce json
// @Success 200 {object} models.Envelope{data=[]models.Category}
// @Router /videos/categories [get]
func (s *Server) GetVideoCategories(c *fiber.Ctx) error {
	categories, err := s.videoService.Categories(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "CATEGORIES_FETCHED", "", categories)
}

// GetMyVideos handles GET /api/videos/me
// @Summary My videos
// @Tags videos
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Envelope
// @Router /videos/me [get]
func (s *Server) GetMyVideos(c *fiber.Ctx) error {
	page, err := s.videoService.Mine(c.UserContext(), actor(c), pageQuery(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "VIDEOS_FETCHED", "", page)
}

// GetVideo handles GET /api/videos/:slug
// @Summary Get video
// @Tags videos
// @Produce json
// @Param slug path string true "Video slug"
// @Success 200 {object} models.Envelope{data=models.Video}
// @Failure 404 {object} models.Envelope
// @Router /videos/{slug} [get]
func (s *Server) GetVideo(c *fiber.Ctx) error {
	video, err := s.videoService.Get(c.UserContext(), actor(c), c.Params("slug"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "VIDEO_FETCHED", "", video)
}

// CreateVideo handles POST /api/videos
// @Summary Publish video
// @Description Video clients only. Videos wait for admin approval unless auto-approval is on.
// @Tags videos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreateVideoInput true "Video"
// @Success 201 {object} models.Envelope{data=models.Video}
// @Failure 400 {object} models.Envelope
// @Failure 404 {object} models.Envelope
// @Router /videos [post]
func (s *Server) CreateVideo(c *fiber.Ctx) error {
	var req service.CreateVideoInput
	if err := parseBody(c, &req); err != nil {
		return models.RespondWithError(c, err)
	}

	video, err := s.videoService.Create(c.UserContext(), actor(c), req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondCreated(c, "VIDEO_CREATED_SUCCESS", "Video created", video)
}

// UpdateVideo handles PUT /api/videos/:slug
// @Summary Update video
// @Tags videos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Video slug"
// @Param request body service.UpdateVideoInput true "Fields to change"
// @Success 200 {object} models.Envelope{data=models.Video}
// @Router /videos/{slug} [put]
func (s *Server) UpdateVideo(c *fiber.Ctx) error {
	var req service.UpdateVideoInput
	if err := parseBody(c, &req); err != nil {
		return models.RespondWithError(c, err)
	}

	video, err := s.videoService.Update(c.UserContext(), actor(c), c.Params("slug"), req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "VIDEO_UPDATED_SUCCESS", "Video updated", video)
}

// DeleteVideo handles DELETE /api/videos/:slug
// @Summary Delete video
// @Tags videos
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Video slug"
// @Success 200 {object} models.Envelope
// @Router /videos/{slug} [delete]
func (s *Server) DeleteVideo(c *fiber.Ctx) error {
	if err := s.videoService.Delete(c.UserContext(), actor(c), c.Params("slug")); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "VIDEO_DELETED_SUCCESS", "Video deleted", nil)
}

// AdminListVideos handles GET /api/admin/videos
// @Summary List videos (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "active or inactive"
// @Success 200 {object} models.Envelope
// @Router /admin/videos [get]
func (s *Server) AdminListVideos(c *fiber.Ctx) error {
	page, err := s.videoService.AdminList(c.UserContext(), service.ListVideosInput{
		PageQuery: pageQuery(c),
		Search:    searchQuery(c),
		Tag:       c.Query("tag"),
		Category:  models.CategoryName(c.Query("category")),
		Status:    repository.ParseStatus(c.Query("status")),
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "VIDEOS_FETCHED", "", page)
}

// AdminApproveVideo handles PUT /api/admin/videos/:id/approve
// @Summary Approve video
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Video ID"
// @Success 200 {object} models.Envelope{data=models.Video}
// @Failure 409 {object} models.Envelope
// @Router /admin/videos/{id}/approve [put]
func (s *Server) AdminApproveVideo(c *fiber.Ctx) error {
	return s.setVideoActive(c, true)
}

// AdminDisableVideo handles PUT /api/admin/videos/:id/disable
// @Summary Disable video
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Video ID"
// @Param X-Confirm-Password header string false "Acting admin's password"
// @Success 200 {object} models.Envelope{data=models.Video}
// @Failure 409 {object} models.Envelope
// @Router /admin/videos/{id}/disable [put]
func (s *Server) AdminDisableVideo(c *fiber.Ctx) error {
	return s.setVideoActive(c, false)
}

func (s *Server) setVideoActive(c *fiber.Ctx, active bool) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	video, err := s.videoService.SetActive(c.UserContext(), id, active)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	event := notifications.Event{Type: notifications.VideoDisabled, ResourceID: video.ID, Slug: video.Slug}
	if active {
		event.Type = notifications.VideoApproved
	}
	s.notifier.Notify(c.UserContext(), video.UserID, event)
	if active {
		return models.RespondOK(c, "VIDEO_APPROVED", "Video approved", video)
	}
	return models.RespondOK(c, "VIDEO_DISABLED", "Video disabled", video)
}

// AdminDeleteVideo handles DELETE /api/admin/videos/:id
// @Summary Delete video (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Video ID"
// @Param X-Confirm-Password header string false "Acting admin's password"
// @Success 200 {object} models.Envelope
// @Router /admin/videos/{id} [delete]
func (s *Server) AdminDeleteVideo(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.videoService.AdminDelete(c.UserContext(), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "VIDEO_DELETED_SUCCESS", "Video deleted", nil)
}
