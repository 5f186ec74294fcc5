package server

import (
	"medialane/internal/models"

	"github.com/gofiber/fiber/v2"
)

type commentRequest struct {
	Body string `json:"body"`
}

// GetComments handles GET /api/comments/:slug
// @Summary List comments
// @Description Comments on an active article, newest first
// @Tags comments
// @Produce json
// @Param slug path string true "Article slug"
// @Success 200 {object} models.Envelope
// @Failure 404 {object} models.Envelope
// @Router /comments/{slug} [get]
func (s *Server) GetComments(c *fiber.Ctx) error {
	page, err := s.commentService.List(c.UserContext(), c.Params("slug"), pageQuery(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "COMMENTS_FETCHED", "", page)
}

// CreateComment handles POST /api/comments/:slug
// @Summary Comment on article
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Article slug"
// @Param request body commentRequest true "Comment"
// @Success 201 {object} models.Envelope{data=models.Comment}
// @Router /comments/{slug} [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req commentRequest
	if err := parseBody(c, &req); err != nil {
		return models.RespondWithError(c, err)
	}

	comment, err := s.commentService.Create(c.UserContext(), actor(c), c.Params("slug"), req.Body)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondCreated(c, "COMMENT_CREATED_SUCCESS", "Comment added", comment)
}

// UpdateComment handles PUT /api/comments/:id
// @Summary Edit comment
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Param request body commentRequest true "Comment"
// @Success 200 {object} models.Envelope{data=models.Comment}
// @Router /comments/{id} [put]
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}
	var req commentRequest
	if err := parseBody(c, &req); err != nil {
		return models.RespondWithError(c, err)
	}

	comment, err := s.commentService.Update(c.UserContext(), actor(c), id, req.Body)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "COMMENT_UPDATED_SUCCESS", "Comment updated", comment)
}

// DeleteComment handles DELETE /api/comments/:id
// @Summary Delete comment
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 200 {object} models.Envelope
// @Router /comments/{id} [delete]
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.commentService.Delete(c.UserContext(), actor(c), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "COMMENT_DELETED_SUCCESS", "Comment deleted", nil)
}
