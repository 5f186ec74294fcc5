package server

import (
	"medialane/internal/models"
	"medialane/internal/notifications"
	"medialane/internal/repository"
	"medialane/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetArticles handles GET /api/articles
// @Summary List articles
// @Description Active articles, newest first
// @Tags articles
// @Produce json
// @Param search query string false "Title or summary fragment"
// @Param tag query string false "Tag"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} models.Envelope
// @Router /articles [get]
func (s *Server) GetArticles(c *fiber.Ctx) error {
	page, err := s.articleService.List(c.UserContext(), service.ListArticlesInput{
		PageQuery: pageQuery(c),
		Search:    searchQuery(c),
		Tag:       c.Query("tag"),
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "ARTICLES_FETCHED", "", page)
}

// GetArticleTags handles GET /api/articles/tags
// @Summary Article tags
// @Tags articles
// @Produce json
// @Success 200 {object} models.Envelope{data=[]string}
// @Router /articles/tags [get]
func (s *Server) GetArticleTags(c *fiber.Ctx) error {
	tags, err := s.articleService.Tags(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "TAGS_FETCHED", "", tags)
}

// GetFeaturedArticles handles GET /api/articles/featured
// @Summary Featured articles
// @Tags articles
// @Produce json
// @Success 200 {object} models.Envelope
// @Router /articles/featured [get]
func (s *Server) GetFeaturedArticles(c *fiber.Ctx) error {
	page, err := s.articleService.Featured(c.UserContext(), pageQuery(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "ARTICLES_FETCHED", "", page)
}

// GetMyArticles handles GET /api/articles/me
// @Summary My articles
// @Tags articles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Envelope
// @Router /articles/me [get]
func (s *Server) GetMyArticles(c *fiber.Ctx) error {
	page, err := s.articleService.Mine(c.UserContext(), actor(c), pageQuery(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "ARTICLES_FETCHED", "", page)
}

// GetArticle handles GET /api/articles/:slug
// @Summary Get article
// @Description Inactive articles are visible to their owner and admins only
// @Tags articles
// @Produce json
// @Param slug path string true "Article slug"
// @Success 200 {object} models.Envelope{data=models.Article}
// @Failure 404 {object} models.Envelope
// @Router /articles/{slug} [get]
func (s *Server) GetArticle(c *fiber.Ctx) error {
	article, err := s.articleService.Get(c.UserContext(), actor(c), c.Params("slug"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "ARTICLE_FETCHED", "", article)
}

// CreateArticle handles POST /api/articles
// @Summary Create article
// @Tags articles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreateArticleInput true "Article"
// @Success 201 {object} models.Envelope{data=models.Article}
// @Failure 400 {object} models.Envelope
// @Router /articles [post]
func (s *Server) CreateArticle(c *fiber.Ctx) error {
	var req service.CreateArticleInput
	if err := parseBody(c, &req); err != nil {
		return models.RespondWithError(c, err)
	}

	article, err := s.articleService.Create(c.UserContext(), actor(c), req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondCreated(c, "ARTICLE_CREATED_SUCCESS", "Article created", article)
}

// UpdateArticle handles PUT /api/articles/:slug
// @Summary Update article
// @Tags articles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Article slug"
// @Param request body service.UpdateArticleInput true "Fields to change"
// @Success 200 {object} models.Envelope{data=models.Article}
// @Failure 403 {object} models.Envelope
// @Router /articles/{slug} [put]
func (s *Server) UpdateArticle(c *fiber.Ctx) error {
	var req service.UpdateArticleInput
	if err := parseBody(c, &req); err != nil {
		return models.RespondWithError(c, err)
	}

	article, err := s.articleService.Update(c.UserContext(), actor(c), c.Params("slug"), req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "ARTICLE_UPDATED_SUCCESS", "Article updated", article)
}

// DeleteArticle handles DELETE /api/articles/:slug
// @Summary Delete article
// @Tags articles
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Article slug"
// @Success 200 {object} models.Envelope
// @Router /articles/{slug} [delete]
func (s *Server) DeleteArticle(c *fiber.Ctx) error {
	if err := s.articleService.Delete(c.UserContext(), actor(c), c.Params("slug")); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "ARTICLE_DELETED_SUCCESS", "Article deleted", nil)
}

// AdminListArticles handles GET /api/admin/articles
// @Summary List articles (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "active or inactive"
// @Success 200 {object} models.Envelope
// @Router /admin/articles [get]
func (s *Server) AdminListArticles(c *fiber.Ctx) error {
	page, err := s.articleService.AdminList(c.UserContext(), service.ListArticlesInput{
		PageQuery: pageQuery(c),
		Search:    searchQuery(c),
		Tag:       c.Query("tag"),
		Status:    repository.ParseStatus(c.Query("status")),
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "ARTICLES_FETCHED", "", page)
}

// AdminApproveArticle handles PUT /api/admin/articles/:id/approve
// @Summary Approve article
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Article ID"
// @Success 200 {object} models.Envelope{data=models.Article}
// @Failure 409 {object} models.Envelope
// @Router /admin/articles/{id}/approve [put]
func (s *Server) AdminApproveArticle(c *fiber.Ctx) error {
	return s.toggleArticle(c, "ARTICLE_APPROVED", notifications.ArticleApproved, "Article approved",
		func(id uint) (*models.Article, error) {
			return s.articleService.SetActive(c.UserContext(), id, true)
		})
}

// AdminDisableArticle handles PUT /api/admin/articles/:id/disable
// @Summary Disable article
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Article ID"
// @Param X-Confirm-Password header string false "Acting admin's password"
// @Success 200 {object} models.Envelope{data=models.Article}
// @Failure 409 {object} models.Envelope
// @Router /admin/articles/{id}/disable [put]
func (s *Server) AdminDisableArticle(c *fiber.Ctx) error {
	return s.toggleArticle(c, "ARTICLE_DISABLED", notifications.ArticleDisabled, "Article disabled",
		func(id uint) (*models.Article, error) {
			return s.articleService.SetActive(c.UserContext(), id, false)
		})
}

// AdminFeatureArticle handles PUT /api/admin/articles/:id/feature
// @Summary Feature article
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Article ID"
// @Success 200 {object} models.Envelope{data=models.Article}
// @Router /admin/articles/{id}/feature [put]
func (s *Server) AdminFeatureArticle(c *fiber.Ctx) error {
	return s.toggleArticle(c, "ARTICLE_FEATURED", notifications.ArticleFeatured, "Article featured",
		func(id uint) (*models.Article, error) {
			return s.articleService.SetFeatured(c.UserContext(), id, true)
		})
}

// AdminUnfeatureArticle handles PUT /api/admin/articles/:id/unfeature
// @Summary Unfeature article
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Article ID"
// @Success 200 {object} models.Envelope{data=models.Article}
// @Router /admin/articles/{id}/unfeature [put]
func (s *Server) AdminUnfeatureArticle(c *fiber.Ctx) error {
	return s.toggleArticle(c, "ARTICLE_UNFEATURED", notifications.ArticleUnfeatured, "Article unfeatured",
		func(id uint) (*models.Article, error) {
			return s.articleService.SetFeatured(c.UserContext(), id, false)
		})
}

func (s *Server) toggleArticle(c *fiber.Ctx, code, event, message string, toggle func(uint) (*models.Article, error)) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	article, err := toggle(id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	s.notifier.Notify(c.UserContext(), article.UserID, notifications.Event{
		Type: event, ResourceID: article.ID, Slug: article.Slug,
	})
	return models.RespondOK(c, code, message, article)
}
