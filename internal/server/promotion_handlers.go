package server

import (
	"medialane/internal/models"
	"medialane/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetAdsPlans handles GET /api/promotions/plans/ads
// @Summary Ads plans
// @Tags promotions
// @Produce json
// @Success 200 {object} models.Envelope{data=[]models.AdsPlan}
// @Router /promotions/plans/ads [get]
func (s *Server) GetAdsPlans(c *fiber.Ctx) error {
	plans, err := s.promotionService.AdsPlans(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "PLANS_FETCHED", "", plans)
}

// GetStoryPlans handles GET /api/promotions/plans/stories
// @Summary Story plans
// @Tags promotions
// @Produce json
// @Success 200 {object} models.Envelope{data=[]models.StoryPlan}
// @Router /promotions/plans/stories [get]
func (s *Server) GetStoryPlans(c *fiber.Ctx) error {
	plans, err := s.promotionService.StoryPlans(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "PLANS_FETCHED", "", plans)
}

// GetLiveAds handles GET /api/promotions/ads
// @Summary Running ads
// @Description Active ads whose window contains now
// @Tags promotions
// @Produce json
// @Success 200 {object} models.Envelope{data=[]models.Ads}
// @Router /promotions/ads [get]
func (s *Server) GetLiveAds(c *fiber.Ctx) error {
	ads, err := s.promotionService.LiveAds(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "ADS_FETCHED", "", ads)
}

// GetLiveStories handles GET /api/promotions/stories
// @Summary Running stories
// @Tags promotions
// @Produce json
// @Success 200 {object} models.Envelope{data=[]models.Story}
// @Router /promotions/stories [get]
func (s *Server) GetLiveStories(c *fiber.Ctx) error {
	stories, err := s.promotionService.LiveStories(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "STORIES_FETCHED", "", stories)
}

// GetMyPromotions handles GET /api/promotions/me
// @Summary My promotions
// @Tags promotions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Envelope{data=service.MyPromotions}
// @Router /promotions/me [get]
func (s *Server) GetMyPromotions(c *fiber.Ctx) error {
	mine, err := s.promotionService.Mine(c.UserContext(), actor(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "PROMOTIONS_FETCHED", "", mine)
}

// CreateAds handles POST /api/promotions/ads
// @Summary Buy ads
// @Description Created inactive; an admin enables it
// @Tags promotions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreatePromotionInput true "Ads"
// @Success 201 {object} models.Envelope{data=models.Ads}
// @Failure 404 {object} models.Envelope
// @Router /promotions/ads [post]
func (s *Server) CreateAds(c *fiber.Ctx) error {
	var req service.CreatePromotionInput
	if err := parseBody(c, &req); err != nil {
		return models.RespondWithError(c, err)
	}

	ads, err := s.promotionService.CreateAds(c.UserContext(), actor(c), req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondCreated(c, "ADS_CREATED_SUCCESS", "Ads created", ads)
}

// CreateStory handles POST /api/promotions/stories
// @Summary Buy story
// @Tags promotions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreatePromotionInput true "Story"
// @Success 201 {object} models.Envelope{data=models.Story}
// @Router /promotions/stories [post]
func (s *Server) CreateStory(c *fiber.Ctx) error {
	var req service.CreatePromotionInput
	if err := parseBody(c, &req); err != nil {
		return models.RespondWithError(c, err)
	}

	story, err := s.promotionService.CreateStory(c.UserContext(), actor(c), req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondCreated(c, "STORY_CREATED_SUCCESS", "Story created", story)
}

// AdminCreateAdsPlan handles POST /api/admin/promotions/plans/ads
// @Summary Create ads plan
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreatePlanInput true "Plan"
// @Success 201 {object} models.Envelope{data=models.AdsPlan}
// @Failure 409 {object} models.Envelope
// @Router /admin/promotions/plans/ads [post]
func (s *Server) AdminCreateAdsPlan(c *fiber.Ctx) error {
	var req service.CreatePlanInput
	if err := parseBody(c, &req); err != nil {
		return models.RespondWithError(c, err)
	}

	plan, err := s.promotionService.CreateAdsPlan(c.UserContext(), req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondCreated(c, "PLAN_CREATED_SUCCESS", "Plan created", plan)
}

// AdminCreateStoryPlan handles POST /api/admin/promotions/plans/stories
// @Summary Create story plan
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreatePlanInput true "Plan"
// @Success 201 {object} models.Envelope{data=models.StoryPlan}
// @Router /admin/promotions/plans/stories [post]
func (s *Server) AdminCreateStoryPlan(c *fiber.Ctx) error {
	var req service.CreatePlanInput
	if err := parseBody(c, &req); err != nil {
		return models.RespondWithError(c, err)
	}

	plan, err := s.promotionService.CreateStoryPlan(c.UserContext(), req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondCreated(c, "PLAN_CREATED_SUCCESS", "Plan created", plan)
}

// AdminEnablePromotion handles PUT /api/admin/promotions/:kind/:id/enable
// @Summary Enable ads or story
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param kind path string true "ads or stories"
// @Param id path int true "Promotion ID"
// @Param X-Confirm-Password header string false "Acting admin's password"
// @Success 200 {object} models.Envelope
// @Failure 409 {object} models.Envelope
// @Router /admin/promotions/{kind}/{id}/enable [put]
func (s *Server) AdminEnablePromotion(c *fiber.Ctx) error {
	return s.setPromotionActive(c, true)
}

// AdminDisablePromotion handles PUT /api/admin/promotions/:kind/:id/disable
// @Summary Disable ads or story
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param kind path string true "ads or stories"
// @Param id path int true "Promotion ID"
// @Param X-Confirm-Password header string false "Acting admin's password"
// @Success 200 {object} models.Envelope
// @Failure 409 {object} models.Envelope
// @Router /admin/promotions/{kind}/{id}/disable [put]
func (s *Server) AdminDisablePromotion(c *fiber.Ctx) error {
	return s.setPromotionActive(c, false)
}

func (s *Server) setPromotionActive(c *fiber.Ctx, active bool) error {
	kind, err := promotionKind(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.promotionService.SetActive(c.UserContext(), kind, id, active); err != nil {
		return models.RespondWithError(c, err)
	}
	if active {
		return models.RespondOK(c, "PROMOTION_ENABLED", "Promotion enabled", nil)
	}
	return models.RespondOK(c, "PROMOTION_DISABLED", "Promotion disabled", nil)
}

// AdminDeletePromotion handles DELETE /api/admin/promotions/:kind/:id
// @Summary Delete ads or story
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param kind path string true "ads or stories"
// @Param id path int true "Promotion ID"
// @Param X-Confirm-Password header string false "Acting admin's password"
// @Success 200 {object} models.Envelope
// @Router /admin/promotions/{kind}/{id} [delete]
func (s *Server) AdminDeletePromotion(c *fiber.Ctx) error {
	kind, err := promotionKind(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.promotionService.Delete(c.UserContext(), kind, id); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "PROMOTION_DELETED", "Promotion deleted", nil)
}
