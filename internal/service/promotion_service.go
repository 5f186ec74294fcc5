package service

import (
	"context"
	"errors"
	"time"

	"medialane/internal/content"
	"medialane/internal/models"
	"medialane/internal/observability"
	"medialane/internal/repository"
	"medialane/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

// PromotionService manages promotion plans and the ads and stories bought
// against them. New promotions start inactive until an admin enables them.
type PromotionService struct {
	promotions repository.PromotionRepository
	now        func() time.Time
}

type CreatePlanInput struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Duration int     `json:"duration"`
	Active   *bool   `json:"active"`
}

type CreatePromotionInput struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Link   string `json:"link"`
	PlanID uint   `json:"planId"`
}

// MyPromotions groups the caller's ads and stories.
type MyPromotions struct {
	Ads     []*models.Ads   `json:"ads"`
	Stories []*models.Story `json:"stories"`
}

func NewPromotionService(promotions repository.PromotionRepository) *PromotionService {
	return &PromotionService{promotions: promotions, now: time.Now}
}

func validatePlan(in CreatePlanInput) error {
	v := validation.New()
	v.Required("name", in.Name)
	v.MaxLength("name", in.Name, 128)
	v.Positive("price", in.Price)
	v.Check(in.Duration > 0, "duration", "duration must be at least 1 day")
	return v.Err()
}

func planConflict(err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return models.NewConflictError(models.CodePlanAlreadyExists, "A plan with this name already exists")
	}
	return err
}

func (s *PromotionService) AdsPlans(ctx context.Context) ([]models.AdsPlan, error) {
	return s.promotions.ListAdsPlans(ctx, true)
}

func (s *PromotionService) StoryPlans(ctx context.Context) ([]models.StoryPlan, error) {
	return s.promotions.ListStoryPlans(ctx, true)
}

func (s *PromotionService) CreateAdsPlan(ctx context.Context, in CreatePlanInput) (*models.AdsPlan, error) {
	if err := validatePlan(in); err != nil {
		return nil, err
	}
	plan := &models.AdsPlan{Name: in.Name, Price: in.Price, Duration: in.Duration, Active: in.Active == nil || *in.Active}
	if err := s.promotions.CreateAdsPlan(ctx, plan); err != nil {
		return nil, planConflict(err)
	}
	return plan, nil
}

func (s *PromotionService) CreateStoryPlan(ctx context.Context, in CreatePlanInput) (*models.StoryPlan, error) {
	if err := validatePlan(in); err != nil {
		return nil, err
	}
	plan := &models.StoryPlan{Name: in.Name, Price: in.Price, Duration: in.Duration, Active: in.Active == nil || *in.Active}
	if err := s.promotions.CreateStoryPlan(ctx, plan); err != nil {
		return nil, planConflict(err)
	}
	return plan, nil
}

func validatePromotion(in CreatePromotionInput) error {
	v := validation.New()
	v.Required("title", in.Title)
	v.MaxLength("title", in.Title, maxTitleLen)
	if in.Link != "" {
		v.URL("link", in.Link)
	}
	v.Check(in.PlanID != 0, "planId", "planId is required")
	return v.Err()
}

func (s *PromotionService) slug(ctx context.Context, kind models.PromotionKind, title string) (string, error) {
	return content.UniqueSlug(ctx, title, func(ctx context.Context, candidate string) (bool, error) {
		return s.promotions.SlugExists(ctx, kind, candidate)
	})
}

func (s *PromotionService) CreateAds(ctx context.Context, actor Actor, in CreatePromotionInput) (_ *models.Ads, err error) {
	ctx, span := observability.StartSpan(ctx, "service", "ads.create", attribute.Int("plan.id", int(in.PlanID)))
	defer func() { observability.EndSpan(span, err) }()

	if err := validatePromotion(in); err != nil {
		return nil, err
	}
	plan, err := s.promotions.GetAdsPlan(ctx, in.PlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil || !plan.Active {
		return nil, models.NewNotFoundError("Plan", in.PlanID)
	}
	slug, err := s.slug(ctx, models.PromotionAds, in.Title)
	if err != nil {
		return nil, err
	}

	start, end := models.PromotionWindow(s.now().UTC(), plan.Duration)
	ads := &models.Ads{
		Slug:      slug,
		Title:     in.Title,
		Body:      in.Body,
		Link:      in.Link,
		UserID:    actor.ID,
		PlanID:    plan.ID,
		StartDate: start,
		EndDate:   end,
	}
	if err := s.promotions.CreateAds(ctx, ads); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, models.NewConflictError(models.CodePromotionAlreadyExists, "A promotion with this slug already exists")
		}
		return nil, err
	}
	observability.ContentCreated.WithLabelValues("ads").Inc()
	return s.promotions.GetAds(ctx, ads.ID)
}

func (s *PromotionService) CreateStory(ctx context.Context, actor Actor, in CreatePromotionInput) (*models.Story, error) {
	if err := validatePromotion(in); err != nil {
		return nil, err
	}
	plan, err := s.promotions.GetStoryPlan(ctx, in.PlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil || !plan.Active {
		return nil, models.NewNotFoundError("Plan", in.PlanID)
	}
	slug, err := s.slug(ctx, models.PromotionStory, in.Title)
	if err != nil {
		return nil, err
	}

	start, end := models.PromotionWindow(s.now().UTC(), plan.Duration)
	story := &models.Story{
		Slug:      slug,
		Title:     in.Title,
		Body:      in.Body,
		Link:      in.Link,
		UserID:    actor.ID,
		PlanID:    plan.ID,
		StartDate: start,
		EndDate:   end,
	}
	if err := s.promotions.CreateStory(ctx, story); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, models.NewConflictError(models.CodePromotionAlreadyExists, "A promotion with this slug already exists")
		}
		return nil, err
	}
	observability.ContentCreated.WithLabelValues("story").Inc()
	return s.promotions.GetStory(ctx, story.ID)
}

func (s *PromotionService) LiveAds(ctx context.Context) ([]*models.Ads, error) {
	return s.promotions.ListLiveAds(ctx, s.now().UTC())
}

func (s *PromotionService) LiveStories(ctx context.Context) ([]*models.Story, error) {
	return s.promotions.ListLiveStories(ctx, s.now().UTC())
}

func (s *PromotionService) Mine(ctx context.Context, actor Actor) (MyPromotions, error) {
	ads, err := s.promotions.ListAdsByUser(ctx, actor.ID)
	if err != nil {
		return MyPromotions{}, err
	}
	stories, err := s.promotions.ListStoriesByUser(ctx, actor.ID)
	if err != nil {
		return MyPromotions{}, err
	}
	return MyPromotions{Ads: ads, Stories: stories}, nil
}

func promotionResource(kind models.PromotionKind) string {
	if kind == models.PromotionStory {
		return "Story"
	}
	return "Ads"
}

// SetActive enables or disables a promotion of kind.
func (s *PromotionService) SetActive(ctx context.Context, kind models.PromotionKind, id uint, active bool) error {
	state := "enabled"
	if !active {
		state = "disabled"
	}
	err := s.promotions.SetActive(ctx, kind, id, active)
	return stateError(err, promotionResource(kind), id, state)
}

func (s *PromotionService) Delete(ctx context.Context, kind models.PromotionKind, id uint) error {
	err := s.promotions.Delete(ctx, kind, id)
	if errors.Is(err, repository.ErrNotFound) {
		return models.NewNotFoundError(promotionResource(kind), id)
	}
	return err
}
