package service

import (
	"context"
	"errors"

	"medialane/internal/content"
	"medialane/internal/featureflags"
	"medialane/internal/models"
	"medialane/internal/observability"
	"medialane/internal/paging"
	"medialane/internal/repository"
	"medialane/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

type VideoService struct {
	videos     repository.VideoRepository
	categories repository.CategoryRepository
	flags      *featureflags.Manager
}

type CreateVideoInput struct {
	Title       string              `json:"title"`
	Link        string              `json:"link"`
	Description string              `json:"description"`
	Tags        []string            `json:"tags"`
	Category    models.CategoryName `json:"category"`
	// Shared defaults to true when omitted.
	Shared *bool `json:"shared"`
}

// UpdateVideoInput changes only the fields that are set.
type UpdateVideoInput struct {
	Title       *string              `json:"title"`
	Link        *string              `json:"link"`
	Description *string              `json:"description"`
	Tags        []string             `json:"tags"`
	Category    *models.CategoryName `json:"category"`
	Shared      *bool                `json:"shared"`
}

type ListVideosInput struct {
	PageQuery
	Search   string
	Tag      string
	Category models.CategoryName
	Status   repository.Status
}

func NewVideoService(
	videos repository.VideoRepository,
	categories repository.CategoryRepository,
	flags *featureflags.Manager,
) *VideoService {
	return &VideoService{videos: videos, categories: categories, flags: flags}
}

func validateVideo(title, link string, tags []string, category models.CategoryName) error {
	v := validation.New()
	v.Required("title", title)
	v.MaxLength("title", title, maxTitleLen)
	v.URL("link", link)
	v.Check(len(tags) <= maxTags, "tags", "at most 20 tags are allowed")
	v.Check(category.Valid(), "category", "category is required")
	return v.Err()
}

func (s *VideoService) category(ctx context.Context, name models.CategoryName) (*models.Category, error) {
	category, err := s.categories.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, models.NewNotFoundError("Category", name)
	}
	return category, nil
}

func (s *VideoService) Create(ctx context.Context, actor Actor, in CreateVideoInput) (_ *models.Video, err error) {
	ctx, span := observability.StartSpan(ctx, "service", "video.create", attribute.Int("user.id", int(actor.ID)))
	defer func() { observability.EndSpan(span, err) }()

	tags := content.DedupeTags(in.Tags)
	if err := validateVideo(in.Title, in.Link, tags, in.Category); err != nil {
		return nil, err
	}
	category, err := s.category(ctx, in.Category)
	if err != nil {
		return nil, err
	}

	slug, err := content.UniqueSlug(ctx, in.Title, s.videos.SlugExists)
	if err != nil {
		return nil, err
	}

	shared := true
	if in.Shared != nil {
		shared = *in.Shared
	}
	video := &models.Video{
		Slug:        slug,
		Link:        in.Link,
		Title:       in.Title,
		Description: in.Description,
		Tags:        tags,
		Active:      s.flags.Enabled(featureflags.AutoApproveVideos, actor.ID),
		Shared:      shared,
		CategoryID:  category.ID,
		UserID:      actor.ID,
	}
	if err := s.videos.Create(ctx, video); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, models.NewConflictError(models.CodeVideoAlreadyExists, "A video with this slug already exists")
		}
		return nil, err
	}
	observability.ContentCreated.WithLabelValues("video").Inc()

	return s.videos.GetByID(ctx, video.ID)
}

// Get returns a video by slug. Inactive videos are visible only to their
// owner and to admins.
func (s *VideoService) Get(ctx context.Context, actor Actor, slug string) (*models.Video, error) {
	video, err := s.videos.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if video == nil || (!video.Active && !actor.CanManage(video.UserID)) {
		return nil, models.NewNotFoundError("Video", slug)
	}
	return video, nil
}

// Lookup returns a video by slug whatever its state.
func (s *VideoService) Lookup(ctx context.Context, slug string) (*models.Video, error) {
	video, err := s.videos.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, models.NewNotFoundError("Video", slug)
	}
	return video, nil
}

// Resolve returns an active video by slug for engagement endpoints.
func (s *VideoService) Resolve(ctx context.Context, slug string) (*models.Video, error) {
	return s.Get(ctx, Actor{}, slug)
}

func (s *VideoService) List(ctx context.Context, in ListVideosInput) (paging.Page[*models.Video], error) {
	in.Status = repository.StatusActive
	return s.list(ctx, in, 0)
}

func (s *VideoService) Mine(ctx context.Context, actor Actor, q PageQuery) (paging.Page[*models.Video], error) {
	return s.list(ctx, ListVideosInput{PageQuery: q}, actor.ID)
}

func (s *VideoService) AdminList(ctx context.Context, in ListVideosInput) (paging.Page[*models.Video], error) {
	return s.list(ctx, in, 0)
}

func (s *VideoService) list(ctx context.Context, in ListVideosInput, userID uint) (paging.Page[*models.Video], error) {
	filter := repository.VideoFilter{
		Search: in.Search,
		Tag:    in.Tag,
		Status: in.Status,
		UserID: userID,
	}
	page, limit, offset := in.bounds()
	if in.Category != "" {
		category, err := s.categories.GetByName(ctx, in.Category)
		if err != nil {
			return paging.Page[*models.Video]{}, err
		}
		if category == nil {
			return paging.Data[*models.Video](nil, 0, page, limit), nil
		}
		filter.CategoryID = category.ID
	}

	rows, total, err := s.videos.List(ctx, filter, limit, offset)
	if err != nil {
		return paging.Page[*models.Video]{}, err
	}
	return paging.Data(rows, total, page, limit), nil
}

func (s *VideoService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}

func (s *VideoService) Update(ctx context.Context, actor Actor, slug string, in UpdateVideoInput) (*models.Video, error) {
	video, err := s.videos.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, models.NewNotFoundError("Video", slug)
	}
	if video.UserID != actor.ID {
		return nil, errOwnership("video")
	}

	title := stringValue(in.Title, video.Title)
	link := stringValue(in.Link, video.Link)
	tags := video.Tags
	if in.Tags != nil {
		tags = content.DedupeTags(in.Tags)
	}
	categoryName := models.CategoryOther
	if video.Category != nil {
		categoryName = video.Category.Name
	}
	if in.Category != nil {
		categoryName = *in.Category
	}
	if err := validateVideo(title, link, tags, categoryName); err != nil {
		return nil, err
	}
	category, err := s.category(ctx, categoryName)
	if err != nil {
		return nil, err
	}

	previousSlug := video.Slug
	if title != video.Title {
		video.Slug, err = content.UniqueSlug(ctx, title, excludingSlug(previousSlug, s.videos.SlugExists))
		if err != nil {
			return nil, err
		}
	}
	video.Title = title
	video.Link = link
	video.Description = stringValue(in.Description, video.Description)
	video.Tags = tags
	video.CategoryID = category.ID
	if in.Shared != nil {
		video.Shared = *in.Shared
	}

	if err := s.videos.Update(ctx, video, previousSlug); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, models.NewConflictError(models.CodeVideoAlreadyExists, "A video with this slug already exists")
		}
		return nil, err
	}
	return s.videos.GetByID(ctx, video.ID)
}

func (s *VideoService) Delete(ctx context.Context, actor Actor, slug string) error {
	video, err := s.videos.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if video == nil {
		return models.NewNotFoundError("Video", slug)
	}
	if !actor.CanManage(video.UserID) {
		return errOwnership("video")
	}
	return s.videos.Delete(ctx, video)
}

func (s *VideoService) byID(ctx context.Context, id uint) (*models.Video, error) {
	video, err := s.videos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, models.NewNotFoundError("Video", id)
	}
	return video, nil
}

// SetActive approves (true) or disables (false) a video.
func (s *VideoService) SetActive(ctx context.Context, id uint, active bool) (*models.Video, error) {
	video, err := s.byID(ctx, id)
	if err != nil {
		return nil, err
	}
	state := "active"
	if !active {
		state = "inactive"
	}
	if err := stateError(s.videos.SetActive(ctx, video, active), "Video", id, state); err != nil {
		return nil, err
	}
	return s.videos.GetByID(ctx, id)
}

// AdminDelete removes any video by id.
func (s *VideoService) AdminDelete(ctx context.Context, id uint) error {
	video, err := s.byID(ctx, id)
	if err != nil {
		return err
	}
	return s.videos.Delete(ctx, video)
}

func (s *VideoService) TopRated(ctx context.Context, limit int) ([]*models.Video, error) {
	return s.videos.TopRated(ctx, limit)
}
