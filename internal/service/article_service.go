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

const (
	minSummaryLen = 100
	maxTitleLen   = 255
	maxTags       = 20
)

type ArticleService struct {
	articles repository.ArticleRepository
	flags    *featureflags.Manager
}

type CreateArticleInput struct {
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Body    string   `json:"body"`
	Tags    []string `json:"tags"`
}

// UpdateArticleInput changes only the fields that are set.
type UpdateArticleInput struct {
	Title   *string  `json:"title"`
	Summary *string  `json:"summary"`
	Body    *string  `json:"body"`
	Tags    []string `json:"tags"`
}

type ListArticlesInput struct {
	PageQuery
	Search string
	Tag    string
	Status repository.Status
}

func NewArticleService(articles repository.ArticleRepository, flags *featureflags.Manager) *ArticleService {
	return &ArticleService{articles: articles, flags: flags}
}

func validateArticle(title, summary, body string, tags []string) error {
	v := validation.New()
	v.Required("title", title)
	v.MaxLength("title", title, maxTitleLen)
	v.MinLength("summary", summary, minSummaryLen)
	v.Required("body", body)
	v.Check(len(tags) <= maxTags, "tags", "at most 20 tags are allowed")
	return v.Err()
}

func (s *ArticleService) Create(ctx context.Context, actor Actor, in CreateArticleInput) (_ *models.Article, err error) {
	ctx, span := observability.StartSpan(ctx, "service", "article.create", attribute.Int("user.id", int(actor.ID)))
	defer func() { observability.EndSpan(span, err) }()

	tags := content.DedupeTags(in.Tags)
	if err := validateArticle(in.Title, in.Summary, in.Body, tags); err != nil {
		return nil, err
	}

	slug, err := content.UniqueSlug(ctx, in.Title, s.articles.SlugExists)
	if err != nil {
		return nil, err
	}

	article := &models.Article{
		Slug:    slug,
		Title:   in.Title,
		Summary: in.Summary,
		Body:    in.Body,
		Tags:    tags,
		Reads:   content.ReadTime(in.Title, in.Summary, in.Body),
		Active:  s.flags.Enabled(featureflags.AutoApproveArticles, actor.ID),
		UserID:  actor.ID,
	}
	if err := s.articles.Create(ctx, article); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, models.NewConflictError(models.CodeArticleAlreadyExists, "An article with this slug already exists")
		}
		return nil, err
	}
	observability.ContentCreated.WithLabelValues("article").Inc()

	return s.articles.GetByID(ctx, article.ID)
}

// Get returns an article by slug. Inactive articles are visible only to
// their owner and to admins.
func (s *ArticleService) Get(ctx context.Context, actor Actor, slug string) (*models.Article, error) {
	article, err := s.articles.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if article == nil || (!article.Active && !actor.CanManage(article.UserID)) {
		return nil, models.NewNotFoundError("Article", slug)
	}
	return article, nil
}

// Resolve returns an active article by slug for engagement endpoints.
func (s *ArticleService) Resolve(ctx context.Context, slug string) (*models.Article, error) {
	return s.Get(ctx, Actor{}, slug)
}

func (s *ArticleService) List(ctx context.Context, in ListArticlesInput) (paging.Page[*models.Article], error) {
	return s.list(ctx, repository.ArticleFilter{
		Search: in.Search,
		Tag:    in.Tag,
		Status: repository.StatusActive,
	}, in.PageQuery)
}

func (s *ArticleService) Featured(ctx context.Context, q PageQuery) (paging.Page[*models.Article], error) {
	return s.list(ctx, repository.ArticleFilter{Status: repository.StatusActive, Featured: true}, q)
}

func (s *ArticleService) Mine(ctx context.Context, actor Actor, q PageQuery) (paging.Page[*models.Article], error) {
	return s.list(ctx, repository.ArticleFilter{UserID: actor.ID}, q)
}

func (s *ArticleService) AdminList(ctx context.Context, in ListArticlesInput) (paging.Page[*models.Article], error) {
	return s.list(ctx, repository.ArticleFilter{Search: in.Search, Tag: in.Tag, Status: in.Status}, in.PageQuery)
}

func (s *ArticleService) list(ctx context.Context, filter repository.ArticleFilter, q PageQuery) (paging.Page[*models.Article], error) {
	page, limit, offset := q.bounds()
	rows, total, err := s.articles.List(ctx, filter, limit, offset)
	if err != nil {
		return paging.Page[*models.Article]{}, err
	}
	return paging.Data(rows, total, page, limit), nil
}

func (s *ArticleService) Tags(ctx context.Context) ([]string, error) {
	return s.articles.Tags(ctx)
}

func (s *ArticleService) Update(ctx context.Context, actor Actor, slug string, in UpdateArticleInput) (*models.Article, error) {
	article, err := s.articles.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, models.NewNotFoundError("Article", slug)
	}
	if article.UserID != actor.ID {
		return nil, errOwnership("article")
	}

	title := stringValue(in.Title, article.Title)
	summary := stringValue(in.Summary, article.Summary)
	body := stringValue(in.Body, article.Body)
	tags := article.Tags
	if in.Tags != nil {
		tags = content.DedupeTags(in.Tags)
	}
	if err := validateArticle(title, summary, body, tags); err != nil {
		return nil, err
	}

	previousSlug := article.Slug
	if title != article.Title {
		article.Slug, err = content.UniqueSlug(ctx, title, excludingSlug(previousSlug, s.articles.SlugExists))
		if err != nil {
			return nil, err
		}
	}
	article.Title = title
	article.Summary = summary
	article.Body = body
	article.Tags = tags
	article.Reads = content.ReadTime(title, summary, body)

	if err := s.articles.Update(ctx, article, previousSlug); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, models.NewConflictError(models.CodeArticleAlreadyExists, "An article with this slug already exists")
		}
		return nil, err
	}
	return s.articles.GetByID(ctx, article.ID)
}

func (s *ArticleService) Delete(ctx context.Context, actor Actor, slug string) error {
	article, err := s.articles.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if article == nil {
		return models.NewNotFoundError("Article", slug)
	}
	if !actor.CanManage(article.UserID) {
		return errOwnership("article")
	}
	return s.articles.Delete(ctx, article)
}

func (s *ArticleService) byID(ctx context.Context, id uint) (*models.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, models.NewNotFoundError("Article", id)
	}
	return article, nil
}

// SetActive approves (true) or disables (false) an article.
func (s *ArticleService) SetActive(ctx context.Context, id uint, active bool) (*models.Article, error) {
	article, err := s.byID(ctx, id)
	if err != nil {
		return nil, err
	}
	state := "active"
	if !active {
		state = "inactive"
	}
	if err := stateError(s.articles.SetActive(ctx, article, active), "Article", id, state); err != nil {
		return nil, err
	}
	return s.articles.GetByID(ctx, id)
}

// SetFeatured features or unfeatures an article.
func (s *ArticleService) SetFeatured(ctx context.Context, id uint, featured bool) (*models.Article, error) {
	article, err := s.byID(ctx, id)
	if err != nil {
		return nil, err
	}
	state := "featured"
	if !featured {
		state = "unfeatured"
	}
	if err := stateError(s.articles.SetFeatured(ctx, article, featured), "Article", id, state); err != nil {
		return nil, err
	}
	return s.articles.GetByID(ctx, id)
}

func (s *ArticleService) MostLiked(ctx context.Context, limit int) ([]*models.Article, error) {
	return s.articles.MostLiked(ctx, limit)
}
