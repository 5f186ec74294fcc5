package service

import (
	"context"
	"errors"

	"medialane/internal/models"
	"medialane/internal/observability"
	"medialane/internal/paging"
	"medialane/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// ReactionService handles likes and bookmarks on articles.
type ReactionService struct {
	likes     repository.LikeRepository
	bookmarks repository.BookmarkRepository
	articles  *ArticleService
}

func NewReactionService(
	likes repository.LikeRepository,
	bookmarks repository.BookmarkRepository,
	articles *ArticleService,
) *ReactionService {
	return &ReactionService{likes: likes, bookmarks: bookmarks, articles: articles}
}

func (s *ReactionService) Like(ctx context.Context, actor Actor, slug string) (_ *models.Like, err error) {
	ctx, span := observability.StartSpan(ctx, "service", "article.like", attribute.String("article.slug", slug))
	defer func() { observability.EndSpan(span, err) }()

	article, err := s.articles.Resolve(ctx, slug)
	if err != nil {
		return nil, err
	}
	like, err := s.likes.Like(ctx, actor.ID, article)
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return nil, models.NewConflictError(models.CodeArticleAlreadyLiked, "You already liked this article")
	case errors.Is(err, repository.ErrNotFound):
		return nil, models.NewNotFoundError("Article", slug)
	case err != nil:
		return nil, err
	}
	observability.Reactions.WithLabelValues("like").Inc()
	return like, nil
}

func (s *ReactionService) Unlike(ctx context.Context, actor Actor, slug string) error {
	article, err := s.articles.Resolve(ctx, slug)
	if err != nil {
		return err
	}
	if err := s.likes.Unlike(ctx, actor.ID, article); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.NewNotFoundError("Like", slug)
		}
		return err
	}
	return nil
}

func (s *ReactionService) Likes(ctx context.Context, actor Actor, q PageQuery) (paging.Page[*models.Like], error) {
	page, limit, offset := q.bounds()
	rows, total, err := s.likes.ListByUser(ctx, actor.ID, limit, offset)
	if err != nil {
		return paging.Page[*models.Like]{}, err
	}
	return paging.Data(rows, total, page, limit), nil
}

func (s *ReactionService) Bookmark(ctx context.Context, actor Actor, slug string) (*models.Bookmark, error) {
	article, err := s.articles.Resolve(ctx, slug)
	if err != nil {
		return nil, err
	}
	bookmark, err := s.bookmarks.Bookmark(ctx, actor.ID, article)
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return nil, models.NewConflictError(models.CodeArticleAlreadyBookmarked, "You already bookmarked this article")
	case errors.Is(err, repository.ErrNotFound):
		return nil, models.NewNotFoundError("Article", slug)
	case err != nil:
		return nil, err
	}
	observability.Reactions.WithLabelValues("bookmark").Inc()
	return bookmark, nil
}

func (s *ReactionService) Unbookmark(ctx context.Context, actor Actor, slug string) error {
	article, err := s.articles.Resolve(ctx, slug)
	if err != nil {
		return err
	}
	if err := s.bookmarks.Unbookmark(ctx, actor.ID, article); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.NewNotFoundError("Bookmark", slug)
		}
		return err
	}
	return nil
}

func (s *ReactionService) Bookmarks(ctx context.Context, actor Actor, q PageQuery) (paging.Page[*models.Bookmark], error) {
	page, limit, offset := q.bounds()
	rows, total, err := s.bookmarks.ListByUser(ctx, actor.ID, limit, offset)
	if err != nil {
		return paging.Page[*models.Bookmark]{}, err
	}
	return paging.Data(rows, total, page, limit), nil
}
