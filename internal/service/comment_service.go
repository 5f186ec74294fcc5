package service

import (
	"context"

	"medialane/internal/models"
	"medialane/internal/observability"
	"medialane/internal/paging"
	"medialane/internal/repository"
	"medialane/internal/validation"
)

const maxCommentLen = 10000

type CommentService struct {
	comments repository.CommentRepository
	articles *ArticleService
}

func NewCommentService(comments repository.CommentRepository, articles *ArticleService) *CommentService {
	return &CommentService{comments: comments, articles: articles}
}

func validateComment(body string) error {
	v := validation.New()
	v.Required("body", body)
	v.MaxLength("body", body, maxCommentLen)
	return v.Err()
}

func (s *CommentService) List(ctx context.Context, slug string, q PageQuery) (paging.Page[*models.Comment], error) {
	article, err := s.articles.Resolve(ctx, slug)
	if err != nil {
		return paging.Page[*models.Comment]{}, err
	}
	page, limit, offset := q.bounds()
	rows, total, err := s.comments.ListByArticle(ctx, article.ID, limit, offset)
	if err != nil {
		return paging.Page[*models.Comment]{}, err
	}
	return paging.Data(rows, total, page, limit), nil
}

func (s *CommentService) Create(ctx context.Context, actor Actor, slug, body string) (*models.Comment, error) {
	if err := validateComment(body); err != nil {
		return nil, err
	}
	article, err := s.articles.Resolve(ctx, slug)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{Body: body, UserID: actor.ID, ArticleID: article.ID}
	if err := s.comments.Create(ctx, comment, article.Slug); err != nil {
		return nil, err
	}
	observability.Reactions.WithLabelValues("comment").Inc()

	return s.comments.GetByID(ctx, comment.ID)
}

func (s *CommentService) owned(ctx context.Context, actor Actor, id uint) (*models.Comment, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, models.NewNotFoundError("Comment", id)
	}
	if !actor.CanManage(comment.UserID) {
		return nil, errOwnership("comment")
	}
	return comment, nil
}

func (s *CommentService) Update(ctx context.Context, actor Actor, id uint, body string) (*models.Comment, error) {
	if err := validateComment(body); err != nil {
		return nil, err
	}
	comment, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	comment.Body = body
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return s.comments.GetByID(ctx, comment.ID)
}

func (s *CommentService) Delete(ctx context.Context, actor Actor, id uint) error {
	comment, err := s.owned(ctx, actor, id)
	if err != nil {
		return err
	}
	return s.comments.Delete(ctx, comment)
}
