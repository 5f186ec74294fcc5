package service

import (
	"context"

	"medialane/internal/models"
	"medialane/internal/paging"

	"golang.org/x/sync/errgroup"
)

const trendingLimit = 10

// FeedService builds the mixed content listings that span videos and
// articles.
type FeedService struct {
	articles *ArticleService
	videos   *VideoService
}

// Feed is one page of each content kind.
type Feed struct {
	Videos   paging.Page[*models.Video]   `json:"videos"`
	Articles paging.Page[*models.Article] `json:"articles"`
}

type Trending struct {
	Videos   []*models.Video   `json:"videos"`
	Articles []*models.Article `json:"articles"`
}

func NewFeedService(articles *ArticleService, videos *VideoService) *FeedService {
	return &FeedService{articles: articles, videos: videos}
}

// Search returns a page of active videos and a page of active articles
// matching search. Both listings run concurrently.
func (s *FeedService) Search(ctx context.Context, search string, q PageQuery) (Feed, error) {
	var feed Feed
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		page, err := s.videos.List(ctx, ListVideosInput{PageQuery: q, Search: search})
		feed.Videos = page
		return err
	})
	g.Go(func() error {
		page, err := s.articles.List(ctx, ListArticlesInput{PageQuery: q, Search: search})
		feed.Articles = page
		return err
	})
	if err := g.Wait(); err != nil {
		return Feed{}, err
	}
	return feed, nil
}

func (s *FeedService) Trending(ctx context.Context) (Trending, error) {
	videos, err := s.videos.TopRated(ctx, trendingLimit)
	if err != nil {
		return Trending{}, err
	}
	articles, err := s.articles.MostLiked(ctx, trendingLimit)
	if err != nil {
		return Trending{}, err
	}
	return Trending{Videos: videos, Articles: articles}, nil
}
