package service

import (
	"context"
	"errors"
	"strings"

	"medialane/internal/content"
	"medialane/internal/models"
	"medialane/internal/observability"
	"medialane/internal/paging"
	"medialane/internal/repository"
	"medialane/internal/validation"
)

// ShareService records video shares.
type ShareService struct {
	shares repository.ShareRepository
	videos *VideoService
}

func NewShareService(shares repository.ShareRepository, videos *VideoService) *ShareService {
	return &ShareService{shares: shares, videos: videos}
}

func (s *ShareService) Share(ctx context.Context, actor Actor, slug string) (*models.Share, error) {
	video, err := s.videos.Resolve(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !video.Shared {
		return nil, models.NewConflictError(models.CodeVideoSharingDisabled, "The owner disabled sharing for this video")
	}

	share, err := s.shares.Share(ctx, actor.ID, video)
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return nil, models.NewConflictError(models.CodeVideoAlreadyShared, "You already shared this video")
	case errors.Is(err, repository.ErrNotFound):
		return nil, models.NewNotFoundError("Video", slug)
	case err != nil:
		return nil, err
	}
	observability.Reactions.WithLabelValues("share").Inc()
	return share, nil
}

func (s *ShareService) Mine(ctx context.Context, actor Actor, q PageQuery) (paging.Page[*models.Share], error) {
	page, limit, offset := q.bounds()
	rows, total, err := s.shares.ListByUser(ctx, actor.ID, limit, offset)
	if err != nil {
		return paging.Page[*models.Share]{}, err
	}
	return paging.Data(rows, total, page, limit), nil
}

// RateService records 1..5 ratings and keeps each video's aggregate current.
type RateService struct {
	rates  repository.RateRepository
	videos *VideoService
}

// RateView is what a rating read returns: the video's aggregate and, for an
// authenticated caller, their own rate.
type RateView struct {
	repository.RateSummary
	MyRate *int `json:"myRate"`
}

func NewRateService(rates repository.RateRepository, videos *VideoService) *RateService {
	return &RateService{rates: rates, videos: videos}
}

// Rate stores count for the video. An anonymous actor always adds a new rate.
func (s *RateService) Rate(ctx context.Context, actor Actor, slug string, count int) (RateView, error) {
	v := validation.New()
	v.IntRange("count", count, 1, 5)
	if err := v.Err(); err != nil {
		return RateView{}, err
	}

	video, err := s.videos.Resolve(ctx, slug)
	if err != nil {
		return RateView{}, err
	}

	var userID *uint
	if actor.Authenticated() {
		id := actor.ID
		userID = &id
	}
	_, summary, err := s.rates.Rate(ctx, userID, video, count)
	if errors.Is(err, repository.ErrNotFound) {
		return RateView{}, models.NewNotFoundError("Video", slug)
	}
	if err != nil {
		return RateView{}, err
	}
	observability.Reactions.WithLabelValues("rate").Inc()

	view := RateView{RateSummary: summary}
	if userID != nil {
		view.MyRate = &count
	}
	return view, nil
}

func (s *RateService) Get(ctx context.Context, actor Actor, slug string) (RateView, error) {
	video, err := s.videos.Resolve(ctx, slug)
	if err != nil {
		return RateView{}, err
	}
	view := RateView{RateSummary: repository.RateSummary{AvgRate: video.AvgRate, TotalRaters: video.TotalRaters}}
	if !actor.Authenticated() {
		return view, nil
	}
	rate, err := s.rates.FindByUser(ctx, actor.ID, video.ID)
	if err != nil {
		return RateView{}, err
	}
	if rate != nil {
		view.MyRate = &rate.Count
	}
	return view, nil
}

// PlaylistService manages per-user playlists. A playlist is identified by
// the user's title; every video in it shares that title's slug.
type PlaylistService struct {
	playlists repository.PlaylistRepository
	videos    *VideoService
}

type AddToPlaylistInput struct {
	Title     string `json:"title"`
	VideoSlug string `json:"videoSlug"`
}

func NewPlaylistService(playlists repository.PlaylistRepository, videos *VideoService) *PlaylistService {
	return &PlaylistService{playlists: playlists, videos: videos}
}

func (s *PlaylistService) Add(ctx context.Context, actor Actor, in AddToPlaylistInput) (*models.PlaylistGroup, error) {
	in.Title = strings.TrimSpace(in.Title)
	v := validation.New()
	v.Required("title", in.Title)
	v.MaxLength("title", in.Title, maxTitleLen)
	v.Required("videoSlug", in.VideoSlug)
	if err := v.Err(); err != nil {
		return nil, err
	}

	video, err := s.videos.Resolve(ctx, in.VideoSlug)
	if err != nil {
		return nil, err
	}

	slug, err := s.playlists.GroupSlug(ctx, actor.ID, in.Title)
	if err != nil {
		return nil, err
	}
	if slug == "" {
		slug, err = content.UniqueSlug(ctx, in.Title, s.playlists.SlugExists)
		if err != nil {
			return nil, err
		}
	}

	entry := &models.Playlist{Slug: slug, Title: in.Title, UserID: actor.ID, VideoID: video.ID}
	switch err := s.playlists.Add(ctx, entry); {
	case errors.Is(err, repository.ErrDuplicate):
		return nil, models.NewConflictError(models.CodeVideoAlreadyInPlaylist, "This video is already in the playlist")
	case errors.Is(err, repository.ErrNotFound):
		return nil, models.NewNotFoundError("Video", in.VideoSlug)
	case err != nil:
		return nil, err
	}
	return s.Get(ctx, actor, slug)
}

func (s *PlaylistService) Mine(ctx context.Context, actor Actor) ([]models.PlaylistGroup, error) {
	return s.playlists.ListGroups(ctx, actor.ID)
}

func (s *PlaylistService) Get(ctx context.Context, actor Actor, slug string) (*models.PlaylistGroup, error) {
	group, err := s.playlists.GetGroup(ctx, actor.ID, slug)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, models.NewNotFoundError("Playlist", slug)
	}
	return group, nil
}

func (s *PlaylistService) Delete(ctx context.Context, actor Actor, slug string) error {
	err := s.playlists.DeleteGroup(ctx, actor.ID, slug)
	if errors.Is(err, repository.ErrNotFound) {
		return models.NewNotFoundError("Playlist", slug)
	}
	return err
}

// RemoveVideo takes a video out of one of the caller's playlists. Disabled
// videos stay listed in playlists, so they can be removed too.
func (s *PlaylistService) RemoveVideo(ctx context.Context, actor Actor, slug, videoSlug string) error {
	video, err := s.videos.Lookup(ctx, videoSlug)
	if err != nil {
		return err
	}
	err = s.playlists.RemoveVideo(ctx, actor.ID, slug, video)
	if errors.Is(err, repository.ErrNotFound) {
		return models.NewNotFoundError("Playlist", slug)
	}
	return err
}
