package server

import (
	"medialane/internal/models"
	"medialane/internal/service"

	"github.com/gofiber/fiber/v2"
)

// LikeArticle handles POST /api/likes/:slug
// @Summary Like article
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Article slug"
// @Success 201 {object} models.Envelope{data=models.Like}
// @Failure 404 {object} models.Envelope
// @Failure 409 {object} models.Envelope
// @Router /likes/{slug} [post]
func (s *Server) LikeArticle(c *fiber.Ctx) error {
	like, err := s.reactionService.Like(c.UserContext(), actor(c), c.Params("slug"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondCreated(c, "ARTICLE_LIKED_SUCCESS", "Article liked", like)
}

// UnlikeArticle handles DELETE /api/likes/:slug
// @Summary Remove like
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Article slug"
// @Success 200 {object} models.Envelope
// @Failure 404 {object} models.Envelope
// @Router /likes/{slug} [delete]
func (s *Server) UnlikeArticle(c *fiber.Ctx) error {
	if err := s.reactionService.Unlike(c.UserContext(), actor(c), c.Params("slug")); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "ARTICLE_UNLIKED_SUCCESS", "Like removed", nil)
}

// GetMyLikes handles GET /api/likes/me
// @Summary My likes
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Envelope
// @Router /likes/me [get]
func (s *Server) GetMyLikes(c *fiber.Ctx) error {
	page, err := s.reactionService.Likes(c.UserContext(), actor(c), pageQuery(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "LIKES_FETCHED", "", page)
}

// BookmarkArticle handles POST /api/bookmarks/:slug
// @Summary Bookmark article
// @Tags bookmarks
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Article slug"
// @Success 201 {object} models.Envelope{data=models.Bookmark}
// @Failure 409 {object} models.Envelope
// @Router /bookmarks/{slug} [post]
func (s *Server) BookmarkArticle(c *fiber.Ctx) error {
	bookmark, err := s.reactionService.Bookmark(c.UserContext(), actor(c), c.Params("slug"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondCreated(c, "ARTICLE_BOOKMARKED_SUCCESS", "Article bookmarked", bookmark)
}

// UnbookmarkArticle handles DELETE /api/bookmarks/:slug
// @Summary Remove bookmark
// @Tags bookmarks
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Article slug"
// @Success 200 {object} models.Envelope
// @Router /bookmarks/{slug} [delete]
func (s *Server) UnbookmarkArticle(c *fiber.Ctx) error {
	if err := s.reactionService.Unbookmark(c.UserContext(), actor(c), c.Params("slug")); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "ARTICLE_UNBOOKMARKED_SUCCESS", "Bookmark removed", nil)
}

// GetMyBookmarks handles GET /api/bookmarks/me
// @Summary My bookmarks
// @Tags bookmarks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Envelope
// @Router /bookmarks/me [get]
func (s *Server) GetMyBookmarks(c *fiber.Ctx) error {
	page, err := s.reactionService.Bookmarks(c.UserContext(), actor(c), pageQuery(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "BOOKMARKS_FETCHED", "", page)
}

type rateRequest struct {
	Count int `json:"count"`
}

// RateVideo handles POST /api/rates/:slug
// @Summary Rate video
// @Description Anonymous callers add a rating; signed-in callers update theirs in place
// @Tags rates
// @Accept json
// @Produce json
// @Param slug path string true "Video slug"
// @Param request body rateRequest true "Rating 1..5"
// @Success 201 {object} models.Envelope{data=service.RateView}
// @Failure 400 {object} models.Envelope
// @Router /rates/{slug} [post]
func (s *Server) RateVideo(c *fiber.Ctx) error {
	var req rateRequest
	if err := parseBody(c, &req); err != nil {
		return models.RespondWithError(c, err)
	}

	view, err := s.rateService.Rate(c.UserContext(), actor(c), c.Params("slug"), req.Count)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondCreated(c, "VIDEO_RATED_SUCCESS", "Rating saved", view)
}

// GetRate handles GET /api/rates/:slug
// @Summary Video rating
// @Tags rates
// @Produce json
// @Param slug path string true "Video slug"
// @Success 200 {object} models.Envelope{data=service.RateView}
// @Router /rates/{slug} [get]
func (s *Server) GetRate(c *fiber.Ctx) error {
	view, err := s.rateService.Get(c.UserContext(), actor(c), c.Params("slug"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "RATE_FETCHED", "", view)
}

// ShareVideo handles POST /api/shares/:slug
// @Summary Share video
// @Tags shares
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Video slug"
// @Success 201 {object} models.Envelope{data=models.Share}
// @Failure 409 {object} models.Envelope
// @Router /shares/{slug} [post]
func (s *Server) ShareVideo(c *fiber.Ctx) error {
	share, err := s.shareService.Share(c.UserContext(), actor(c), c.Params("slug"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondCreated(c, "VIDEO_SHARED_SUCCESS", "Video shared", share)
}

// GetMyShares handles GET /api/shares/me
// @Summary My shares
// @Tags shares
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Envelope
// @Router /shares/me [get]
func (s *Server) GetMyShares(c *fiber.Ctx) error {
	page, err := s.shareService.Mine(c.UserContext(), actor(c), pageQuery(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "SHARES_FETCHED", "", page)
}

// AddToPlaylist handles POST /api/playlists
// @Summary Add video to playlist
// @Description Creates the playlist on first use of a title
// @Tags playlists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.AddToPlaylistInput true "Playlist entry"
// @Success 201 {object} models.Envelope{data=models.PlaylistGroup}
// @Failure 409 {object} models.Envelope
// @Router /playlists [post]
func (s *Server) AddToPlaylist(c *fiber.Ctx) error {
	var req service.AddToPlaylistInput
	if err := parseBody(c, &req); err != nil {
		return models.RespondWithError(c, err)
	}

	playlist, err := s.playlistService.Add(c.UserContext(), actor(c), req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondCreated(c, "PLAYLIST_UPDATED_SUCCESS", "Video added to playlist", playlist)
}

// GetMyPlaylists handles GET /api/playlists/me
// @Summary My playlists
// @Tags playlists
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Envelope{data=[]models.PlaylistGroup}
// @Router /playlists/me [get]
func (s *Server) GetMyPlaylists(c *fiber.Ctx) error {
	playlists, err := s.playlistService.Mine(c.UserContext(), actor(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "PLAYLISTS_FETCHED", "", playlists)
}

// GetMyPlaylist handles GET /api/playlists/me/:slug
// @Summary Get playlist
// @Tags playlists
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Playlist slug"
// @Success 200 {object} models.Envelope{data=models.PlaylistGroup}
// @Failure 404 {object} models.Envelope
// @Router /playlists/me/{slug} [get]
func (s *Server) GetMyPlaylist(c *fiber.Ctx) error {
	playlist, err := s.playlistService.Get(c.UserContext(), actor(c), c.Params("slug"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "PLAYLIST_FETCHED", "", playlist)
}

// DeletePlaylist handles DELETE /api/playlists/:slug
// @Summary Delete playlist
// @Tags playlists
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Playlist slug"
// @Success 200 {object} models.Envelope
// @Router /playlists/{slug} [delete]
func (s *Server) DeletePlaylist(c *fiber.Ctx) error {
	if err := s.playlistService.Delete(c.UserContext(), actor(c), c.Params("slug")); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "PLAYLIST_DELETED_SUCCESS", "Playlist deleted", nil)
}

// RemoveFromPlaylist handles DELETE /api/playlists/:slug/videos/:videoSlug
// @Summary Remove video from playlist
// @Tags playlists
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Playlist slug"
// @Param videoSlug path string true "Video slug"
// @Success 200 {object} models.Envelope
// @Router /playlists/{slug}/videos/{videoSlug} [delete]
func (s *Server) RemoveFromPlaylist(c *fiber.Ctx) error {
	err := s.playlistService.RemoveVideo(c.UserContext(), actor(c), c.Params("slug"), c.Params("videoSlug"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "PLAYLIST_VIDEO_REMOVED", "Video removed from playlist", nil)
}
