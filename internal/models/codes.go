package models

import (
	"fmt"
	"strings"
)

// Conflict codes returned with 409 responses.
const (
	CodeUserNameTaken            = "USERNAME_TAKEN"
	CodeEmailTaken               = "EMAIL_TAKEN"
	CodeArticleAlreadyExists     = "ARTICLE_ALREADY_EXISTS"
	CodeArticleAlreadyLiked      = "ARTICLE_ALREADY_LIKED"
	CodeArticleAlreadyBookmarked = "ARTICLE_ALREADY_BOOKMARKED"
	CodeVideoAlreadyExists       = "VIDEO_ALREADY_EXISTS"
	CodeVideoAlreadyShared       = "VIDEO_ALREADY_SHARED"
	CodeVideoSharingDisabled     = "VIDEO_SHARING_DISABLED"
	CodeVideoAlreadyInPlaylist   = "VIDEO_ALREADY_IN_PLAYLIST"
	CodePlanAlreadyExists        = "PLAN_ALREADY_EXISTS"
	CodePromotionAlreadyExists   = "PROMOTION_ALREADY_EXISTS"
	CodeCannotModifySelf         = "CANNOT_MODIFY_SELF"
)

// NewStateConflictError reports a toggle that asked for the state the
// resource already holds, e.g. ("Article", "active") -> ARTICLE_ALREADY_ACTIVE.
func NewStateConflictError(resource, state string) *AppError {
	code := strings.ToUpper(strings.ReplaceAll(resource, " ", "_")) + "_ALREADY_" +
		strings.ToUpper(strings.ReplaceAll(state, " ", "_"))
	return NewConflictError(code, fmt.Sprintf("%s is already %s", resource, state))
}
