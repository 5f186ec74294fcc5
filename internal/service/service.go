// Package service holds the business rules behind each API resource. Handlers
// decode requests into the inputs defined here; services validate, resolve
// referenced entities, check ownership and state, and call the repositories.
package service

import (
	"context"
	"errors"

	"medialane/internal/content"
	"medialane/internal/models"
	"medialane/internal/paging"
	"medialane/internal/repository"
)

// Actor is the caller of a service operation. The zero value is anonymous.
type Actor struct {
	ID       uint
	UserName string
	Role     models.Role
}

// Authenticated reports whether the caller presented a verified session.
func (a Actor) Authenticated() bool {
	return a.ID != 0
}

// IsAdmin reports whether the caller holds an admin-class role.
func (a Actor) IsAdmin() bool {
	return a.Role.IsAdmin()
}

// CanManage reports whether the caller owns the resource or is an admin.
func (a Actor) CanManage(ownerID uint) bool {
	return a.Authenticated() && (a.ID == ownerID || a.IsAdmin())
}

// PageQuery is the pagination part of a list request.
type PageQuery struct {
	Page int
	Size int
}

func (q PageQuery) bounds() (page, limit, offset int) {
	page, size := paging.Normalize(q.Page, q.Size)
	limit, offset = paging.Limits(page, size)
	return page, limit, offset
}

func errOwnership(resource string) error {
	return models.NewForbiddenError(models.CodeOwnershipRequired, "Only the owner of this "+resource+" may do that")
}

// stateError maps a toggle result onto the HTTP taxonomy.
func stateError(err error, resource string, id any, state string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNoChange):
		return models.NewStateConflictError(resource, state)
	case errors.Is(err, repository.ErrNotFound):
		return models.NewNotFoundError(resource, id)
	}
	return err
}

// excludingSlug treats current as free so an unchanged title keeps its slug.
func excludingSlug(current string, exists content.SlugExists) content.SlugExists {
	return func(ctx context.Context, candidate string) (bool, error) {
		if candidate == current {
			return false, nil
		}
		return exists(ctx, candidate)
	}
}

func stringValue(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return *p
}
