package repository

import (
	"context"
	"strings"

	"medialane/internal/models"

	"gorm.io/gorm"
)

// UserFilter narrows the admin user listing.
type UserFilter struct {
	Role   models.Role
	Status Status
	Search string
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUserName(ctx context.Context, userName string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// FindSession resolves the account a token was issued for: id and
	// userName must both match.
	FindSession(ctx context.Context, id uint, userName string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	SetLoggedIn(ctx context.Context, id uint, loggedIn bool) error
	// SetActive blocks or unblocks an account. Blocking also ends its session.
	SetActive(ctx context.Context, id uint, active bool) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter UserFilter, limit, offset int) ([]*models.User, int64, error)
	CountByRole(ctx context.Context, role models.Role) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	found, err := first(r.db.WithContext(ctx), &user, id)
	if err != nil || !found {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUserName(ctx context.Context, userName string) (*models.User, error) {
	var user models.User
	found, err := first(r.db.WithContext(ctx).Where("user_name = ?", userName), &user)
	if err != nil || !found {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	found, err := first(r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)), &user)
	if err != nil || !found {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindSession(ctx context.Context, id uint, userName string) (*models.User, error) {
	var user models.User
	found, err := first(r.db.WithContext(ctx).Where("id = ? AND user_name = ?", id, userName), &user)
	if err != nil || !found {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return translateWriteError(r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return translateWriteError(r.db.WithContext(ctx).Save(user).Error)
}

func (r *userRepository) SetLoggedIn(ctx context.Context, id uint, loggedIn bool) error {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("is_logged_in", loggedIn).Error
}

func (r *userRepository) SetActive(ctx context.Context, id uint, active bool) error {
	if err := setFlag(ctx, r.db, &models.User{}, id, "active", active); err != nil {
		return err
	}
	if !active {
		return r.SetLoggedIn(ctx, id, false)
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) List(ctx context.Context, filter UserFilter, limit, offset int) ([]*models.User, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		if filter.Role != "" {
			db = db.Where("role = ?", filter.Role)
		}
		db = filter.Status.apply(db, "active")
		if filter.Search != "" {
			pattern := likePattern(filter.Search)
			db = db.Where("("+likeClause("user_name")+" OR "+likeClause("email")+")", pattern, pattern)
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []*models.User
	err := r.db.WithContext(ctx).Scopes(scope).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) CountByRole(ctx context.Context, role models.Role) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("role = ?", role).Count(&n).Error
	return n, err
}
