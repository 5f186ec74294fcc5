package service

import (
	"context"
	"errors"
	"strings"

	"medialane/internal/auth"
	"medialane/internal/models"
	"medialane/internal/paging"
	"medialane/internal/repository"
	"medialane/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService covers account signup, sessions, profiles and the admin user
// surface.
type UserService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
	cost   int
}

type SignupInput struct {
	UserName string      `json:"userName"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
	DialCode string      `json:"dialCode"`
	ISOCode  string      `json:"isoCode"`
	Phone    string      `json:"phone"`
}

type LoginInput struct {
	// Identifier is a user name or an email address.
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type UpdateProfileInput struct {
	UserName *string `json:"userName"`
	Email    *string `json:"email"`
	DialCode *string `json:"dialCode"`
	ISOCode  *string `json:"isoCode"`
	Phone    *string `json:"phone"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type CreateAdminInput struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ListUsersInput struct {
	PageQuery
	Role   models.Role
	Status repository.Status
	Search string
}

// Session is returned by signup and the login endpoints.
type Session struct {
	Token     string       `json:"token"`
	ExpiresAt int64        `json:"expiresAt"`
	User      *models.User `json:"user"`
}

func NewUserService(users repository.UserRepository, tokens *auth.TokenManager) *UserService {
	return &UserService{users: users, tokens: tokens, cost: bcrypt.DefaultCost}
}

// WithHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (s *UserService) WithHashCost(cost int) *UserService {
	s.cost = cost
	return s
}

func (s *UserService) hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", models.NewFieldErrors([]models.FieldError{{Field: "password", Message: "password must not exceed 72 bytes"}})
	}
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func normalizeEmail(email string) *string {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil
	}
	return &email
}

// ensureAvailable rejects a user name or email held by an account other
// than selfID.
func (s *UserService) ensureAvailable(ctx context.Context, selfID uint, userName string, email *string) error {
	if userName != "" {
		existing, err := s.users.GetByUserName(ctx, userName)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != selfID {
			return models.NewConflictError(models.CodeUserNameTaken, "User name is already taken")
		}
	}
	if email != nil {
		existing, err := s.users.GetByEmail(ctx, *email)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != selfID {
			return models.NewConflictError(models.CodeEmailTaken, "Email is already registered")
		}
	}
	return nil
}

func (s *UserService) create(ctx context.Context, user *models.User, password string) error {
	if err := s.ensureAvailable(ctx, 0, user.UserName, user.Email); err != nil {
		return err
	}
	hashed, err := s.hash(password)
	if err != nil {
		return err
	}
	user.Password = hashed

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return models.NewConflictError(models.CodeUserNameTaken, "User name or email is already taken")
		}
		return err
	}
	return nil
}

func (s *UserService) session(user *models.User) (*Session, error) {
	token, claims, err := s.tokens.Issue(user, auth.TTLFor(user.Role))
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: claims.ExpiresAt.Unix(), User: user}, nil
}

// Signup registers a client account and logs it in.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*Session, error) {
	v := validation.New()
	v.UserName("userName", in.UserName)
	v.Email("email", in.Email)
	v.Password("password", in.Password)
	v.Check(in.Role.IsClient(), "role", "role must be one of VIEWER_CLIENT, VIDEO_CLIENT, ADS_CLIENT")
	if in.Phone != "" {
		v.Phone("phone", in.DialCode, in.ISOCode, in.Phone)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	user := &models.User{
		UserName:   in.UserName,
		Email:      normalizeEmail(in.Email),
		Role:       in.Role,
		Active:     true,
		IsLoggedIn: true,
	}
	if in.Phone != "" {
		user.DialCode, user.ISOCode, user.Phone = in.DialCode, strings.ToUpper(in.ISOCode), in.Phone
	}
	if err := s.create(ctx, user, in.Password); err != nil {
		return nil, err
	}
	return s.session(user)
}

func (s *UserService) lookup(ctx context.Context, identifier string) (*models.User, error) {
	if strings.Contains(identifier, "@") {
		return s.users.GetByEmail(ctx, identifier)
	}
	return s.users.GetByUserName(ctx, identifier)
}

func (s *UserService) login(ctx context.Context, in LoginInput, allowed func(models.Role) bool) (*Session, error) {
	v := validation.New()
	v.Required("identifier", in.Identifier)
	v.Required("password", in.Password)
	if err := v.Err(); err != nil {
		return nil, err
	}

	invalid := models.NewUnauthorizedError(models.CodeInvalidCredentials, "Invalid credentials")
	user, err := s.lookup(ctx, strings.TrimSpace(in.Identifier))
	if err != nil {
		return nil, err
	}
	if user == nil || !allowed(user.Role) {
		return nil, invalid
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)) != nil {
		return nil, invalid
	}
	if !user.Active {
		return nil, models.NewForbiddenError(models.CodeAccountBlocked, "This account has been blocked")
	}

	if err := s.users.SetLoggedIn(ctx, user.ID, true); err != nil {
		return nil, err
	}
	user.IsLoggedIn = true
	return s.session(user)
}

// Login authenticates a client account.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*Session, error) {
	return s.login(ctx, in, models.Role.IsClient)
}

// AdminLogin authenticates an admin-class account.
func (s *UserService) AdminLogin(ctx context.Context, in LoginInput) (*Session, error) {
	return s.login(ctx, in, models.Role.IsAdmin)
}

// Logout ends the caller's session; every token issued to them stops working.
func (s *UserService) Logout(ctx context.Context, actor Actor) error {
	return s.users.SetLoggedIn(ctx, actor.ID, false)
}

func (s *UserService) Me(ctx context.Context, actor Actor) (*models.User, error) {
	return s.GetUser(ctx, actor.ID)
}

func (s *UserService) UpdateProfile(ctx context.Context, actor Actor, in UpdateProfileInput) (*models.User, error) {
	user, err := s.GetUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	userName := stringValue(in.UserName, user.UserName)
	dialCode := stringValue(in.DialCode, user.DialCode)
	isoCode := stringValue(in.ISOCode, user.ISOCode)
	phone := stringValue(in.Phone, user.Phone)

	v := validation.New()
	v.UserName("userName", userName)
	if in.Email != nil {
		v.Email("email", *in.Email)
	}
	if phone != "" {
		v.Phone("phone", dialCode, isoCode, phone)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	email := user.Email
	if in.Email != nil {
		email = normalizeEmail(*in.Email)
	}
	if err := s.ensureAvailable(ctx, user.ID, userName, email); err != nil {
		return nil, err
	}

	user.UserName, user.Email = userName, email
	user.DialCode, user.ISOCode, user.Phone = dialCode, strings.ToUpper(isoCode), phone
	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, models.NewConflictError(models.CodeUserNameTaken, "User name or email is already taken")
		}
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password and stores the new one.
// Existing sessions are ended.
func (s *UserService) ChangePassword(ctx context.Context, actor Actor, in ChangePasswordInput) error {
	v := validation.New()
	v.Required("currentPassword", in.CurrentPassword)
	v.Password("newPassword", in.NewPassword)
	if err := v.Err(); err != nil {
		return err
	}

	user, err := s.GetUser(ctx, actor.ID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.CurrentPassword)) != nil {
		return models.NewForbiddenError(models.CodePasswordInvalid, "Password is incorrect")
	}

	hashed, err := s.hash(in.NewPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	user.IsLoggedIn = false
	return s.users.Update(ctx, user)
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", id)
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, in ListUsersInput) (paging.Page[*models.User], error) {
	page, limit, offset := in.bounds()
	filter := repository.UserFilter{Role: in.Role, Status: in.Status, Search: strings.TrimSpace(in.Search)}
	users, total, err := s.users.List(ctx, filter, limit, offset)
	if err != nil {
		return paging.Page[*models.User]{}, err
	}
	return paging.Data(users, total, page, limit), nil
}

// CreateAdmin registers an ADMIN account. Only a super admin reaches this.
func (s *UserService) CreateAdmin(ctx context.Context, in CreateAdminInput) (*models.User, error) {
	v := validation.New()
	v.UserName("userName", in.UserName)
	v.Email("email", in.Email)
	v.Password("password", in.Password)
	if err := v.Err(); err != nil {
		return nil, err
	}

	user := &models.User{
		UserName: in.UserName,
		Email:    normalizeEmail(in.Email),
		Role:     models.RoleAdmin,
		Active:   true,
		Verified: true,
	}
	if err := s.create(ctx, user, in.Password); err != nil {
		return nil, err
	}
	return user, nil
}

// EnsureSuperAdmin creates the super admin account unless one with that
// user name already exists. It reports whether an account was created.
func (s *UserService) EnsureSuperAdmin(ctx context.Context, in CreateAdminInput) (bool, error) {
	existing, err := s.users.GetByUserName(ctx, in.UserName)
	if err != nil || existing != nil {
		return false, err
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return false, err
	}
	user := &models.User{
		UserName: in.UserName,
		Email:    normalizeEmail(in.Email),
		Role:     models.RoleSuperAdmin,
		Active:   true,
		Verified: true,
	}
	if err := s.create(ctx, user, in.Password); err != nil {
		return false, err
	}
	return true, nil
}

func (s *UserService) target(ctx context.Context, actor Actor, id uint) (*models.User, error) {
	if id == actor.ID {
		return nil, models.NewForbiddenError(models.CodeCannotModifySelf, "You cannot change your own account here")
	}
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role == models.RoleSuperAdmin {
		return nil, models.NewForbiddenError(models.CodeSuperAdminForbidden, "The super admin account cannot be modified")
	}
	return user, nil
}

// SetActive blocks or unblocks an account. Blocking also ends its session.
func (s *UserService) SetActive(ctx context.Context, actor Actor, id uint, active bool) (*models.User, error) {
	if _, err := s.target(ctx, actor, id); err != nil {
		return nil, err
	}
	state := "unblocked"
	if !active {
		state = "blocked"
	}
	if err := stateError(s.users.SetActive(ctx, id, active), "User", id, state); err != nil {
		return nil, err
	}
	return s.GetUser(ctx, id)
}

func (s *UserService) Delete(ctx context.Context, actor Actor, id uint) error {
	if _, err := s.target(ctx, actor, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.NewNotFoundError("User", id)
		}
		return err
	}
	return nil
}
