// Package middleware provides authentication and authorization middleware for the application.
package middleware

import (
	"context"
	"strings"

	"medialane/internal/auth"
	"medialane/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

const (
	localClaims = "claims"
	localUser   = "user"
	localUserID = "userID"

	// ConfirmPasswordHeader carries the acting admin's password on
	// sensitive requests that have no body.
	ConfirmPasswordHeader = "X-Confirm-Password"
)

// AccountLookup resolves the account a token was issued for.
type AccountLookup interface {
	FindSession(ctx context.Context, id uint, userName string) (*models.User, error)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
// present reports whether any Authorization header was sent.
func BearerToken(c *fiber.Ctx) (token string, present bool) {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if header == "" {
		return "", false
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", true
	}
	return parts[1], true
}

// AuthRequired rejects requests without a verified identity. The token must
// verify, its id and userName must match a stored account, and that account
// must still be logged in.
func AuthRequired(tokens *auth.TokenManager, accounts AccountLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, present := BearerToken(c)
		if !present {
			return models.RespondWithError(c, models.NewUnauthorizedError(
				models.CodeAuthorizationMissing, "Authorization header required"))
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			return models.RespondWithError(c, models.NewUnauthorizedError(
				models.CodeTokenInvalidExpired, "Invalid or expired token"))
		}

		user, err := accounts.FindSession(c.UserContext(), claims.ID, claims.UserName)
		if err != nil {
			return models.RespondWithError(c, models.NewInternalError(err))
		}
		if user == nil || !user.IsLoggedIn {
			return models.RespondWithError(c, models.NewUnauthorizedError(
				models.CodeLoginRequired, "Please log in again"))
		}

		setIdentity(c, claims, user)
		return c.Next()
	}
}

// OptionalAuth attaches the caller's identity when a valid session token is
// present and otherwise lets the request through anonymously.
func OptionalAuth(tokens *auth.TokenManager, accounts AccountLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, present := BearerToken(c)
		if !present || tokenString == "" {
			return c.Next()
		}
		claims, err := tokens.Parse(tokenString)
		if err != nil {
			return c.Next()
		}
		user, err := accounts.FindSession(c.UserContext(), claims.ID, claims.UserName)
		if err == nil && user != nil && user.IsLoggedIn {
			setIdentity(c, claims, user)
		}
		return c.Next()
	}
}

func setIdentity(c *fiber.Ctx, claims *auth.Claims, user *models.User) {
	c.Locals(localClaims, claims)
	c.Locals(localUser, user)
	c.Locals(localUserID, user.ID)
	// Sync to UserContext for logging and downstream services
	ctx := context.WithValue(c.UserContext(), UserIDKey, user.ID)
	c.SetUserContext(ctx)
}

// CurrentClaims returns the verified token claims, or nil for anonymous requests.
func CurrentClaims(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(localClaims).(*auth.Claims)
	return claims
}

// CurrentUser returns the account resolved by AuthRequired, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(localUser).(*models.User)
	return user
}

// CurrentUserID returns the caller's id and whether the request is authenticated.
func CurrentUserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals(localUserID).(uint)
	return id, ok
}

// RoleRequired returns a gate that rejects callers whose role is not in roles
// with a 403 carrying code. Must be placed after AuthRequired.
func RoleRequired(code, message string, roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := CurrentClaims(c)
		if claims == nil || !claims.Role.In(roles...) {
			return models.RespondWithError(c, models.NewForbiddenError(code, message))
		}
		return c.Next()
	}
}

// SuperAdminRequired allows SUPER_ADMIN only.
func SuperAdminRequired() fiber.Handler {
	return RoleRequired(models.CodeSuperAdminForbidden, "Super admin access required", models.RoleSuperAdmin)
}

// AdminRequired allows ADMIN and SUPER_ADMIN.
func AdminRequired() fiber.Handler {
	return RoleRequired(models.CodeAdminForbidden, "Admin access required", models.AdminRoles...)
}

// ClientRequired allows client roles. Passing roles narrows the gate, e.g.
// ClientRequired(models.RoleVideoClient) for video uploads.
func ClientRequired(roles ...models.Role) fiber.Handler {
	if len(roles) == 0 {
		roles = models.ClientRoles
	}
	return RoleRequired(models.CodeClientForbidden, "Client access required", roles...)
}

// PasswordConfirmRequired re-verifies the acting user's password, taken from
// the JSON body field "password" or the X-Confirm-Password header.
func PasswordConfirmRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		password := c.Get(ConfirmPasswordHeader)
		if password == "" && len(c.Body()) > 0 {
			var body struct {
				Password string `json:"password"`
			}
			if err := c.BodyParser(&body); err == nil {
				password = body.Password
			}
		}
		if password == "" {
			return models.RespondWithError(c, models.NewUnauthorizedError(
				models.CodePasswordRequired, "Password confirmation required"))
		}

		user := CurrentUser(c)
		if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
			return models.RespondWithError(c, models.NewForbiddenError(
				models.CodePasswordInvalid, "Password is incorrect"))
		}
		return c.Next()
	}
}
