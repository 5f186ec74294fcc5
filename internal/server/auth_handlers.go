package server

import (
	"medialane/internal/models"
	"medialane/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Signup handles POST /api/auth/signup
// @Summary Client signup
// @Description Register a viewer, video or ads client account and start a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.SignupInput true "Signup request"
// @Success 201 {object} models.Envelope{data=service.Session}
// @Failure 400 {object} models.Envelope
// @Failure 409 {object} models.Envelope
// @Router /auth/signup [post]
func (s *Server) Signup(c *fiber.Ctx) error {
	var req service.SignupInput
	if err := parseBody(c, &req); err != nil {
		return models.RespondWithError(c, err)
	}

	session, err := s.userService.Signup(c.UserContext(), req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondCreated(c, "SIGNUP_SUCCESS", "Account created", session)
}

// Login handles POST /api/auth/login
// @Summary Client login
// @Description Log in with a user name or email address
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.LoginInput true "Login request"
// @Success 200 {object} models.Envelope{data=service.Session}
// @Failure 401 {object} models.Envelope
// @Failure 403 {object} models.Envelope
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req service.LoginInput
	if err := parseBody(c, &req); err != nil {
		return models.RespondWithError(c, err)
	}

	session, err := s.userService.Login(c.UserContext(), req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "LOGIN_SUCCESS", "Logged in", session)
}

// AdminLogin handles POST /api/admin/auth/login
// @Summary Admin login
// @Tags admin
// @Accept json
// @Produce json
// @Param request body service.LoginInput true "Login request"
// @Success 200 {object} models.Envelope{data=service.Session}
// @Failure 401 {object} models.Envelope
// @Router /admin/auth/login [post]
func (s *Server) AdminLogin(c *fiber.Ctx) error {
	var req service.LoginInput
	if err := parseBody(c, &req); err != nil {
		return models.RespondWithError(c, err)
	}

	session, err := s.userService.AdminLogin(c.UserContext(), req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "LOGIN_SUCCESS", "Logged in", session)
}

// Logout handles POST /api/auth/logout
// @Summary Logout
// @Description Ends every session of the caller; issued tokens stop verifying
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Envelope
// @Router /auth/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	if err := s.userService.Logout(c.UserContext(), actor(c)); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "LOGOUT_SUCCESS", "Logged out", nil)
}

// GetMe handles GET /api/auth/me
// @Summary Current account
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Envelope{data=models.User}
// @Router /auth/me [get]
func (s *Server) GetMe(c *fiber.Ctx) error {
	user, err := s.userService.Me(c.UserContext(), actor(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "USER_FETCHED", "", user)
}

// UpdateMe handles PUT /api/auth/me
// @Summary Update profile
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.UpdateProfileInput true "Profile fields to change"
// @Success 200 {object} models.Envelope{data=models.User}
// @Failure 400 {object} models.Envelope
// @Failure 409 {object} models.Envelope
// @Router /auth/me [put]
func (s *Server) UpdateMe(c *fiber.Ctx) error {
	var req service.UpdateProfileInput
	if err := parseBody(c, &req); err != nil {
		return models.RespondWithError(c, err)
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), actor(c), req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "PROFILE_UPDATED", "Profile updated", user)
}

// ChangePassword handles PUT /api/auth/me/password
// @Summary Change password
// @Description Changes the password and ends the current sessions
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.ChangePasswordInput true "Passwords"
// @Success 200 {object} models.Envelope
// @Failure 403 {object} models.Envelope
// @Router /auth/me/password [put]
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	var req service.ChangePasswordInput
	if err := parseBody(c, &req); err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.userService.ChangePassword(c.UserContext(), actor(c), req); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "PASSWORD_CHANGED", "Password changed, please log in again", nil)
}
