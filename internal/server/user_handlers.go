package server

import (
	"medialane/internal/models"
	"medialane/internal/notifications"
	"medialane/internal/repository"
	"medialane/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AdminListUsers handles GET /api/admin/users
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param role query string false "Role filter"
// @Param status query string false "active or inactive"
// @Param search query string false "User name or email fragment"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} models.Envelope
// @Failure 400 {object} models.Envelope
// @Router /admin/users [get]
func (s *Server) AdminListUsers(c *fiber.Ctx) error {
	role := models.Role(c.Query("role"))
	if role != "" && !role.Valid() {
		return models.RespondWithError(c, models.NewFieldErrors([]models.FieldError{{
			Field:   "role",
			Message: "role must be one of VIEWER_CLIENT, VIDEO_CLIENT, ADS_CLIENT, ADMIN, SUPER_ADMIN",
		}}))
	}

	page, err := s.userService.ListUsers(c.UserContext(), service.ListUsersInput{
		PageQuery: pageQuery(c),
		Role:      role,
		Status:    repository.ParseStatus(c.Query("status")),
		Search:    searchQuery(c),
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "USERS_FETCHED", "", page)
}

// AdminGetUser handles GET /api/admin/users/:id
// @Summary Get user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} models.Envelope{data=models.User}
// @Failure 404 {object} models.Envelope
// @Router /admin/users/{id} [get]
func (s *Server) AdminGetUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	user, err := s.userService.GetUser(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "USER_FETCHED", "", user)
}

// AdminCreateUser handles POST /api/admin/users
// @Summary Create admin
// @Description Super admins create ADMIN accounts
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreateAdminInput true "Admin account"
// @Success 201 {object} models.Envelope{data=models.User}
// @Failure 409 {object} models.Envelope
// @Router /admin/users [post]
func (s *Server) AdminCreateUser(c *fiber.Ctx) error {
	var req service.CreateAdminInput
	if err := parseBody(c, &req); err != nil {
		return models.RespondWithError(c, err)
	}

	user, err := s.userService.CreateAdmin(c.UserContext(), req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondCreated(c, "ADMIN_CREATED", "Admin account created", user)
}

// AdminBlockUser handles PUT /api/admin/users/:id/block
// @Summary Block user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param X-Confirm-Password header string false "Acting admin's password"
// @Success 200 {object} models.Envelope{data=models.User}
// @Failure 409 {object} models.Envelope
// @Router /admin/users/{id}/block [put]
func (s *Server) AdminBlockUser(c *fiber.Ctx) error {
	return s.setUserActive(c, false)
}

// AdminUnblockUser handles PUT /api/admin/users/:id/unblock
// @Summary Unblock user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param X-Confirm-Password header string false "Acting admin's password"
// @Success 200 {object} models.Envelope{data=models.User}
// @Failure 409 {object} models.Envelope
// @Router /admin/users/{id}/unblock [put]
func (s *Server) AdminUnblockUser(c *fiber.Ctx) error {
	return s.setUserActive(c, true)
}

func (s *Server) setUserActive(c *fiber.Ctx, active bool) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	user, err := s.userService.SetActive(c.UserContext(), actor(c), id, active)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	event := notifications.Event{Type: notifications.AccountBlocked, ResourceID: user.ID}
	if active {
		event.Type = notifications.AccountUnblocked
	}
	s.notifier.Notify(c.UserContext(), user.ID, event)
	if active {
		return models.RespondOK(c, "USER_UNBLOCKED", "User unblocked", user)
	}
	return models.RespondOK(c, "USER_BLOCKED", "User blocked", user)
}

// AdminDeleteUser handles DELETE /api/admin/users/:id
// @Summary Delete user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param X-Confirm-Password header string false "Acting admin's password"
// @Success 200 {object} models.Envelope
// @Failure 404 {object} models.Envelope
// @Router /admin/users/{id} [delete]
func (s *Server) AdminDeleteUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.userService.Delete(c.UserContext(), actor(c), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondOK(c, "USER_DELETED", "User deleted", nil)
}
