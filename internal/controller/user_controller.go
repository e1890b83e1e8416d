package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/model"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/service"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/util"
)

type UserController struct {
	users *service.UserService
}

func NewUserController(users *service.UserService) *UserController {
	return &UserController{users: users}
}

// List godoc
// @Summary List users, filterable by role and name
// @Tags users
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param role query string false "Filter by role" Enums(student, admin)
// @Param name query string false "Filter by name substring"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Security BearerAuth
// @Router /admin/users [get]
func (ctrl *UserController) List(c *gin.Context) {
	page, limit := pagination(c)
	role := model.UserRole(c.Query("role"))
	name := c.Query("name")

	users, total, err := ctrl.users.List(page, limit, role, name)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, util.PageResponse{List: users, Total: total, Page: page, Limit: limit})
}

// Get godoc
// @Summary Get a user by ID
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /admin/users/{id} [get]
func (ctrl *UserController) Get(c *gin.Context) {
	user, err := ctrl.users.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(c, err.Error())
			return
		}
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, user)
}

// UpdateProfile godoc
// @Summary Update the caller's own profile
// @Tags users
// @Accept json
// @Produce json
// @Param request body service.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} util.Response{data=model.User}
// @Security BearerAuth
// @Router /users/profile [put]
func (ctrl *UserController) UpdateProfile(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	user, err := ctrl.users.UpdateProfile(claims.UserID, &req)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(c, err.Error())
			return
		}
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, user)
}

type setRoleRequest struct {
	Role model.UserRole `json:"role" binding:"required,oneof=student admin"`
}

// SetRole godoc
// @Summary Change a user's role
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body setRoleRequest true "New role"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /admin/users/{id}/role [put]
func (ctrl *UserController) SetRole(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	var req setRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	user, err := ctrl.users.SetRole(claims.UserID, c.Param("id"), req.Role)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(c, err.Error())
			return
		}
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, user)
}

type setActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetActive godoc
// @Summary Enable or disable a user account
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body setActiveRequest true "Activation flag"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /admin/users/{id}/active [put]
func (ctrl *UserController) SetActive(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	if err := ctrl.users.SetActive(claims.UserID, c.Param("id"), *req.Active); err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(c, err.Error())
			return
		}
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, nil)
}

// AuditLogs godoc
// @Summary List admin audit logs
// @Tags users
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param entityType query string false "Filter by entity type"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Security BearerAuth
// @Router /admin/audit-logs [get]
func (ctrl *UserController) AuditLogs(c *gin.Context) {
	page, limit := pagination(c)
	logs, total, err := ctrl.users.AuditLogs(page, limit, c.Query("entityType"))
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, util.PageResponse{List: logs, Total: total, Page: page, Limit: limit})
}
