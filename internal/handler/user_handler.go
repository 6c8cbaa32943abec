package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/madaris/school-app-backend/internal/model"
	"github.com/madaris/school-app-backend/internal/response"
	"github.com/madaris/school-app-backend/internal/service"
)

// UserHandler handles the admin users directory.
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List godoc
// GET /api/v1/admin/users?role=student&search=amine&page=1&per_page=20
// Lists profiles with optional role filter and name/email search.
func (h *UserHandler) List(c *gin.Context) {
	var role *model.Role
	if raw := c.Query("role"); raw != "" {
		parsed, err := model.ParseRole(raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrUnknownRole)
			return
		}
		role = &parsed
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	users, total, err := h.userService.List(c.Request.Context(), role, c.Query("search"), page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	totalPages := (total + perPage - 1) / perPage

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"users": users}, &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
	})
}
