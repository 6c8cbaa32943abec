package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/madaris/school-app-backend/internal/model"
	"github.com/madaris/school-app-backend/internal/repository"
	"github.com/madaris/school-app-backend/internal/response"
	"github.com/madaris/school-app-backend/internal/service"
	"github.com/madaris/school-app-backend/internal/validator"
)

// MajorHandler handles the admin majors reference CRUD.
type MajorHandler struct {
	majorService service.MajorService
}

// NewMajorHandler creates a new MajorHandler.
func NewMajorHandler(majorService service.MajorService) *MajorHandler {
	return &MajorHandler{majorService: majorService}
}

// List godoc
// GET /api/v1/admin/majors
func (h *MajorHandler) List(c *gin.Context) {
	majors, err := h.majorService.GetAllMajors(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"majors": majors})
}

// Create godoc
// POST /api/v1/admin/majors
func (h *MajorHandler) Create(c *gin.Context) {
	var req model.MajorRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	major, err := h.majorService.CreateMajor(c.Request.Context(), req.Name, req.Code)
	if err != nil {
		if errors.Is(err, service.ErrMajorCodeTaken) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		if errors.Is(err, service.ErrMajorFieldsMiss) {
			response.Fail(c, http.StatusBadRequest, response.ErrValidation)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"major": major})
}

// Delete godoc
// DELETE /api/v1/admin/majors/:id
func (h *MajorHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.majorService.DeleteMajor(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrMajorReferenced) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}
