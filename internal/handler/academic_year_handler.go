package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/madaris/school-app-backend/internal/model"
	"github.com/madaris/school-app-backend/internal/repository"
	"github.com/madaris/school-app-backend/internal/response"
	"github.com/madaris/school-app-backend/internal/service"
	"github.com/madaris/school-app-backend/internal/validator"
)

// AcademicYearHandler handles the admin academic-years surface,
// including the single-active-year toggle.
type AcademicYearHandler struct {
	yearService *service.AcademicYearService
}

// NewAcademicYearHandler creates a new AcademicYearHandler.
func NewAcademicYearHandler(yearService *service.AcademicYearService) *AcademicYearHandler {
	return &AcademicYearHandler{yearService: yearService}
}

// List godoc
// GET /api/v1/admin/academic-years
func (h *AcademicYearHandler) List(c *gin.Context) {
	years, err := h.yearService.GetAll(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"academic_years": years})
}

// Create godoc
// POST /api/v1/admin/academic-years
// New years always start inactive.
func (h *AcademicYearHandler) Create(c *gin.Context) {
	var req model.AcademicYearRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}
	if !endDate.After(startDate) {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{
			"end_date": "end_date must be after start_date",
		})
		return
	}

	year, err := h.yearService.Create(c.Request.Context(), req.Name, startDate, endDate)
	if err != nil {
		if errors.Is(err, repository.ErrYearNameTaken) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"academic_year": year})
}

// Activate godoc
// POST /api/v1/admin/academic-years/:id/activate
// Makes this year the single active one; every other year is
// deactivated in the same transaction.
func (h *AcademicYearHandler) Activate(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	year, err := h.yearService.Activate(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"academic_year": year})
}

// Deactivate godoc
// POST /api/v1/admin/academic-years/:id/deactivate
// Switches a year off; submissions fail until another is activated.
func (h *AcademicYearHandler) Deactivate(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	year, err := h.yearService.Deactivate(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"academic_year": year})
}
