package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/madaris/school-app-backend/internal/model"
	"github.com/madaris/school-app-backend/internal/repository"
	"github.com/madaris/school-app-backend/internal/response"
	"github.com/madaris/school-app-backend/internal/service"
	"github.com/madaris/school-app-backend/internal/validator"
)

// ReviewHandler handles the agent review queue.
type ReviewHandler struct {
	reviewService *service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// List godoc
// GET /api/v1/agent/registrations?status=pending
// Returns registrations with joined reference names, newest first.
func (h *ReviewHandler) List(c *gin.Context) {
	var status *model.RegistrationStatus
	if raw := c.Query("status"); raw != "" {
		s := model.RegistrationStatus(raw)
		switch s {
		case model.RegistrationPending, model.RegistrationValidated, model.RegistrationRejected:
			status = &s
		default:
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
	}

	regs, err := h.reviewService.List(c.Request.Context(), status)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"registrations": regs})
}

// Get godoc
// GET /api/v1/agent/registrations/:id
// Returns one registration together with its uploaded documents.
func (h *ReviewHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	reg, docs, err := h.reviewService.GetWithDocuments(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"registration": reg,
		"documents":    docs,
	})
}

// Validate godoc
// POST /api/v1/agent/registrations/:id/validate
// Moves a pending registration to validated.
func (h *ReviewHandler) Validate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	reg, err := h.reviewService.Validate(c.Request.Context(), id)
	if err != nil {
		h.failReview(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"registration": reg})
}

// Reject godoc
// POST /api/v1/agent/registrations/:id/reject
// Moves a pending registration to rejected; the reason is mandatory.
func (h *ReviewHandler) Reject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.RejectRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	reg, err := h.reviewService.Reject(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.failReview(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"registration": reg})
}

func (h *ReviewHandler) failReview(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, repository.ErrNotPending):
		response.Fail(c, http.StatusConflict, response.ErrRegistrationReviewed)
	case errors.Is(err, service.ErrReasonRequired):
		response.Fail(c, http.StatusBadRequest, response.ErrValidation)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
