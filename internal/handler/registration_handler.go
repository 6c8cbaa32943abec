package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/madaris/school-app-backend/internal/middleware"
	"github.com/madaris/school-app-backend/internal/model"
	"github.com/madaris/school-app-backend/internal/response"
	"github.com/madaris/school-app-backend/internal/service"
	"github.com/madaris/school-app-backend/internal/storage"
	"github.com/madaris/school-app-backend/internal/validator"
)

// RegistrationHandler handles the student-facing registration wizard
// and profile endpoints.
type RegistrationHandler struct {
	registrationService *service.RegistrationService
	studentService      *service.StudentService
}

// NewRegistrationHandler creates a new RegistrationHandler.
func NewRegistrationHandler(
	registrationService *service.RegistrationService,
	studentService *service.StudentService,
) *RegistrationHandler {
	return &RegistrationHandler{
		registrationService: registrationService,
		studentService:      studentService,
	}
}

// GetContext godoc
// GET /api/v1/student/registration-context
// Returns the active academic year and majors the wizard needs on mount.
func (h *RegistrationHandler) GetContext(c *gin.Context) {
	regCtx, err := h.registrationService.GetContext(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoActiveYear) {
			response.Fail(c, http.StatusConflict, response.ErrNoActiveYear)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, regCtx)
}

// submissionForm is the multipart field set of the wizard's final step.
// Files ride alongside under the document slot names (cin, bac,
// releve_notes, photo).
type submissionForm struct {
	CNE       string `form:"cne" binding:"required,max=30"`
	CIN       string `form:"cin" binding:"required,max=30"`
	BirthDate string `form:"birth_date" binding:"required,datetime=2006-01-02"`
	Address   string `form:"address" binding:"required,max=500"`
	Phone     string `form:"phone" binding:"required,max=30"`
	MajorID   int    `form:"major_id" binding:"required,min=1"`
	Level     string `form:"level" binding:"required,max=60"`
}

// slotFormFields maps each document slot to its multipart file field.
var slotFormFields = map[model.DocumentType]string{
	model.DocumentCIN:         "cin_file",
	model.DocumentBAC:         "bac_file",
	model.DocumentReleveNotes: "releve_notes_file",
	model.DocumentPhoto:       "photo_file",
}

// Submit godoc
// POST /api/v1/student/registrations (multipart/form-data)
// Runs the full submission sequence. A failed upload does not roll back:
// the partial result is returned with 502 so the client can show what
// was saved and which slot stopped the sequence.
func (h *RegistrationHandler) Submit(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var form submissionForm
	if fields := validator.BindForm(c, &form); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	birthDate, err := time.Parse("2006-01-02", form.BirthDate)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	files, badFile := collectSubmissionFiles(c)
	if badFile {
		response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
		return
	}

	input := &service.SubmissionInput{
		StudentID:   claims.UserID,
		StudentName: claims.FullName,
		CNE:         form.CNE,
		CIN:         form.CIN,
		BirthDate:   birthDate,
		Address:     form.Address,
		Phone:       form.Phone,
		MajorID:     form.MajorID,
		Level:       form.Level,
		Files:       files,
	}

	result, err := h.registrationService.Submit(c.Request.Context(), input)
	if err != nil {
		h.failSubmission(c, result, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// failSubmission translates a submission error, attaching the partial
// result when the sequence halted after the registration row existed.
func (h *RegistrationHandler) failSubmission(c *gin.Context, result *service.SubmissionResult, err error) {
	switch {
	case errors.Is(err, service.ErrNoActiveYear):
		response.Fail(c, http.StatusConflict, response.ErrNoActiveYear)
	case errors.Is(err, service.ErrMajorRequired), errors.Is(err, service.ErrMajorNotFound):
		response.Fail(c, http.StatusBadRequest, response.ErrValidation)
	case errors.Is(err, storage.ErrUnsupportedFileType):
		response.FailWithData(c, http.StatusBadGateway, response.ErrUnsupportedFile, result)
	case errors.Is(err, storage.ErrFileTooLarge):
		response.FailWithData(c, http.StatusBadGateway, response.ErrFileTooLarge, result)
	case result != nil:
		// Registration row exists; uploads stopped partway.
		response.FailWithData(c, http.StatusBadGateway, response.ErrUpload, result)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrStore)
	}
}

// collectSubmissionFiles gathers the optional document slots from the
// multipart form. Extension checks happen up front so an unsupported
// file rejects the request before any write.
func collectSubmissionFiles(c *gin.Context) (map[model.DocumentType]*service.SubmissionFile, bool) {
	files := make(map[model.DocumentType]*service.SubmissionFile)
	for _, slot := range model.DocumentSlots {
		header, err := c.FormFile(slotFormFields[slot])
		if err != nil {
			continue
		}
		if _, ok := storage.AllowedExtension(header.Filename); !ok {
			return nil, true
		}
		files[slot] = submissionFileFromHeader(header)
	}
	return files, false
}

func submissionFileFromHeader(header *multipart.FileHeader) *service.SubmissionFile {
	return &service.SubmissionFile{
		Filename: header.Filename,
		Size:     header.Size,
		Open: func() (io.ReadCloser, error) {
			return header.Open()
		},
	}
}

// ListOwn godoc
// GET /api/v1/student/registrations
// Returns the student's own registrations, newest first.
func (h *RegistrationHandler) ListOwn(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	regs, err := h.registrationService.ListByStudent(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"registrations": regs})
}

// GetProfile godoc
// GET /api/v1/student/profile
// Returns the student's detail row; detail is null until first saved.
func (h *RegistrationHandler) GetProfile(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	detail, err := h.studentService.GetDetail(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"detail": detail})
}

// SaveProfile godoc
// PUT /api/v1/student/profile
// Upserts the student's detail row from the profile form.
func (h *RegistrationHandler) SaveProfile(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.StudentDetailRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	detail, err := h.studentService.SaveDetail(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"detail": detail})
}
