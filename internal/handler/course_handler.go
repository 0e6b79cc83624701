package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/coursely/coursely-backend/internal/middleware"
	"github.com/coursely/coursely-backend/internal/model"
	"github.com/coursely/coursely-backend/internal/repository"
	"github.com/coursely/coursely-backend/internal/response"
	"github.com/coursely/coursely-backend/internal/service"
	"github.com/coursely/coursely-backend/internal/storage"
	"github.com/coursely/coursely-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// CourseHandler handles course lifecycle endpoints. Every route is behind the
// session middleware, so a resolved admin is always present.
type CourseHandler struct {
	courseService *service.CourseService
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(courseService *service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// Create godoc
// POST /api/v1/courses
// Accepts a multipart form with title, description, price and a coverImg file.
func (h *CourseHandler) Create(c *gin.Context) {
	admin := middleware.CurrentAdmin(c)
	if admin == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.CreateCourseRequest
	if fields := validator.BindForm(c, &req); fields != nil {
		bindError(c, fields)
		return
	}

	file, header, err := c.Request.FormFile("coverImg")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer file.Close()

	course, err := h.courseService.Create(c.Request.Context(), admin, &req, file, header)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateTitle):
			response.Fail(c, http.StatusConflict, response.ErrDuplicateTitle)
		case errors.Is(err, storage.ErrUnsupportedFileType):
			response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
		case errors.Is(err, storage.ErrFileTooLarge):
			response.Fail(c, http.StatusBadRequest, response.ErrFileTooLarge)
		case errors.Is(err, service.ErrUploadFailed):
			response.Fail(c, http.StatusInternalServerError, response.ErrUploadFailed)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, "course created successfully", gin.H{"course": course})
}

// List godoc
// GET /api/v1/courses
// Returns only the courses owned by the authenticated admin.
func (h *CourseHandler) List(c *gin.Context) {
	admin := middleware.CurrentAdmin(c)
	if admin == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	courses, err := h.courseService.List(c.Request.Context(), admin.ID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if courses == nil {
		courses = []model.Course{}
	}

	response.Success(c, http.StatusOK, "courses retrieved", gin.H{"courses": courses})
}

// Update godoc
// PATCH /api/v1/courses/:id
// Applies a partial update; absent fields are left untouched.
func (h *CourseHandler) Update(c *gin.Context) {
	admin := middleware.CurrentAdmin(c)
	if admin == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		bindError(c, fields)
		return
	}

	course, err := h.courseService.Update(c.Request.Context(), admin.ID, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrCourseNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, repository.ErrDuplicateTitle):
			response.Fail(c, http.StatusConflict, response.ErrDuplicateTitle)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, "course updated successfully", gin.H{"course": course})
}

// Delete godoc
// DELETE /api/v1/courses/:id
func (h *CourseHandler) Delete(c *gin.Context) {
	admin := middleware.CurrentAdmin(c)
	if admin == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.courseService.Delete(c.Request.Context(), admin.ID, id); err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, "course deleted successfully", nil)
}
