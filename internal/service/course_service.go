package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/coursely/coursely-backend/internal/model"
	"github.com/coursely/coursely-backend/internal/repository"
	"github.com/coursely/coursely-backend/internal/storage"
	"github.com/rs/zerolog"
)

// ErrUploadFailed wraps any cover image upload failure, including the bounded
// upload timeout. No course row is written when it occurs.
var ErrUploadFailed = errors.New("cover image upload failed")

// CourseStore is the repository surface the course service operates on.
// Implemented by repository.CourseRepository.
type CourseStore interface {
	Create(ctx context.Context, c *model.Course) error
	ListByOwner(ctx context.Context, ownerID int) ([]model.Course, error)
	GetByIDForOwner(ctx context.Context, id, ownerID int) (*model.Course, error)
	ExistsByTitleAndOwner(ctx context.Context, title string, ownerID int) (bool, error)
	Update(ctx context.Context, id, ownerID int, req *model.UpdateCourseRequest) (*model.Course, error)
	Delete(ctx context.Context, id, ownerID int) error
}

// CourseService orchestrates the course lifecycle: create, list, update and
// delete, all scoped to the acting admin resolved by the session middleware.
type CourseService struct {
	courses       CourseStore
	uploader      storage.Uploader
	uploadTimeout time.Duration
	log           zerolog.Logger
}

// NewCourseService creates a new CourseService.
func NewCourseService(courses CourseStore, uploader storage.Uploader, uploadTimeout time.Duration, log zerolog.Logger) *CourseService {
	return &CourseService{
		courses:       courses,
		uploader:      uploader,
		uploadTimeout: uploadTimeout,
		log:           log.With().Str("component", "course_service").Logger(),
	}
}

// Create uploads the cover image and persists a new course owned by admin.
// The upload happens first under a bounded deadline; if it fails, nothing is
// persisted. Field validation and the required-file check happen at the
// handler boundary before this is called.
func (s *CourseService) Create(ctx context.Context, admin *model.Admin, req *model.CreateCourseRequest,
	file multipart.File, header *multipart.FileHeader) (*model.Course, error) {

	exists, err := s.courses.ExistsByTitleAndOwner(ctx, req.Title, admin.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, repository.ErrDuplicateTitle
	}

	uploadCtx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	defer cancel()

	imageURL, err := s.uploader.Upload(uploadCtx, file, header)
	if err != nil {
		s.log.Warn().Err(err).Str("title", req.Title).Msg("cover upload failed")
		return nil, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	course := &model.Course{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    imageURL,
		OwnerName:   admin.FullName(),
		CreatedBy:   admin.ID,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}

	s.log.Info().Int("course_id", course.ID).Int("admin_id", admin.ID).Msg("course created")
	return course, nil
}

// List returns the courses owned by the given admin in creation order.
// An empty result is a valid success.
func (s *CourseService) List(ctx context.Context, ownerID int) ([]model.Course, error) {
	return s.courses.ListByOwner(ctx, ownerID)
}

// Update applies the supplied fields to an owned course and returns the
// updated record. A course id owned by another admin resolves as not found.
func (s *CourseService) Update(ctx context.Context, ownerID, courseID int, req *model.UpdateCourseRequest) (*model.Course, error) {
	return s.courses.Update(ctx, courseID, ownerID, req)
}

// Delete removes an owned course by id.
func (s *CourseService) Delete(ctx context.Context, ownerID, courseID int) error {
	if err := s.courses.Delete(ctx, courseID, ownerID); err != nil {
		return err
	}
	s.log.Info().Int("course_id", courseID).Int("admin_id", ownerID).Msg("course deleted")
	return nil
}
