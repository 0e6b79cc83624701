package service

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"github.com/coursely/coursely-backend/internal/model"
	"github.com/coursely/coursely-backend/internal/repository"
	"github.com/rs/zerolog"
)

type mockCourseStore struct {
	createFn   func(ctx context.Context, c *model.Course) error
	listFn     func(ctx context.Context, ownerID int) ([]model.Course, error)
	getFn      func(ctx context.Context, id, ownerID int) (*model.Course, error)
	existsFn   func(ctx context.Context, title string, ownerID int) (bool, error)
	updateFn   func(ctx context.Context, id, ownerID int, req *model.UpdateCourseRequest) (*model.Course, error)
	deleteFn   func(ctx context.Context, id, ownerID int) error
	createSeen int
}

func (m *mockCourseStore) Create(ctx context.Context, c *model.Course) error {
	m.createSeen++
	if m.createFn != nil {
		return m.createFn(ctx, c)
	}
	c.ID = 1
	return nil
}

func (m *mockCourseStore) ListByOwner(ctx context.Context, ownerID int) ([]model.Course, error) {
	if m.listFn != nil {
		return m.listFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockCourseStore) GetByIDForOwner(ctx context.Context, id, ownerID int) (*model.Course, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id, ownerID)
	}
	return nil, repository.ErrCourseNotFound
}

func (m *mockCourseStore) ExistsByTitleAndOwner(ctx context.Context, title string, ownerID int) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, title, ownerID)
	}
	return false, nil
}

func (m *mockCourseStore) Update(ctx context.Context, id, ownerID int, req *model.UpdateCourseRequest) (*model.Course, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, ownerID, req)
	}
	return nil, repository.ErrCourseNotFound
}

func (m *mockCourseStore) Delete(ctx context.Context, id, ownerID int) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id, ownerID)
	}
	return repository.ErrCourseNotFound
}

type mockUploader struct {
	uploadFn func(ctx context.Context) (string, error)
	calls    int
}

func (m *mockUploader) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error) {
	m.calls++
	if m.uploadFn != nil {
		return m.uploadFn(ctx)
	}
	return "/uploads/cover.jpg", nil
}

func newCourseService(store CourseStore, up *mockUploader) *CourseService {
	return NewCourseService(store, up, time.Second, zerolog.Nop())
}

func courseAdmin() *model.Admin {
	return &model.Admin{ID: 3, Email: "jane@x.com", FirstName: "Jane", LastName: "Doe"}
}

func createReq() *model.CreateCourseRequest {
	return &model.CreateCourseRequest{Title: "Intro", Description: "Basics", Price: "10"}
}

func TestCourseCreate_Success(t *testing.T) {
	store := &mockCourseStore{
		createFn: func(ctx context.Context, c *model.Course) error {
			c.ID = 11
			return nil
		},
	}
	up := &mockUploader{}
	svc := newCourseService(store, up)

	course, err := svc.Create(context.Background(), courseAdmin(), createReq(), nil, &multipart.FileHeader{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if course.ID != 11 {
		t.Errorf("id: got %d", course.ID)
	}
	if course.OwnerName != "Jane Doe" {
		t.Errorf("owner_name: got %q, want %q", course.OwnerName, "Jane Doe")
	}
	if course.CreatedBy != 3 {
		t.Errorf("created_by: got %d, want 3", course.CreatedBy)
	}
	if course.ImageURL != "/uploads/cover.jpg" {
		t.Errorf("image_url: got %q", course.ImageURL)
	}
	if up.calls != 1 {
		t.Errorf("upload calls: got %d, want 1", up.calls)
	}
}

func TestCourseCreate_DuplicateTitle(t *testing.T) {
	store := &mockCourseStore{
		existsFn: func(ctx context.Context, title string, ownerID int) (bool, error) {
			return true, nil
		},
	}
	up := &mockUploader{}
	svc := newCourseService(store, up)

	_, err := svc.Create(context.Background(), courseAdmin(), createReq(), nil, &multipart.FileHeader{})
	if !errors.Is(err, repository.ErrDuplicateTitle) {
		t.Fatalf("got %v, want ErrDuplicateTitle", err)
	}
	if up.calls != 0 {
		t.Error("upload attempted despite duplicate title")
	}
	if store.createSeen != 0 {
		t.Error("course persisted despite duplicate title")
	}
}

func TestCourseCreate_UploadFailureLeavesNoRecord(t *testing.T) {
	store := &mockCourseStore{}
	up := &mockUploader{
		uploadFn: func(ctx context.Context) (string, error) {
			return "", errors.New("blob store unreachable")
		},
	}
	svc := newCourseService(store, up)

	_, err := svc.Create(context.Background(), courseAdmin(), createReq(), nil, &multipart.FileHeader{})
	if !errors.Is(err, ErrUploadFailed) {
		t.Fatalf("got %v, want ErrUploadFailed", err)
	}
	if store.createSeen != 0 {
		t.Error("course persisted despite failed upload")
	}
}

func TestCourseCreate_UploadTimeout(t *testing.T) {
	store := &mockCourseStore{}
	up := &mockUploader{
		uploadFn: func(ctx context.Context) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
	}
	svc := NewCourseService(store, up, 10*time.Millisecond, zerolog.Nop())

	_, err := svc.Create(context.Background(), courseAdmin(), createReq(), nil, &multipart.FileHeader{})
	if !errors.Is(err, ErrUploadFailed) {
		t.Fatalf("got %v, want ErrUploadFailed", err)
	}
	if store.createSeen != 0 {
		t.Error("course persisted despite upload timeout")
	}
}

func TestCourseList_ScopedToOwner(t *testing.T) {
	store := &mockCourseStore{
		listFn: func(ctx context.Context, ownerID int) ([]model.Course, error) {
			if ownerID != 3 {
				t.Errorf("list queried with owner %d, want 3", ownerID)
			}
			return []model.Course{{ID: 1, CreatedBy: 3}}, nil
		},
	}
	svc := newCourseService(store, &mockUploader{})

	courses, err := svc.List(context.Background(), 3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(courses) != 1 || courses[0].CreatedBy != 3 {
		t.Errorf("unexpected result: %+v", courses)
	}
}

func TestCourseList_EmptyIsSuccess(t *testing.T) {
	svc := newCourseService(&mockCourseStore{}, &mockUploader{})

	courses, err := svc.List(context.Background(), 3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(courses) != 0 {
		t.Errorf("expected empty, got %+v", courses)
	}
}

func TestCourseUpdate_PassesOwnerScope(t *testing.T) {
	price := "49.99"
	store := &mockCourseStore{
		updateFn: func(ctx context.Context, id, ownerID int, req *model.UpdateCourseRequest) (*model.Course, error) {
			if id != 5 || ownerID != 3 {
				t.Errorf("update scoped to (%d, %d), want (5, 3)", id, ownerID)
			}
			if req.Title != nil || req.Description != nil {
				t.Error("unsupplied fields reached the repository")
			}
			return &model.Course{ID: 5, Title: "Intro", Description: "Basics", Price: *req.Price, CreatedBy: 3}, nil
		},
	}
	svc := newCourseService(store, &mockUploader{})

	course, err := svc.Update(context.Background(), 3, 5, &model.UpdateCourseRequest{Price: &price})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if course.Price != "49.99" || course.Title != "Intro" {
		t.Errorf("unexpected course: %+v", course)
	}
}

func TestCourseUpdate_ForeignCourseIsNotFound(t *testing.T) {
	svc := newCourseService(&mockCourseStore{}, &mockUploader{})

	title := "Hijack"
	_, err := svc.Update(context.Background(), 3, 99, &model.UpdateCourseRequest{Title: &title})
	if !errors.Is(err, repository.ErrCourseNotFound) {
		t.Errorf("got %v, want ErrCourseNotFound", err)
	}
}

func TestCourseDelete(t *testing.T) {
	deleted := false
	store := &mockCourseStore{
		deleteFn: func(ctx context.Context, id, ownerID int) error {
			if id != 5 || ownerID != 3 {
				t.Errorf("delete scoped to (%d, %d), want (5, 3)", id, ownerID)
			}
			deleted = true
			return nil
		},
	}
	svc := newCourseService(store, &mockUploader{})

	if err := svc.Delete(context.Background(), 3, 5); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !deleted {
		t.Error("repository delete not called")
	}
}

func TestCourseDelete_Missing(t *testing.T) {
	svc := newCourseService(&mockCourseStore{}, &mockUploader{})

	if err := svc.Delete(context.Background(), 3, 404); !errors.Is(err, repository.ErrCourseNotFound) {
		t.Errorf("got %v, want ErrCourseNotFound", err)
	}
}
