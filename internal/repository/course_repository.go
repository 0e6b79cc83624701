package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/coursely/coursely-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Sentinel errors for course data access.
var (
	ErrDuplicateTitle = errors.New("course with this title already exists for this admin")
	ErrCourseNotFound = errors.New("course not found")
)

// CourseRepository handles course data access. All read and write paths that
// target a single course are scoped by owner: a course id belonging to a
// different admin behaves as if it does not exist.
type CourseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

// Create inserts a new course. The unique index on (title, created_by) is the
// authoritative duplicate guard; a violation surfaces as ErrDuplicateTitle.
func (r *CourseRepository) Create(ctx context.Context, c *model.Course) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO courses (title, description, price, image_url, owner_name, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		c.Title, c.Description, c.Price, c.ImageURL, c.OwnerName, c.CreatedBy,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateTitle
		}
		return err
	}
	return nil
}

// ListByOwner retrieves all courses created by the given admin in creation order.
func (r *CourseRepository) ListByOwner(ctx context.Context, ownerID int) ([]model.Course, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, description, price, image_url, owner_name, created_by, created_at, updated_at
		 FROM courses WHERE created_by = $1 ORDER BY id ASC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Price, &c.ImageURL,
			&c.OwnerName, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// GetByIDForOwner retrieves a single course by id, scoped to its owner.
func (r *CourseRepository) GetByIDForOwner(ctx context.Context, id, ownerID int) (*model.Course, error) {
	c := &model.Course{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, description, price, image_url, owner_name, created_by, created_at, updated_at
		 FROM courses WHERE id = $1 AND created_by = $2`, id, ownerID,
	).Scan(&c.ID, &c.Title, &c.Description, &c.Price, &c.ImageURL,
		&c.OwnerName, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return c, nil
}

// ExistsByTitleAndOwner reports whether the admin already has a course with
// this title. Used as a fast-path check before Create; the unique index
// remains the real enforcement under concurrency.
func (r *CourseRepository) ExistsByTitleAndOwner(ctx context.Context, title string, ownerID int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM courses WHERE title = $1 AND created_by = $2)`,
		title, ownerID,
	).Scan(&exists)
	return exists, err
}

// Update applies a partial update to an owner's course and returns the
// updated row. Nil fields in req are not part of the SET clause. Returns
// ErrCourseNotFound when the id does not resolve for this owner and
// ErrDuplicateTitle when a title change collides with an existing course.
func (r *CourseRepository) Update(ctx context.Context, id, ownerID int, req *model.UpdateCourseRequest) (*model.Course, error) {
	var sets []string
	var args []interface{}
	argIdx := 1

	appendSet := func(column string, value interface{}) {
		sets = append(sets, column+" = $"+strconv.Itoa(argIdx))
		args = append(args, value)
		argIdx++
	}

	if req.Title != nil {
		appendSet("title", *req.Title)
	}
	if req.Description != nil {
		appendSet("description", *req.Description)
	}
	if req.Price != nil {
		appendSet("price", *req.Price)
	}

	if len(sets) == 0 {
		// Nothing supplied; return the current row unchanged.
		return r.GetByIDForOwner(ctx, id, ownerID)
	}

	sets = append(sets, "updated_at = NOW()")
	query := `UPDATE courses SET ` + strings.Join(sets, ", ") +
		` WHERE id = $` + strconv.Itoa(argIdx) + ` AND created_by = $` + strconv.Itoa(argIdx+1) +
		` RETURNING id, title, description, price, image_url, owner_name, created_by, created_at, updated_at`
	args = append(args, id, ownerID)

	c := &model.Course{}
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.Title, &c.Description, &c.Price, &c.ImageURL,
		&c.OwnerName, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateTitle
		}
		return nil, err
	}
	return c, nil
}

// Delete removes an owner's course by id. Returns ErrCourseNotFound when no
// row matched.
func (r *CourseRepository) Delete(ctx context.Context, id, ownerID int) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM courses WHERE id = $1 AND created_by = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCourseNotFound
	}
	return nil
}
