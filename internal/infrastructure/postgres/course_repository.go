package postgres

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devtrail/bootcamp-api/internal/domain/entity"
	"github.com/devtrail/bootcamp-api/internal/domain/repository"
)

type CourseRepository struct {
	pool *pgxpool.Pool
}

func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

// Reads join the parent bootcamp's name and description.
const courseColumns = `c.id, c.title, c.description, c.weeks, c.tuition, c.minimum_skill,
	c.scholarship_available, c.bootcamp_id, c.user_id, c.created_at, c.updated_at,
	b.id, b.name, b.description`

func scanCourse(row interface{ Scan(...any) error }) (*entity.Course, error) {
	c := &entity.Course{Bootcamp: &entity.BootcampRef{}}
	err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Weeks, &c.Tuition, &c.MinimumSkill,
		&c.ScholarshipAvailable, &c.BootcampID, &c.UserID, &c.CreatedAt, &c.UpdatedAt,
		&c.Bootcamp.ID, &c.Bootcamp.Name, &c.Bootcamp.Description)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CourseRepository) Create(ctx context.Context, c *entity.Course) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO courses (title, description, weeks, tuition, minimum_skill,
			scholarship_available, bootcamp_id, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, c.Title, c.Description, c.Weeks, c.Tuition, c.MinimumSkill,
		c.ScholarshipAvailable, c.BootcampID, c.UserID)
	return mapError(row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt), "course")
}

func (r *CourseRepository) GetByID(ctx context.Context, id string) (*entity.Course, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+courseColumns+`
		FROM courses c JOIN bootcamps b ON b.id = c.bootcamp_id
		WHERE c.id = $1
	`, id)
	c, err := scanCourse(row)
	if err != nil {
		return nil, mapError(err, "course")
	}
	return c, nil
}

var courseFilterCols = map[string]string{
	"tuition":               "c.tuition",
	"weeks":                 "c.weeks",
	"minimum_skill":         "c.minimum_skill",
	"scholarship_available": "c.scholarship_available",
}

var courseSortCols = map[string]string{
	"title":      "c.title",
	"tuition":    "c.tuition",
	"weeks":      "c.weeks",
	"created_at": "c.created_at",
}

func (r *CourseRepository) List(ctx context.Context, bootcampID string, p repository.ListParams) ([]entity.Course, int, error) {
	order, err := buildOrder(p.Sort, courseSortCols, "c.created_at DESC")
	if err != nil {
		return nil, 0, err
	}

	where, args, err := buildWhere(p.Filters, courseFilterCols, nil)
	if err != nil {
		return nil, 0, err
	}
	if bootcampID != "" {
		args = append(args, bootcampID)
		cond := "c.bootcamp_id = $" + strconv.Itoa(len(args))
		if where == "" {
			where = " WHERE " + cond
		} else {
			where += " AND " + cond
		}
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM courses c`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	clause, args := pageClause(p, args)
	rows, err := r.pool.Query(ctx, `
		SELECT `+courseColumns+`
		FROM courses c JOIN bootcamps b ON b.id = c.bootcamp_id
	`+where+order+clause, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]entity.Course, 0)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *c)
	}
	return out, total, rows.Err()
}

func (r *CourseRepository) Update(ctx context.Context, c *entity.Course) error {
	c.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE courses
		SET title = $1, description = $2, weeks = $3, tuition = $4,
		    minimum_skill = $5, scholarship_available = $6, updated_at = $7
		WHERE id = $8
	`, c.Title, c.Description, c.Weeks, c.Tuition, c.MinimumSkill,
		c.ScholarshipAvailable, c.UpdatedAt, c.ID)
	if err != nil {
		return mapError(err, "course")
	}
	if res.RowsAffected() == 0 {
		return notFound("course", c.ID)
	}
	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "course")
	}
	if res.RowsAffected() == 0 {
		return notFound("course", id)
	}
	return nil
}

func (r *CourseRepository) DeleteByBootcamp(ctx context.Context, bootcampID string) (int64, error) {
	res, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE bootcamp_id = $1`, bootcampID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected(), nil
}

func (r *CourseRepository) AverageTuition(ctx context.Context, bootcampID string) (*float64, error) {
	var avg *float64
	err := r.pool.QueryRow(ctx, `
		SELECT avg(tuition) FROM courses WHERE bootcamp_id = $1
	`, bootcampID).Scan(&avg)
	if err != nil {
		return nil, err
	}
	return avg, nil
}

var _ repository.CourseRepository = (*CourseRepository)(nil)
