package postgres

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devtrail/bootcamp-api/internal/domain/entity"
	"github.com/devtrail/bootcamp-api/internal/domain/repository"
)

type ReviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

const reviewColumns = `r.id, r.title, r.text, r.rating, r.bootcamp_id, r.user_id,
	r.created_at, r.updated_at, b.id, b.name, b.description`

func scanReview(row interface{ Scan(...any) error }) (*entity.Review, error) {
	rv := &entity.Review{Bootcamp: &entity.BootcampRef{}}
	err := row.Scan(&rv.ID, &rv.Title, &rv.Text, &rv.Rating, &rv.BootcampID, &rv.UserID,
		&rv.CreatedAt, &rv.UpdatedAt, &rv.Bootcamp.ID, &rv.Bootcamp.Name, &rv.Bootcamp.Description)
	if err != nil {
		return nil, err
	}
	return rv, nil
}

func (r *ReviewRepository) Create(ctx context.Context, rv *entity.Review) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO reviews (title, text, rating, bootcamp_id, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, rv.Title, rv.Text, rv.Rating, rv.BootcampID, rv.UserID)
	return mapError(row.Scan(&rv.ID, &rv.CreatedAt, &rv.UpdatedAt), "review")
}

func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+reviewColumns+`
		FROM reviews r JOIN bootcamps b ON b.id = r.bootcamp_id
		WHERE r.id = $1
	`, id)
	rv, err := scanReview(row)
	if err != nil {
		return nil, mapError(err, "review")
	}
	return rv, nil
}

var reviewFilterCols = map[string]string{
	"rating": "r.rating",
	"title":  "r.title",
}

var reviewSortCols = map[string]string{
	"rating":     "r.rating",
	"created_at": "r.created_at",
}

func (r *ReviewRepository) List(ctx context.Context, bootcampID string, p repository.ListParams) ([]entity.Review, int, error) {
	order, err := buildOrder(p.Sort, reviewSortCols, "r.created_at DESC")
	if err != nil {
		return nil, 0, err
	}

	where, args, err := buildWhere(p.Filters, reviewFilterCols, nil)
	if err != nil {
		return nil, 0, err
	}
	if bootcampID != "" {
		args = append(args, bootcampID)
		cond := "r.bootcamp_id = $" + strconv.Itoa(len(args))
		if where == "" {
			where = " WHERE " + cond
		} else {
			where += " AND " + cond
		}
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM reviews r`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	clause, args := pageClause(p, args)
	rows, err := r.pool.Query(ctx, `
		SELECT `+reviewColumns+`
		FROM reviews r JOIN bootcamps b ON b.id = r.bootcamp_id
	`+where+order+clause, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]entity.Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *rv)
	}
	return out, total, rows.Err()
}

func (r *ReviewRepository) Update(ctx context.Context, rv *entity.Review) error {
	rv.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE reviews
		SET title = $1, text = $2, rating = $3, updated_at = $4
		WHERE id = $5
	`, rv.Title, rv.Text, rv.Rating, rv.UpdatedAt, rv.ID)
	if err != nil {
		return mapError(err, "review")
	}
	if res.RowsAffected() == 0 {
		return notFound("review", rv.ID)
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "review")
	}
	if res.RowsAffected() == 0 {
		return notFound("review", id)
	}
	return nil
}

func (r *ReviewRepository) AverageRating(ctx context.Context, bootcampID string) (*float64, error) {
	var avg *float64
	err := r.pool.QueryRow(ctx, `
		SELECT avg(rating) FROM reviews WHERE bootcamp_id = $1
	`, bootcampID).Scan(&avg)
	if err != nil {
		return nil, err
	}
	return avg, nil
}

var _ repository.ReviewRepository = (*ReviewRepository)(nil)
