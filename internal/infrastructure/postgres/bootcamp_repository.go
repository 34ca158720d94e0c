package postgres

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devtrail/bootcamp-api/internal/domain/entity"
	"github.com/devtrail/bootcamp-api/internal/domain/repository"
)

type BootcampRepository struct {
	pool *pgxpool.Pool
}

func NewBootcampRepository(pool *pgxpool.Pool) *BootcampRepository {
	return &BootcampRepository{pool: pool}
}

const bootcampColumns = `id, name, slug, description,
	COALESCE(website, ''), COALESCE(phone, ''), COALESCE(email, ''), address,
	longitude, latitude, COALESCE(formatted_address, ''), COALESCE(street, ''),
	COALESCE(city, ''), COALESCE(state, ''), COALESCE(zipcode, ''), COALESCE(country, ''),
	careers, average_rating, average_cost, photo,
	housing, job_assistance, job_guarantee, accept_gi, user_id, created_at, updated_at`

func scanBootcamp(row interface{ Scan(...any) error }) (*entity.Bootcamp, error) {
	b := &entity.Bootcamp{}
	err := row.Scan(&b.ID, &b.Name, &b.Slug, &b.Description,
		&b.Website, &b.Phone, &b.Email, &b.Address,
		&b.Location.Longitude, &b.Location.Latitude, &b.Location.FormattedAddress, &b.Location.Street,
		&b.Location.City, &b.Location.State, &b.Location.Zipcode, &b.Location.Country,
		&b.Careers, &b.AverageRating, &b.AverageCost, &b.Photo,
		&b.Housing, &b.JobAssistance, &b.JobGuarantee, &b.AcceptGI, &b.UserID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *BootcampRepository) Create(ctx context.Context, b *entity.Bootcamp) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO bootcamps (name, slug, description, website, phone, email, address,
			longitude, latitude, formatted_address, street, city, state, zipcode, country,
			careers, photo, housing, job_assistance, job_guarantee, accept_gi, user_id)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7,
			$8, $9, NULLIF($10, ''), NULLIF($11, ''), NULLIF($12, ''), NULLIF($13, ''), NULLIF($14, ''), NULLIF($15, ''),
			$16, $17, $18, $19, $20, $21, $22)
		RETURNING id, created_at, updated_at
	`, b.Name, b.Slug, b.Description, b.Website, b.Phone, b.Email, b.Address,
		b.Location.Longitude, b.Location.Latitude, b.Location.FormattedAddress, b.Location.Street,
		b.Location.City, b.Location.State, b.Location.Zipcode, b.Location.Country,
		b.Careers, b.Photo, b.Housing, b.JobAssistance, b.JobGuarantee, b.AcceptGI, b.UserID)
	return mapError(row.Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt), "bootcamp")
}

func (r *BootcampRepository) GetByID(ctx context.Context, id string) (*entity.Bootcamp, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+bootcampColumns+` FROM bootcamps WHERE id = $1`, id)
	b, err := scanBootcamp(row)
	if err != nil {
		return nil, mapError(err, "bootcamp")
	}
	return b, nil
}

func (r *BootcampRepository) GetByOwner(ctx context.Context, userID string) (*entity.Bootcamp, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+bootcampColumns+` FROM bootcamps WHERE user_id = $1 LIMIT 1`, userID)
	b, err := scanBootcamp(row)
	if err != nil {
		return nil, mapError(err, "bootcamp")
	}
	return b, nil
}

var bootcampFilterCols = map[string]string{
	"housing":        "housing",
	"job_assistance": "job_assistance",
	"job_guarantee":  "job_guarantee",
	"accept_gi":      "accept_gi",
	"average_cost":   "average_cost",
	"average_rating": "average_rating",
	"city":           "city",
	"careers":        "careers",
}

var bootcampSortCols = map[string]string{
	"name":           "name",
	"created_at":     "created_at",
	"average_cost":   "average_cost",
	"average_rating": "average_rating",
}

func (r *BootcampRepository) List(ctx context.Context, p repository.ListParams) ([]entity.Bootcamp, int, error) {
	// The careers filter is an array-overlap, not a scalar comparison.
	filters := make([]repository.Filter, 0, len(p.Filters))
	var careerArgs []any
	careersWhere := ""
	for _, f := range p.Filters {
		if f.Field == "careers" {
			careerArgs = append(careerArgs, f.Value)
			continue
		}
		filters = append(filters, f)
	}

	where, args, err := buildWhere(filters, bootcampFilterCols, nil)
	if err != nil {
		return nil, 0, err
	}
	if len(careerArgs) > 0 {
		args = append(args, careerArgs[0])
		cond := "careers && $" + strconv.Itoa(len(args))
		if where == "" {
			careersWhere = " WHERE " + cond
		} else {
			careersWhere = " AND " + cond
		}
	}
	where += careersWhere

	order, err := buildOrder(p.Sort, bootcampSortCols, "created_at DESC")
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM bootcamps`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	clause, args := pageClause(p, args)
	rows, err := r.pool.Query(ctx, `SELECT `+bootcampColumns+` FROM bootcamps`+where+order+clause, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]entity.Bootcamp, 0)
	for rows.Next() {
		b, err := scanBootcamp(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *b)
	}
	return out, total, rows.Err()
}

func (r *BootcampRepository) Update(ctx context.Context, b *entity.Bootcamp) error {
	b.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE bootcamps
		SET name = $1, slug = $2, description = $3, website = NULLIF($4, ''),
		    phone = NULLIF($5, ''), email = NULLIF($6, ''), address = $7,
		    longitude = $8, latitude = $9, formatted_address = NULLIF($10, ''),
		    street = NULLIF($11, ''), city = NULLIF($12, ''), state = NULLIF($13, ''),
		    zipcode = NULLIF($14, ''), country = NULLIF($15, ''), careers = $16,
		    housing = $17, job_assistance = $18, job_guarantee = $19, accept_gi = $20,
		    updated_at = $21
		WHERE id = $22
	`, b.Name, b.Slug, b.Description, b.Website, b.Phone, b.Email, b.Address,
		b.Location.Longitude, b.Location.Latitude, b.Location.FormattedAddress,
		b.Location.Street, b.Location.City, b.Location.State, b.Location.Zipcode,
		b.Location.Country, b.Careers, b.Housing, b.JobAssistance, b.JobGuarantee, b.AcceptGI,
		b.UpdatedAt, b.ID)
	if err != nil {
		return mapError(err, "bootcamp")
	}
	if res.RowsAffected() == 0 {
		return notFound("bootcamp", b.ID)
	}
	return nil
}

func (r *BootcampRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM bootcamps WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "bootcamp")
	}
	if res.RowsAffected() == 0 {
		return notFound("bootcamp", id)
	}
	return nil
}

// WithinRadius runs a point-in-sphere containment check: the great
// circle distance between the stored point and the centre, in radians,
// must not exceed the angular radius.
func (r *BootcampRepository) WithinRadius(ctx context.Context, lng, lat, radius float64) ([]entity.Bootcamp, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+bootcampColumns+`
		FROM bootcamps
		WHERE acos(LEAST(1.0,
			sin(radians($1)) * sin(radians(latitude)) +
			cos(radians($1)) * cos(radians(latitude)) * cos(radians(longitude - $2))
		)) <= $3
	`, lat, lng, radius)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Bootcamp, 0)
	for rows.Next() {
		b, err := scanBootcamp(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *BootcampRepository) UpdateAverageRating(ctx context.Context, id string, avg *float64) error {
	_, err := r.pool.Exec(ctx, `UPDATE bootcamps SET average_rating = $1, updated_at = now() WHERE id = $2`, avg, id)
	return err
}

func (r *BootcampRepository) UpdateAverageCost(ctx context.Context, id string, avg *float64) error {
	_, err := r.pool.Exec(ctx, `UPDATE bootcamps SET average_cost = $1, updated_at = now() WHERE id = $2`, avg, id)
	return err
}

func (r *BootcampRepository) UpdatePhoto(ctx context.Context, id, filename string) error {
	res, err := r.pool.Exec(ctx, `UPDATE bootcamps SET photo = $1, updated_at = now() WHERE id = $2`, filename, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return notFound("bootcamp", id)
	}
	return nil
}

var _ repository.BootcampRepository = (*BootcampRepository)(nil)
