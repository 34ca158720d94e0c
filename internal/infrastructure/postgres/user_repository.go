package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devtrail/bootcamp-api/internal/domain/entity"
	"github.com/devtrail/bootcamp-api/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, name, email, role, password_hash,
	COALESCE(reset_password_token, ''), reset_password_expire, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*entity.User, error) {
	u := &entity.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Password,
		&u.ResetPasswordToken, &u.ResetPasswordExpire, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, role, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, u.Name, u.Email, u.Role, u.Password)
	return mapError(row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt), "user")
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		return nil, mapError(err, "user")
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	u, err := scanUser(row)
	if err != nil {
		return nil, mapError(err, "user")
	}
	return u, nil
}

func (r *UserRepository) GetByResetToken(ctx context.Context, hashedToken string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE reset_password_token = $1
	`, hashedToken)
	u, err := scanUser(row)
	if err != nil {
		return nil, mapError(err, "user")
	}
	return u, nil
}

var userFilterCols = map[string]string{
	"name":  "name",
	"email": "email",
	"role":  "role",
}

var userSortCols = map[string]string{
	"name":       "name",
	"email":      "email",
	"role":       "role",
	"created_at": "created_at",
}

func (r *UserRepository) List(ctx context.Context, p repository.ListParams) ([]entity.User, int, error) {
	order, err := buildOrder(p.Sort, userSortCols, "created_at DESC")
	if err != nil {
		return nil, 0, err
	}

	where, args, err := buildWhere(p.Filters, userFilterCols, nil)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	clause, args := pageClause(p, args)
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users`+where+order+clause, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := make([]entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	return users, total, rows.Err()
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET name = $1, email = $2, role = $3, password_hash = $4,
		    reset_password_token = NULLIF($5, ''), reset_password_expire = $6, updated_at = $7
		WHERE id = $8
	`, u.Name, u.Email, u.Role, u.Password, u.ResetPasswordToken, u.ResetPasswordExpire, u.UpdatedAt, u.ID)
	if err != nil {
		return mapError(err, "user")
	}
	if res.RowsAffected() == 0 {
		return notFound("user", u.ID)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "user")
	}
	if res.RowsAffected() == 0 {
		return notFound("user", id)
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
