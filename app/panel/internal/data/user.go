package data

import (
	"context"
	"database/sql"
	"errors"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/biopanel-ai/biopanel/app/panel/internal/usecase"
)

type userRepo struct {
	data *Data
	log  *log.Helper
}

func NewUserRepo(data *Data, logger log.Logger) usecase.UserRepo {
	return &userRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *userRepo) CreateUser(ctx context.Context, u *usecase.User) error {
	return r.data.db.QueryRowContext(ctx,
		`INSERT INTO users (username, password_hash) VALUES ($1, $2) RETURNING id`,
		u.Username, u.PasswordHash).Scan(&u.ID)
}

func (r *userRepo) GetUserByUsername(ctx context.Context, username string) (*usecase.User, error) {
	var u usecase.User
	err := r.data.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash FROM users WHERE username = $1`,
		username).Scan(&u.ID, &u.Username, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, kerrors.NotFound("USER_NOT_FOUND", "user not found")
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// IncrementUsage 单条语句完成跨天清零和累加，避免读改写竞态
func (r *userRepo) IncrementUsage(ctx context.Context, id int, day string) (int, error) {
	var count int
	err := r.data.db.QueryRowContext(ctx, `
		UPDATE users
		SET usage_count = CASE WHEN usage_date = $2 THEN usage_count + 1 ELSE 1 END,
		    usage_date = $2
		WHERE id = $1
		RETURNING usage_count`,
		id, day).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
