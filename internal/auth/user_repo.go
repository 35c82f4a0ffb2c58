package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shariorfarhan07/zartaaz-sub000/internal/domain/user"
)

type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{db: db}
}

const userCols = `id, email, name, avatar_url, password_hash, role, is_active, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.AvatarURL, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *UserRepo) Create(ctx context.Context, email, name, passwordHash, role string) (user.User, error) {
	return scanUser(r.db.QueryRow(ctx, `
		INSERT INTO users (email, name, password_hash, role)
		VALUES ($1,$2,$3,$4)
		RETURNING `+userCols+`
	`, email, name, passwordHash, role))
}

func (r *UserRepo) ByEmail(ctx context.Context, email string) (user.User, error) {
	return scanUser(r.db.QueryRow(ctx, `
		SELECT `+userCols+` FROM users WHERE email=$1
	`, email))
}

func (r *UserRepo) ByID(ctx context.Context, id int64) (user.User, error) {
	return scanUser(r.db.QueryRow(ctx, `
		SELECT `+userCols+` FROM users WHERE id=$1
	`, id))
}

func (r *UserRepo) UpdateProfile(ctx context.Context, id int64, name, avatarURL *string) (user.User, error) {
	return scanUser(r.db.QueryRow(ctx, `
		UPDATE users
		SET name = COALESCE($2, name),
		    avatar_url = COALESCE($3, avatar_url),
		    updated_at = now()
		WHERE id = $1
		RETURNING `+userCols+`
	`, id, name, avatarURL))
}

func (r *UserRepo) UpdatePassword(ctx context.Context, userID int64, newHash string) error {
	ct, err := r.db.Exec(ctx, `UPDATE users SET password_hash=$1, updated_at=now() WHERE id=$2`, newHash, userID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errors.New("user not found")
	}
	return nil
}
