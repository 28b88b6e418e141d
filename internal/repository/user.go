package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/query"
	"github.com/jackc/pgx/v5"
)

const (
	getUserWithEmailSQL = `SELECT id, name, email, password FROM users WHERE email LIKE $1 ORDER BY id LIMIT 1`
	getUserWithIDSQL    = `SELECT id, name, email, password FROM users WHERE id = $1`
	addUserSQL          = `INSERT INTO users (name, email, password) VALUES ($1, $2, $3) RETURNING id, name, email, password`
)

// UserRepository reads and writes the users table.
type UserRepository struct {
	executor
}

// NewUserRepository returns a UserRepository running on db.
func NewUserRepository(db DBTX, opts Options) *UserRepository {
	return &UserRepository{executor: newExecutor(db, opts)}
}

// GetUserWithEmail returns the lowest-id user whose email contains email.
// Wildcards in email match literally.
func (r *UserRepository) GetUserWithEmail(ctx context.Context, email string) (*model.User, error) {
	if email == "" {
		return nil, errs.InvalidField("email", "is required")
	}

	var user model.User
	err := r.run(ctx, "GetUserWithEmail", func(ctx context.Context) error {
		rows, err := r.db.Query(ctx, getUserWithEmailSQL, "%"+query.EscapeLike(email)+"%")
		if err != nil {
			return err
		}
		user, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		if err != nil {
			return fmt.Errorf("table:users: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserWithID returns the user with id, or a NotFound error.
func (r *UserRepository) GetUserWithID(ctx context.Context, id int) (*model.User, error) {
	var user model.User
	err := r.run(ctx, "GetUserWithID", func(ctx context.Context) error {
		rows, err := r.db.Query(ctx, getUserWithIDSQL, id)
		if err != nil {
			return err
		}
		user, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		if err != nil {
			return fmt.Errorf("table:users: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// AddUser inserts u and returns the stored row with its generated id.
func (r *UserRepository) AddUser(ctx context.Context, u model.NewUser) (*model.User, error) {
	var user model.User
	err := r.run(ctx, "AddUser", func(ctx context.Context) error {
		return r.db.QueryRow(ctx, addUserSQL, u.Name, u.Email, u.Password).
			Scan(&user.ID, &user.Name, &user.Email, &user.Password)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
