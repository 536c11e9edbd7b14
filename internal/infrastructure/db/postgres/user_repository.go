package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"github.com/innsight/hotel-admin/internal/core/domain"
	"github.com/innsight/hotel-admin/internal/core/ports"
)

const uniqueViolation = "23505"

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id         UUID PRIMARY KEY,
	email      TEXT NOT NULL UNIQUE,
	name       TEXT,
	role       TEXT NOT NULL CHECK (role IN ('HOUSEKEEPING', 'FRONT_DESK', 'ADMIN', 'SUPER_ADMIN')),
	password   TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS users_single_super_admin ON users (role) WHERE role = 'SUPER_ADMIN';
CREATE INDEX IF NOT EXISTS users_created_at ON users (created_at DESC);
`

const selectUser = `SELECT id, email, name, role, password, created_at FROM users`

type UserRepository struct {
	db *sql.DB
	// timeout bounds each repository call.
	timeout time.Duration
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db, timeout: defaultTimeout}
}

func (r *UserRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// EnsureSchema creates the users table and its indexes.
func (r *UserRepository) EnsureSchema(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure users table: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	created := *user
	created.ID = uuid.NewString()
	created.CreatedAt = user.CreatedAt.UTC().Truncate(time.Microsecond)
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, name, role, password, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		created.ID, created.Email, nullable(created.Name), string(created.Role), created.PasswordHash, created.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &created, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, selectUser+` WHERE id = $1`, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, selectUser+` WHERE email = $1`, email)
}

func (r *UserRepository) findOne(ctx context.Context, query string, args ...any) (*domain.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	u, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) ExistsWithRole(ctx context.Context, role domain.Role) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE role = $1)`, string(role)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("count users by role: %w", err)
	}
	return exists, nil
}

// List runs the page query and the count concurrently with the same WHERE
// clause and arguments.
func (r *UserRepository) List(ctx context.Context, f domain.UserFilter) ([]*domain.User, int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	where, args := searchClause(f.Search)

	var (
		users []*domain.User
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n := len(args)
		query := fmt.Sprintf("%s%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", selectUser, where, n+1, n+2)
		rows, err := r.db.QueryContext(gctx, query, append(args[:n:n], f.Limit, f.Skip)...)
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		defer rows.Close()

		users = make([]*domain.User, 0, f.Limit)
		for rows.Next() {
			u, err := scanUser(rows)
			if err != nil {
				return fmt.Errorf("scan user: %w", err)
			}
			users = append(users, u)
		}
		return rows.Err()
	})
	g.Go(func() error {
		if err := r.db.QueryRowContext(gctx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepository) Update(ctx context.Context, id string, patch domain.UserPatch) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrUserNotFound
	}

	var (
		sets []string
		args []any
	)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.Name != nil {
		add("name", nullable(*patch.Name))
	}
	if patch.Role != nil {
		add("role", string(*patch.Role))
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	return expectOne(res)
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return expectOne(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*domain.User, error) {
	var (
		u    domain.User
		name sql.NullString
		role string
	)
	if err := s.Scan(&u.ID, &u.Email, &name, &role, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Name = name.String
	u.Role = domain.Role(role)
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// searchClause matches phrase case-insensitively anywhere in email or name.
func searchClause(phrase string) (string, []any) {
	if phrase == "" {
		return "", nil
	}
	return ` WHERE (email ILIKE $1 ESCAPE '\' OR name ILIKE $1 ESCAPE '\')`, []any{"%" + escapeLike(phrase) + "%"}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
