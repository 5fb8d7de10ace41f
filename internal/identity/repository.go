package identity

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no directory record matches the lookup.
var ErrNotFound = errors.New("identity not found")

// Repository reads user records from the directory.
type Repository interface {
	FindByPhone(ctx context.Context, phone string, role Role) (User, error)
	FindByID(ctx context.Context, id int64) (User, error)
}

// PostgresRepository implements Repository over the admins table.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed directory repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// FindByPhone fetches a user by phone number, restricted to the given role.
func (r *PostgresRepository) FindByPhone(ctx context.Context, phone string, role Role) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT id, username, first_name, last_name, phone, type_user, created
        FROM admins WHERE phone = $1 AND type_user = $2`, phone, int(role))
	return scanUser(row)
}

// FindByID fetches a user by its numeric identifier, regardless of role.
func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT id, username, first_name, last_name, phone, type_user, created
        FROM admins WHERE id = $1`, id)
	return scanUser(row)
}

func scanUser(row pgx.Row) (User, error) {
	var (
		user      User
		role      int
		createdAt time.Time
	)
	if err := row.Scan(&user.ID, &user.Username, &user.FirstName, &user.LastName, &user.Phone, &role, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	user.Role = Role(role)
	user.CreatedAt = createdAt.UTC()
	return user, nil
}
