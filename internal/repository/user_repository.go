package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ada-support/helpdesk/internal/domain"
)

// ticketIDsSubquery derives the user's owned ticket ids. The back-reference is
// computed from the tickets table rather than stored on the user row.
const ticketIDsSubquery = `COALESCE((SELECT array_agg(t.id::text ORDER BY t.created_at) FROM tickets t WHERE t.emp_id = u.emp_id), '{}')`

// UserRepository defines persistence access for identity records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) (int64, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByEmpID(ctx context.Context, empID int64) (*domain.User, error)
	ListAll(ctx context.Context) ([]domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (first_name, last_name, email, emp_id, process, role, password_hash, job_title, phone)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		user.FirstName,
		user.LastName,
		user.Email,
		user.EmpID,
		user.Process,
		user.Role,
		user.PasswordHash,
		user.JobTitle,
		user.Phone,
	).Scan(&user.ID, &user.CreatedAt)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET first_name=$1, last_name=$2, role=$3, job_title=$4, phone=$5, password_hash=$6
        WHERE id=$7`

	cmd, err := r.pool.Exec(ctx, query,
		user.FirstName,
		user.LastName,
		user.Role,
		user.JobTitle,
		user.Phone,
		user.PasswordHash,
		user.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.fetchOne(ctx, `u.id=$1`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.fetchOne(ctx, `u.email=$1`, email)
}

func (r *userRepository) GetByEmpID(ctx context.Context, empID int64) (*domain.User, error) {
	return r.fetchOne(ctx, `u.emp_id=$1`, empID)
}

func (r *userRepository) fetchOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	query := `
        SELECT u.id, u.first_name, u.last_name, u.email, u.emp_id, u.process, u.role,
               u.password_hash, u.job_title, u.phone, u.created_at, ` + ticketIDsSubquery + `
        FROM users u WHERE ` + where

	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.EmpID,
		&user.Process,
		&user.Role,
		&user.PasswordHash,
		&user.JobTitle,
		&user.Phone,
		&user.CreatedAt,
		&user.TicketIDs,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ListAll(ctx context.Context) ([]domain.User, error) {
	query := `
        SELECT u.id, u.first_name, u.last_name, u.email, u.emp_id, u.process, u.role,
               u.password_hash, u.job_title, u.phone, u.created_at, ` + ticketIDsSubquery + `
        FROM users u ORDER BY u.created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.FirstName,
			&user.LastName,
			&user.Email,
			&user.EmpID,
			&user.Process,
			&user.Role,
			&user.PasswordHash,
			&user.JobTitle,
			&user.Phone,
			&user.CreatedAt,
			&user.TicketIDs,
		); err != nil {
			return nil, err
		}
		result = append(result, user)
	}
	return result, rows.Err()
}
