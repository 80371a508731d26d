package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/youssefkhaled23/factory-system-backend/internal/apperrors"
	"github.com/youssefkhaled23/factory-system-backend/internal/core/domain"
	portsrepo "github.com/youssefkhaled23/factory-system-backend/internal/core/ports/repositories"
	"github.com/youssefkhaled23/factory-system-backend/internal/models"
	"github.com/youssefkhaled23/factory-system-backend/internal/utils/mapping"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository{Pool: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const selectUserWithRole = `
	SELECT u.user_id, u.name, u.email, u.password_hash, u.refresh_token_hash, u.status,
	       u.last_login, u.role_id, u.created_at, u.created_by, u.last_updated_at, u.last_updated_by,
	       r.role_id, r.name, r.role_key, r.created_at, r.updated_at
	FROM users u
	JOIN roles r ON r.role_id = u.role_id`

func scanUser(row pgx.Row) (models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Name,
		&m.Email,
		&m.PasswordHash,
		&m.RefreshTokenHash,
		&m.Status,
		&m.LastLogin,
		&m.RoleID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Role.RoleID,
		&m.Role.Name,
		&m.Role.RoleKey,
		&m.Role.CreatedAt,
		&m.Role.UpdatedAt,
	)
	return m, err
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	if !isValidID(userID) {
		return nil, apperrors.ErrNotFound
	}

	m, err := scanUser(r.Pool.QueryRow(ctx, selectUserWithRole+` WHERE u.user_id = $1`, userID))
	if err != nil {
		return nil, classifyError(err, fmt.Sprintf("failed to find user by ID %s", userID))
	}

	user := mapping.ToDomainUser(m)
	return &user, nil
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	m, err := scanUser(r.Pool.QueryRow(ctx, selectUserWithRole+` WHERE u.email = $1`, email))
	if err != nil {
		return nil, classifyError(err, "failed to find user by email")
	}

	user := mapping.ToDomainUser(m)
	return &user, nil
}

func (r *PgxUserRepository) FindUsers(ctx context.Context, filter portsrepo.UserFilter) ([]domain.User, int, error) {
	where, args := buildUserWhere(filter)

	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM users u`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query := selectUserWithRole + where + ` ORDER BY u.created_at DESC, u.user_id`
	if filter.Limit > 0 {
		offset := filter.Offset
		if offset < 0 {
			offset = 0
		}
		args = append(args, filter.Limit, offset)
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	modelUsers := []models.User{}
	for rows.Next() {
		m, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user row: %w", err)
		}
		modelUsers = append(modelUsers, m)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("error iterating user rows: %w", rows.Err())
	}

	return mapping.ToDomainUserSlice(modelUsers), total, nil
}

func buildUserWhere(filter portsrepo.UserFilter) (string, []any) {
	var conditions []string
	var args []any

	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+escapeLike(search)+"%")
		conditions = append(conditions, fmt.Sprintf(`(u.name ILIKE $%d OR u.email ILIKE $%d)`, len(args), len(args)))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conditions = append(conditions, fmt.Sprintf(`u.status = $%d`, len(args)))
	}
	if filter.RoleID != "" {
		args = append(args, filter.RoleID)
		conditions = append(conditions, fmt.Sprintf(`u.role_id = $%d`, len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// SaveUser inserts a new row or updates the profile columns of an ACTIVE one.
// Status and session columns are left to the targeted updates below, so a
// stale read can never write them back.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (user_id, name, email, password_hash, refresh_token_hash, status, last_login,
		                   role_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			password_hash = EXCLUDED.password_hash,
			role_id = EXCLUDED.role_id,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
		WHERE users.status = 'ACTIVE';
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.UserID,
		m.Name,
		m.Email,
		m.PasswordHash,
		m.RefreshTokenHash,
		m.Status,
		m.LastLogin,
		m.RoleID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return classifyError(err, "failed to save user")
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", user.UserID, apperrors.ErrInvalidState)
	}
	return nil
}

func (r *PgxUserRepository) UpdateSession(ctx context.Context, userID string, update portsrepo.SessionUpdate) error {
	if !isValidID(userID) {
		return apperrors.ErrNotFound
	}

	query := `
		UPDATE users
		SET refresh_token_hash = $2, last_login = $3, last_updated_at = $4, last_updated_by = $5
		WHERE user_id = $1 AND status = 'ACTIVE'
		  AND ($6::text IS NULL OR refresh_token_hash = $6::text);
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		userID,
		update.RefreshTokenHash,
		update.LastLoginAt,
		update.UpdatedAt,
		update.UpdatedBy,
		update.PreviousRefreshTokenHash,
	)
	if err != nil {
		return classifyError(err, "failed to update session")
	}
	if cmdTag.RowsAffected() > 0 {
		return nil
	}

	if err := r.requireActive(ctx, userID); err != nil {
		return err
	}
	return fmt.Errorf("user %s: refresh token already rotated: %w", userID, apperrors.ErrInvalidCredentials)
}

func (r *PgxUserRepository) ClearSession(ctx context.Context, userID string, updatedAt time.Time, updatedBy string) error {
	if !isValidID(userID) {
		return apperrors.ErrNotFound
	}

	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE users
		SET refresh_token_hash = NULL, last_login = NULL, last_updated_at = $2, last_updated_by = $3
		WHERE user_id = $1`,
		userID, updatedAt, updatedBy)
	if err != nil {
		return classifyError(err, "failed to clear session")
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) UpdateStatus(ctx context.Context, userID string, status domain.UserStatus, updatedAt time.Time, updatedBy string) error {
	if !isValidID(userID) {
		return apperrors.ErrNotFound
	}

	query := `
		UPDATE users
		SET status = $2::text,
		    refresh_token_hash = CASE WHEN $2::text = 'ACTIVE' THEN refresh_token_hash END,
		    last_login = CASE WHEN $2::text = 'ACTIVE' THEN last_login END,
		    last_updated_at = $3, last_updated_by = $4
		WHERE user_id = $1 AND status = 'ACTIVE';
	`
	cmdTag, err := r.Pool.Exec(ctx, query, userID, string(status), updatedAt, updatedBy)
	if err != nil {
		return classifyError(err, "failed to update user status")
	}
	if cmdTag.RowsAffected() > 0 {
		return nil
	}

	if err := r.requireActive(ctx, userID); err != nil {
		return err
	}
	// The row turned ACTIVE again between the update and this read.
	return fmt.Errorf("user %s: status changed concurrently: %w", userID, apperrors.ErrInvalidState)
}

// requireActive explains why a guarded update touched no row.
func (r *PgxUserRepository) requireActive(ctx context.Context, userID string) error {
	var status string
	err := r.Pool.QueryRow(ctx, `SELECT status FROM users WHERE user_id = $1`, userID).Scan(&status)
	if err != nil {
		return classifyError(err, fmt.Sprintf("failed to read status of user %s", userID))
	}
	if domain.UserStatus(status) != domain.UserStatusActive {
		return fmt.Errorf("user %s is %s: %w", userID, status, apperrors.ErrInvalidState)
	}
	return nil
}

func (r *PgxUserRepository) DeleteUser(ctx context.Context, userID string) error {
	if !isValidID(userID) {
		return apperrors.ErrNotFound
	}

	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, userID)
	if err != nil {
		return classifyError(err, "failed to delete user")
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}
