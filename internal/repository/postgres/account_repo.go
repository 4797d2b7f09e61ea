package postgres

import (
	"context"
	"fmt"
	"time"

	"job-board-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const accountColumns = `id, name, email, phone, password_hash, is_verified, auth_provider,
	google_id, description, profile_picture, created_at, updated_at`

// accountStore implements the credential half of AccountRepository for one
// role table. Seekers and employers live in separate tables, so emails and
// phones are unique per role.
type accountStore struct {
	db    *pgxpool.Pool
	table string
}

func scanAccount(row pgx.Row, a *domain.Account, extra ...any) error {
	dest := append([]any{
		&a.ID, &a.Name, &a.Email, &a.Phone, &a.PasswordHash, &a.IsVerified, &a.AuthProvider,
		&a.GoogleID, &a.Description, &a.ProfilePicture, &a.CreatedAt, &a.UpdatedAt,
	}, extra...)
	return row.Scan(dest...)
}

// insert stores the account plus any role columns and fills in ID and timestamps.
func (s *accountStore) insert(ctx context.Context, a *domain.Account, extraCols []string, extraVals []any) error {
	now := time.Now().UTC()
	a.ID = uuid.NewString()
	a.CreatedAt = now
	a.UpdatedAt = now

	cols := []string{"id", "name", "email", "phone", "password_hash", "is_verified", "auth_provider",
		"google_id", "description", "profile_picture", "created_at", "updated_at"}
	vals := []any{a.ID, a.Name, a.Email, a.Phone, a.PasswordHash, a.IsVerified, a.AuthProvider,
		a.GoogleID, a.Description, a.ProfilePicture, a.CreatedAt, a.UpdatedAt}
	cols = append(cols, extraCols...)
	vals = append(vals, extraVals...)

	placeholders := ""
	quoted := ""
	for i, c := range cols {
		if i > 0 {
			placeholders += ", "
			quoted += ", "
		}
		placeholders += fmt.Sprintf("$%d", i+1)
		quoted += pq.QuoteIdentifier(c)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", pq.QuoteIdentifier(s.table), quoted, placeholders)
	if _, err := s.db.Exec(ctx, query, vals...); err != nil {
		a.ID = ""
		return mapError(err)
	}
	return nil
}

func (s *accountStore) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", accountColumns, pq.QuoteIdentifier(s.table))
	var a domain.Account
	if err := scanAccount(s.db.QueryRow(ctx, query, id), &a); err != nil {
		return nil, mapError(err)
	}
	return &a, nil
}

// GetByEmail matches the address exactly as stored.
func (s *accountStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE email = $1", accountColumns, pq.QuoteIdentifier(s.table))
	var a domain.Account
	if err := scanAccount(s.db.QueryRow(ctx, query, email), &a); err != nil {
		return nil, mapError(err)
	}
	return &a, nil
}

func (s *accountStore) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE phone = $1)", pq.QuoteIdentifier(s.table))
	var exists bool
	if err := s.db.QueryRow(ctx, query, phone).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (s *accountStore) MarkVerified(ctx context.Context, id string) error {
	query := fmt.Sprintf("UPDATE %s SET is_verified = TRUE, updated_at = NOW() WHERE id = $1", pq.QuoteIdentifier(s.table))
	tag, err := s.db.Exec(ctx, query, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete is a hard delete, used to roll back a registration whose code could not be sent.
func (s *accountStore) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", pq.QuoteIdentifier(s.table))
	tag, err := s.db.Exec(ctx, query, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// addToSet appends value to an array column unless it is already present.
func (s *accountStore) addToSet(ctx context.Context, column, id, value string) error {
	col := pq.QuoteIdentifier(column)
	query := fmt.Sprintf(`UPDATE %s
		SET %s = CASE WHEN $2 = ANY(%s) THEN %s ELSE array_append(%s, $2) END, updated_at = NOW()
		WHERE id = $1`, pq.QuoteIdentifier(s.table), col, col, col, col)
	tag, err := s.db.Exec(ctx, query, id, value)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
