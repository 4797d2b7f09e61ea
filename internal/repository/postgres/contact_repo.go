package postgres

import (
	"context"
	"time"

	"job-board-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type contactRepo struct {
	db *pgxpool.Pool
}

func NewContactRepository(db *pgxpool.Pool) domain.ContactRepository {
	return &contactRepo{db: db}
}

func (r *contactRepo) Create(ctx context.Context, msg *domain.ContactMessage) error {
	msg.ID = uuid.NewString()
	msg.CreatedAt = time.Now().UTC()

	query := `INSERT INTO contact_messages (id, name, email, category, message, created_at)
              VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, query, msg.ID, msg.Name, msg.Email, msg.Category, msg.Message, msg.CreatedAt)
	if err != nil {
		msg.ID = ""
		return mapError(err)
	}
	return nil
}

func (r *contactRepo) GetByID(ctx context.Context, id string) (*domain.ContactMessage, error) {
	query := `SELECT id, name, email, category, message, created_at FROM contact_messages WHERE id = $1`
	var m domain.ContactMessage
	err := r.db.QueryRow(ctx, query, id).Scan(&m.ID, &m.Name, &m.Email, &m.Category, &m.Message, &m.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &m, nil
}
