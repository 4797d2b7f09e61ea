package domain

import (
	"context"
	"time"
)

type ContactCategory string

const (
	ContactCategoryGeneral  ContactCategory = "general"
	ContactCategorySupport  ContactCategory = "support"
	ContactCategoryFeedback ContactCategory = "feedback"
	ContactCategoryBusiness ContactCategory = "business"
)

type ContactMessage struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Category  ContactCategory `json:"category"`
	Message   string          `json:"message"`
	CreatedAt time.Time       `json:"createdAt"`
}

type ContactInput struct {
	Name     string          `json:"name" validate:"required,max=100,no_emoji"`
	Email    string          `json:"email" validate:"required,email,max=254"`
	Category ContactCategory `json:"category" validate:"required,oneof=general support feedback business"`
	Message  string          `json:"message" validate:"required,max=2000"`
}

type ContactRepository interface {
	Create(ctx context.Context, msg *ContactMessage) error
	GetByID(ctx context.Context, id string) (*ContactMessage, error)
}

type ContactUsecase interface {
	Submit(ctx context.Context, input ContactInput) (*ContactMessage, error)
	Get(ctx context.Context, id string) (*ContactMessage, error)
}
