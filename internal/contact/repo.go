package contact

import (
	"context"

	"gorm.io/gorm"

	"github.com/chexseeds/chexseeds-backend/pkg/db/models"
)

// Repository archives contact-form submissions.
type Repository interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a contact repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, msg *models.ContactMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}
