package repository

import (
	"github.com/fadelsew02/maxime-app-sub000/internal/model"
	"gorm.io/gorm"
)

// ValidationHistoryRepository persists approval chain decisions. Append-only.
type ValidationHistoryRepository interface {
	Save(v *model.ValidationHistory) error
	FindByEchantillonCode(code string) ([]*model.ValidationHistory, error)
}

type validationHistoryRepository struct {
	db *gorm.DB
}

// NewValidationHistoryRepository creates a validation history repository.
func NewValidationHistoryRepository(db *gorm.DB) ValidationHistoryRepository {
	return &validationHistoryRepository{db: db}
}

// Save appends a chain decision.
func (r *validationHistoryRepository) Save(v *model.ValidationHistory) error {
	return r.db.Create(v).Error
}

// FindByEchantillonCode returns the decision trail of one echantillon,
// oldest first.
func (r *validationHistoryRepository) FindByEchantillonCode(code string) ([]*model.ValidationHistory, error) {
	var list []*model.ValidationHistory
	err := r.db.Where("echantillon_code = ?", code).Order("created_at ASC").Find(&list).Error
	return list, err
}
