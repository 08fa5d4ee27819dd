package repository

import (
	"github.com/fadelsew02/maxime-app-sub000/internal/model"
	"gorm.io/gorm"
)

// CapaciteRepository persists per-type daily capacity limits.
type CapaciteRepository interface {
	Save(c *model.Capacite) error
	FindByType(typeEssai string) (*model.Capacite, error)
	FindAll() ([]*model.Capacite, error)
}

type capaciteRepository struct {
	db *gorm.DB
}

// NewCapaciteRepository creates a capacity repository.
func NewCapaciteRepository(db *gorm.DB) CapaciteRepository {
	return &capaciteRepository{db: db}
}

// Save persists a capacity row.
func (r *capaciteRepository) Save(c *model.Capacite) error {
	return r.db.Save(c).Error
}

// FindByType returns the capacity row for an essai type.
func (r *capaciteRepository) FindByType(typeEssai string) (*model.Capacite, error) {
	var c model.Capacite
	if err := r.db.Where("type_essai = ?", typeEssai).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// FindAll returns every capacity row.
func (r *capaciteRepository) FindAll() ([]*model.Capacite, error) {
	var list []*model.Capacite
	err := r.db.Order("type_essai ASC").Find(&list).Error
	return list, err
}
