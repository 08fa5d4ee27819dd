package repository

import (
	"github.com/fadelsew02/maxime-app-sub000/internal/model"
	"gorm.io/gorm"
)

// EssaiRepository persists essais.
type EssaiRepository interface {
	Save(e *model.Essai) error
	FindByID(id string) (*model.Essai, error)
	FindByEchantillonCode(code string) ([]model.Essai, error)
	FindByFilter(filter *EssaiFilter) ([]*model.Essai, error)
	FindRejected(section string) ([]*model.Essai, error)
}

// EssaiFilter narrows essai listings. Nil fields are ignored.
type EssaiFilter struct {
	Statut           *string
	StatutValidation *string
	Section          *string
	Type             *string
	EchantillonCode  *string
}

type essaiRepository struct {
	db *gorm.DB
}

// NewEssaiRepository creates an essai repository.
func NewEssaiRepository(db *gorm.DB) EssaiRepository {
	return &essaiRepository{db: db}
}

// Save persists an essai.
func (r *essaiRepository) Save(e *model.Essai) error {
	return r.db.Save(e).Error
}

// FindByID looks an essai up by ID.
func (r *essaiRepository) FindByID(id string) (*model.Essai, error) {
	var e model.Essai
	if err := r.db.Where("id = ?", id).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// FindByEchantillonCode returns every essai of an echantillon.
func (r *essaiRepository) FindByEchantillonCode(code string) ([]model.Essai, error) {
	var list []model.Essai
	err := r.db.Where("echantillon_code = ?", code).Order("created_at ASC").Find(&list).Error
	return list, err
}

// FindByFilter lists essais matching the filter, urgent first then oldest
// first, the order the section dashboards work through their queue.
func (r *essaiRepository) FindByFilter(filter *EssaiFilter) ([]*model.Essai, error) {
	var list []*model.Essai
	query := r.db.Model(&model.Essai{})

	if filter != nil {
		if filter.Statut != nil {
			query = query.Where("statut = ?", *filter.Statut)
		}
		if filter.StatutValidation != nil {
			query = query.Where("statut_validation = ?", *filter.StatutValidation)
		}
		if filter.Section != nil {
			query = query.Where("section = ?", *filter.Section)
		}
		if filter.Type != nil {
			query = query.Where("type = ?", *filter.Type)
		}
		if filter.EchantillonCode != nil {
			query = query.Where("echantillon_code = ?", *filter.EchantillonCode)
		}
	}

	err := query.Order("CASE priorite WHEN 'urgente' THEN 0 ELSE 1 END, created_at ASC").Find(&list).Error
	return list, err
}

// FindRejected returns every essai that was rejected at least once, the
// permanent trace behind the rejected-essais views. An empty section matches
// both sections.
func (r *essaiRepository) FindRejected(section string) ([]*model.Essai, error) {
	var list []*model.Essai
	query := r.db.Model(&model.Essai{}).Where("date_rejet IS NOT NULL")
	if section != "" {
		query = query.Where("section = ?", section)
	}
	err := query.Order("date_rejet DESC").Find(&list).Error
	return list, err
}
