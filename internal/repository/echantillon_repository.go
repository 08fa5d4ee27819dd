package repository

import (
	"fmt"
	"time"

	"github.com/fadelsew02/maxime-app-sub000/internal/model"
	"gorm.io/gorm"
)

// EchantillonRepository persists echantillons.
type EchantillonRepository interface {
	Save(e *model.Echantillon) error
	FindByCode(code string) (*model.Echantillon, error)
	FindByQRCode(qr string) (*model.Echantillon, error)
	FindByFilter(filter *EchantillonFilter) ([]*model.Echantillon, error)
	NextSequence(year time.Time) (int, error)
}

// EchantillonFilter narrows echantillon listings. Nil fields are ignored.
type EchantillonFilter struct {
	Statut     *string
	Priorite   *string
	ClientCode *string
	ChefProjet *string
}

type echantillonRepository struct {
	db *gorm.DB
}

// NewEchantillonRepository creates an echantillon repository.
func NewEchantillonRepository(db *gorm.DB) EchantillonRepository {
	return &echantillonRepository{db: db}
}

// Save persists an echantillon.
func (r *echantillonRepository) Save(e *model.Echantillon) error {
	return r.db.Save(e).Error
}

// FindByCode looks an echantillon up by its business code.
func (r *echantillonRepository) FindByCode(code string) (*model.Echantillon, error) {
	var e model.Echantillon
	if err := r.db.Where("code = ?", code).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// FindByQRCode looks an echantillon up by its public scan code.
func (r *echantillonRepository) FindByQRCode(qr string) (*model.Echantillon, error) {
	var e model.Echantillon
	if err := r.db.Where("qr_code = ?", qr).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// FindByFilter lists echantillons matching the filter, newest first.
func (r *echantillonRepository) FindByFilter(filter *EchantillonFilter) ([]*model.Echantillon, error) {
	var list []*model.Echantillon
	query := r.db.Model(&model.Echantillon{})

	if filter != nil {
		if filter.Statut != nil {
			query = query.Where("statut = ?", *filter.Statut)
		}
		if filter.Priorite != nil {
			query = query.Where("priorite = ?", *filter.Priorite)
		}
		if filter.ClientCode != nil {
			query = query.Where("client_code = ?", *filter.ClientCode)
		}
		if filter.ChefProjet != nil {
			query = query.Where("chef_projet = ?", *filter.ChefProjet)
		}
	}

	err := query.Order("created_at DESC").Find(&list).Error
	return list, err
}

// NextSequence returns the next S-NNNN/YY sequence number for the given year.
// Sequences restart at 1 every year.
func (r *echantillonRepository) NextSequence(year time.Time) (int, error) {
	suffix := fmt.Sprintf("/%02d", year.Year()%100)
	var count int64
	err := r.db.Model(&model.Echantillon{}).
		Where("code LIKE ?", "%"+suffix).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count) + 1, nil
}
