package model

import (
	"errors"
	"time"
)

// Planification reserves one unit of daily capacity for an essai on its send
// date. The scheduler counts rows per (type, date) against the Capacite
// table; check-and-reserve runs in a single transaction so the advisory
// count stays accurate under concurrent schedulers.
type Planification struct {
	ID              string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	EssaiID         string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"essai_id"`
	TypeEssai       string    `gorm:"type:varchar(20);not null;index:idx_planifications_type_date,priority:1" json:"type_essai"`
	DatePlanifiee   time.Time `gorm:"type:date;not null;index:idx_planifications_type_date,priority:2" json:"date_planifiee"`
	DateFinPrevue   time.Time `gorm:"type:date;not null" json:"date_fin_prevue"`
	CapaciteForcee  bool      `gorm:"not null;default:false" json:"capacite_forcee"`
	NotesPlanif     string    `gorm:"type:text" json:"notes_planification"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}

// TableName sets the table name.
func (Planification) TableName() string {
	return "planifications_essais"
}

// Validate checks the planification record.
func (p *Planification) Validate() error {
	if p.ID == "" {
		return errors.New("planification ID is required")
	}
	if p.EssaiID == "" {
		return errors.New("essai ID is required")
	}
	if p.TypeEssai == "" {
		return errors.New("essai type is required")
	}
	if p.DatePlanifiee.IsZero() {
		return errors.New("planned date is required")
	}
	return nil
}
