package model

import (
	"errors"
	"time"
)

// ValidationHistory is one decision of the hierarchical approval chain.
// Append-only: the audit trail survives rejection loops and resubmissions.
type ValidationHistory struct {
	ID              string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	EchantillonCode string    `gorm:"type:varchar(20);not null;index" json:"echantillon_code"`
	Niveau          string    `gorm:"type:varchar(30);not null" json:"niveau"` // acting role
	Action          string    `gorm:"type:varchar(10);not null" json:"action"` // valide/rejete
	Observations    string    `gorm:"type:text" json:"observations"`
	CreatedAt       time.Time `gorm:"not null;index" json:"created_at"`
}

// TableName sets the table name.
func (ValidationHistory) TableName() string {
	return "validation_history"
}

// Validate checks the history record.
func (v *ValidationHistory) Validate() error {
	if v.ID == "" {
		return errors.New("history ID is required")
	}
	if v.EchantillonCode == "" {
		return errors.New("echantillon code is required")
	}
	if v.Niveau == "" {
		return errors.New("niveau is required")
	}
	if v.Action == "" {
		return errors.New("action is required")
	}
	return nil
}
