package model

import (
	"errors"
	"time"
)

// Client is a customer of the laboratory. Created once at intake, referenced
// by echantillons through its immutable business code (CLI-NNN).
type Client struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Code      string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"code"`
	Nom       string    `gorm:"type:varchar(200);not null" json:"nom"`
	Projet    string    `gorm:"type:varchar(300)" json:"projet"`
	Contact   string    `gorm:"type:varchar(200)" json:"contact"`
	Telephone string    `gorm:"type:varchar(20)" json:"telephone"`
	Email     string    `gorm:"type:varchar(254)" json:"email"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// TableName sets the table name.
func (Client) TableName() string {
	return "clients"
}

// Validate checks the client record.
func (c *Client) Validate() error {
	if c.ID == "" {
		return errors.New("client ID is required")
	}
	if c.Code == "" {
		return errors.New("client code is required")
	}
	if c.Nom == "" {
		return errors.New("client name is required")
	}
	return nil
}
