package repository

import (
	"strconv"
	"strings"

	"github.com/fadelsew02/maxime-app-sub000/internal/model"
	"gorm.io/gorm"
)

// ClientRepository persists laboratory clients.
type ClientRepository interface {
	Save(client *model.Client) error
	FindByCode(code string) (*model.Client, error)
	FindAll() ([]*model.Client, error)
	NextSequence() (int, error)
}

type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a client repository.
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

// Save persists a client.
func (r *clientRepository) Save(client *model.Client) error {
	return r.db.Save(client).Error
}

// FindByCode looks a client up by its business code.
func (r *clientRepository) FindByCode(code string) (*model.Client, error) {
	var client model.Client
	if err := r.db.Where("code = ?", code).First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// FindAll returns all clients, newest first.
func (r *clientRepository) FindAll() ([]*model.Client, error) {
	var clients []*model.Client
	err := r.db.Order("created_at DESC").Find(&clients).Error
	return clients, err
}

// NextSequence returns the next CLI-NNN sequence number.
func (r *clientRepository) NextSequence() (int, error) {
	var last model.Client
	err := r.db.Order("code DESC").First(&last).Error
	if err == gorm.ErrRecordNotFound {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	parts := strings.SplitN(last.Code, "-", 2)
	if len(parts) != 2 {
		return 1, nil
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return 1, nil
	}
	return n + 1, nil
}
