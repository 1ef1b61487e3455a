package db

import (
	"github.com/terraincognita07/localediff/internal/models"
	"gorm.io/gorm"
)

type DiffRunRepository struct {
	database *gorm.DB
}

func NewDiffRunRepository(database *gorm.DB) *DiffRunRepository {
	return &DiffRunRepository{database: database}
}

func (repo *DiffRunRepository) Create(run *models.DiffRun) error {
	return repo.database.Create(run).Error
}

func (repo *DiffRunRepository) ListRecent(limit int) ([]models.DiffRun, error) {
	runs := make([]models.DiffRun, 0)
	if err := repo.database.Order("created_at DESC, id DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}
