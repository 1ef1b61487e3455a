package db

import (
	"github.com/terraincognita07/localediff/internal/models"
	"gorm.io/gorm"
)

type FileChangeRepository struct {
	database *gorm.DB
}

func NewFileChangeRepository(database *gorm.DB) *FileChangeRepository {
	return &FileChangeRepository{database: database}
}

func (repo *FileChangeRepository) Create(change *models.TranslationFileChange) error {
	return repo.database.Create(change).Error
}

func (repo *FileChangeRepository) ListByFile(fileName string, limit int) ([]models.TranslationFileChange, error) {
	changes := make([]models.TranslationFileChange, 0)
	if err := repo.database.
		Where("file_name = ?", fileName).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&changes).Error; err != nil {
		return nil, err
	}
	return changes, nil
}
