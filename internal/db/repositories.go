package db

import "gorm.io/gorm"

type Repositories struct {
	DiffRuns    *DiffRunRepository
	FileChanges *FileChangeRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		DiffRuns:    NewDiffRunRepository(database),
		FileChanges: NewFileChangeRepository(database),
	}
}
