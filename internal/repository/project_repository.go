package repository

import (
	"context"
	"errors"
	"time"

	"devfolio/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectRepository interface {
	GetAll(ctx context.Context) ([]models.Project, error)
	GetByName(ctx context.Context, name string) (*models.Project, error)
	GetPaginated(ctx context.Context, page, limit int) ([]models.Project, error)
	BulkUpsert(ctx context.Context, projects []models.Project) error
	LatestUpdate(ctx context.Context) (time.Time, error)
	Count(ctx context.Context) (int64, error)
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) GetAll(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).Find(&projects).Error
	return projects, err
}

func (r *projectRepository) GetByName(ctx context.Context, name string) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).First(&project, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) GetPaginated(ctx context.Context, page, limit int) ([]models.Project, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 6
	}

	offset := (page - 1) * limit

	var projects []models.Project
	err := r.db.WithContext(ctx).
		Order("stars DESC, name ASC").
		Offset(offset).
		Limit(limit).
		Find(&projects).
		Error

	return projects, err
}

// BulkUpsert сохраняет результат синхронизации одной транзакцией.
// Естественный ключ - url: повторный запуск обновляет записи на месте,
// уникальный индекс в БД закрывает гонку двух параллельных запусков.
func (r *projectRepository) BulkUpsert(ctx context.Context, projects []models.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, project := range projects {
			if project.URL == "" {
				continue
			}

			var existing models.Project
			err := tx.Where("url = ?", project.URL).First(&existing).Error

			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Конфликт по url (вторая синхронизация успела вставить
				// строку раньше нас) превращаем в update, а не в ошибку.
				err := tx.Clauses(clause.OnConflict{
					Columns: []clause.Column{{Name: "url"}},
					DoUpdates: clause.AssignmentColumns([]string{
						"name", "description", "stars", "language", "readme_content", "updated_at",
					}),
				}).Create(&project).Error
				if err != nil {
					return err
				}
			} else if err == nil {
				project.ID = existing.ID
				project.CreatedAt = existing.CreatedAt
				if err := tx.Save(&project).Error; err != nil {
					return err
				}
			} else {
				return err
			}
		}
		return nil
	})
}

// LatestUpdate - время последнего обновления для sitemap.
// Пустая таблица не ошибка: возвращаем текущее время.
func (r *projectRepository) LatestUpdate(ctx context.Context) (time.Time, error) {
	var project models.Project
	err := r.db.WithContext(ctx).Order("updated_at DESC").First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Now().UTC(), nil
	}
	if err != nil {
		return time.Now().UTC(), err
	}
	return project.UpdatedAt, nil
}

func (r *projectRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Project{}).Count(&count).Error
	return count, err
}
