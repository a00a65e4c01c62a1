package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"devfolio/internal/clients"
	"devfolio/internal/models"
	"devfolio/internal/repository"
)

const (
	projectListCachePrefix = "projects:list:"
	languageFallback       = "General"
)

type SyncResult struct {
	Status  string `json:"status"`
	Reason  string `json:"reason,omitempty"`
	New     int    `json:"new_count"`
	Updated int    `json:"updated_count"`
	Total   int    `json:"total_synced"`
}

type ProjectService interface {
	// Sync приводит локальные записи в соответствие со списком
	// репозиториев на GitHub. Пустой или недоступный список - no-op
	// со статусом "skipped", существующие записи не трогаются.
	Sync(ctx context.Context) (SyncResult, error)
	GetAll(ctx context.Context) ([]models.Project, error)
	GetPaginated(ctx context.Context, page, limit int) ([]models.Project, error)
	GetByName(ctx context.Context, name string) (*models.Project, error)
	LatestUpdate(ctx context.Context) time.Time
	Count(ctx context.Context) (int64, error)
}

type projectService struct {
	repo      repository.ProjectRepository
	cacheRepo repository.CacheRepository
	client    clients.GitHubClient
}

func NewProjectService(
	repo repository.ProjectRepository,
	cacheRepo repository.CacheRepository,
	client clients.GitHubClient,
) ProjectService {
	return &projectService{
		repo:      repo,
		cacheRepo: cacheRepo,
		client:    client,
	}
}

func (s *projectService) Sync(ctx context.Context) (SyncResult, error) {
	repos, err := s.client.ListRepositories(ctx)
	if err != nil {
		// Недоступный GitHub не должен опустошать локальные данные
		log.Printf("Project sync: repository list fetch failed: %v", err)
		return SyncResult{Status: "skipped", Reason: "repository list unavailable"}, nil
	}

	// Бизнес-фильтры: без форков, без репозиториев без описания
	filtered := make([]clients.GitHubRepo, 0, len(repos))
	for _, repo := range repos {
		if repo.IsFork || repo.Description == "" {
			continue
		}
		if repo.Language == "" {
			repo.Language = languageFallback
		}
		filtered = append(filtered, repo)
	}

	if len(filtered) == 0 {
		return SyncResult{Status: "skipped", Reason: "no repositories found"}, nil
	}

	// Один проход по таблице вместо SELECT на каждый репозиторий
	existing, err := s.repo.GetAll(ctx)
	if err != nil {
		return SyncResult{}, fmt.Errorf("load existing projects: %w", err)
	}
	existingByURL := make(map[string]models.Project, len(existing))
	for _, p := range existing {
		existingByURL[p.URL] = p
	}

	now := time.Now().UTC()
	batch := make([]models.Project, 0, len(filtered))
	countNew, countUpdated := 0, 0

	for _, ghRepo := range filtered {
		// Сбой одного README не прерывает весь проход
		readme, readmeErr := s.client.FetchReadme(ctx, ghRepo.Name)
		if readmeErr != nil {
			log.Printf("Project sync: README fetch failed for %s: %v", ghRepo.Name, readmeErr)
		}

		if current, ok := existingByURL[ghRepo.URL]; ok {
			current.Name = ghRepo.Name
			current.Stars = ghRepo.Stars
			current.Description = ghRepo.Description
			current.Language = ghRepo.Language
			current.UpdatedAt = now
			// README перезаписываем только при подтвержденном фетче:
			// 404 и транзиентные сбои оставляют старое содержимое
			if readmeErr == nil && readme != "" {
				current.ReadmeContent = readme
			}
			batch = append(batch, current)
			countUpdated++
		} else {
			project := models.Project{
				Name:        ghRepo.Name,
				Description: ghRepo.Description,
				URL:         ghRepo.URL,
				Stars:       ghRepo.Stars,
				Language:    ghRepo.Language,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if readmeErr == nil {
				project.ReadmeContent = readme
			}
			batch = append(batch, project)
			countNew++
		}
	}

	// Единый коммит в конце прохода
	if err := s.repo.BulkUpsert(ctx, batch); err != nil {
		return SyncResult{}, fmt.Errorf("save projects: %w", err)
	}

	s.invalidateListCache(ctx)

	log.Printf("Project sync finished: %d new, %d updated, %d total", countNew, countUpdated, len(filtered))

	return SyncResult{
		Status:  "success",
		New:     countNew,
		Updated: countUpdated,
		Total:   len(filtered),
	}, nil
}

func (s *projectService) GetAll(ctx context.Context) ([]models.Project, error) {
	return s.repo.GetAll(ctx)
}

func (s *projectService) GetPaginated(ctx context.Context, page, limit int) ([]models.Project, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 6
	}

	cacheKey := fmt.Sprintf("%s%d:%d", projectListCachePrefix, page, limit)

	var cached []models.Project
	if err := s.cacheRepo.GetJSON(ctx, cacheKey, &cached); err == nil && len(cached) > 0 {
		return cached, nil
	}

	projects, err := s.repo.GetPaginated(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("get projects: %w", err)
	}

	if err := s.cacheRepo.SetJSON(ctx, cacheKey, projects, 5*time.Minute); err != nil {
		log.Printf("Failed to cache project list: %v", err)
	}

	return projects, nil
}

func (s *projectService) GetByName(ctx context.Context, name string) (*models.Project, error) {
	return s.repo.GetByName(ctx, name)
}

func (s *projectService) LatestUpdate(ctx context.Context) time.Time {
	latest, err := s.repo.LatestUpdate(ctx)
	if err != nil {
		log.Printf("Latest project update lookup failed: %v", err)
		return time.Now().UTC()
	}
	return latest
}

func (s *projectService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *projectService) invalidateListCache(ctx context.Context) {
	keys, err := s.cacheRepo.Keys(ctx, projectListCachePrefix+"*")
	if err != nil {
		log.Printf("Failed to list project cache keys: %v", err)
		return
	}
	if err := s.cacheRepo.Delete(ctx, keys...); err != nil {
		log.Printf("Failed to invalidate project cache: %v", err)
	}
}
