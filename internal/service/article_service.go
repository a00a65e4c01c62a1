package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"devfolio/internal/models"
	"devfolio/internal/repository"
)

type ArticleService interface {
	GetPublished(ctx context.Context, page, limit int) ([]models.Article, int64, error)
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	GetByID(ctx context.Context, id uint) (*models.Article, error)
	GetAll(ctx context.Context) ([]models.Article, error)
	Create(ctx context.Context, article *models.Article) error
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id uint) error
}

type articleService struct {
	repo repository.ArticleRepository
}

func NewArticleService(repo repository.ArticleRepository) ArticleService {
	return &articleService{repo: repo}
}

func (s *articleService) GetPublished(ctx context.Context, page, limit int) ([]models.Article, int64, error) {
	articles, err := s.repo.GetPublished(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("get published articles: %w", err)
	}

	total, err := s.repo.CountPublished(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count published articles: %w", err)
	}

	return articles, total, nil
}

func (s *articleService) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *articleService) GetByID(ctx context.Context, id uint) (*models.Article, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *articleService) GetAll(ctx context.Context) ([]models.Article, error) {
	return s.repo.GetAll(ctx)
}

func (s *articleService) Create(ctx context.Context, article *models.Article) error {
	if article.Slug == "" {
		article.Slug = Slugify(article.Title)
	}
	if article.IsPublished && article.PublishedAt.IsZero() {
		article.PublishedAt = time.Now().UTC()
	}
	return s.repo.Create(ctx, article)
}

func (s *articleService) Update(ctx context.Context, article *models.Article) error {
	if article.IsPublished && article.PublishedAt.IsZero() {
		article.PublishedAt = time.Now().UTC()
	}
	return s.repo.Update(ctx, article)
}

func (s *articleService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// Slugify - url-безопасный слаг из заголовка
func Slugify(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
