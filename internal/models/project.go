package models

import (
	"strings"
	"time"
)

type Project struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"index;not null" json:"name"`
	Description   string    `gorm:"type:text" json:"description"`
	URL           string    `gorm:"uniqueIndex;not null" json:"url"`
	Stars         int       `gorm:"default:0" json:"stars"`
	Language      string    `gorm:"type:varchar(100)" json:"language"`
	ReadmeContent string    `gorm:"type:text" json:"readme_content,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RepoSlug возвращает имя репозитория из URL
func (p *Project) RepoSlug() string {
	if p.URL == "" {
		return p.Name
	}
	parts := strings.Split(strings.TrimRight(p.URL, "/"), "/")
	return parts[len(parts)-1]
}
