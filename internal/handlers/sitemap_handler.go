package handlers

import (
	"encoding/xml"
	"net/http"
	"net/url"
	"time"

	"devfolio/internal/service"

	"github.com/gin-gonic/gin"
)

type SitemapHandler struct {
	projects service.ProjectService
	articles service.ArticleService
	siteURL  string
}

func NewSitemapHandler(projects service.ProjectService, articles service.ArticleService, siteURL string) *SitemapHandler {
	return &SitemapHandler{
		projects: projects,
		articles: articles,
		siteURL:  siteURL,
	}
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Get отдает sitemap.xml: статичные страницы, проекты и статьи
func (h *SitemapHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	projectsLastMod := h.projects.LatestUpdate(ctx).Format("2006-01-02")

	urls := []sitemapURL{
		{Loc: h.siteURL + "/", LastMod: projectsLastMod},
		{Loc: h.siteURL + "/projects", LastMod: projectsLastMod},
		{Loc: h.siteURL + "/blog"},
		{Loc: h.siteURL + "/contact"},
	}

	projects, err := h.projects.GetAll(ctx)
	if err == nil {
		for _, p := range projects {
			urls = append(urls, sitemapURL{
				Loc:     h.siteURL + "/projects/" + url.PathEscape(p.Name),
				LastMod: p.UpdatedAt.Format("2006-01-02"),
			})
		}
	}

	articles, _, err := h.articles.GetPublished(ctx, 1, 50)
	if err == nil {
		for _, a := range articles {
			lastMod := a.PublishedAt
			if lastMod.IsZero() {
				lastMod = time.Now().UTC()
			}
			urls = append(urls, sitemapURL{
				Loc:     h.siteURL + "/blog/" + url.PathEscape(a.Slug),
				LastMod: lastMod.Format("2006-01-02"),
			})
		}
	}

	c.XML(http.StatusOK, sitemapURLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	})
}
