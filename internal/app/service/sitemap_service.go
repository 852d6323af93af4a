package service

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ikkim/bizdir-backend/internal/app/repository"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

var staticRoutes = []struct {
	path       string
	changeFreq string
	priority   string
}{
	{"/", "daily", "1.0"},
	{"/search", "daily", "0.8"},
	{"/categories", "weekly", "0.7"},
	{"/add-business", "monthly", "0.5"},
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type SitemapService interface {
	Generate(ctx context.Context) ([]byte, error)
}

type sitemapService struct {
	businessRepo repository.BusinessRepository
	baseURL      string
	now          func() time.Time
}

func NewSitemapService(businessRepo repository.BusinessRepository, baseURL string) SitemapService {
	return &sitemapService{
		businessRepo: businessRepo,
		baseURL:      strings.TrimRight(baseURL, "/"),
		now:          time.Now,
	}
}

// Generate renders the static routes followed by one entry per business
func (s *sitemapService) Generate(ctx context.Context) ([]byte, error) {
	entries, err := s.businessRepo.ListSitemapEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load sitemap entries: %w", err)
	}

	today := s.now().UTC().Format("2006-01-02")
	set := urlSet{
		Xmlns: sitemapNamespace,
		URLs:  make([]sitemapURL, 0, len(staticRoutes)+len(entries)),
	}
	for _, route := range staticRoutes {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        s.baseURL + route.path,
			LastMod:    today,
			ChangeFreq: route.changeFreq,
			Priority:   route.priority,
		})
	}
	for _, entry := range entries {
		modified := entry.CreatedAt
		if entry.UpdatedAt != nil && entry.UpdatedAt.After(modified) {
			modified = *entry.UpdatedAt
		}
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        s.baseURL + "/business/" + url.PathEscape(entry.Slug),
			LastMod:    modified.UTC().Format("2006-01-02"),
			ChangeFreq: "weekly",
			Priority:   "0.6",
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode sitemap: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
