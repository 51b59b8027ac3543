package service

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/arborhq/arbor/internal/markdown"
	"github.com/arborhq/arbor/internal/model"
)

type GuideService struct {
	parser      *markdown.Parser
	contentPath string
}

func NewGuideService(contentPath string) *GuideService {
	return &GuideService{
		parser:      markdown.NewParser(),
		contentPath: contentPath,
	}
}

func (s *GuideService) Guides() ([]*model.Guide, error) {
	pattern := filepath.Join(s.contentPath, "guides", "*.md")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}

	var guides []*model.Guide
	for _, file := range files {
		guide, err := s.Guide(strings.TrimSuffix(filepath.Base(file), ".md"))
		if err != nil {
			continue
		}
		guides = append(guides, guide)
	}

	sort.Slice(guides, func(i, j int) bool {
		return guides[i].Date.After(guides[j].Date)
	})

	return guides, nil
}

func (s *GuideService) Guide(slug string) (*model.Guide, error) {
	path := filepath.Join(s.contentPath, "guides", slug+".md")
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("guide not found: %s", slug)
	}

	htmlContent, meta, err := s.parser.ParseWithFrontmatter(content)
	if err != nil {
		return nil, err
	}

	guide := &model.Guide{
		Slug:        slug,
		HTMLContent: string(htmlContent),
		Content:     string(content),
	}

	if title, ok := meta["title"].(string); ok {
		guide.Title = title
	}

	if author, ok := meta["author"].(string); ok {
		guide.Author = author
	}

	if description, ok := meta["description"].(string); ok {
		guide.Description = description
	}

	if dateStr, ok := meta["date"].(string); ok {
		if date, err := time.Parse("2006-01-02", dateStr); err == nil {
			guide.Date = date
		}
	}

	if tags, ok := meta["tags"].([]any); ok {
		for _, tag := range tags {
			if tagStr, ok := tag.(string); ok {
				guide.Tags = append(guide.Tags, tagStr)
			}
		}
	}

	return guide, nil
}

func (s *GuideService) GuidesByTag(tag string) ([]*model.Guide, error) {
	allGuides, err := s.Guides()
	if err != nil {
		return nil, err
	}

	var guides []*model.Guide
	for _, guide := range allGuides {
		for _, guideTag := range guide.Tags {
			if strings.EqualFold(guideTag, tag) {
				guides = append(guides, guide)
				break
			}
		}
	}

	return guides, nil
}

// Tags returns all tags across guides with display-cased names, sorted.
func (s *GuideService) Tags() ([]string, error) {
	guides, err := s.Guides()
	if err != nil {
		return nil, err
	}

	titleCaser := cases.Title(language.English)
	seen := map[string]bool{}
	var tags []string
	for _, guide := range guides {
		for _, tag := range guide.Tags {
			key := strings.ToLower(tag)
			if seen[key] {
				continue
			}
			seen[key] = true
			tags = append(tags, titleCaser.String(tag))
		}
	}

	sort.Strings(tags)
	return tags, nil
}
