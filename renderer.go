package main

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

// pageData is the template payload for the rendered page.
type pageData struct {
	Subreddit   string
	AudioDir    string
	Posts       []postView
	GeneratedAt string
}

// postView is one rendered post block.
type postView struct {
	ID        string
	Title     string
	Text      string
	AudioFile string
	Date      string
	URL       string
}

// PageRenderer produces the static HTML page for a batch of narrated posts.
// The page is fully regenerated every run and overwrites the output file.
type PageRenderer struct {
	settings *Settings
	tmpl     *template.Template
	now      func() time.Time
	log      *logrus.Logger
}

// NewPageRenderer parses the page template (override file or embedded).
func NewPageRenderer(cfg *Config, log *logrus.Logger) (*PageRenderer, error) {
	tmpl, err := template.New("page").Parse(cfg.GetPageTemplate())
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}

	return &PageRenderer{
		settings: cfg.Settings,
		tmpl:     tmpl,
		now:      time.Now,
		log:      log,
	}, nil
}

// Render builds the complete HTML document for the given posts, newest
// first. An empty batch renders a visible "no new posts" notice instead of
// post blocks.
func (r *PageRenderer) Render(posts []NarratedPost) (string, error) {
	sorted := make([]NarratedPost, len(posts))
	copy(sorted, posts)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedUTC > sorted[j].CreatedUTC
	})

	data := pageData{
		Subreddit:   r.settings.Subreddit,
		AudioDir:    r.settings.AudioDir,
		GeneratedAt: r.now().Format("2006-01-02 15:04:05"),
	}
	for _, post := range sorted {
		data.Posts = append(data.Posts, postView{
			ID:        post.ID,
			Title:     post.Title,
			Text:      post.Text,
			AudioFile: post.AudioFile,
			Date:      formatPostDate(post.CreatedUTC),
			URL:       post.URL,
		})
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing page template: %w", err)
	}
	return buf.String(), nil
}

// WritePage renders the page and overwrites the output file. A write
// failure fails the whole run.
func (r *PageRenderer) WritePage(posts []NarratedPost) error {
	r.log.Infof("Generating %s...", r.settings.HTMLFile)

	page, err := r.Render(posts)
	if err != nil {
		return err
	}

	if err := os.WriteFile(r.settings.HTMLFile, []byte(page), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", r.settings.HTMLFile, err)
	}

	r.log.Infof("Successfully generated %s", r.settings.HTMLFile)
	return nil
}

// formatPostDate formats a creation timestamp for display.
func formatPostDate(createdUTC int64) string {
	if createdUTC <= 0 {
		return "Unknown date"
	}
	return time.Unix(createdUTC, 0).Format("2006-01-02 15:04")
}
