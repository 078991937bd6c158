// processor.go
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	synthesisAttempts = 3
	maxFileNameLength = 100
	truncationNotice  = "... [Content truncated due to length]"
)

var (
	invalidFileChars = regexp.MustCompile(`[^a-zA-Z0-9_.\-]`)
	underscoreRuns   = regexp.MustCompile(`_+`)
)

// ItemSource supplies ranked submissions from the forum.
type ItemSource interface {
	FetchHot(ctx context.Context, subreddit string, limit int) ([]Submission, error)
}

// Processor runs the fetch-filter-synthesize pipeline for one batch.
type Processor struct {
	source    ItemSource
	synth     SpeechSynthesizer
	settings  *Settings
	processed ProcessedSet
	log       *logrus.Logger
}

// NewProcessor creates a processor over the given source and synthesizer.
// The processed set is shared with the caller and mutated during Run.
func NewProcessor(source ItemSource, synth SpeechSynthesizer, settings *Settings, processed ProcessedSet, log *logrus.Logger) *Processor {
	return &Processor{
		source:    source,
		synth:     synth,
		settings:  settings,
		processed: processed,
		log:       log,
	}
}

// Run fetches the hot listing and produces one NarratedPost per submission
// that passes the filters and synthesizes successfully. IDs of narrated
// posts are added to the shared processed set. A fetch error ends the batch
// early; whatever was collected so far is returned so the run can still
// save the history and render the page.
func (p *Processor) Run(ctx context.Context) []NarratedPost {
	posts := []NarratedPost{}

	p.log.Infof("Fetching top %d posts from r/%s", p.settings.PostLimit, p.settings.Subreddit)
	subs, err := p.source.FetchHot(ctx, p.settings.Subreddit, p.settings.PostLimit)
	if err != nil {
		p.log.Errorf("Error fetching posts: %v", err)
		return posts
	}

	rules := skipRules(p.processed, p.settings.MinTextLength)
	for _, sub := range subs {
		if reason, skip := skipReason(sub, rules); skip {
			p.log.Debugf("Skipping post %s: %s", sub.ID, reason)
			continue
		}

		post, err := p.processSubmission(ctx, sub)
		if err != nil {
			p.log.Warnf("Skipping post %s: %v", sub.ID, err)
			continue
		}

		posts = append(posts, *post)
		p.processed.Add(sub.ID)
	}

	return posts
}

// processSubmission synthesizes (or reuses) the audio for one accepted
// submission and builds its NarratedPost record.
func (p *Processor) processSubmission(ctx context.Context, sub Submission) (*NarratedPost, error) {
	title := strings.TrimSpace(sub.Title)
	p.log.Infof("Processing post: %s - %s", sub.ID, preview(title, 50))

	audioFile := audioFileName(sub.ID, title)
	audioPath := filepath.Join(p.settings.AudioDir, audioFile)

	if _, err := os.Stat(audioPath); err == nil {
		p.log.Infof("Audio file already exists for post %s, using existing file", sub.ID)
	} else {
		narration := buildNarration(title, sub.SelfText, p.settings.MaxTextLength)

		audio, err := p.synthesizeWithRetry(ctx, narration)
		if err != nil {
			return nil, err
		}

		if err := os.MkdirAll(p.settings.AudioDir, 0755); err != nil {
			return nil, fmt.Errorf("creating audio directory: %w", err)
		}
		if err := os.WriteFile(audioPath, audio, 0644); err != nil {
			return nil, fmt.Errorf("writing audio file: %w", err)
		}
		p.log.Infof("Successfully generated audio: %s", audioFile)
	}

	return &NarratedPost{
		ID:         sub.ID,
		Title:      title,
		Text:       sub.SelfText,
		AudioFile:  audioFile,
		CreatedUTC: sub.CreatedUTC,
		URL:        postURL(sub.Permalink),
	}, nil
}

// synthesizeWithRetry invokes the synthesizer up to synthesisAttempts times.
// Each failed attempt is logged; if all fail, the item is skipped and stays
// eligible for the next run.
func (p *Processor) synthesizeWithRetry(ctx context.Context, text string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= synthesisAttempts; attempt++ {
		audio, err := p.synth.Synthesize(ctx, text, p.settings.Voice.Language)
		if err == nil {
			return audio, nil
		}
		lastErr = err
		p.log.Warnf("Speech synthesis attempt %d failed: %v", attempt, err)
	}
	return nil, fmt.Errorf("speech synthesis failed after %d attempts: %w", synthesisAttempts, lastErr)
}

// buildNarration composes the text fed to speech synthesis. Text over
// maxLength characters is cut there and marked; this is a hard cap to bound
// synthesis cost, not a quality heuristic.
func buildNarration(title, body string, maxLength int) string {
	text := "Title: " + strings.TrimSpace(title) + ". Story: " + body

	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	return string(runes[:maxLength]) + truncationNotice
}

// sanitizeFileName maps a post title onto a safe filename fragment: only
// [A-Za-z0-9_.-], no underscore runs, no leading or trailing underscore, at
// most 100 characters.
func sanitizeFileName(name string) string {
	name = invalidFileChars.ReplaceAllString(name, "_")
	name = underscoreRuns.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")
	if len(name) > maxFileNameLength {
		// Truncation can expose a trailing underscore again.
		name = strings.Trim(name[:maxFileNameLength], "_")
	}
	return name
}

// audioFileName derives the deterministic audio filename for a post. An
// existing file of this exact name is treated as already synthesized.
func audioFileName(id, title string) string {
	return fmt.Sprintf("%s_%s.mp3", id, sanitizeFileName(title))
}

// preview shortens a string for log output.
func preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
