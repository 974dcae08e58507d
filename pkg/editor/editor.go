// Package editor loads one entry into an editable form, submits it as a
// full replacement, and uploads images into it.
package editor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"tableflip.dev/diary/pkg/apperr"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/gateway"
)

// DefaultUploadLimit is how many uploads run at once.
const DefaultUploadLimit = 3

// Gateway is the part of the API the editor needs.
type Gateway interface {
	GetEntry(ctx context.Context, id string) (entry.Entry, error)
	CreateEntry(ctx context.Context, p gateway.EntryPatch) (entry.Entry, error)
	UpdateEntry(ctx context.Context, id string, p gateway.EntryPatch) (entry.Entry, error)
	UploadImage(ctx context.Context, filename string, r io.Reader) (string, error)
}

// Editor holds the form being edited.
type Editor struct {
	gw    Gateway
	log   *slog.Logger
	limit int
	open  func(string) (io.ReadCloser, error)

	form Form
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.log = l
		}
	}
}

// WithUploadLimit bounds concurrent uploads.
func WithUploadLimit(n int) Option {
	return func(e *Editor) {
		if n > 0 {
			e.limit = n
		}
	}
}

// New returns an editor holding an empty draft.
func New(gw Gateway, opts ...Option) *Editor {
	e := &Editor{
		gw:    gw,
		log:   slog.Default(),
		limit: DefaultUploadLimit,
		open: func(p string) (io.ReadCloser, error) {
			return os.Open(p)
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.NewDraft()
	return e
}

// NewDraft starts a new entry with the default mood.
func (e *Editor) NewDraft() {
	e.form = Form{Mood: entry.DefaultMood, Images: []string{}}
}

// Load replaces the form with entry id.
func (e *Editor) Load(ctx context.Context, id string) error {
	en, err := e.gw.GetEntry(ctx, id)
	if err != nil {
		e.log.Warn("load entry failed", slog.String("id", id), slog.String("error", err.Error()))
		return fmt.Errorf("load entry %s: %w", id, err)
	}
	e.form = FromEntry(en)
	return nil
}

// Form returns the form for in-place edits.
func (e *Editor) Form() *Form { return &e.form }

// Submit validates the form and sends every field. Drafts are created; the
// form then tracks the stored entry.
func (e *Editor) Submit(ctx context.Context) (entry.Entry, error) {
	if err := e.form.Validate(); err != nil {
		return entry.Entry{}, err
	}
	p := e.form.Patch()

	var (
		saved entry.Entry
		err   error
	)
	if e.form.IsDraft() {
		saved, err = e.gw.CreateEntry(ctx, p)
	} else {
		saved, err = e.gw.UpdateEntry(ctx, e.form.ID, p)
	}
	if err != nil {
		e.log.Warn("save entry failed", slog.String("id", e.form.ID), slog.String("error", err.Error()))
		return entry.Entry{}, fmt.Errorf("save entry: %w", err)
	}
	e.form = FromEntry(saved)
	return saved, nil
}

// UploadResult is the outcome for one file.
type UploadResult struct {
	File string
	URL  string
	Err  error
}

// Upload sends files concurrently and appends the URLs that succeeded to the
// form's images, in argument order. A failed file is reported in its result
// and leaves the rest of the form alone.
func (e *Editor) Upload(ctx context.Context, files ...string) []UploadResult {
	results := make([]UploadResult, len(files))
	var g errgroup.Group
	g.SetLimit(e.limit)
	for i, file := range files {
		results[i].File = file
		g.Go(func() error {
			u, err := e.uploadOne(ctx, file)
			results[i].URL, results[i].Err = u, err
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range results {
		if r.Err != nil {
			e.log.Warn("upload failed", slog.String("file", r.File), slog.String("error", r.Err.Error()))
			continue
		}
		e.form.Images = append(e.form.Images, r.URL)
	}
	return results
}

func (e *Editor) uploadOne(ctx context.Context, file string) (string, error) {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
	default:
		return "", apperr.Validation(fmt.Errorf("%s: not an image", filepath.Base(file)))
	}
	f, err := e.open(file)
	if err != nil {
		return "", apperr.Validation(fmt.Errorf("open %s: %w", file, err))
	}
	defer f.Close()
	return e.gw.UploadImage(ctx, file, f)
}
