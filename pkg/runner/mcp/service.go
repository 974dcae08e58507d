// Package mcp provides the Model Context Protocol server integration for diary.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/diary/pkg/analytics"
	"tableflip.dev/diary/pkg/apperr"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/filter"
	"tableflip.dev/diary/pkg/gateway"
)

// API is the part of the diary API exposed over MCP.
type API interface {
	ListEntries(ctx context.Context, q gateway.ListQuery) ([]entry.Entry, error)
	GetEntry(ctx context.Context, id string) (entry.Entry, error)
	UpdateEntry(ctx context.Context, id string, p gateway.EntryPatch) (entry.Entry, error)
	DeleteEntry(ctx context.Context, id string) error
	Analytics(ctx context.Context) (gateway.Analytics, error)
}

// Service coordinates API-backed operations that are shared by the MCP server.
type Service struct {
	API API
	Now func() time.Time
}

// ErrNotConfirmed is returned when a destructive call lacks confirm=true.
var ErrNotConfirmed = errors.New("set confirm to true to delete the entry")

// ListOptions narrows list_entries the same way the list screen does.
type ListOptions struct {
	Search    string
	Mood      string
	Tag       string
	ThisMonth bool
	Sort      string
	Limit     int
}

// EntryDTO is a transport-friendly projection of an entry.
type EntryDTO struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Text        string   `json:"text,omitempty"`
	Mood        string   `json:"mood"`
	MoodAlias   string   `json:"moodAlias"`
	Tags        []string `json:"tags"`
	Images      []string `json:"images"`
	IsFavorite  bool     `json:"isFavorite"`
	CreatedISO  string   `json:"created"`
	CreatedUnix int64    `json:"createdUnix"`
	Date        string   `json:"date"`
}

// NewService builds a service wrapper around api.
func NewService(api API) *Service {
	return &Service{API: api, Now: time.Now}
}

func (s *Service) ready() error {
	if s.API == nil {
		return errors.New("api is not configured")
	}
	return nil
}

// Query turns o into the request the list screen would send.
func (s *Service) Query(o ListOptions) (gateway.ListQuery, error) {
	f := filter.New()
	f.SetSearch(o.Search)
	if m := strings.TrimSpace(o.Mood); m != "" {
		mood, err := entry.ParseMood(m)
		if err != nil {
			return gateway.ListQuery{}, apperr.Validation(err)
		}
		f.SetMood(mood)
	}
	f.SetTag(o.Tag)
	f.SetThisMonth(o.ThisMonth)
	if o.Sort != "" {
		order, err := entry.ParseSortOrder(o.Sort)
		if err != nil {
			return gateway.ListQuery{}, apperr.Validation(err)
		}
		f.SetSort(order)
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return f.ToQueryParams(now()), nil
}

// ListEntries returns matching entries with favorites first.
func (s *Service) ListEntries(ctx context.Context, o ListOptions) ([]EntryDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	q, err := s.Query(o)
	if err != nil {
		return nil, err
	}
	entries, err := s.API.ListEntries(ctx, q)
	if err != nil {
		return nil, err
	}
	entries = entry.FavoritesFirst(entries)
	if o.Limit > 0 && len(entries) > o.Limit {
		entries = entries[:o.Limit]
	}
	return toDTOs(entries), nil
}

// EntryByID fetches one entry.
func (s *Service) EntryByID(ctx context.Context, id string) (*EntryDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	e, err := s.API.GetEntry(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	dto := toDTO(&e)
	return &dto, nil
}

// ToggleFavorite flips the favorite flag of id and returns the stored entry.
func (s *Service) ToggleFavorite(ctx context.Context, id string) (*EntryDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	e, err := s.API.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	saved, err := s.API.UpdateEntry(ctx, id, gateway.FavoritePatch(!e.Favorite))
	if err != nil {
		return nil, fmt.Errorf("update favorite: %w", err)
	}
	dto := toDTO(&saved)
	return &dto, nil
}

// DeleteEntry removes id. confirm must be true.
func (s *Service) DeleteEntry(ctx context.Context, id string, confirm bool) error {
	if err := s.ready(); err != nil {
		return err
	}
	if !confirm {
		return ErrNotConfirmed
	}
	return s.API.DeleteEntry(ctx, id)
}

// MoodStats summarises the mood distribution.
func (s *Service) MoodStats(ctx context.Context) (analytics.Summary, error) {
	if err := s.ready(); err != nil {
		return analytics.Summary{}, err
	}
	return analytics.Load(ctx, s.API)
}

func toDTOs(entries []entry.Entry) []EntryDTO {
	out := make([]EntryDTO, 0, len(entries))
	for i := range entries {
		out = append(out, toDTO(&entries[i]))
	}
	return out
}

func toDTO(e *entry.Entry) EntryDTO {
	images := e.Images
	if images == nil {
		images = []string{}
	}
	return EntryDTO{
		ID:          e.ID,
		Title:       e.Title,
		Text:        entry.PlainText(e.Content),
		Mood:        string(e.Mood),
		MoodAlias:   e.Mood.Alias(),
		Tags:        e.TagNames(),
		Images:      images,
		IsFavorite:  e.Favorite,
		CreatedISO:  entry.FormatTime(e.CreatedAt.Time),
		CreatedUnix: e.CreatedAt.Unix(),
		Date:        e.DateLabel(),
	}
}
