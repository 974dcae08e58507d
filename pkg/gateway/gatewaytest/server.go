// Package gatewaytest runs an in-memory diary API for tests.
package gatewaytest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"tableflip.dev/diary/pkg/entry"
)

// BasePath is where the API is mounted on the test server.
const BasePath = "/api"

// Request records one call seen by the server.
type Request struct {
	Method string
	Path   string
	Query  map[string]string
	Body   map[string]any
	Auth   string
}

type failure struct {
	method string
	prefix string
	status int
	msg    string
}

// Server is a fake diary backend.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	entries  []entry.Entry
	users    map[string]string // email -> password
	tokens   map[string]string // token -> email
	requests []Request
	failures []failure
	uploads  map[string][]byte
}

// New starts a server seeded with entries.
func New(seed ...entry.Entry) *Server {
	s := &Server{
		users:   map[string]string{},
		tokens:  map[string]string{},
		uploads: map[string][]byte{},
	}
	for _, e := range seed {
		s.entries = append(s.entries, e.Clone())
	}
	s.Server = httptest.NewServer(s.routes())
	return s
}

// APIURL is the base url a gateway.Client should use.
func (s *Server) APIURL() string {
	return s.URL + BasePath
}

// AddUser registers an account and returns a valid token for it.
func (s *Server) AddUser(email, password string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[email] = password
	tok := uuid.NewString()
	s.tokens[tok] = email
	return tok
}

// Fail makes the next request whose method matches and whose path (below
// BasePath) starts with prefix answer with status.
func (s *Server) Fail(method, prefix string, status int, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, failure{method: method, prefix: prefix, status: status, msg: msg})
}

// Requests returns every request seen so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Entries returns the server-side entries in insertion order.
func (s *Server) Entries() []entry.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entry.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.Clone())
	}
	return out
}

// Upload returns the bytes stored for an upload path.
func (s *Server) Upload(p string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.uploads[p]
	return b, ok
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record)
	r.Use(s.injectFailures)
	r.Route(BasePath, func(r chi.Router) {
		r.Post("/auth/login", s.login)
		r.Post("/auth/register", s.register)
		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/entries", s.list)
			r.Post("/entries", s.create)
			r.Get("/entries/analytics", s.analytics)
			r.Post("/entries/upload", s.upload)
			r.Get("/entries/{id}", s.get)
			r.Patch("/entries/{id}", s.update)
			r.Delete("/entries/{id}", s.remove)
		})
	})
	return r
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := Request{
			Method: r.Method,
			Path:   strings.TrimPrefix(r.URL.Path, BasePath),
			Query:  map[string]string{},
			Auth:   r.Header.Get("Authorization"),
		}
		for k := range r.URL.Query() {
			req.Query[k] = r.URL.Query().Get(k)
		}
		if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, &req.Body)
			r.Body = io.NopCloser(strings.NewReader(string(raw)))
		}
		s.mu.Lock()
		s.requests = append(s.requests, req)
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := strings.TrimPrefix(r.URL.Path, BasePath)
		s.mu.Lock()
		for i, f := range s.failures {
			if f.method == r.Method && strings.HasPrefix(p, f.prefix) {
				s.failures = append(s.failures[:i], s.failures[i+1:]...)
				s.mu.Unlock()
				writeJSON(w, f.status, map[string]string{"status": "fail", "message": f.msg})
				return
			}
		}
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.mu.Lock()
		_, ok := s.tokens[tok]
		s.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"status": "fail", "message": "You are not logged in"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"status": "fail", "message": "invalid body"})
		return
	}
	s.mu.Lock()
	pw, ok := s.users[c.Email]
	s.mu.Unlock()
	if !ok || pw != c.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"status": "fail", "message": "Incorrect email or password"})
		return
	}
	s.issueToken(w, http.StatusOK, c.Email)
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"status": "fail", "message": "invalid body"})
		return
	}
	s.mu.Lock()
	_, exists := s.users[c.Email]
	if !exists {
		s.users[c.Email] = c.Password
	}
	s.mu.Unlock()
	if exists {
		writeJSON(w, http.StatusConflict, map[string]string{"status": "fail", "message": "Email already in use"})
		return
	}
	s.issueToken(w, http.StatusCreated, c.Email)
}

func (s *Server) issueToken(w http.ResponseWriter, status int, email string) {
	tok := uuid.NewString()
	s.mu.Lock()
	s.tokens[tok] = email
	s.mu.Unlock()
	writeJSON(w, status, map[string]any{
		"status": "success",
		"token":  tok,
		"data": map[string]any{
			"user": map[string]string{"id": "u-" + email, "email": email},
		},
	})
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var start, end time.Time
	if v := q.Get("startDate"); v != "" {
		start, _ = entry.ParseTime(v)
	}
	if v := q.Get("endDate"); v != "" {
		end, _ = entry.ParseTime(v)
	}
	search := strings.ToLower(q.Get("search"))

	s.mu.Lock()
	out := make([]entry.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		if search != "" && !strings.Contains(strings.ToLower(e.Title), search) && !strings.Contains(strings.ToLower(e.Content), search) {
			continue
		}
		if m := q.Get("mood"); m != "" && string(e.Mood) != m {
			continue
		}
		if tag := q.Get("tag"); tag != "" && !e.HasTag(tag) {
			continue
		}
		if !start.IsZero() && e.CreatedAt.Before(start) {
			continue
		}
		if !end.IsZero() && e.CreatedAt.After(end) {
			continue
		}
		out = append(out, e.Clone())
	}
	s.mu.Unlock()

	oldest := q.Get("sort") == string(entry.Oldest)
	sort.SliceStable(out, func(i, j int) bool {
		if oldest {
			return out[i].CreatedAt.Before(out[j].CreatedAt.Time)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt.Time)
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"results": len(out),
		"data":    map[string]any{"entries": out},
	})
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	idx := entry.IndexOf(s.entries, id)
	var e entry.Entry
	if idx >= 0 {
		e = s.entries[idx].Clone()
	}
	s.mu.Unlock()
	if idx < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"status": "fail", "message": "No entry found with that ID"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "data": map[string]any{"entry": e}})
}

type patchBody struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	Mood     *string   `json:"mood"`
	Tags     *[]string `json:"tags"`
	Images   *[]string `json:"images"`
	Favorite *bool     `json:"isFavorite"`
}

func (p patchBody) apply(e *entry.Entry) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Content != nil {
		e.Content = *p.Content
	}
	if p.Mood != nil {
		e.Mood = entry.Mood(*p.Mood)
	}
	if p.Tags != nil {
		e.Tags = make([]entry.Tag, 0, len(*p.Tags))
		for _, name := range *p.Tags {
			e.Tags = append(e.Tags, entry.Tag{ID: "tag-" + strings.ToLower(name), Name: name})
		}
	}
	if p.Images != nil {
		e.Images = append([]string{}, *p.Images...)
	}
	if p.Favorite != nil {
		e.Favorite = *p.Favorite
	}
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var p patchBody
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"status": "fail", "message": "invalid body"})
		return
	}
	if p.Title == nil || strings.TrimSpace(*p.Title) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"status": "fail", "message": "An entry must have a title"})
		return
	}
	e := entry.Entry{
		ID:        uuid.NewString(),
		CreatedAt: entry.Timestamp{Time: time.Now().UTC()},
		Tags:      []entry.Tag{},
		Images:    []string{},
	}
	p.apply(&e)
	s.mu.Lock()
	s.entries = append(s.entries, e.Clone())
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, map[string]any{"status": "success", "data": map[string]any{"entry": e}})
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var p patchBody
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"status": "fail", "message": "invalid body"})
		return
	}
	s.mu.Lock()
	idx := entry.IndexOf(s.entries, id)
	var e entry.Entry
	if idx >= 0 {
		p.apply(&s.entries[idx])
		e = s.entries[idx].Clone()
	}
	s.mu.Unlock()
	if idx < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"status": "fail", "message": "No entry found with that ID"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "data": map[string]any{"entry": e}})
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	idx := entry.IndexOf(s.entries, id)
	if idx >= 0 {
		s.entries = entry.Without(s.entries, id)
	}
	s.mu.Unlock()
	if idx < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"status": "fail", "message": "No entry found with that ID"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"status": "fail", "message": "invalid multipart"})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"status": "fail", "message": "Please upload a file"})
		return
	}
	defer file.Close()
	b, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"status": "fail", "message": "read failed"})
		return
	}
	p := fmt.Sprintf("/uploads/%s-%s", uuid.NewString()[:8], header.Filename)
	s.mu.Lock()
	s.uploads[p] = b
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "data": map[string]string{"url": p}})
}

func (s *Server) analytics(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	counts := map[string]int{}
	order := []string{}
	for _, e := range s.entries {
		if _, ok := counts[string(e.Mood)]; !ok {
			order = append(order, string(e.Mood))
		}
		counts[string(e.Mood)]++
	}
	total := len(s.entries)
	s.mu.Unlock()

	dist := make([]map[string]any, 0, len(order))
	for _, m := range order {
		dist = append(dist, map[string]any{"name": m, "value": counts[m]})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data":   map[string]any{"moodDistribution": dist, "totalEntries": total},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
