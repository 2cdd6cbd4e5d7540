// Package stub is an in-memory stand-in for the Django REST backend. It keeps
// records per collection, accepts JSON and multipart bodies, merges PATCH
// bodies into stored records and records every request it receives.
package stub

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
)

const maxMemory = 32 << 20

// Collection describes how the stub stores one resource.
type Collection struct {
	Path      string            // e.g. "/bed/"
	Files     []string          // file fields, stored as media paths
	Ints      []string          // multipart values coerced to integers
	Bools     []string          // multipart values coerced to booleans
	WriteOnly []string          // accepted but never returned
	Renames   map[string]string // request field -> stored field, e.g. category_id -> category
}

// Request is what the stub saw for one call.
type Request struct {
	Method      string
	Path        string
	ContentType string
	Fields      map[string]string
	Files       map[string]string // field -> uploaded filename
}

func (r Request) HasField(name string) bool {
	_, ok := r.Fields[name]
	return ok
}

func (r Request) HasFile(name string) bool {
	_, ok := r.Files[name]
	return ok
}

type failure struct {
	status int
	body   string
}

type store struct {
	conf    Collection
	nextID  int64
	records map[int64]map[string]interface{}
}

type Server struct {
	mu        sync.Mutex
	stores    map[string]*store
	requests  []Request
	fail      *failure
	bareLists bool
	router    chi.Router
	srv       *httptest.Server
}

func New(collections ...Collection) *Server {
	s := &Server{
		stores: make(map[string]*store),
		router: chi.NewRouter(),
	}
	for _, c := range collections {
		s.register(c)
	}
	return s
}

// NewHayat serves the five collections of the facility back office.
func NewHayat() *Server {
	return New(
		Collection{Path: "/bed/"},
		Collection{Path: "/banners/", Files: []string{"image"}, Ints: []string{"order"}, Bools: []string{"status"}},
		Collection{Path: "/counsellors/", WriteOnly: []string{"password"}},
		Collection{Path: "/course/", Files: []string{"image", "banner_img", "pdf_file"}, Ints: []string{"category"}},
		Collection{
			Path:    "/testimonials/",
			Files:   []string{"image"},
			Ints:    []string{"rating", "category"},
			Renames: map[string]string{"category_id": "category"},
		},
	)
}

// Start serves the stub on a local listener; Close must be called.
func (s *Server) Start() *Server {
	s.srv = httptest.NewServer(s.router)
	return s
}

func (s *Server) URL() string {
	if s.srv == nil {
		return ""
	}
	return s.srv.URL
}

func (s *Server) Close() {
	if s.srv != nil {
		s.srv.Close()
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// BareLists makes list endpoints answer with a bare array instead of {"data": [...]}.
func (s *Server) BareLists(bare bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bareLists = bare
}

// FailNext makes the next request answer with status and body.
func (s *Server) FailNext(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = &failure{status: status, body: body}
}

func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *Server) LastRequest() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}, false
	}
	return s.requests[len(s.requests)-1], true
}

// Seed stores a record as-is and returns its id.
func (s *Server) Seed(path string, record map[string]interface{}) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.stores[path]
	st.nextID++
	rec := make(map[string]interface{}, len(record)+1)
	for k, v := range record {
		rec[k] = v
	}
	for _, f := range st.conf.Files {
		if _, ok := rec[f]; !ok {
			rec[f] = nil
		}
	}
	rec["id"] = st.nextID
	st.records[st.nextID] = rec
	return st.nextID
}

// Record returns the stored record including write-only fields.
func (s *Server) Record(path string, id int64) (map[string]interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.stores[path].records[id]
	return rec, ok
}

func (s *Server) Count(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.stores[path].records)
}

func (s *Server) register(c Collection) {
	st := &store{conf: c, records: make(map[int64]map[string]interface{})}
	s.stores[c.Path] = st

	s.router.Get(c.Path, s.list(st))
	s.router.Post(c.Path, s.create(st))
	s.router.Patch(c.Path+"{id}/", s.update(st))
	s.router.Delete(c.Path+"{id}/", s.remove(st))
}

func (s *Server) list(st *store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.record(r, nil, nil)
		if s.failed(w, r) {
			return
		}

		ids := make([]int64, 0, len(st.records))
		for id := range st.records {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		items := make([]map[string]interface{}, 0, len(ids))
		for _, id := range ids {
			items = append(items, st.public(st.records[id]))
		}

		if s.bareLists {
			render.JSON(w, r, items)
			return
		}
		render.JSON(w, r, map[string]interface{}{"data": items})
	}
}

func (s *Server) create(st *store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fields, files, err := st.parse(r)

		s.mu.Lock()
		defer s.mu.Unlock()
		s.record(r, fields, files)
		if s.failed(w, r) {
			return
		}
		if err != nil {
			s.badRequest(w, r, err)
			return
		}

		st.nextID++
		rec := map[string]interface{}{"id": st.nextID}
		for _, f := range st.conf.Files {
			rec[f] = nil
		}
		st.apply(rec, fields, files)
		st.records[st.nextID] = rec

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, st.public(rec))
	}
}

func (s *Server) update(st *store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fields, files, err := st.parse(r)

		s.mu.Lock()
		defer s.mu.Unlock()
		s.record(r, fields, files)
		if s.failed(w, r) {
			return
		}
		if err != nil {
			s.badRequest(w, r, err)
			return
		}

		rec, ok := st.lookup(r)
		if !ok {
			s.notFound(w, r)
			return
		}
		st.apply(rec, fields, files)
		render.JSON(w, r, st.public(rec))
	}
}

func (s *Server) remove(st *store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.record(r, nil, nil)
		if s.failed(w, r) {
			return
		}

		rec, ok := st.lookup(r)
		if !ok {
			s.notFound(w, r)
			return
		}
		delete(st.records, rec["id"].(int64))
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) record(r *http.Request, fields map[string]interface{}, files map[string]string) {
	req := Request{
		Method:      r.Method,
		Path:        r.URL.Path,
		ContentType: r.Header.Get("Content-Type"),
		Fields:      make(map[string]string, len(fields)),
		Files:       files,
	}
	for k, v := range fields {
		req.Fields[k] = fmt.Sprint(v)
	}
	if req.Files == nil {
		req.Files = map[string]string{}
	}
	s.requests = append(s.requests, req)
}

func (s *Server) failed(w http.ResponseWriter, r *http.Request) bool {
	if s.fail == nil {
		return false
	}
	f := s.fail
	s.fail = nil
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(f.status)
	_, _ = io.WriteString(w, f.body)
	return true
}

func (s *Server) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, map[string]string{"detail": err.Error()})
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusNotFound)
	render.JSON(w, r, map[string]string{"detail": "Not found."})
}

func (st *store) lookup(r *http.Request) (map[string]interface{}, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return nil, false
	}
	rec, ok := st.records[id]
	return rec, ok
}

// parse reads a JSON or multipart body; uploaded files become media paths.
func (st *store) parse(r *http.Request) (map[string]interface{}, map[string]string, error) {
	fields := make(map[string]interface{})
	files := make(map[string]string)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return nil, nil, fmt.Errorf("invalid multipart form: %w", err)
		}
		for name, values := range r.MultipartForm.Value {
			if len(values) == 0 {
				continue
			}
			v, err := st.coerce(name, values[0])
			if err != nil {
				return nil, nil, err
			}
			fields[name] = v
		}
		for name, headers := range r.MultipartForm.File {
			if len(headers) == 0 {
				continue
			}
			files[name] = headers[0].Filename
		}
	case "application/json":
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil && err != io.EOF {
			return nil, nil, fmt.Errorf("invalid json body: %w", err)
		}
		for name, v := range fields {
			if n, ok := v.(float64); ok {
				fields[name] = int64(n)
			}
		}
	}
	return fields, files, nil
}

func (st *store) coerce(name, value string) (interface{}, error) {
	if contains(st.conf.Ints, st.stored(name)) {
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: a valid integer is required", name)
		}
		return n, nil
	}
	if contains(st.conf.Bools, st.stored(name)) {
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("%s: must be a valid boolean", name)
		}
		return b, nil
	}
	return value, nil
}

func (st *store) stored(name string) string {
	if renamed, ok := st.conf.Renames[name]; ok {
		return renamed
	}
	return name
}

func (st *store) apply(rec map[string]interface{}, fields map[string]interface{}, files map[string]string) {
	for name, v := range fields {
		if name == "id" {
			continue
		}
		rec[st.stored(name)] = v
	}
	for name, filename := range files {
		rec[st.stored(name)] = fmt.Sprintf("/media%s%s-%s", st.conf.Path, uuid.NewString()[:8], filename)
	}
}

func (st *store) public(rec map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(rec))
	for k, v := range rec {
		if contains(st.conf.WriteOnly, k) {
			continue
		}
		out[k] = v
	}
	return out
}

func contains(list []string, name string) bool {
	for _, n := range list {
		if n == name {
			return true
		}
	}
	return false
}
