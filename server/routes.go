package server

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/Hunter19823/Minecraft-Schema-Gen/aggregate"
	"github.com/Hunter19823/Minecraft-Schema-Gen/pathtree"
	"github.com/Hunter19823/Minecraft-Schema-Gen/render"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/urfave/negroni"
)

const batchIDHeader = "X-Batch-ID"

var (
	ErrBadRequest = errors.New("bad request")
)

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/healthz", s.handleHealth()).Methods("GET")
	s.router.Handle("/metrics", s.metricsHandler()).Methods("GET")
	s.router.HandleFunc("/api/v1/batches", s.handleBatch()).Methods("POST")
	s.router.HandleFunc("/api/v1/uploads", s.handleUpload()).Methods("POST")
	s.router.Use(s.logMiddleware)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := negroni.NewResponseWriter(w)
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			"method", r.Method,
			"uri", r.RequestURI,
			"status", ww.Status(),
			"size", ww.Size(),
			"elapsed", time.Since(start))
	})
}

func (*Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprintln(w, "ok")
	}
}

type batchRequest struct {
	Documents []batchDocument `json:"documents"`
}

// batchDocument carries its content either as a string of raw JSON text or as
// an embedded JSON value.
type batchDocument struct {
	Content json.RawMessage `json:"content"`
	Path    string          `json:"path"`
	Name    string          `json:"name"`
	Tags    []string        `json:"tags"`
}

func (d batchDocument) document() (aggregate.Document, error) {
	content := []byte(d.Content)
	if len(content) > 0 && content[0] == '"' {
		var text string
		if err := json.Unmarshal(content, &text); err != nil {
			return aggregate.Document{}, err
		}
		content = []byte(text)
	}
	return aggregate.Document{
		Content: content,
		Path:    pathtree.Clean(d.Path),
		Name:    d.Name,
		Tags:    d.Tags,
	}, nil
}

func (s *Server) handleBatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bs, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.MaxBody))
		if err != nil {
			s.fail(w, r, s.log, fmt.Errorf("%w: %w", ErrBadRequest, err))
			return
		}

		var req batchRequest
		if err := json.Unmarshal(bs, &req); err != nil {
			s.fail(w, r, s.log, fmt.Errorf("%w: %v", ErrBadRequest, err))
			return
		}

		docs := make([]aggregate.Document, len(req.Documents))
		for i, d := range req.Documents {
			doc, err := d.document()
			if err != nil {
				s.fail(w, r, s.log, fmt.Errorf("%w: document %d: %v", ErrBadRequest, i, err))
				return
			}
			docs[i] = doc
		}

		s.build(w, r, docs)
	}
}

// handleUpload takes a multipart form of files named by their upload-relative
// path, the way a browser sends a picked directory.
func (s *Server) handleUpload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, s.MaxBody)
		mr, err := r.MultipartReader()
		if err != nil {
			s.fail(w, r, s.log, fmt.Errorf("%w: %v", ErrBadRequest, err))
			return
		}

		var docs []aggregate.Document
		for {
			part, err := mr.NextPart()
			if err == io.EOF {
				break
			} else if err != nil {
				s.fail(w, r, s.log, fmt.Errorf("%w: %w", ErrBadRequest, err))
				return
			}

			name := partFileName(part.Header.Get("Content-Disposition"))
			if name == "" {
				_ = part.Close()
				continue
			}

			bs, err := io.ReadAll(part)
			_ = part.Close()
			if err != nil {
				s.fail(w, r, s.log, fmt.Errorf("%w: read %s: %w", ErrBadRequest, name, err))
				return
			}

			loc := pathtree.Locate(name)
			docs = append(docs, aggregate.Document{
				Content: bs,
				Path:    loc.Path,
				Name:    loc.Name,
				Tags:    loc.Tags,
			})
		}

		s.build(w, r, docs)
	}
}

// partFileName reads the filename parameter as sent. multipart.Part.FileName
// would strip the directories we need.
func partFileName(disposition string) string {
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return ""
	}
	return params["filename"]
}

func (s *Server) build(w http.ResponseWriter, r *http.Request, docs []aggregate.Document) {
	id := uuid.NewString()
	log := s.log.With("batch", id)
	w.Header().Set(batchIDHeader, id)

	format, err := render.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.fail(w, r, log, fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}

	start := time.Now()
	b := s.builder
	b.Logger = log
	doc, err := b.Build(docs)
	s.metrics.duration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.fail(w, r, log, err)
		return
	}

	bs, err := render.Marshal(doc, format)
	if err != nil {
		s.fail(w, r, log, err)
		return
	}

	s.metrics.batches.WithLabelValues("ok").Inc()
	s.metrics.documents.Add(float64(len(docs)))
	log.Info("built batch", "documents", len(docs), "paths", len(doc.Paths))

	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(bs); err != nil {
		log.Warn("could not write response", "err", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status := http.StatusInternalServerError
	outcome := "error"
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		status = http.StatusRequestEntityTooLarge
		outcome = "rejected"
	case errors.Is(err, aggregate.ErrMalformedDocument), errors.Is(err, ErrBadRequest):
		status = http.StatusBadRequest
		outcome = "rejected"
	}
	s.metrics.batches.WithLabelValues(outcome).Inc()
	log.Warn("batch failed", "uri", r.RequestURI, "status", status, "err", err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errorResponse{Error: err.Error()}); err != nil {
		log.Warn("could not write response", "err", err)
	}
}
