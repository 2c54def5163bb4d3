package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ai_policy_builder/export"
	"ai_policy_builder/generator"
	"ai_policy_builder/markup"
)

//go:embed web/dist
var embeddedStatic embed.FS

const generateTimeout = 180 * time.Second

type Server struct {
	agent    *generator.Agent
	quota    generator.QuotaStore
	store    *sessionStore
	logger   *zap.Logger
	staticFS http.Handler
}

func New(agent *generator.Agent, quota generator.QuotaStore, logger *zap.Logger) (*Server, error) {
	if agent == nil {
		return nil, errors.New("generator agent required")
	}
	if quota == nil {
		return nil, errors.New("quota store required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	sub, err := fs.Sub(embeddedStatic, "web/dist")
	if err != nil {
		return nil, err
	}

	return &Server{
		agent:    agent,
		quota:    quota,
		store:    newStore(),
		logger:   logger,
		staticFS: http.FileServer(http.FS(sub)),
	}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/sessions", s.handleSessionCreate)
	mux.HandleFunc("GET /api/sessions/{id}", s.handleSessionGet)
	mux.HandleFunc("PUT /api/sessions/{id}/answers", s.handleAnswersUpdate)
	mux.HandleFunc("POST /api/sessions/{id}/uploads", s.handleUploadAdd)
	mux.HandleFunc("DELETE /api/sessions/{id}/uploads/{index}", s.handleUploadRemove)
	mux.HandleFunc("POST /api/sessions/{id}/generate", s.handleGenerate)
	mux.HandleFunc("POST /api/sessions/{id}/finalize", s.handleFinalize)
	mux.HandleFunc("GET /api/sessions/{id}/document", s.handleDocumentGet)
	mux.HandleFunc("PUT /api/sessions/{id}/document", s.handleDocumentSave)
	mux.HandleFunc("GET /api/sessions/{id}/export", s.handleExport)
	mux.HandleFunc("GET /api/quota", s.handleQuota)
	mux.Handle("/", s.staticHandler())
	return s.logMiddleware(mux)
}

func (s *Server) staticHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// fall back to index.html for SPA-ish behavior
		upath := r.URL.Path
		if upath == "/" || !strings.HasPrefix(upath, "/api/") {
			p := upath
			if p == "/" {
				p = "/index.html"
			}
			r.URL.Path = p
			s.staticFS.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

// --- Handlers ---

type uploadReq struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

type documentSaveReq struct {
	Content string `json:"content"`
	// Save overwrites the canonical document; false updates only the
	// editable copy.
	Save bool `json:"save"`
}

type finalizeResp struct {
	Document     string          `json:"document"`
	QuotaWarning string          `json:"quota_warning,omitempty"`
	Quota        generator.Quota `json:"quota"`
}

func (s *Server) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	var answers generator.SurveyAnswers
	if err := json.NewDecoder(r.Body).Decode(&answers); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	id := uuid.NewString()
	sess := &session{Answers: answers}
	s.store.set(id, sess)
	writeJSON(w, http.StatusCreated, sess.view(id))
}

func (s *Server) handleSessionGet(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.view(id))
}

func (s *Server) handleAnswersUpdate(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var answers generator.SurveyAnswers
	if err := json.NewDecoder(r.Body).Decode(&answers); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	sess.mu.Lock()
	sess.Answers = answers
	sess.mu.Unlock()
	writeJSON(w, http.StatusOK, sess.view(id))
}

func (s *Server) handleUploadAdd(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req uploadReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if req.Filename == "" || strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "filename and content are required")
		return
	}
	sess.mu.Lock()
	sess.Uploads = append(sess.Uploads, generator.UploadedDocument{
		Filename: req.Filename,
		Content:  strings.TrimSpace(req.Content),
	})
	sess.mu.Unlock()
	writeJSON(w, http.StatusOK, sess.view(id))
}

func (s *Server) handleUploadRemove(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.session(w, r)
	if !ok {
		return
	}
	idx, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "index must be an integer")
		return
	}
	sess.mu.Lock()
	if idx < 0 || idx >= len(sess.Uploads) {
		sess.mu.Unlock()
		writeError(w, http.StatusNotFound, "not_found", "no upload at that position")
		return
	}
	sess.Uploads = append(sess.Uploads[:idx], sess.Uploads[idx+1:]...)
	sess.mu.Unlock()
	writeJSON(w, http.StatusOK, sess.view(id))
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.mu.Lock()
	answers := sess.Answers
	uploads := make([]generator.UploadedDocument, len(sess.Uploads))
	copy(uploads, sess.Uploads)
	sess.mu.Unlock()

	ctx, cancel := context.WithTimeout(r.Context(), generateTimeout)
	defer cancel()
	combined := s.agent.Generate(ctx, answers, uploads)

	sess.mu.Lock()
	sess.Combined = combined
	// A regeneration invalidates any previous annotated document.
	sess.Document = ""
	sess.Edited = ""
	sess.mu.Unlock()
	writeJSON(w, http.StatusOK, sess.view(id))
}

func (s *Server) handleFinalize(w http.ResponseWriter, r *http.Request) {
	_, sess, ok := s.session(w, r)
	if !ok {
		return
	}
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "identity_required", "X-User-ID header is required for final generation")
		return
	}

	sess.mu.Lock()
	combined := sess.Combined
	uploads := make([]generator.UploadedDocument, len(sess.Uploads))
	copy(uploads, sess.Uploads)
	sess.mu.Unlock()
	if combined == "" {
		writeError(w, http.StatusConflict, "not_generated", "generate the document before finalizing")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), generateTimeout)
	defer cancel()
	result, err := s.agent.Finalize(ctx, userID, combined, uploads)
	if err != nil {
		var qerr *generator.QuotaError
		switch {
		case errors.Is(err, generator.ErrLimitReached):
			q, _ := s.quota.Read(ctx, userID)
			writeJSON(w, http.StatusPaymentRequired, map[string]any{
				"error": "limit_reached",
				"quota": q,
			})
		case errors.As(err, &qerr):
			writeError(w, http.StatusInternalServerError, "quota_unavailable", err.Error())
		default:
			writeError(w, http.StatusBadGateway, "generation_failed", err.Error())
		}
		return
	}

	sess.mu.Lock()
	sess.Document = result.Document
	sess.Edited = result.Document
	sess.mu.Unlock()

	q, _ := s.quota.Read(ctx, userID)
	writeJSON(w, http.StatusOK, finalizeResp{
		Document:     result.Document,
		QuotaWarning: result.QuotaWarning,
		Quota:        q,
	})
}

func (s *Server) handleDocumentGet(w http.ResponseWriter, r *http.Request) {
	_, sess, ok := s.session(w, r)
	if !ok {
		return
	}
	doc, found := currentDocument(sess)
	if !found {
		writeError(w, http.StatusNotFound, "no_document", "no document has been generated yet")
		return
	}
	switch format := r.URL.Query().Get("format"); format {
	case "", "markdown":
		writeJSON(w, http.StatusOK, map[string]string{"format": "markdown", "document": doc})
	case "plain":
		writeJSON(w, http.StatusOK, map[string]string{"format": "plain", "document": markup.ToPlain(doc)})
	case "html":
		rendered, err := markup.RenderHTML(doc)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "render_failed", err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(rendered))
	default:
		writeError(w, http.StatusBadRequest, "bad_request", "format must be markdown, plain, or html")
	}
}

func (s *Server) handleDocumentSave(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req documentSaveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	sess.mu.Lock()
	sess.Edited = req.Content
	if req.Save {
		sess.Document = req.Content
	}
	sess.mu.Unlock()
	writeJSON(w, http.StatusOK, sess.view(id))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	_, sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.mu.Lock()
	doc := sess.Edited
	if doc == "" {
		doc = sess.Document
	}
	if doc == "" {
		doc = sess.Combined
	}
	sess.mu.Unlock()
	if doc == "" {
		writeError(w, http.StatusNotFound, "no_document", "no document has been generated yet")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="ai-usage-policy.pdf"`)
	if err := export.PDF(markup.ToPlain(doc), w); err != nil {
		s.logger.Error("pdf export failed", zap.Error(err))
	}
}

func (s *Server) handleQuota(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "identity_required", "X-User-ID header is required")
		return
	}
	q, err := s.quota.Read(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "quota_unavailable", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// --- Helpers ---

// currentDocument returns the canonical annotated document, falling back to
// the combined pre-annotation document when finalize has not run yet.
func currentDocument(sess *session) (string, bool) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.Document != "" {
		return sess.Document, true
	}
	if sess.Combined != "" {
		return sess.Combined, true
	}
	return "", false
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (string, *session, bool) {
	id := r.PathValue("id")
	sess, ok := s.store.get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "session not found")
		return "", nil, false
	}
	return id, sess, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]string{"error": code, "message": msg})
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}
