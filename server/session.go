package server

import (
	"sync"

	"ai_policy_builder/generator"
)

// session holds one questionnaire's state: the answers, the ordered upload
// list, and the documents as they move through the pipeline. Combined is the
// pre-annotation assembly; Document is the canonical annotated policy;
// Edited is the human-editable copy, saved over Document only explicitly.
type session struct {
	mu       sync.Mutex
	Answers  generator.SurveyAnswers
	Uploads  []generator.UploadedDocument
	Combined string
	Document string
	Edited   string
}

type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
}

func newStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]*session)}
}

func (s *sessionStore) set(id string, sess *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = sess
}

func (s *sessionStore) get(id string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// sessionView is the JSON shape of a session snapshot.
type sessionView struct {
	SessionID string                       `json:"session_id"`
	Answers   generator.SurveyAnswers      `json:"answers"`
	Uploads   []generator.UploadedDocument `json:"uploads"`
	Combined  string                       `json:"combined_document,omitempty"`
	Document  string                       `json:"document,omitempty"`
	Edited    string                       `json:"edited_document,omitempty"`
}

func (s *session) view(id string) sessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	uploads := make([]generator.UploadedDocument, len(s.Uploads))
	copy(uploads, s.Uploads)
	return sessionView{
		SessionID: id,
		Answers:   s.Answers,
		Uploads:   uploads,
		Combined:  s.Combined,
		Document:  s.Document,
		Edited:    s.Edited,
	}
}
