package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	api_models "docuchat-backend/internal/models"
	db_models "docuchat-backend/internal/models"
	"docuchat-backend/internal/search"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for an unknown or torn-down session.
var ErrSessionNotFound = errors.New("chat session not found")

// Fixed assistant messages. GreetingMessage seeds every new session;
// ApologyMessage replaces the summary whenever retrieval fails.
const (
	GreetingMessage = "Hi! I'm the documentation assistant. Ask me anything about our internal docs and I'll pull up the articles that can help."
	ApologyMessage  = "Sorry, something went wrong while searching the knowledge base. Please try again in a moment."
)

// maxTurnArticles caps the article references attached to an assistant turn.
const maxTurnArticles = 3

// Retriever is the slice of the search pipeline the chat service depends on.
type Retriever interface {
	Search(ctx context.Context, query string) ([]db_models.Article, error)
}

// chatSession holds one session's transient state. The turn log and status
// are owned exclusively by this session and guarded by its mutex; there is
// no cross-session shared mutable state.
type chatSession struct {
	id        uuid.UUID
	createdAt time.Time

	mu     sync.Mutex
	status api_models.SessionStatus
	turns  []api_models.ChatTurn
	cancel context.CancelFunc // Cancels the in-flight cycle; nil when none
}

// appendTurnLocked appends an immutable turn. Caller must hold mu.
func (c *chatSession) appendTurnLocked(role api_models.TurnRole, content string, refs []api_models.ArticleRef) {
	c.turns = append(c.turns, api_models.ChatTurn{
		ID:        uuid.New(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
		Articles:  refs,
	})
}

// snapshotLocked copies the session state into a response DTO. Caller must
// hold mu.
func (c *chatSession) snapshotLocked() *api_models.SessionResponse {
	turns := make([]api_models.ChatTurn, len(c.turns))
	copy(turns, c.turns)
	return &api_models.SessionResponse{
		ID:        c.id,
		Status:    c.status,
		Turns:     turns,
		CreatedAt: c.createdAt,
	}
}

// ChatService owns the process-local chat sessions and drives the
// retrieve-and-summarize cycle for each submission. Sessions do not survive
// a restart.
type ChatService struct {
	retriever     Retriever
	searchTimeout time.Duration

	mu       sync.RWMutex
	sessions map[uuid.UUID]*chatSession
}

// NewChatService creates a new ChatService. searchTimeout bounds each
// retrieve-and-summarize cycle so a hung store call cannot leave a session
// permanently busy.
func NewChatService(retriever Retriever, searchTimeout time.Duration) *ChatService {
	return &ChatService{
		retriever:     retriever,
		searchTimeout: searchTimeout,
		sessions:      make(map[uuid.UUID]*chatSession),
	}
}

// CreateSession starts a new session seeded with the assistant greeting.
func (s *ChatService) CreateSession() *api_models.SessionResponse {
	sess := &chatSession{
		id:        uuid.New(),
		createdAt: time.Now(),
		status:    api_models.SessionIdle,
	}
	sess.appendTurnLocked(api_models.TurnRoleAssistant, GreetingMessage, nil)

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	log.Printf("[ChatService] CreateSession: Created session %s", sess.id)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.snapshotLocked()
}

// GetSession returns a snapshot of the session's turn log and status.
func (s *ChatService) GetSession(id uuid.UUID) (*api_models.SessionResponse, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.snapshotLocked(), nil
}

// Submit accepts a user query for a session. A blank query, or a submission
// while a cycle is already in flight, is a silent no-op: the returned
// snapshot is unchanged and accepted is false. On acceptance the user turn
// is appended immediately and the retrieve-and-summarize cycle runs
// asynchronously; its outcome is appended as an assistant turn (summary plus
// up to 3 article references) or a fixed apology turn. Failures never reach
// the caller.
func (s *ChatService) Submit(id uuid.UUID, query string) (snapshot *api_models.SessionResponse, accepted bool, err error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, false, err
	}

	sess.mu.Lock()
	if strings.TrimSpace(query) == "" || sess.status == api_models.SessionBusy {
		snap := sess.snapshotLocked()
		sess.mu.Unlock()
		log.Printf("[ChatService] Submit: Rejected submission for session %s (blank or busy)", id)
		return snap, false, nil
	}

	sess.appendTurnLocked(api_models.TurnRoleUser, query, nil)
	sess.status = api_models.SessionBusy
	ctx, cancel := context.WithTimeout(context.Background(), s.searchTimeout)
	sess.cancel = cancel
	snap := sess.snapshotLocked()
	sess.mu.Unlock()

	go s.runCycle(ctx, sess, query)

	return snap, true, nil
}

// runCycle executes one retrieve-and-summarize cycle. Every completion path
// clears the in-flight state so the session always returns to an accepting
// state.
func (s *ChatService) runCycle(ctx context.Context, sess *chatSession, query string) {
	articles, err := s.retriever.Search(ctx, query)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.cancel != nil {
		sess.cancel()
		sess.cancel = nil
	}

	if err != nil {
		log.Printf("ERROR [ChatService] runCycle: Retrieval failed for session %s: %v", sess.id, err)
		sess.appendTurnLocked(api_models.TurnRoleAssistant, ApologyMessage, nil)
		sess.status = api_models.SessionError
		return
	}

	summary := search.Summarize(articles, query)
	sess.appendTurnLocked(api_models.TurnRoleAssistant, summary, articleRefs(articles))
	sess.status = api_models.SessionIdle
	log.Printf("[ChatService] runCycle: Appended assistant turn for session %s (%d articles)", sess.id, len(articles))
}

// CloseSession tears down a session, cancelling any in-flight cycle.
func (s *ChatService) CloseSession(id uuid.UUID) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	sess.mu.Lock()
	if sess.cancel != nil {
		sess.cancel()
		sess.cancel = nil
	}
	sess.mu.Unlock()

	log.Printf("[ChatService] CloseSession: Closed session %s", id)
	return nil
}

func (s *ChatService) session(id uuid.UUID) (*chatSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// articleRefs maps retrieved articles to the at-most-3 references carried by
// an assistant turn.
func articleRefs(articles []db_models.Article) []api_models.ArticleRef {
	if len(articles) == 0 {
		return nil
	}
	if len(articles) > maxTurnArticles {
		articles = articles[:maxTurnArticles]
	}
	refs := make([]api_models.ArticleRef, len(articles))
	for i, a := range articles {
		refs[i] = api_models.ArticleRef{
			ID:       a.ID,
			Title:    a.Title,
			Category: a.Category,
		}
	}
	return refs
}
