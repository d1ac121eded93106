package client

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"studiosync/internal/app"
	"studiosync/internal/model"
)

// LocalMessage is one locally stored conversation message. Only the fields
// the wire shaping needs are typed; anything else a store keeps can be
// carried in Extra and is serialized alongside.
type LocalMessage struct {
	Role        string          `json:"role,omitempty"`
	Content     string          `json:"content"`
	AssistantID string          `json:"assistantId,omitempty"`
	Extra       json.RawMessage `json:"extra,omitempty"`
}

// LocalTopic is one locally stored conversation.
type LocalTopic struct {
	ID       string
	Messages []LocalMessage
}

// LocalStore supplies the local collections the Syncer pushes. Knowledge
// bases are not collected: the local database keeps notes only, so a full
// sync replaces the server-side bases with an empty set.
type LocalStore interface {
	Topics(ctx context.Context) ([]LocalTopic, error)
	Settings(ctx context.Context) (map[string]model.JSONText, error)
	Assistants(ctx context.Context) (map[string]app.AssistantPayload, error)
	KnowledgeNotes(ctx context.Context) ([]model.KnowledgeNote, error)
	Files(ctx context.Context) ([]model.File, error)
}

// Status mirrors the sync state the UI renders.
type Status struct {
	IsSyncing    bool
	LastSyncTime time.Time
	SyncError    string
}

// Handle tracks one in-flight sync. Wait blocks until the sync finishes or
// ctx is done.
type Handle struct {
	done chan struct{}
	err  error
}

func (h *Handle) Wait(ctx context.Context) error {
	select {
	case <-h.done:
		return h.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Syncer pushes the full local state through POST /v1/sync/all. At most one
// sync runs at a time: starting another while one is in flight returns the
// existing handle rather than dropping or queueing the call.
type Syncer struct {
	client   *Client
	store    LocalStore
	interval time.Duration

	mu       sync.Mutex
	inflight *Handle
	status   Status

	loopCancel context.CancelFunc
	loopDone   chan struct{}
}

// NewSyncer builds a syncer over client and store. interval is the auto-sync
// period; anything non-positive falls back to 30 minutes.
func NewSyncer(client *Client, store LocalStore, interval time.Duration) *Syncer {
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	return &Syncer{
		client:   client,
		store:    store,
		interval: interval,
	}
}

// SyncNow starts a sync unless one is already running, in which case the
// running sync's handle is returned.
func (s *Syncer) SyncNow(ctx context.Context) *Handle {
	s.mu.Lock()
	if s.inflight != nil {
		h := s.inflight
		s.mu.Unlock()
		return h
	}

	h := &Handle{done: make(chan struct{})}
	s.inflight = h
	s.status.IsSyncing = true
	s.status.SyncError = ""
	s.mu.Unlock()

	go func() {
		err := s.syncAll(ctx)

		s.mu.Lock()
		s.inflight = nil
		s.status.IsSyncing = false
		if err != nil {
			s.status.SyncError = err.Error()
		} else {
			s.status.LastSyncTime = time.Now()
		}
		s.mu.Unlock()

		h.err = err
		close(h.done)
	}()

	return h
}

// Start launches the auto-sync loop. Calling Start while a loop runs
// restarts it with the current interval.
func (s *Syncer) Start(ctx context.Context) {
	s.Stop()

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	s.mu.Lock()
	s.loopCancel = cancel
	s.loopDone = done
	s.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-loopCtx.Done():
				return
			case <-ticker.C:
				if err := s.SyncNow(loopCtx).Wait(loopCtx); err != nil {
					log.Printf("auto sync failed: %v", err)
				}
			}
		}
	}()
}

// Stop cancels the auto-sync loop and waits for it to exit. A sync already
// in flight is not cancelled.
func (s *Syncer) Stop() {
	s.mu.Lock()
	cancel := s.loopCancel
	done := s.loopDone
	s.loopCancel = nil
	s.loopDone = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

func (s *Syncer) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Syncer) syncAll(ctx context.Context) error {
	topics, err := s.store.Topics(ctx)
	if err != nil {
		return err
	}
	settings, err := s.store.Settings(ctx)
	if err != nil {
		return err
	}
	assistants, err := s.store.Assistants(ctx)
	if err != nil {
		return err
	}
	notes, err := s.store.KnowledgeNotes(ctx)
	if err != nil {
		return err
	}
	files, err := s.store.Files(ctx)
	if err != nil {
		return err
	}

	input := app.SyncAllInput{
		Topics:         make([]model.Topic, 0, len(topics)),
		Settings:       settings,
		Assistants:     assistants,
		KnowledgeNotes: notes,
		Files:          files,
	}
	if input.Settings == nil {
		input.Settings = map[string]model.JSONText{}
	}
	if input.Assistants == nil {
		input.Assistants = map[string]app.AssistantPayload{}
	}
	if input.KnowledgeNotes == nil {
		input.KnowledgeNotes = []model.KnowledgeNote{}
	}
	if input.Files == nil {
		input.Files = []model.File{}
	}
	for _, topic := range topics {
		input.Topics = append(input.Topics, shapeTopic(topic))
	}

	return s.client.SyncAll(ctx, input)
}

// shapeTopic derives the wire topic: the title comes from the first message
// (truncated), the assistant id from the first message's assistant.
func shapeTopic(topic LocalTopic) model.Topic {
	title := "Untitled"
	assistantID := ""
	if len(topic.Messages) > 0 {
		if content := topic.Messages[0].Content; content != "" {
			title = truncate(content, 100)
		}
		assistantID = topic.Messages[0].AssistantID
	}

	messages := topic.Messages
	if messages == nil {
		messages = []LocalMessage{}
	}
	encoded, err := json.Marshal(messages)
	if err != nil {
		encoded = []byte("[]")
	}

	return model.Topic{
		ID:          topic.ID,
		Title:       title,
		Messages:    model.JSONText(encoded),
		AssistantID: assistantID,
	}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
