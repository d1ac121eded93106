package app

import (
	"context"
	"log"
	"time"

	"studiosync/internal/model"
	"studiosync/internal/repository"
)

// Entity kinds as they appear on the wire and in cache keys.
const (
	KindTopics     = "topics"
	KindSettings   = "settings"
	KindAssistants = "assistants"
	KindKnowledge  = "knowledge"
	KindFiles      = "files"
)

// SyncEventPublisher receives an audit event after every successful replace.
type SyncEventPublisher interface {
	Publish(ctx context.Context, event model.SyncEvent) error
}

// SnapshotCache caches serialized fetch-all results per (user, kind).
type SnapshotCache interface {
	Get(ctx context.Context, userID, kind string, out interface{}) (bool, error)
	Set(ctx context.Context, userID, kind string, value interface{}) error
	Delete(ctx context.Context, userID string, kinds ...string) error
}

// AssistantPayload is the wire shape of one assistant, keyed by id in the
// enclosing map.
type AssistantPayload struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Config      model.JSONText `json:"config"`
}

// KnowledgeBasePayload mirrors AssistantPayload for knowledge bases.
type KnowledgeBasePayload struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Config      model.JSONText `json:"config"`
}

// KnowledgeData is the combined fetch result for the knowledge kind.
type KnowledgeData struct {
	KnowledgeBases map[string]KnowledgeBasePayload `json:"knowledgeBases"`
	KnowledgeNotes []model.KnowledgeNote           `json:"knowledgeNotes"`
}

// SyncAllInput carries any subset of the five kinds. A nil field was absent
// from the payload and leaves stored rows untouched; an empty non-nil field
// clears the kind.
type SyncAllInput struct {
	Topics         []model.Topic                   `json:"topics"`
	Settings       map[string]model.JSONText       `json:"settings"`
	Assistants     map[string]AssistantPayload     `json:"assistants"`
	KnowledgeBases map[string]KnowledgeBasePayload `json:"knowledgeBases"`
	KnowledgeNotes []model.KnowledgeNote           `json:"knowledgeNotes"`
	Files          []model.File                    `json:"files"`
}

type SyncService struct {
	topicRepo     *repository.TopicRepository
	settingRepo   *repository.SettingRepository
	assistantRepo *repository.AssistantRepository
	knowledgeRepo *repository.KnowledgeRepository
	fileRepo      *repository.FileRepository
	cache         SnapshotCache
	publisher     SyncEventPublisher
}

func NewSyncService(
	topicRepo *repository.TopicRepository,
	settingRepo *repository.SettingRepository,
	assistantRepo *repository.AssistantRepository,
	knowledgeRepo *repository.KnowledgeRepository,
	fileRepo *repository.FileRepository,
	cache SnapshotCache,
	publisher SyncEventPublisher,
) *SyncService {
	return &SyncService{
		topicRepo:     topicRepo,
		settingRepo:   settingRepo,
		assistantRepo: assistantRepo,
		knowledgeRepo: knowledgeRepo,
		fileRepo:      fileRepo,
		cache:         cache,
		publisher:     publisher,
	}
}

func (s *SyncService) GetTopics(ctx context.Context, userID string) ([]model.Topic, error) {
	var cached []model.Topic
	if hit, err := s.cacheGet(ctx, userID, KindTopics, &cached); err == nil && hit {
		return cached, nil
	}

	topics, err := s.topicRepo.ListByUserID(userID)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, userID, KindTopics, topics)
	return topics, nil
}

func (s *SyncService) ReplaceTopics(ctx context.Context, userID string, topics []model.Topic) error {
	for i := range topics {
		if topics[i].Messages == "" {
			topics[i].Messages = "[]"
		}
	}
	if err := s.topicRepo.ReplaceByUserID(userID, topics); err != nil {
		return err
	}
	s.afterReplace(ctx, userID, KindTopics, len(topics))
	return nil
}

func (s *SyncService) GetSettings(ctx context.Context, userID string) (map[string]model.JSONText, error) {
	var cached map[string]model.JSONText
	if hit, err := s.cacheGet(ctx, userID, KindSettings, &cached); err == nil && hit {
		return cached, nil
	}

	rows, err := s.settingRepo.ListByUserID(userID)
	if err != nil {
		return nil, err
	}
	settings := make(map[string]model.JSONText, len(rows))
	for _, row := range rows {
		settings[row.ID] = row.Value
	}
	s.cacheSet(ctx, userID, KindSettings, settings)
	return settings, nil
}

func (s *SyncService) ReplaceSettings(ctx context.Context, userID string, settings map[string]model.JSONText) error {
	rows := make([]model.Setting, 0, len(settings))
	for id, value := range settings {
		rows = append(rows, model.Setting{ID: id, UserID: userID, Value: value})
	}
	if err := s.settingRepo.ReplaceByUserID(userID, rows); err != nil {
		return err
	}
	s.afterReplace(ctx, userID, KindSettings, len(rows))
	return nil
}

func (s *SyncService) GetAssistants(ctx context.Context, userID string) (map[string]AssistantPayload, error) {
	var cached map[string]AssistantPayload
	if hit, err := s.cacheGet(ctx, userID, KindAssistants, &cached); err == nil && hit {
		return cached, nil
	}

	rows, err := s.assistantRepo.ListByUserID(userID)
	if err != nil {
		return nil, err
	}
	assistants := make(map[string]AssistantPayload, len(rows))
	for _, row := range rows {
		assistants[row.ID] = AssistantPayload{
			Name:        row.Name,
			Description: row.Description,
			Config:      row.Config,
		}
	}
	s.cacheSet(ctx, userID, KindAssistants, assistants)
	return assistants, nil
}

func (s *SyncService) ReplaceAssistants(ctx context.Context, userID string, assistants map[string]AssistantPayload) error {
	rows := make([]model.Assistant, 0, len(assistants))
	for id, assistant := range assistants {
		name := assistant.Name
		if name == "" {
			name = id
		}
		config := assistant.Config
		if config == "" {
			config = "{}"
		}
		rows = append(rows, model.Assistant{
			ID:          id,
			UserID:      userID,
			Name:        name,
			Description: assistant.Description,
			Config:      config,
		})
	}
	if err := s.assistantRepo.ReplaceByUserID(userID, rows); err != nil {
		return err
	}
	s.afterReplace(ctx, userID, KindAssistants, len(rows))
	return nil
}

func (s *SyncService) GetKnowledge(ctx context.Context, userID string) (*KnowledgeData, error) {
	var cached KnowledgeData
	if hit, err := s.cacheGet(ctx, userID, KindKnowledge, &cached); err == nil && hit {
		return &cached, nil
	}

	baseRows, err := s.knowledgeRepo.ListBasesByUserID(userID)
	if err != nil {
		return nil, err
	}
	notes, err := s.knowledgeRepo.ListNotesByUserID(userID)
	if err != nil {
		return nil, err
	}

	bases := make(map[string]KnowledgeBasePayload, len(baseRows))
	for _, row := range baseRows {
		bases[row.ID] = KnowledgeBasePayload{
			Name:        row.Name,
			Description: row.Description,
			Config:      row.Config,
		}
	}
	data := &KnowledgeData{KnowledgeBases: bases, KnowledgeNotes: notes}
	s.cacheSet(ctx, userID, KindKnowledge, data)
	return data, nil
}

// ReplaceKnowledge replaces bases and notes together: the two reference each
// other and are treated as one scope.
func (s *SyncService) ReplaceKnowledge(ctx context.Context, userID string, bases map[string]KnowledgeBasePayload, notes []model.KnowledgeNote) error {
	baseRows := make([]model.KnowledgeBase, 0, len(bases))
	for id, base := range bases {
		name := base.Name
		if name == "" {
			name = id
		}
		config := base.Config
		if config == "" {
			config = "{}"
		}
		baseRows = append(baseRows, model.KnowledgeBase{
			ID:          id,
			UserID:      userID,
			Name:        name,
			Description: base.Description,
			Config:      config,
		})
	}
	for i := range notes {
		if notes[i].Type == "" {
			notes[i].Type = "text"
		}
	}
	if err := s.knowledgeRepo.ReplaceByUserID(userID, baseRows, notes); err != nil {
		return err
	}
	s.afterReplace(ctx, userID, KindKnowledge, len(baseRows)+len(notes))
	return nil
}

func (s *SyncService) GetFiles(ctx context.Context, userID string) ([]model.File, error) {
	var cached []model.File
	if hit, err := s.cacheGet(ctx, userID, KindFiles, &cached); err == nil && hit {
		return cached, nil
	}

	files, err := s.fileRepo.ListByUserID(userID)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, userID, KindFiles, files)
	return files, nil
}

func (s *SyncService) ReplaceFiles(ctx context.Context, userID string, files []model.File) error {
	for i := range files {
		if files[i].OriginName == "" {
			files[i].OriginName = files[i].Name
		}
	}
	if err := s.fileRepo.ReplaceByUserID(userID, files); err != nil {
		return err
	}
	s.afterReplace(ctx, userID, KindFiles, len(files))
	return nil
}

// SyncAll replaces every kind present in input. Supplying either of
// knowledgeBases/knowledgeNotes replaces both, the absent one as empty.
func (s *SyncService) SyncAll(ctx context.Context, userID string, input SyncAllInput) error {
	if input.Topics != nil {
		if err := s.ReplaceTopics(ctx, userID, input.Topics); err != nil {
			return err
		}
	}
	if input.Settings != nil {
		if err := s.ReplaceSettings(ctx, userID, input.Settings); err != nil {
			return err
		}
	}
	if input.Assistants != nil {
		if err := s.ReplaceAssistants(ctx, userID, input.Assistants); err != nil {
			return err
		}
	}
	if input.KnowledgeBases != nil || input.KnowledgeNotes != nil {
		bases := input.KnowledgeBases
		if bases == nil {
			bases = map[string]KnowledgeBasePayload{}
		}
		notes := input.KnowledgeNotes
		if notes == nil {
			notes = []model.KnowledgeNote{}
		}
		if err := s.ReplaceKnowledge(ctx, userID, bases, notes); err != nil {
			return err
		}
	}
	if input.Files != nil {
		if err := s.ReplaceFiles(ctx, userID, input.Files); err != nil {
			return err
		}
	}
	return nil
}

func (s *SyncService) cacheGet(ctx context.Context, userID, kind string, out interface{}) (bool, error) {
	if s.cache == nil {
		return false, nil
	}
	return s.cache.Get(ctx, userID, kind, out)
}

func (s *SyncService) cacheSet(ctx context.Context, userID, kind string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, userID, kind, value); err != nil {
		log.Printf("cache snapshot %s/%s failed: %v", userID, kind, err)
	}
}

// afterReplace drops the stale snapshot and emits a best-effort audit event.
func (s *SyncService) afterReplace(ctx context.Context, userID, kind string, count int) {
	if s.cache != nil {
		if err := s.cache.Delete(ctx, userID, kind); err != nil {
			log.Printf("invalidate snapshot %s/%s failed: %v", userID, kind, err)
		}
	}
	if s.publisher != nil {
		event := model.SyncEvent{
			UserID:   userID,
			Kind:     kind,
			Count:    count,
			SyncedAt: time.Now(),
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			log.Printf("publish sync event %s/%s failed: %v", userID, kind, err)
		}
	}
}
