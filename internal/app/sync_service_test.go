package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"studiosync/internal/model"
	"studiosync/internal/repository"
	"studiosync/internal/testutil"
)

type capturedEvents struct {
	events []model.SyncEvent
}

func (c *capturedEvents) Publish(_ context.Context, event model.SyncEvent) error {
	c.events = append(c.events, event)
	return nil
}

func newSyncService(t *testing.T) (*SyncService, *gorm.DB, *capturedEvents) {
	t.Helper()
	db := testutil.NewDB(t)
	events := &capturedEvents{}
	svc := NewSyncService(
		repository.NewTopicRepository(db),
		repository.NewSettingRepository(db),
		repository.NewAssistantRepository(db),
		repository.NewKnowledgeRepository(db),
		repository.NewFileRepository(db),
		nil,
		events,
	)
	return svc, db, events
}

func TestSyncService_TopicsRoundtrip(t *testing.T) {
	svc, _, _ := newSyncService(t)
	ctx := context.Background()

	topics := []model.Topic{
		{ID: "t1", Title: "hello", Messages: `[{"role":"user","content":"hi"}]`, AssistantID: "a1"},
	}
	require.NoError(t, svc.ReplaceTopics(ctx, "u1", topics))

	got, err := svc.GetTopics(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "t1", got[0].ID)
	require.Equal(t, model.JSONText(`[{"role":"user","content":"hi"}]`), got[0].Messages)
}

func TestSyncService_TopicsDefaultMessages(t *testing.T) {
	svc, _, _ := newSyncService(t)
	ctx := context.Background()

	require.NoError(t, svc.ReplaceTopics(ctx, "u1", []model.Topic{{ID: "t1"}}))

	got, err := svc.GetTopics(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, model.JSONText("[]"), got[0].Messages)
}

func TestSyncService_ReplaceEmptyIsIdempotentClear(t *testing.T) {
	svc, _, _ := newSyncService(t)
	ctx := context.Background()

	require.NoError(t, svc.ReplaceTopics(ctx, "u1", []model.Topic{{ID: "t1"}}))
	require.NoError(t, svc.ReplaceTopics(ctx, "u1", []model.Topic{}))

	got, err := svc.GetTopics(ctx, "u1")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestSyncService_SettingsRoundtrip(t *testing.T) {
	svc, _, _ := newSyncService(t)
	ctx := context.Background()

	settings := map[string]model.JSONText{
		"theme":  `"dark"`,
		"editor": `{"fontSize":14,"wrap":true}`,
	}
	require.NoError(t, svc.ReplaceSettings(ctx, "u1", settings))

	got, err := svc.GetSettings(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, settings["theme"], got["theme"])
	require.Equal(t, settings["editor"], got["editor"])
}

func TestSyncService_AssistantDefaults(t *testing.T) {
	svc, _, _ := newSyncService(t)
	ctx := context.Background()

	require.NoError(t, svc.ReplaceAssistants(ctx, "u1", map[string]AssistantPayload{
		"a1": {},
	}))

	got, err := svc.GetAssistants(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "a1", got["a1"].Name)
	require.Equal(t, model.JSONText("{}"), got["a1"].Config)
}

func TestSyncService_KnowledgeNoteDefaults(t *testing.T) {
	svc, _, _ := newSyncService(t)
	ctx := context.Background()

	require.NoError(t, svc.ReplaceKnowledge(ctx, "u1", nil, []model.KnowledgeNote{
		{ID: "n1", Content: "text body"},
	}))

	got, err := svc.GetKnowledge(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got.KnowledgeNotes, 1)
	require.Equal(t, "text", got.KnowledgeNotes[0].Type)
}

func TestSyncService_FileOriginNameDefault(t *testing.T) {
	svc, _, _ := newSyncService(t)
	ctx := context.Background()

	require.NoError(t, svc.ReplaceFiles(ctx, "u1", []model.File{{ID: "f1", Name: "a.txt"}}))

	got, err := svc.GetFiles(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "a.txt", got[0].OriginName)
}

func TestSyncService_SyncAllLeavesAbsentKindsUntouched(t *testing.T) {
	svc, _, _ := newSyncService(t)
	ctx := context.Background()

	require.NoError(t, svc.ReplaceSettings(ctx, "u1", map[string]model.JSONText{"theme": `"dark"`}))
	require.NoError(t, svc.ReplaceFiles(ctx, "u1", []model.File{{ID: "f1", Name: "a.txt"}}))

	// Only topics present: settings and files must survive.
	require.NoError(t, svc.SyncAll(ctx, "u1", SyncAllInput{
		Topics: []model.Topic{{ID: "t1"}},
	}))

	settings, err := svc.GetSettings(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, settings, 1)

	files, err := svc.GetFiles(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, files, 1)

	topics, err := svc.GetTopics(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, topics, 1)
}

func TestSyncService_SyncAllEmptyCollectionClears(t *testing.T) {
	svc, _, _ := newSyncService(t)
	ctx := context.Background()

	require.NoError(t, svc.ReplaceTopics(ctx, "u1", []model.Topic{{ID: "t1"}}))

	require.NoError(t, svc.SyncAll(ctx, "u1", SyncAllInput{
		Topics: []model.Topic{},
	}))

	topics, err := svc.GetTopics(ctx, "u1")
	require.NoError(t, err)
	require.Empty(t, topics)
}

func TestSyncService_SyncAllKnowledgeCoupling(t *testing.T) {
	svc, _, _ := newSyncService(t)
	ctx := context.Background()

	require.NoError(t, svc.ReplaceKnowledge(ctx, "u1",
		map[string]KnowledgeBasePayload{"kb1": {Name: "docs"}},
		nil,
	))

	// Notes without a knowledgeBases field clear the stored bases.
	require.NoError(t, svc.SyncAll(ctx, "u1", SyncAllInput{
		KnowledgeNotes: []model.KnowledgeNote{{ID: "n1", Content: "x"}},
	}))

	got, err := svc.GetKnowledge(ctx, "u1")
	require.NoError(t, err)
	require.Empty(t, got.KnowledgeBases)
	require.Len(t, got.KnowledgeNotes, 1)
}

func TestSyncService_NoCrossUserLeakage(t *testing.T) {
	svc, _, _ := newSyncService(t)
	ctx := context.Background()

	require.NoError(t, svc.ReplaceTopics(ctx, "ua", []model.Topic{{ID: "t1"}, {ID: "t2"}}))
	require.NoError(t, svc.ReplaceTopics(ctx, "ub", []model.Topic{}))

	topics, err := svc.GetTopics(ctx, "ua")
	require.NoError(t, err)
	require.Len(t, topics, 2)
}

func TestSyncService_PublishesAuditEvents(t *testing.T) {
	svc, _, events := newSyncService(t)
	ctx := context.Background()

	require.NoError(t, svc.ReplaceTopics(ctx, "u1", []model.Topic{{ID: "t1"}}))
	require.NoError(t, svc.SyncAll(ctx, "u1", SyncAllInput{
		Settings: map[string]model.JSONText{"theme": `"dark"`},
		Files:    []model.File{},
	}))

	require.Len(t, events.events, 3)
	require.Equal(t, KindTopics, events.events[0].Kind)
	require.Equal(t, 1, events.events[0].Count)
	require.Equal(t, KindSettings, events.events[1].Kind)
	require.Equal(t, KindFiles, events.events[2].Kind)
	require.Equal(t, 0, events.events[2].Count)
}
