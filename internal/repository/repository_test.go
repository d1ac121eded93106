package repository

import (
	"testing"

	"github.com/stretchr/testify/require"

	"studiosync/internal/model"
	"studiosync/internal/testutil"
)

func TestTopicRepository_ReplaceAndList(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewTopicRepository(db)

	topics := []model.Topic{
		{ID: "t1", Title: "first", Messages: `[{"role":"user","content":"hi"}]`},
		{ID: "t2", Title: "second", Messages: "[]", AssistantID: "a1"},
	}
	require.NoError(t, repo.ReplaceByUserID("u1", topics))

	got, err := repo.ListByUserID("u1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	byID := map[string]model.Topic{}
	for _, topic := range got {
		byID[topic.ID] = topic
	}
	require.Equal(t, "first", byID["t1"].Title)
	require.Equal(t, model.JSONText(`[{"role":"user","content":"hi"}]`), byID["t1"].Messages)
	require.Equal(t, "a1", byID["t2"].AssistantID)
}

func TestTopicRepository_ReplaceEmptyClears(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewTopicRepository(db)

	require.NoError(t, repo.ReplaceByUserID("u1", []model.Topic{{ID: "t1", Messages: "[]"}}))
	require.NoError(t, repo.ReplaceByUserID("u1", nil))

	got, err := repo.ListByUserID("u1")
	require.NoError(t, err)
	require.Empty(t, got)

	// A second clear is a no-op, not an error.
	require.NoError(t, repo.ReplaceByUserID("u1", nil))
}

func TestTopicRepository_ScopedToUser(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewTopicRepository(db)

	require.NoError(t, repo.ReplaceByUserID("ua", []model.Topic{
		{ID: "t1", Messages: "[]"},
		{ID: "t2", Messages: "[]"},
	}))
	require.NoError(t, repo.ReplaceByUserID("ub", nil))

	got, err := repo.ListByUserID("ua")
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestTopicRepository_OverridesEmbeddedUserID(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewTopicRepository(db)

	require.NoError(t, repo.ReplaceByUserID("ua", []model.Topic{
		{ID: "t1", UserID: "ub", Messages: "[]"},
	}))

	got, err := repo.ListByUserID("ua")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "ua", got[0].UserID)

	other, err := repo.ListByUserID("ub")
	require.NoError(t, err)
	require.Empty(t, other)
}

func TestTopicRepository_SameIDDifferentUsers(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewTopicRepository(db)

	require.NoError(t, repo.ReplaceByUserID("ua", []model.Topic{{ID: "shared", Messages: "[]"}}))
	require.NoError(t, repo.ReplaceByUserID("ub", []model.Topic{{ID: "shared", Messages: "[]"}}))

	a, err := repo.ListByUserID("ua")
	require.NoError(t, err)
	require.Len(t, a, 1)
	b, err := repo.ListByUserID("ub")
	require.NoError(t, err)
	require.Len(t, b, 1)
}

func TestTopicRepository_FailedInsertKeepsPriorRows(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewTopicRepository(db)

	require.NoError(t, repo.ReplaceByUserID("u1", []model.Topic{
		{ID: "old1", Messages: "[]"},
		{ID: "old2", Messages: "[]"},
	}))

	// Duplicate ids inside one payload violate the primary key, so the
	// insert fails and the transaction must roll the delete back too.
	err := repo.ReplaceByUserID("u1", []model.Topic{
		{ID: "dup", Messages: "[]"},
		{ID: "dup", Messages: "[]"},
	})
	require.Error(t, err)

	got, err := repo.ListByUserID("u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestSettingRepository_ReplaceAndList(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewSettingRepository(db)

	require.NoError(t, repo.ReplaceByUserID("u1", []model.Setting{
		{ID: "theme", Value: `"dark"`},
		{ID: "editor", Value: `{"fontSize":14}`},
	}))

	got, err := repo.ListByUserID("u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestKnowledgeRepository_ReplacesBothAsUnit(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewKnowledgeRepository(db)

	bases := []model.KnowledgeBase{{ID: "kb1", Name: "docs", Config: "{}"}}
	notes := []model.KnowledgeNote{{ID: "n1", BaseID: "kb1", Type: "text", Content: "note"}}
	require.NoError(t, repo.ReplaceByUserID("u1", bases, notes))

	// Replacing with notes only clears the bases alongside.
	require.NoError(t, repo.ReplaceByUserID("u1", nil, []model.KnowledgeNote{
		{ID: "n2", Type: "text", Content: "other"},
	}))

	gotBases, err := repo.ListBasesByUserID("u1")
	require.NoError(t, err)
	require.Empty(t, gotBases)

	gotNotes, err := repo.ListNotesByUserID("u1")
	require.NoError(t, err)
	require.Len(t, gotNotes, 1)
	require.Equal(t, "n2", gotNotes[0].ID)
}

func TestFileRepository_ReplaceAndList(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewFileRepository(db)

	require.NoError(t, repo.ReplaceByUserID("u1", []model.File{
		{ID: "f1", Name: "report.pdf", OriginName: "report.pdf", Size: 1024, Ext: ".pdf", Count: 2},
	}))

	got, err := repo.ListByUserID("u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, int64(1024), got[0].Size)
	require.Equal(t, 2, got[0].Count)
}

func TestUserRepository_NotFoundIsNil(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)

	user, err := repo.GetByEmail("missing@example.com")
	require.NoError(t, err)
	require.Nil(t, user)

	user, err = repo.GetByID("missing")
	require.NoError(t, err)
	require.Nil(t, user)
}

func TestSyncLogRepository_CreateAndList(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewSyncLogRepository(db)

	require.NoError(t, repo.Create(&model.SyncLog{UserID: "u1", Kind: "topics", Count: 3}))
	require.NoError(t, repo.Create(&model.SyncLog{UserID: "u1", Kind: "files", Count: 1}))

	got, err := repo.ListByUserID("u1", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
}
