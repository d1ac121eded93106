package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"studiosync/internal/app"
	"studiosync/internal/model"
	"studiosync/internal/transport/http/middleware"
	"studiosync/internal/transport/http/response"
)

type SyncHandler struct {
	syncService *app.SyncService
}

type SyncTopicsRequest struct {
	Topics []model.Topic `json:"topics"`
}

type SyncSettingsRequest struct {
	Settings map[string]model.JSONText `json:"settings"`
}

type SyncAssistantsRequest struct {
	Assistants map[string]app.AssistantPayload `json:"assistants"`
}

type SyncKnowledgeRequest struct {
	KnowledgeBases map[string]app.KnowledgeBasePayload `json:"knowledgeBases"`
	KnowledgeNotes []model.KnowledgeNote               `json:"knowledgeNotes"`
}

type SyncFilesRequest struct {
	Files []model.File `json:"files"`
}

func NewSyncHandler(syncService *app.SyncService) *SyncHandler {
	return &SyncHandler{syncService: syncService}
}

func (h *SyncHandler) GetTopics(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized: missing identity")
		return
	}

	topics, err := h.syncService.GetTopics(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get topics")
		return
	}
	if topics == nil {
		topics = []model.Topic{}
	}
	response.OK(c, topics)
}

func (h *SyncHandler) SyncTopics(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized: missing identity")
		return
	}

	var req SyncTopicsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, bindingDetails(err))
		return
	}

	if err := h.syncService.ReplaceTopics(c.Request.Context(), userID, req.Topics); err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to sync topics")
		return
	}
	response.Message(c, "Topics synced successfully")
}

func (h *SyncHandler) GetSettings(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized: missing identity")
		return
	}

	settings, err := h.syncService.GetSettings(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get settings")
		return
	}
	response.OK(c, settings)
}

func (h *SyncHandler) SyncSettings(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized: missing identity")
		return
	}

	var req SyncSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, bindingDetails(err))
		return
	}

	if err := h.syncService.ReplaceSettings(c.Request.Context(), userID, req.Settings); err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to sync settings")
		return
	}
	response.Message(c, "Settings synced successfully")
}

func (h *SyncHandler) GetAssistants(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized: missing identity")
		return
	}

	assistants, err := h.syncService.GetAssistants(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get assistants")
		return
	}
	response.OK(c, assistants)
}

func (h *SyncHandler) SyncAssistants(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized: missing identity")
		return
	}

	var req SyncAssistantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, bindingDetails(err))
		return
	}

	if err := h.syncService.ReplaceAssistants(c.Request.Context(), userID, req.Assistants); err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to sync assistants")
		return
	}
	response.Message(c, "Assistants synced successfully")
}

func (h *SyncHandler) GetKnowledge(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized: missing identity")
		return
	}

	knowledge, err := h.syncService.GetKnowledge(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get knowledge")
		return
	}
	if knowledge.KnowledgeNotes == nil {
		knowledge.KnowledgeNotes = []model.KnowledgeNote{}
	}
	response.OK(c, knowledge)
}

func (h *SyncHandler) SyncKnowledge(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized: missing identity")
		return
	}

	var req SyncKnowledgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, bindingDetails(err))
		return
	}

	if req.KnowledgeBases == nil {
		req.KnowledgeBases = map[string]app.KnowledgeBasePayload{}
	}
	if err := h.syncService.ReplaceKnowledge(c.Request.Context(), userID, req.KnowledgeBases, req.KnowledgeNotes); err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to sync knowledge")
		return
	}
	response.Message(c, "Knowledge synced successfully")
}

func (h *SyncHandler) GetFiles(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized: missing identity")
		return
	}

	files, err := h.syncService.GetFiles(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get files")
		return
	}
	if files == nil {
		files = []model.File{}
	}
	response.OK(c, files)
}

func (h *SyncHandler) SyncFiles(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized: missing identity")
		return
	}

	var req SyncFilesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, bindingDetails(err))
		return
	}

	if err := h.syncService.ReplaceFiles(c.Request.Context(), userID, req.Files); err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to sync files")
		return
	}
	response.Message(c, "Files synced successfully")
}

// SyncAll replaces only the kinds present in the payload; absent kinds keep
// their stored rows.
func (h *SyncHandler) SyncAll(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized: missing identity")
		return
	}

	var input app.SyncAllInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, bindingDetails(err))
		return
	}

	if err := h.syncService.SyncAll(c.Request.Context(), userID, input); err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to sync all data")
		return
	}
	response.Message(c, "All data synced successfully")
}
