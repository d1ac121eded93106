// Package client is the desktop-side counterpart of the sync server: a typed
// HTTP wrapper over the /v1 API plus a Syncer that pushes local collections
// on demand or on a timer.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"studiosync/internal/app"
	"studiosync/internal/model"
)

// TokenStore persists the bearer token between runs. Save("") clears it.
type TokenStore interface {
	Load() string
	Save(token string)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	store      TokenStore

	mu    sync.RWMutex
	token string
}

type RegisterRequest struct {
	Email       string `json:"email"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName,omitempty"`
}

type AuthData struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

// New builds a client for baseURL. store may be nil; with a store the saved
// token is picked up immediately.
func New(baseURL string, store TokenStore) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
		store:      store,
	}
	if store != nil {
		c.token = store.Load()
	}
	return c
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
	if c.store != nil {
		c.store.Save(token)
	}
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) Logout() {
	c.SetToken("")
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthData, error) {
	var data AuthData
	if err := c.do(ctx, http.MethodPost, "/v1/auth/register", req, &data); err != nil {
		return nil, err
	}
	if data.Token != "" {
		c.SetToken(data.Token)
	}
	return &data, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthData, error) {
	body := map[string]string{"email": email, "password": password}
	var data AuthData
	if err := c.do(ctx, http.MethodPost, "/v1/auth/login", body, &data); err != nil {
		return nil, err
	}
	if data.Token != "" {
		c.SetToken(data.Token)
	}
	return &data, nil
}

func (c *Client) CurrentUser(ctx context.Context) (*model.User, error) {
	var data struct {
		User model.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/auth/me", nil, &data); err != nil {
		return nil, err
	}
	return &data.User, nil
}

func (c *Client) UpdateProfile(ctx context.Context, displayName, avatar *string) (*model.User, error) {
	body := map[string]*string{"displayName": displayName, "avatar": avatar}
	var data struct {
		User model.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPut, "/v1/auth/profile", body, &data); err != nil {
		return nil, err
	}
	return &data.User, nil
}

func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	body := map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}
	return c.do(ctx, http.MethodPost, "/v1/auth/password", body, nil)
}

func (c *Client) GetTopics(ctx context.Context) ([]model.Topic, error) {
	var topics []model.Topic
	if err := c.do(ctx, http.MethodGet, "/v1/sync/topics", nil, &topics); err != nil {
		return nil, err
	}
	return topics, nil
}

func (c *Client) SyncTopics(ctx context.Context, topics []model.Topic) error {
	return c.do(ctx, http.MethodPost, "/v1/sync/topics", map[string]interface{}{"topics": topics}, nil)
}

func (c *Client) GetSettings(ctx context.Context) (map[string]model.JSONText, error) {
	var settings map[string]model.JSONText
	if err := c.do(ctx, http.MethodGet, "/v1/sync/settings", nil, &settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (c *Client) SyncSettings(ctx context.Context, settings map[string]model.JSONText) error {
	return c.do(ctx, http.MethodPost, "/v1/sync/settings", map[string]interface{}{"settings": settings}, nil)
}

func (c *Client) GetAssistants(ctx context.Context) (map[string]app.AssistantPayload, error) {
	var assistants map[string]app.AssistantPayload
	if err := c.do(ctx, http.MethodGet, "/v1/sync/assistants", nil, &assistants); err != nil {
		return nil, err
	}
	return assistants, nil
}

func (c *Client) SyncAssistants(ctx context.Context, assistants map[string]app.AssistantPayload) error {
	return c.do(ctx, http.MethodPost, "/v1/sync/assistants", map[string]interface{}{"assistants": assistants}, nil)
}

func (c *Client) GetKnowledge(ctx context.Context) (*app.KnowledgeData, error) {
	var knowledge app.KnowledgeData
	if err := c.do(ctx, http.MethodGet, "/v1/sync/knowledge", nil, &knowledge); err != nil {
		return nil, err
	}
	return &knowledge, nil
}

func (c *Client) SyncKnowledge(ctx context.Context, bases map[string]app.KnowledgeBasePayload, notes []model.KnowledgeNote) error {
	body := map[string]interface{}{
		"knowledgeBases": bases,
		"knowledgeNotes": notes,
	}
	return c.do(ctx, http.MethodPost, "/v1/sync/knowledge", body, nil)
}

func (c *Client) GetFiles(ctx context.Context) ([]model.File, error) {
	var files []model.File
	if err := c.do(ctx, http.MethodGet, "/v1/sync/files", nil, &files); err != nil {
		return nil, err
	}
	return files, nil
}

func (c *Client) SyncFiles(ctx context.Context, files []model.File) error {
	return c.do(ctx, http.MethodPost, "/v1/sync/files", map[string]interface{}{"files": files}, nil)
}

func (c *Client) SyncAll(ctx context.Context, input app.SyncAllInput) error {
	return c.do(ctx, http.MethodPost, "/v1/sync/all", input, nil)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request failed: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response failed: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("[%d] parse response failed: %w", resp.StatusCode, err)
	}

	if resp.StatusCode >= 300 || !env.Success {
		message := "Unknown error"
		if env.Error != nil && env.Error.Message != "" {
			message = env.Error.Message
		} else if env.Message != "" {
			message = env.Message
		}
		return fmt.Errorf("[%d] %s", resp.StatusCode, message)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response data failed: %w", err)
		}
	}
	return nil
}
