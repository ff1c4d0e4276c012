// Package api реализует HTTP и WebSocket клиент сервера синхронизации.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iudanet/deltasync/internal/models"
	"github.com/iudanet/deltasync/internal/statesync"
	"github.com/iudanet/deltasync/pkg/api"
)

// ErrServer возвращается для ответов с кодом вне 2xx
var ErrServer = errors.New("server error")

//go:generate moq -out client_mock.go . ClientAPI

// ClientAPI операции сервера, которые использует клиент синхронизации
type ClientAPI interface {
	InitializeClient(ctx context.Context, clientID string) (*models.VectorClock, error)
	Delta(ctx context.Context, req api.DeltaRequest) (*api.DeltaResponse, error)
	Batch(ctx context.Context, req api.BatchSyncRequest) (*api.DeltaResponse, error)
	ReportLatency(ctx context.Context, clientID string, latencyMs float64) error
	QualityReport(ctx context.Context, clientID string) (*statesync.QualityReport, error)
	SystemHealth(ctx context.Context) (*models.SystemHealthMetrics, error)
	Health(ctx context.Context) (*api.HealthResponse, error)
	// Subscribe подключается к каналу доставки и вызывает fn на каждую
	// дельту до отмены ctx или разрыва соединения
	Subscribe(ctx context.Context, clientID string, fn func(models.StateDelta) error) error
}

var _ ClientAPI = (*Client)(nil)

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	dialer     *websocket.Dialer
	baseURL    string
	token      string
}

// NewClient создает новый API клиент; token может быть пустым,
// если сервер запущен без проверки идентичности
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
		dialer: &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
	}
}

// InitializeClient регистрирует клиента и возвращает его обнуленные часы
func (c *Client) InitializeClient(ctx context.Context, clientID string) (*models.VectorClock, error) {
	var resp api.InitializeClientResponse
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/clients", api.InitializeClientRequest{ClientID: clientID}, &resp)
	if err != nil {
		return nil, fmt.Errorf("initialize request failed: %w", err)
	}
	return resp.VectorClock, nil
}

// Delta запрашивает дельту по сущности или по всем сущностям типа
func (c *Client) Delta(ctx context.Context, req api.DeltaRequest) (*api.DeltaResponse, error) {
	var resp api.DeltaResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/sync/delta", req, &resp); err != nil {
		return nil, fmt.Errorf("delta request failed: %w", err)
	}
	return &resp, nil
}

// Batch запрашивает дельты по нескольким сущностям
func (c *Client) Batch(ctx context.Context, req api.BatchSyncRequest) (*api.DeltaResponse, error) {
	var resp api.DeltaResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/sync/batch", req, &resp); err != nil {
		return nil, fmt.Errorf("batch request failed: %w", err)
	}
	return &resp, nil
}

// ReportLatency отправляет замер задержки
func (c *Client) ReportLatency(ctx context.Context, clientID string, latencyMs float64) error {
	req := api.LatencyRequest{ClientID: clientID, LatencyMs: latencyMs}
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/quality/latency", req, nil); err != nil {
		return fmt.Errorf("latency request failed: %w", err)
	}
	return nil
}

// QualityReport получает сводку по соединению клиента
func (c *Client) QualityReport(ctx context.Context, clientID string) (*statesync.QualityReport, error) {
	var resp statesync.QualityReport
	path := "/api/v1/quality/" + url.PathEscape(clientID) + "/report"
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("quality report request failed: %w", err)
	}
	return &resp, nil
}

// SystemHealth получает агрегированные метрики всех клиентов
func (c *Client) SystemHealth(ctx context.Context) (*models.SystemHealthMetrics, error) {
	var resp models.SystemHealthMetrics
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/health/system", nil, &resp); err != nil {
		return nil, fmt.Errorf("system health request failed: %w", err)
	}
	return &resp, nil
}

// Health проверяет доступность сервера
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var resp api.HealthResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/health", nil, &resp); err != nil {
		return nil, fmt.Errorf("health request failed: %w", err)
	}
	return &resp, nil
}

// Subscribe держит WebSocket соединение и передает дельты в fn.
// Возвращает nil при отмене ctx.
func (c *Client) Subscribe(ctx context.Context, clientID string, fn func(models.StateDelta) error) error {
	wsURL, err := c.wsURL(clientID)
	if err != nil {
		return err
	}

	header := http.Header{}
	if c.token != "" {
		header.Set("Authorization", "Bearer "+c.token)
	}

	conn, resp, err := c.dialer.DialContext(ctx, wsURL, header)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return fmt.Errorf("failed to connect websocket: %w", err)
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			_ = conn.Close()
		case <-done:
			_ = conn.Close()
		}
	}()

	for {
		var msg api.WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("websocket read failed: %w", err)
		}

		switch msg.Type {
		case api.WSDelta:
			if msg.Delta == nil {
				continue
			}
			if err := fn(*msg.Delta); err != nil {
				return err
			}
		case api.WSError:
			return fmt.Errorf("%w: %s", ErrServer, msg.Error)
		}
	}
}

func (c *Client) wsURL(clientID string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid server url: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws"
	u.RawQuery = url.Values{"client_id": {clientID}}.Encode()
	return u.String(), nil
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("%w (%d): %s", ErrServer, resp.StatusCode, errResp.Error)
		}
		return fmt.Errorf("%w (%d): %s", ErrServer, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
