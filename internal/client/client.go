// Package client реализует доступ к REST API Flowcode.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Totarae/FlowcodeBatch/internal/model"
	"go.uber.org/zap"
)

// DefaultBaseURL — адрес продакшен-API Flowcode.
const DefaultBaseURL = "https://api.flowcode.com"

const (
	campaignPath = "/v2/flowcode/batch/bulk-campaign"
	bulkPath     = "/v2/flowcode/batch/bulk"
)

// APIError представляет ошибочный HTTP-ответ удаленного сервиса.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("flowcode api: статус %d: %s", e.StatusCode, e.Body)
}

// Client выполняет запросы к API Flowcode.
type Client struct {
	httpClient *http.Client
	baseURL    string
	Logger     *zap.Logger
}

// New создает клиент API. Пустой baseURL заменяется на DefaultBaseURL.
func New(baseURL string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Transport: newLoggingTransport(http.DefaultTransport, logger),
		},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		Logger:  logger,
	}
}

// CreateCampaign создает кампанию. Тело запроса — form-encoded.
func (c *Client) CreateCampaign(ctx context.Context, campaign model.CampaignRequest) error {
	form := url.Values{}
	form.Set("name", campaign.Name)
	form.Set("display_name", campaign.DisplayName)
	form.Set("client_id", campaign.ClientID)
	form.Set("reserved_urls_unique", strconv.FormatBool(campaign.ReservedURLsUnique))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+campaignPath, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}

// CreateURLBatch отправляет пакетный запрос на создание URL одной кампании
// и возвращает записи о сгенерированных кодах.
func (c *Client) CreateURLBatch(ctx context.Context, batch model.BulkURLRequest) ([]model.GeneratedEntry, error) {
	body, err := json.Marshal(batch)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+bulkPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var entries []model.GeneratedEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("разбор ответа пакетного запроса: %w", err)
	}
	return entries, nil
}

// DownloadImage скачивает изображение кода по ссылке из ответа сервиса.
// Редиректы http.Client выполняет сам.
func (c *Client) DownloadImage(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	return io.ReadAll(resp.Body)
}

// checkStatus превращает не-2xx ответ в *APIError с телом ответа.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &APIError{
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}
