package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/vmartynenko/go-soupsync/models"
)

// HTTPClientConfig holds the settings needed to reach the record server.
type HTTPClientConfig struct {
	// BaseURL is the instance root, e.g. "https://example.my.server".
	BaseURL string
	// APIVersion selects the versioned data path, e.g. "60.0".
	APIVersion string
	// AccessToken is the initial bearer token; may be rotated later via
	// SetToken.
	AccessToken string
	Timeout     time.Duration
}

type httpRestClient struct {
	client     *resty.Client
	apiVersion string

	mu    sync.RWMutex
	token string
}

// NewHTTPRestClient builds the resty-backed [RestClient].
func NewHTTPRestClient(cfg HTTPClientConfig) RestClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = "60.0"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &httpRestClient{client: cli, apiVersion: cfg.APIVersion, token: strings.TrimSpace(cfg.AccessToken)}
}

func (h *httpRestClient) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpRestClient) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpRestClient) Query(ctx context.Context, query string) (models.QueryResponse, error) {
	resp, err := h.authedRequest(ctx).
		SetQueryParam("q", query).
		Get(h.dataPath("query"))
	if err != nil {
		return models.QueryResponse{}, fmt.Errorf("query request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.QueryResponse{}, err
	}

	var qr models.QueryResponse
	if err = json.Unmarshal(resp.Body(), &qr); err != nil {
		return models.QueryResponse{}, fmt.Errorf("decode query response: %w", err)
	}
	return qr, nil
}

func (h *httpRestClient) QueryMore(ctx context.Context, nextRecordsURL string) (models.QueryResponse, error) {
	// The continuation URL is server-supplied and already carries the full
	// versioned path.
	resp, err := h.authedRequest(ctx).Get(nextRecordsURL)
	if err != nil {
		return models.QueryResponse{}, fmt.Errorf("query more request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.QueryResponse{}, err
	}

	var qr models.QueryResponse
	if err = json.Unmarshal(resp.Body(), &qr); err != nil {
		return models.QueryResponse{}, fmt.Errorf("decode query more response: %w", err)
	}
	return qr, nil
}

func (h *httpRestClient) Search(ctx context.Context, search string) ([]models.Record, error) {
	resp, err := h.authedRequest(ctx).
		SetQueryParam("q", search).
		Get(h.dataPath("search"))
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var sr models.SearchResponse
	if err = json.Unmarshal(resp.Body(), &sr); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return sr.SearchRecords, nil
}

func (h *httpRestClient) RecentItems(ctx context.Context, objectType string) ([]string, error) {
	resp, err := h.authedRequest(ctx).Get(h.dataPath("sobjects/" + objectType))
	if err != nil {
		return nil, fmt.Errorf("recent items request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var rr models.RecentItemsResponse
	if err = json.Unmarshal(resp.Body(), &rr); err != nil {
		return nil, fmt.Errorf("decode recent items response: %w", err)
	}

	ids := make([]string, 0, len(rr.RecentItems))
	for _, item := range rr.RecentItems {
		if id := models.RecordID(item); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (h *httpRestClient) Create(ctx context.Context, objectType string, fields models.Record) (string, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(fields).
		Post(h.dataPath("sobjects/" + objectType))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	var cr models.CreateResponse
	if err = json.Unmarshal(resp.Body(), &cr); err != nil {
		return "", fmt.Errorf("decode create response: %w", err)
	}
	if cr.ID == "" {
		return "", fmt.Errorf("create response for %s carries no id", objectType)
	}
	return cr.ID, nil
}

func (h *httpRestClient) Update(ctx context.Context, objectType, id string, fields models.Record) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(fields).
		Patch(h.dataPath("sobjects/" + objectType + "/" + id))
	if err != nil {
		return fmt.Errorf("update request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpRestClient) Delete(ctx context.Context, objectType, id string) error {
	resp, err := h.authedRequest(ctx).
		Delete(h.dataPath("sobjects/" + objectType + "/" + id))
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpRestClient) dataPath(suffix string) string {
	return "/services/data/v" + h.apiVersion + "/" + suffix
}

func (h *httpRestClient) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}

	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	default:
		return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
	}
}
