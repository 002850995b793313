package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/botofarm/internal/client/config"
	"github.com/dmitrijs2005/botofarm/internal/client/models"
	"github.com/dmitrijs2005/botofarm/internal/common"
)

type HTTPClient struct {
	baseURL   string
	apiPrefix string
	http      *http.Client
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(cfg *config.Config) *HTTPClient {
	return &HTTPClient{
		baseURL:   strings.TrimRight(cfg.ServerURL, "/"),
		apiPrefix: "/" + strings.Trim(cfg.APIPrefix, "/"),
		http:      &http.Client{Timeout: cfg.RequestTimeout},
	}
}

func (c *HTTPClient) apiURL(path string) string {
	prefix := strings.TrimRight(c.apiPrefix, "/")
	return c.baseURL + prefix + path
}

type detailBody struct {
	Detail json.RawMessage `json:"detail"`
}

// do sends the request and decodes a 2xx JSON body into out (if non-nil).
func (c *HTTPClient) do(ctx context.Context, method, rawURL string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if id, err := common.MakeRandHexString(16); err == nil {
		req.Header.Set(common.RequestIDHeaderName, id)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		return json.Unmarshal(data, out)
	}

	return statusToError(resp.StatusCode, data)
}

func statusToError(code int, data []byte) error {
	var d detailBody
	_ = json.Unmarshal(data, &d)

	switch code {
	case http.StatusBadRequest:
		var msg string
		if json.Unmarshal(d.Detail, &msg) == nil && strings.Contains(msg, "already exists") {
			return ErrDuplicateLogin
		}
		return &StatusError{Code: code, Detail: msg}
	case http.StatusUnprocessableEntity:
		var fields []models.FieldError
		_ = json.Unmarshal(d.Detail, &fields)
		return &ValidationError{Fields: fields}
	case http.StatusServiceUnavailable:
		return ErrUnavailable
	default:
		var msg string
		_ = json.Unmarshal(d.Detail, &msg)
		return &StatusError{Code: code, Detail: msg}
	}
}

func (c *HTTPClient) CreateAccount(ctx context.Context, req models.NewAccount) (*models.Account, error) {
	var a models.Account
	if err := c.do(ctx, http.MethodPost, c.apiURL("/users/"), req, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *HTTPClient) ListAccounts(ctx context.Context, skip, limit int) ([]*models.Account, error) {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))

	var out []*models.Account
	if err := c.do(ctx, http.MethodGet, c.apiURL("/users/")+"?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Lock(ctx context.Context, id string) (*models.LockResult, error) {
	var r models.LockResult
	if err := c.do(ctx, http.MethodPost, c.apiURL("/users/"+url.PathEscape(id)+"/lock"), nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *HTTPClient) Unlock(ctx context.Context, id string) (*models.LockResult, error) {
	var r models.LockResult
	if err := c.do(ctx, http.MethodPost, c.apiURL("/users/"+url.PathEscape(id)+"/unlock"), nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *HTTPClient) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, c.baseURL+"/health", nil, nil)
}

// Ready reports ErrUnavailable when the server cannot reach its database.
func (c *HTTPClient) Ready(ctx context.Context) error {
	err := c.do(ctx, http.MethodGet, c.baseURL+"/ready", nil, nil)
	if err != nil && !errors.Is(err, ErrUnavailable) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}
