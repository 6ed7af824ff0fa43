// Package client is a small HTTP client for the hospital-data API, used by
// operational tooling.
package client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const sessionHeader = "X-Session-ID"

type envelope struct {
	Code    int             `json:"code"`
	Type    string          `json:"type"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

type Collection struct {
	Name  string `json:"name"`
	Key   string `json:"key"`
	Count int    `json:"count"`
}

type Module struct {
	Key         string       `json:"key"`
	Name        string       `json:"name"`
	Path        string       `json:"path"`
	Back        string       `json:"back"`
	Collections []Collection `json:"collections"`
}

type Page struct {
	Query   string            `json:"query"`
	Total   int               `json:"total"`
	Count   int               `json:"count"`
	Records []json.RawMessage `json:"records"`
}

// Client keeps the session id the server issues so drafts persist across calls.
type Client struct {
	http    *resty.Client
	session string
	logger  *zap.Logger
}

func New(baseURL string, logger *zap.Logger) *Client {
	c := &Client{logger: logger}
	c.http = resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetHeader("Accept", "application/json").
		OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
			if id := resp.Header().Get(sessionHeader); id != "" {
				c.session = id
			}
			return nil
		})
	return c
}

func (c *Client) Session() string { return c.session }

func (c *Client) Modules() ([]Module, error) {
	var out []Module
	if err := c.get("/api/v1/modules", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) List(module, collection, query string) (Page, error) {
	var out Page
	path := fmt.Sprintf("/api/v1/modules/%s/%s", url.PathEscape(module), url.PathEscape(collection))
	if err := c.get(path, map[string]string{"q": query}, &out); err != nil {
		return Page{}, err
	}
	return out, nil
}

func (c *Client) Draft(module, collection string) (json.RawMessage, error) {
	var out json.RawMessage
	path := fmt.Sprintf("/api/v1/modules/%s/%s/draft", url.PathEscape(module), url.PathEscape(collection))
	if err := c.get(path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SetField(module, collection, field, value string) (json.RawMessage, error) {
	var out json.RawMessage
	path := fmt.Sprintf("/api/v1/modules/%s/%s/draft", url.PathEscape(module), url.PathEscape(collection))
	req := c.request().SetBody(map[string]string{"field": field, "value": value})
	if err := c.decode(req.Put(path))(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) get(path string, query map[string]string, out any) error {
	req := c.request()
	if query != nil {
		req.SetQueryParams(query)
	}
	return c.decode(req.Get(path))(out)
}

func (c *Client) request() *resty.Request {
	req := c.http.R().SetHeader("Content-Type", "application/json")
	if c.session != "" {
		req.SetHeader(sessionHeader, c.session)
	}
	return req
}

func (c *Client) decode(resp *resty.Response, err error) func(out any) error {
	return func(out any) error {
		if err != nil {
			c.logger.Error("hospital-data API call failed", zap.Error(err))
			return fmt.Errorf("request failed: %w", err)
		}
		var env envelope
		if err := json.Unmarshal(resp.Body(), &env); err != nil {
			return fmt.Errorf("%s %s: status %d: undecodable body: %w",
				resp.Request.Method, resp.Request.URL, resp.StatusCode(), err)
		}
		if env.Code != 2000 {
			return fmt.Errorf("%s %s: status %d: %s",
				resp.Request.Method, resp.Request.URL, resp.StatusCode(), env.Message)
		}
		if out == nil {
			return nil
		}
		return json.Unmarshal(env.Result, out)
	}
}
