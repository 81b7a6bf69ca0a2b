// Package client provides an HTTP client for the threads REST API.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/evcraddock/threads/internal/comment"
)

// Client talks to a threads server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ListComments returns one page of top-level comments with their replies.
// Zero page or limit leaves the choice to the server.
func (c *Client) ListComments(page, limit int) (*comment.Page, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := "/comments"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var p comment.Page
	if err := c.get(path, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetComment returns a comment with its reply tree.
func (c *Client) GetComment(id string) (*comment.Comment, error) {
	var comm comment.Comment
	if err := c.get("/comments/"+url.PathEscape(id), &comm); err != nil {
		return nil, err
	}
	return &comm, nil
}

// PostComment adds a top-level comment.
func (c *Client) PostComment(text, author string) (*comment.Comment, error) {
	body := map[string]string{"text": text, "author": author}
	var comm comment.Comment
	if err := c.post("/comments", body, &comm); err != nil {
		return nil, err
	}
	return &comm, nil
}

// Reply adds a reply to the comment with the given id.
func (c *Client) Reply(id, text, author string) (*comment.Comment, error) {
	body := map[string]string{"text": text, "author": author}
	var comm comment.Comment
	if err := c.post("/comments/"+url.PathEscape(id)+"/reply", body, &comm); err != nil {
		return nil, err
	}
	return &comm, nil
}

// Upvote adds a vote to a comment and returns its new total.
func (c *Client) Upvote(id string) (int, error) {
	var resp struct {
		Votes int `json:"votes"`
	}
	if err := c.post("/comments/"+url.PathEscape(id)+"/upvote", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Votes, nil
}

// Health checks that the server is up.
func (c *Client) Health() error {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.get("/health", &resp); err != nil {
		return err
	}
	if resp.Status != "ok" {
		return fmt.Errorf("unexpected health status %q", resp.Status)
	}
	return nil
}

// get performs a GET request and decodes the response.
func (c *Client) get(path string, result interface{}) error {
	req, err := http.NewRequest("GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

// post performs a POST request with an optional JSON body and decodes the response.
func (c *Client) post(path string, body interface{}, result interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest("POST", c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, result)
}

// do executes an HTTP request and turns error responses into errors.
func (c *Client) do(req *http.Request, result interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			fmt.Printf("warning: closing response body: %v\n", cerr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

// APIError is an error response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}
