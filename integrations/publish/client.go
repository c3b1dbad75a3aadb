package publish

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/goccy/go-json"
)

// Client hands a finished document to whatever renders it.
type Client struct {
	APIKey string
	URL    string
	HTTP   *http.Client
}

var (
	ErrUnexpectedResponse = errors.New("unexpected response code")
)

func NewClient(apikey, url string) (*Client, error) {
	if url == "" {
		return nil, errors.New("missing publish url")
	}
	client := &Client{
		APIKey: apikey,
		URL:    url,
		HTTP:   &http.Client{Timeout: 30 * time.Second},
	}
	return client, nil
}

func (c *Client) Publish(ctx context.Context, doc *openapi3.T) error {
	bs, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(bs))
	if err != nil {
		return err
	}
	req.Header.Add("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("%w: %d", ErrUnexpectedResponse, res.StatusCode)
	}

	return nil
}
