// Package client talks to a schemalike server.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/cockroachdb/errors"
	json "github.com/goccy/go-json"

	"github.com/siegeai/schemalike/validate"
)

var (
	ErrUnexpectedResponse = errors.New("unexpected response code")
)

type Client struct {
	Server string
	HTTP   *http.Client
}

func NewClient(server string) (*Client, error) {
	u, err := url.Parse(server)
	if err != nil {
		return nil, errors.Wrap(err, "parse server url")
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Newf("server url %q needs a scheme and host", server)
	}
	return &Client{Server: server, HTTP: http.DefaultClient}, nil
}

// Infer posts example and returns the schema document the server inferred for it.
// format is one of "json", "openapi" or "yaml".
func (c *Client) Infer(ctx context.Context, example any, format string) ([]byte, error) {
	bs, err := json.Marshal(example)
	if err != nil {
		return nil, errors.Wrap(err, "encode example")
	}
	q := url.Values{}
	if format != "" {
		q.Set("format", format)
	}
	return c.post(ctx, "/infer", q, bs)
}

type ValidateRequest struct {
	Schema any `json:"schema"`
	Data   any `json:"data"`
}

func (c *Client) Validate(ctx context.Context, schema, data any) (*validate.Result, error) {
	bs, err := json.Marshal(&ValidateRequest{Schema: schema, Data: data})
	if err != nil {
		return nil, errors.Wrap(err, "encode request")
	}
	body, err := c.post(ctx, "/validate", nil, bs)
	if err != nil {
		return nil, err
	}
	var res validate.Result
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, errors.Wrap(err, "decode result")
	}
	return &res, nil
}

// Observe posts a sample body seen on path and returns the merged schema.
func (c *Client) Observe(ctx context.Context, path string, sample any) ([]byte, error) {
	bs, err := json.Marshal(sample)
	if err != nil {
		return nil, errors.Wrap(err, "encode sample")
	}
	return c.post(ctx, "/samples", url.Values{"path": {path}}, bs)
}

func (c *Client) post(ctx context.Context, path string, q url.Values, body []byte) ([]byte, error) {
	u := c.formatURL(path, q)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Add("Content-Type", "application/json")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	out, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response")
	}
	if res.StatusCode != http.StatusOK {
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(out, &e) == nil && e.Error != "" {
			return nil, errors.Wrapf(ErrUnexpectedResponse, "%d: %s", res.StatusCode, e.Error)
		}
		return nil, errors.Wrapf(ErrUnexpectedResponse, "%d", res.StatusCode)
	}
	return out, nil
}

func (c *Client) formatURL(path string, q url.Values) string {
	if len(q) == 0 {
		return fmt.Sprintf("%s%s", c.Server, path)
	}
	return fmt.Sprintf("%s%s?%s", c.Server, path, q.Encode())
}
