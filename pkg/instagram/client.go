package instagram

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	errs "igposts/pkg/errors"
	"igposts/pkg/logger"
)

// AcceptHeader is sent with every profile page request
const AcceptHeader = "application/json,text/html;q=0.9,*/*;q=0.8"

// Client fetches public profile pages
type Client struct {
	http    *resty.Client
	baseURL string
	logger  logger.Logger
}

// NewClient creates a profile page client.
// An empty baseURL targets the public site; tests point it at an httptest server.
func NewClient(baseURL, userAgent string, timeout time.Duration, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}
	if baseURL == "" {
		baseURL = BaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", AcceptHeader)

	return &Client{
		http:    httpClient,
		baseURL: baseURL,
		logger:  log,
	}
}

// ProfileURL returns the profile page URL this client requests for username
func (c *Client) ProfileURL(username string) string {
	return ProfilePageURL(c.baseURL, username)
}

// FetchProfileHTML performs a single GET of the profile page.
// Transport failures come back as network errors, any status other than 200
// as an http_status error carrying the code.
func (c *Client) FetchProfileHTML(ctx context.Context, username string) (string, error) {
	url := c.ProfileURL(username)

	start := time.Now()
	c.logger.DebugWithFields("sending HTTP request", map[string]interface{}{
		"method": http.MethodGet,
		"url":    url,
	})

	resp, err := c.http.R().
		SetContext(ctx).
		Get("/" + username + "/")
	duration := time.Since(start)

	if err != nil {
		c.logger.DebugWithFields("HTTP request failed", map[string]interface{}{
			"url":      url,
			"error":    err.Error(),
			"duration": duration,
		})
		return "", errs.Wrap(errs.ErrorTypeNetwork, err, "GET %s", url)
	}

	c.logger.DebugWithFields("HTTP request completed", map[string]interface{}{
		"url":      url,
		"status":   resp.StatusCode(),
		"bytes":    len(resp.Body()),
		"duration": duration,
	})

	switch code := resp.StatusCode(); {
	case code == http.StatusOK:
		return resp.String(), nil
	case code == http.StatusTooManyRequests:
		return "", errs.New(errs.ErrorTypeRateLimit, code, "HTTP %d", code)
	default:
		return "", errs.New(errs.ErrorTypeHTTPStatus, code, "HTTP %d", code)
	}
}
