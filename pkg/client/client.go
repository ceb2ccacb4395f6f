package client

import (
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/truongthuanhung/studyverse-cli/pkg/config"
	"github.com/truongthuanhung/studyverse-cli/pkg/logger"
)

var httpClient *resty.Client

// unauthorizedHandler is invoked once when a request comes back 401. It should
// perform the refresh-token exchange and return true if the original request
// may be replayed with the new access token.
var unauthorizedHandler func() bool
var refreshMu sync.Mutex

// Init initializes the HTTP client
func Init() {
	httpClient = resty.New()

	baseURL := config.GetString("api.base_url")
	timeout := time.Duration(config.GetInt("api.timeout")) * time.Second

	httpClient.SetBaseURL(baseURL)
	httpClient.SetTimeout(timeout)
	httpClient.SetHeader("User-Agent", "StudyVerse-CLI/0.1.0")

	// Add request/response logging
	httpClient.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		logger.Debug("HTTP Request", "method", req.Method, "url", req.URL)
		return nil
	})

	httpClient.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		logger.Debug("HTTP Response", "status", resp.StatusCode())
		return nil
	})

	// One transparent refresh-and-replay on 401. The refresh endpoint itself
	// is excluded so a rejected refresh token can't loop.
	httpClient.SetRetryCount(1)
	httpClient.AddRetryCondition(func(resp *resty.Response, err error) bool {
		if resp == nil || resp.StatusCode() != 401 {
			return false
		}
		if strings.Contains(resp.Request.URL, "/auth/refresh") {
			return false
		}
		handler := unauthorizedHandler
		if handler == nil {
			return false
		}

		refreshMu.Lock()
		defer refreshMu.Unlock()
		return handler()
	})
}

// GetClient returns the HTTP client
func GetClient() *resty.Client {
	if httpClient == nil {
		Init()
	}
	return httpClient
}

// SetAuthToken sets the authorization token
func SetAuthToken(token string) {
	if httpClient == nil {
		Init()
	}
	httpClient.SetHeader("Authorization", "Bearer "+token)
}

// ClearAuthToken clears the authorization token
func ClearAuthToken() {
	handler := unauthorizedHandler
	Init()
	unauthorizedHandler = handler
}

// SetUnauthorizedHandler installs the 401 recovery hook. Installed from the
// auth package to keep this package free of an api import cycle.
func SetUnauthorizedHandler(handler func() bool) {
	unauthorizedHandler = handler
}
