package ads

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/valyala/fasthttp"
	"golang.org/x/oauth2"

	"keyword-planner/pkg/logger"
)

const (
	DefaultEndpoint   = "https://googleads.googleapis.com"
	DefaultAPIVersion = "v17"
)

// googleEndpoint is the OAuth2 endpoint of Google accounts
var googleEndpoint = oauth2.Endpoint{
	AuthURL:   "https://accounts.google.com/o/oauth2/auth",
	TokenURL:  "https://oauth2.googleapis.com/token",
	AuthStyle: oauth2.AuthStyleInParams,
}

// ClientConfig identifies the caller to the Google Ads API
type ClientConfig struct {
	Endpoint        string
	APIVersion      string
	DeveloperToken  string
	LoginCustomerID string
}

// Credentials are the installed-app OAuth2 credentials from google-ads.yaml
type Credentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// NewTokenSource returns a caching token source that refreshes access
// tokens from the refresh token
func NewTokenSource(ctx context.Context, creds Credentials) oauth2.TokenSource {
	conf := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint:     googleEndpoint,
		Scopes:       []string{"https://www.googleapis.com/auth/adwords"},
	}
	return conf.TokenSource(ctx, &oauth2.Token{RefreshToken: creds.RefreshToken})
}

// Client talks to KeywordPlanIdeaService over the REST interface
type Client struct {
	config      ClientConfig
	tokens      oauth2.TokenSource
	connManager *ConnectionManager
	parser      *ResponseParser
	log         *logger.Logger

	totalRequests  uint64
	failedRequests uint64
}

// NewClient creates a REST client. tokens supplies OAuth2 access tokens.
func NewClient(config ClientConfig, tokens oauth2.TokenSource, connConfig ConnectionConfig) (*Client, error) {
	if config.DeveloperToken == "" {
		return nil, fmt.Errorf("developer token is required")
	}
	if tokens == nil {
		return nil, fmt.Errorf("token source is required")
	}
	if config.Endpoint == "" {
		config.Endpoint = DefaultEndpoint
	}
	if config.APIVersion == "" {
		config.APIVersion = DefaultAPIVersion
	}
	config.Endpoint = strings.TrimRight(config.Endpoint, "/")
	config.LoginCustomerID = NormalizeCustomerID(config.LoginCustomerID)

	return &Client{
		config:      config,
		tokens:      tokens,
		connManager: NewConnectionManager(connConfig),
		parser:      NewResponseParser(),
		log:         logger.GetLogger().WithField("component", "ads_client"),
	}, nil
}

// GenerateKeywordIdeas returns a lazy stream over all result pages of req
func (c *Client) GenerateKeywordIdeas(ctx context.Context, req GenerateKeywordIdeasRequest) *IdeaStream {
	return NewIdeaStream(ctx, func(ctx context.Context, pageToken string) (*GenerateKeywordIdeaResponse, error) {
		pageReq := req
		pageReq.PageToken = pageToken
		return c.generatePage(ctx, pageReq)
	})
}

func (c *Client) generatePage(ctx context.Context, ideaReq GenerateKeywordIdeasRequest) (*GenerateKeywordIdeaResponse, error) {
	atomic.AddUint64(&c.totalRequests, 1)
	start := time.Now()

	page, err := c.doGenerate(ctx, ideaReq)
	if err != nil {
		atomic.AddUint64(&c.failedRequests, 1)
		c.log.WithError(err).WithField("page_token_set", ideaReq.PageToken != "").Debug("Keyword idea request failed")
		return nil, err
	}

	c.log.WithFields(map[string]interface{}{
		"results":     len(page.Results),
		"has_next":    page.NextPageToken != "",
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("Keyword idea page received")
	return page, nil
}

func (c *Client) doGenerate(ctx context.Context, ideaReq GenerateKeywordIdeasRequest) (*GenerateKeywordIdeaResponse, error) {
	customerID := NormalizeCustomerID(ideaReq.CustomerID)
	if customerID == "" {
		return nil, fmt.Errorf("customer id is required")
	}

	token, err := c.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to obtain access token: %w", err)
	}

	body, err := json.Marshal(ideaReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.generateURL(customerID))
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", token.Type()+" "+token.AccessToken)
	req.Header.Set("developer-token", c.config.DeveloperToken)
	if c.config.LoginCustomerID != "" {
		req.Header.Set("login-customer-id", c.config.LoginCustomerID)
	}
	req.SetBody(body)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	deadline := time.Now().Add(c.connManager.RequestTimeout())
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := c.connManager.GetFastHTTPClient().DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, c.parser.ParseFailure(resp.StatusCode(), resp.Body(), string(resp.Header.Peek("request-id")))
	}

	return c.parser.ParseResponse(resp.Body())
}

func (c *Client) generateURL(customerID string) string {
	return fmt.Sprintf("%s/%s/customers/%s:generateKeywordIdeas", c.config.Endpoint, c.config.APIVersion, customerID)
}

// Stats returns the request counters of this client
func (c *Client) Stats() (total, failed uint64) {
	return atomic.LoadUint64(&c.totalRequests), atomic.LoadUint64(&c.failedRequests)
}

// Close releases idle connections
func (c *Client) Close() {
	c.connManager.Close()
}
