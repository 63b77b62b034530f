package handler

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"keyword-planner/pkg/ads"
	"keyword-planner/pkg/keywords"
	"keyword-planner/pkg/logger"
	"keyword-planner/pkg/metrics"
)

// IdeaFetcher is the part of keywords.Fetcher the controller needs
type IdeaFetcher interface {
	Fetch(ctx context.Context, req keywords.Request) (*keywords.ResultSet, error)
}

// StatsProvider reports API call counters, e.g. *ads.Client
type StatsProvider interface {
	Stats() (total, failed uint64)
}

type Controller struct {
	fetcher IdeaFetcher
	stats   StatsProvider
	log     *logger.Logger
	started time.Time
}

// KeywordIdeasRequest is the JSON body of POST /api/v1/keyword-ideas
type KeywordIdeasRequest struct {
	CustomerID   string   `json:"customer_id"`
	KeywordTexts []string `json:"keyword_texts"`
	LocationIDs  []string `json:"location_ids"`
	LanguageID   string   `json:"language_id"`
	PageURL      string   `json:"page_url"`
}

type FaultError struct {
	Message   string   `json:"message"`
	FieldPath []string `json:"field_path"`
}

type FaultResponse struct {
	RequestID string       `json:"request_id"`
	Status    string       `json:"status"`
	Errors    []FaultError `json:"errors"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type StatusResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Metrics   map[string]interface{} `json:"metrics,omitempty"`
}

// NewController wires the fetcher into HTTP handlers. stats may be nil.
func NewController(fetcher IdeaFetcher, stats StatsProvider) *Controller {
	return &Controller{
		fetcher: fetcher,
		stats:   stats,
		log:     logger.GetLogger().WithField("component", "http_controller"),
		started: time.Now(),
	}
}

// Register mounts every route on app
func (c *Controller) Register(app *fiber.App) {
	app.Use(c.observe)
	app.Get("/health", c.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Post("/api/v1/keyword-ideas", c.GenerateKeywordIdeas)
}

// GenerateKeywordIdeas runs one fetch and answers with the ordered result set
func (c *Controller) GenerateKeywordIdeas(ctx *fiber.Ctx) error {
	var body KeywordIdeasRequest
	if err := ctx.BodyParser(&body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "malformed request body"})
	}

	seed := seedLabel(body)
	start := time.Now()

	result, err := c.fetcher.Fetch(ctx.UserContext(), keywords.Request{
		CustomerID:   body.CustomerID,
		KeywordTexts: body.KeywordTexts,
		LocationIDs:  body.LocationIDs,
		LanguageID:   body.LanguageID,
		PageURL:      body.PageURL,
	})
	if err != nil {
		return c.writeError(ctx, seed, start, err)
	}

	metrics.ObserveFetch(seed, metrics.OutcomeSuccess, result.Len(), time.Since(start))
	return ctx.Status(fiber.StatusOK).JSON(result)
}

func (c *Controller) writeError(ctx *fiber.Ctx, seed string, start time.Time, err error) error {
	if errors.Is(err, keywords.ErrInvalidArgument) {
		metrics.ObserveFetch(seed, metrics.OutcomeInvalidArgument, 0, time.Since(start))
		return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	var fault *ads.Fault
	if errors.As(err, &fault) {
		metrics.ObserveFetch(seed, metrics.OutcomeFault, 0, time.Since(start))
		metrics.ObserveFault(fault.Status)
		c.log.WithFields(map[string]interface{}{
			"request_id": fault.RequestID,
			"status":     fault.Status,
		}).Warn("Google Ads request failed")
		return ctx.Status(fault.HTTPStatus()).JSON(toFaultResponse(fault))
	}

	metrics.ObserveFetch(seed, metrics.OutcomeError, 0, time.Since(start))
	c.log.WithError(err).Error("Keyword idea fetch failed")
	return ctx.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Error: "upstream request failed"})
}

// Health reports liveness and API call counters
func (c *Controller) Health(ctx *fiber.Ctx) error {
	resp := StatusResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Metrics: map[string]interface{}{
			"uptime_seconds": int64(time.Since(c.started).Seconds()),
		},
	}
	if c.stats != nil {
		total, failed := c.stats.Stats()
		resp.Metrics["api_calls"] = total
		resp.Metrics["api_failures"] = failed
	}
	return ctx.JSON(resp)
}

func (c *Controller) observe(ctx *fiber.Ctx) error {
	start := time.Now()
	err := ctx.Next()

	// The error handler writes the status only after middleware returns
	status := ctx.Response().StatusCode()
	if err != nil {
		status = fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
	}
	metrics.ObserveHTTP(ctx.Method(), ctx.Route().Path, status, time.Since(start))
	return err
}

func toFaultResponse(fault *ads.Fault) FaultResponse {
	resp := FaultResponse{
		RequestID: fault.RequestID,
		Status:    fault.Status,
		Errors:    make([]FaultError, 0, len(fault.Errors)),
	}
	for _, e := range fault.Errors {
		path := e.FieldPath()
		if path == nil {
			path = []string{}
		}
		resp.Errors = append(resp.Errors, FaultError{Message: e.Message, FieldPath: path})
	}
	return resp
}

func seedLabel(body KeywordIdeasRequest) string {
	seed, err := keywords.BuildSeed(keywords.NormalizeKeywords(body.KeywordTexts), body.PageURL)
	if err != nil {
		return "none"
	}
	return seed.Kind().String()
}
