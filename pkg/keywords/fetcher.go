// Package keywords turns seed keywords and page URLs into keyword ideas
// with their search metrics.
package keywords

import (
	"context"
	"fmt"
	"strings"
	"time"

	"keyword-planner/pkg/ads"
	"keyword-planner/pkg/logger"
)

const (
	// DefaultLocationID is Japan
	DefaultLocationID = "2392"
	// DefaultLanguageID is Japanese
	DefaultLanguageID = "1005"
	// DefaultPageSize is the page size hint sent with every request
	DefaultPageSize = 100
)

// Options are the defaults applied to requests that leave targeting empty
type Options struct {
	DefaultLocationIDs []string
	DefaultLanguageID  string
	PageSize           int
	Network            ads.KeywordPlanNetwork
}

// DefaultOptions returns Japan / Japanese targeting on search and partners
func DefaultOptions() Options {
	return Options{
		DefaultLocationIDs: []string{DefaultLocationID},
		DefaultLanguageID:  DefaultLanguageID,
		PageSize:           DefaultPageSize,
		Network:            ads.NetworkGoogleSearchAndPartners,
	}
}

// Request is one keyword idea lookup
type Request struct {
	CustomerID   string
	KeywordTexts []string
	LocationIDs  []string
	LanguageID   string
	PageURL      string
}

// Fetcher generates keyword ideas and reshapes them into a ResultSet
type Fetcher struct {
	ideas     ads.KeywordPlanIdeaService
	geo       ads.GeoTargetConstantService
	languages ads.LanguageConstantService
	opts      Options
	log       *logger.SecurityLogger
}

// NewFetcher creates a fetcher. Zero-valued options fall back to DefaultOptions.
func NewFetcher(ideas ads.KeywordPlanIdeaService, geo ads.GeoTargetConstantService, languages ads.LanguageConstantService, opts Options) *Fetcher {
	defaults := DefaultOptions()
	if len(opts.DefaultLocationIDs) == 0 {
		opts.DefaultLocationIDs = defaults.DefaultLocationIDs
	}
	if opts.DefaultLanguageID == "" {
		opts.DefaultLanguageID = defaults.DefaultLanguageID
	}
	if opts.PageSize <= 0 {
		opts.PageSize = defaults.PageSize
	}
	if opts.Network == "" {
		opts.Network = defaults.Network
	}

	return &Fetcher{
		ideas:     ideas,
		geo:       geo,
		languages: languages,
		opts:      opts,
		log:       &logger.SecurityLogger{Logger: logger.GetLogger().WithField("component", "keyword_fetcher")},
	}
}

// Fetch validates req, calls the idea service and drains the result stream.
// Invalid input fails with ErrInvalidArgument before any call is made; API
// faults come back as *ads.Fault.
func (f *Fetcher) Fetch(ctx context.Context, req Request) (*ResultSet, error) {
	start := time.Now()

	ideaReq, seed, err := f.BuildRequest(req)
	if err != nil {
		return nil, err
	}

	f.log.SafeDebug("Generating keyword ideas", map[string]interface{}{
		"customer_id": ideaReq.CustomerID,
		"seed":        seed.Kind().String(),
		"locations":   len(ideaReq.GeoTargetConstants),
		"language":    ideaReq.Language,
	})

	result, err := Transform(f.ideas.GenerateKeywordIdeas(ctx, ideaReq))
	if err != nil {
		return nil, err
	}

	f.log.WithFields(map[string]interface{}{
		"ideas":       result.Len(),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("Keyword ideas generated")
	return result, nil
}

// BuildRequest validates req and builds the API request with exactly one
// seed set. It makes no network calls.
func (f *Fetcher) BuildRequest(req Request) (ads.GenerateKeywordIdeasRequest, Seed, error) {
	customerID := strings.TrimSpace(req.CustomerID)
	if customerID == "" {
		return ads.GenerateKeywordIdeasRequest{}, nil, fmt.Errorf("%w: customer id is required", ErrInvalidArgument)
	}

	seed, err := BuildSeed(NormalizeKeywords(req.KeywordTexts), req.PageURL)
	if err != nil {
		return ads.GenerateKeywordIdeasRequest{}, nil, err
	}

	locationIDs := req.LocationIDs
	if len(locationIDs) == 0 {
		locationIDs = f.opts.DefaultLocationIDs
	}
	locations, err := f.resolveLocations(locationIDs)
	if err != nil {
		return ads.GenerateKeywordIdeasRequest{}, nil, err
	}

	languageID := req.LanguageID
	if strings.TrimSpace(languageID) == "" {
		languageID = f.opts.DefaultLanguageID
	}
	language, err := f.languages.LanguageConstantPath(languageID)
	if err != nil {
		return ads.GenerateKeywordIdeasRequest{}, nil, fmt.Errorf("%w: language %q: %v", ErrInvalidArgument, languageID, err)
	}

	ideaReq := ads.GenerateKeywordIdeasRequest{
		CustomerID:           customerID,
		Language:             language,
		GeoTargetConstants:   locations,
		IncludeAdultKeywords: false,
		KeywordPlanNetwork:   f.opts.Network,
		PageSize:             f.opts.PageSize,
	}
	seed.apply(&ideaReq)

	return ideaReq, seed, nil
}

// resolveLocations maps location ids to resource paths, keeping order
func (f *Fetcher) resolveLocations(locationIDs []string) ([]string, error) {
	locations := make([]string, 0, len(locationIDs))
	for _, id := range locationIDs {
		path, err := f.geo.GeoTargetConstantPath(id)
		if err != nil {
			return nil, fmt.Errorf("%w: location %q: %v", ErrInvalidArgument, id, err)
		}
		locations = append(locations, path)
	}
	return locations, nil
}
