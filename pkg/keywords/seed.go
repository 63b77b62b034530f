package keywords

import (
	"errors"
	"fmt"
	"strings"

	"keyword-planner/pkg/ads"
)

// ErrInvalidArgument reports input that is rejected before any API call
var ErrInvalidArgument = errors.New("invalid argument")

// SeedKind tells which seed variant is active
type SeedKind int

const (
	SeedURLOnly SeedKind = iota
	SeedKeywordsOnly
	SeedKeywordsAndURL
)

func (k SeedKind) String() string {
	switch k {
	case SeedURLOnly:
		return "url"
	case SeedKeywordsOnly:
		return "keywords"
	case SeedKeywordsAndURL:
		return "keywords_and_url"
	default:
		return "unknown"
	}
}

// Seed is the basis ideas are generated from. It is one of URLSeed,
// KeywordSeed or KeywordAndURLSeed.
type Seed interface {
	Kind() SeedKind
	apply(req *ads.GenerateKeywordIdeasRequest)
}

// URLSeed seeds ideas from a page URL only
type URLSeed struct {
	URL string
}

func (URLSeed) Kind() SeedKind { return SeedURLOnly }

func (s URLSeed) apply(req *ads.GenerateKeywordIdeasRequest) {
	req.URLSeed = &ads.URLSeed{URL: s.URL}
}

// KeywordSeed seeds ideas from keywords only
type KeywordSeed struct {
	Keywords []string
}

func (KeywordSeed) Kind() SeedKind { return SeedKeywordsOnly }

func (s KeywordSeed) apply(req *ads.GenerateKeywordIdeasRequest) {
	req.KeywordSeed = &ads.KeywordSeed{Keywords: s.Keywords}
}

// KeywordAndURLSeed seeds ideas from keywords and a page URL
type KeywordAndURLSeed struct {
	Keywords []string
	URL      string
}

func (KeywordAndURLSeed) Kind() SeedKind { return SeedKeywordsAndURL }

func (s KeywordAndURLSeed) apply(req *ads.GenerateKeywordIdeasRequest) {
	req.KeywordAndURLSeed = &ads.KeywordAndURLSeed{URL: s.URL, Keywords: s.Keywords}
}

// BuildSeed picks the seed variant from which inputs are present.
// An empty pageURL means no URL was given.
func BuildSeed(keywordTexts []string, pageURL string) (Seed, error) {
	pageURL = strings.TrimSpace(pageURL)
	hasKeywords := len(keywordTexts) > 0
	hasURL := pageURL != ""

	switch {
	case hasKeywords && hasURL:
		return KeywordAndURLSeed{Keywords: keywordTexts, URL: pageURL}, nil
	case hasKeywords:
		return KeywordSeed{Keywords: keywordTexts}, nil
	case hasURL:
		return URLSeed{URL: pageURL}, nil
	default:
		return nil, fmt.Errorf("%w: at least one of keywords or page URL is required, but neither was specified", ErrInvalidArgument)
	}
}
