package ads

import (
	"context"
	"strconv"
	"strings"
)

// KeywordPlanNetwork selects the network used to compute keyword ideas
type KeywordPlanNetwork string

const (
	NetworkGoogleSearch            KeywordPlanNetwork = "GOOGLE_SEARCH"
	NetworkGoogleSearchAndPartners KeywordPlanNetwork = "GOOGLE_SEARCH_AND_PARTNERS"
)

// KeywordSeed generates ideas from a list of keywords
type KeywordSeed struct {
	Keywords []string `json:"keywords"`
}

// URLSeed generates ideas from a single page URL
type URLSeed struct {
	URL string `json:"url"`
}

// KeywordAndURLSeed generates ideas from keywords and a page URL together
type KeywordAndURLSeed struct {
	URL      string   `json:"url"`
	Keywords []string `json:"keywords"`
}

// GenerateKeywordIdeasRequest is the body of a generateKeywordIdeas call.
// Exactly one of the three seed fields is expected to be set.
type GenerateKeywordIdeasRequest struct {
	CustomerID           string             `json:"-"`
	Language             string             `json:"language"`
	GeoTargetConstants   []string           `json:"geoTargetConstants"`
	IncludeAdultKeywords bool               `json:"includeAdultKeywords"`
	KeywordPlanNetwork   KeywordPlanNetwork `json:"keywordPlanNetwork"`
	PageSize             int                `json:"pageSize,omitempty"`
	PageToken            string             `json:"pageToken,omitempty"`
	KeywordSeed          *KeywordSeed       `json:"keywordSeed,omitempty"`
	URLSeed              *URLSeed           `json:"urlSeed,omitempty"`
	KeywordAndURLSeed    *KeywordAndURLSeed `json:"keywordAndUrlSeed,omitempty"`
}

// GenerateKeywordIdeaResult is a single keyword idea
type GenerateKeywordIdeaResult struct {
	Text               string                       `json:"text"`
	KeywordIdeaMetrics KeywordPlanHistoricalMetrics `json:"keywordIdeaMetrics"`
}

// KeywordPlanHistoricalMetrics holds the search metrics of an idea
type KeywordPlanHistoricalMetrics struct {
	AvgMonthlySearches   Int64Value            `json:"avgMonthlySearches"`
	MonthlySearchVolumes []MonthlySearchVolume `json:"monthlySearchVolumes"`
	Competition          CompetitionLevel      `json:"competition"`
	CompetitionIndex     Int64Value            `json:"competitionIndex"`
}

// MonthlySearchVolume is the search count of one calendar month
type MonthlySearchVolume struct {
	Year            Int64Value  `json:"year"`
	Month           MonthOfYear `json:"month"`
	MonthlySearches Int64Value  `json:"monthlySearches"`
}

// GenerateKeywordIdeaResponse is one page of ideas
type GenerateKeywordIdeaResponse struct {
	Results       []GenerateKeywordIdeaResult `json:"results"`
	NextPageToken string                      `json:"nextPageToken"`
	TotalSize     Int64Value                  `json:"totalSize"`
}

// KeywordPlanIdeaService generates keyword ideas.
// The returned stream is lazy: no request is sent before the first Next.
type KeywordPlanIdeaService interface {
	GenerateKeywordIdeas(ctx context.Context, req GenerateKeywordIdeasRequest) *IdeaStream
}

// Int64Value decodes proto3 JSON int64 fields, which arrive as strings
// but are accepted as bare numbers too. Missing or null values are zero.
type Int64Value int64

func (v *Int64Value) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		*v = 0
		return nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return err
	}
	*v = Int64Value(n)
	return nil
}

// NormalizeCustomerID strips the dashes of the "123-456-7890" display form
func NormalizeCustomerID(customerID string) string {
	return strings.ReplaceAll(strings.TrimSpace(customerID), "-", "")
}
