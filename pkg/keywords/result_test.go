package keywords

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyword-planner/pkg/ads"
)

var allMonths = []ads.MonthOfYear{
	ads.January, ads.February, ads.March, ads.April, ads.May, ads.June,
	ads.July, ads.August, ads.September, ads.October, ads.November, ads.December,
}

// twelveMonths builds records from January to December of year, with
// searches 100, 200, ... 1200
func twelveMonths(year int64) []ads.MonthlySearchVolume {
	records := make([]ads.MonthlySearchVolume, 0, len(allMonths))
	for i, m := range allMonths {
		records = append(records, ads.MonthlySearchVolume{
			Year:            ads.Int64Value(year),
			Month:           m,
			MonthlySearches: ads.Int64Value((i + 1) * 100),
		})
	}
	return records
}

func staticStream(results ...ads.GenerateKeywordIdeaResult) *ads.IdeaStream {
	return ads.NewIdeaStream(context.Background(), func(ctx context.Context, token string) (*ads.GenerateKeywordIdeaResponse, error) {
		return &ads.GenerateKeywordIdeaResponse{Results: results}, nil
	})
}

func TestMonthKey(t *testing.T) {
	key, ok := MonthKey("JANUARY", 2024)
	assert.True(t, ok)
	assert.Equal(t, "2024/1", key)

	key, ok = MonthKey("DECEMBER", 2023)
	assert.True(t, ok)
	assert.Equal(t, "2023/12", key)

	_, ok = MonthKey("UNSPECIFIED", 2023)
	assert.False(t, ok)
}

func TestTransform_SingleIdea(t *testing.T) {
	result, err := Transform(staticStream(ads.GenerateKeywordIdeaResult{
		Text: "shoes",
		KeywordIdeaMetrics: ads.KeywordPlanHistoricalMetrics{
			AvgMonthlySearches:   1000,
			MonthlySearchVolumes: twelveMonths(2024),
			Competition:          ads.CompetitionHigh,
			CompetitionIndex:     80,
		},
	}))
	require.NoError(t, err)

	shoes, ok := result.Get("shoes")
	require.True(t, ok)
	assert.Equal(t, int64(1000), shoes.AvgMonthlySearchesVolume)
	assert.Equal(t, Competition{Level: "HIGH", Value: 80}, shoes.Competition)
	assert.Equal(t, 12, shoes.MonthlySearchVolumes.Len())

	jan, _ := shoes.MonthlySearchVolumes.Get("2024/1")
	dec, _ := shoes.MonthlySearchVolumes.Get("2024/12")
	assert.Equal(t, MonthlyVolume{Value: 100}, jan)
	assert.Equal(t, MonthlyVolume{Value: 1200}, dec)

	out, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"shoes": {
			"avg_monthly_searches_volume": 1000,
			"monthly_search_volumes": {
				"2024/1": {"value": 100}, "2024/2": {"value": 200}, "2024/3": {"value": 300},
				"2024/4": {"value": 400}, "2024/5": {"value": 500}, "2024/6": {"value": 600},
				"2024/7": {"value": 700}, "2024/8": {"value": 800}, "2024/9": {"value": 900},
				"2024/10": {"value": 1000}, "2024/11": {"value": 1100}, "2024/12": {"value": 1200}
			},
			"competition": {"level": "HIGH", "value": 80}
		}
	}`, string(out))
}

func TestTransform_KeepsStreamOrderAndLastWriteWins(t *testing.T) {
	result, err := Transform(staticStream(
		ads.GenerateKeywordIdeaResult{Text: "zebra", KeywordIdeaMetrics: ads.KeywordPlanHistoricalMetrics{AvgMonthlySearches: 1}},
		ads.GenerateKeywordIdeaResult{Text: "apple", KeywordIdeaMetrics: ads.KeywordPlanHistoricalMetrics{AvgMonthlySearches: 2}},
		ads.GenerateKeywordIdeaResult{Text: "zebra", KeywordIdeaMetrics: ads.KeywordPlanHistoricalMetrics{AvgMonthlySearches: 3}},
	))
	require.NoError(t, err)

	assert.Equal(t, []string{"zebra", "apple"}, result.Keys())
	zebra, _ := result.Get("zebra")
	assert.Equal(t, int64(3), zebra.AvgMonthlySearchesVolume)

	out, err := json.Marshal(result)
	require.NoError(t, err)
	assert.Regexp(t, `^\{"zebra":.*,"apple":.*\}$`, string(out))
}

func TestTransform_MonthRecordEdgeCases(t *testing.T) {
	records := append(twelveMonths(2023), ads.MonthlySearchVolume{Year: 2024, Month: ads.January, MonthlySearches: 5})
	records[3].Month = ads.MonthUnspecified

	result, err := Transform(staticStream(ads.GenerateKeywordIdeaResult{
		Text:               "camera",
		KeywordIdeaMetrics: ads.KeywordPlanHistoricalMetrics{MonthlySearchVolumes: records},
	}))
	require.NoError(t, err)

	camera, _ := result.Get("camera")
	assert.Equal(t, 11, camera.MonthlySearchVolumes.Len(), "unknown month skipped, 13th record ignored")
	_, has2024 := camera.MonthlySearchVolumes.Get("2024/1")
	assert.False(t, has2024)
	assert.Equal(t, "UNSPECIFIED", camera.Competition.Level)
}

func TestTransform_StreamErrorReturnsNoResult(t *testing.T) {
	fault := &ads.Fault{RequestID: "abc123"}
	stream := ads.NewIdeaStream(context.Background(), func(ctx context.Context, token string) (*ads.GenerateKeywordIdeaResponse, error) {
		if token == "" {
			return &ads.GenerateKeywordIdeaResponse{
				Results:       []ads.GenerateKeywordIdeaResult{{Text: "partial"}},
				NextPageToken: "p2",
			}, nil
		}
		return nil, fault
	})

	result, err := Transform(stream)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, fault))
}

func TestOrderedMap_EmptyJSON(t *testing.T) {
	out, err := json.Marshal(NewOrderedMap[KeywordIdea]())
	require.NoError(t, err)
	assert.Equal(t, "{}", string(out))
}
