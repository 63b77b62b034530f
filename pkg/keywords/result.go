package keywords

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"keyword-planner/pkg/ads"
)

// monthNumbers maps month enum names to calendar numbers
var monthNumbers = map[string]int{
	"JANUARY":   1,
	"FEBRUARY":  2,
	"MARCH":     3,
	"APRIL":     4,
	"MAY":       5,
	"JUNE":      6,
	"JULY":      7,
	"AUGUST":    8,
	"SEPTEMBER": 9,
	"OCTOBER":   10,
	"NOVEMBER":  11,
	"DECEMBER":  12,
}

// monthsPerIdea is the number of monthly records kept per idea
const monthsPerIdea = 12

// MonthKey formats a month name and year as "<year>/<month number>",
// e.g. ("JANUARY", 2024) -> "2024/1". ok is false for names outside
// JANUARY..DECEMBER.
func MonthKey(month string, year int64) (key string, ok bool) {
	n, ok := monthNumbers[month]
	if !ok {
		return "", false
	}
	return strconv.FormatInt(year, 10) + "/" + strconv.Itoa(n), true
}

// OrderedMap is a string-keyed map that remembers insertion order.
// Setting an existing key replaces the value in place.
type OrderedMap[V any] struct {
	keys   []string
	values map[string]V
}

// NewOrderedMap creates an empty map
func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{values: make(map[string]V)}
}

func (m *OrderedMap[V]) Set(key string, value V) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *OrderedMap[V]) Get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order
func (m *OrderedMap[V]) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

func (m *OrderedMap[V]) Len() int {
	return len(m.keys)
}

// MarshalJSON writes an object whose members follow insertion order
func (m *OrderedMap[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(m.values[key])
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MonthlyVolume is the search count of one month
type MonthlyVolume struct {
	Value int64 `json:"value"`
}

// Competition is the competition level name and index of an idea
type Competition struct {
	Level string `json:"level"`
	Value int64  `json:"value"`
}

// KeywordIdea holds the metrics of one keyword
type KeywordIdea struct {
	AvgMonthlySearchesVolume int64                      `json:"avg_monthly_searches_volume"`
	MonthlySearchVolumes     *OrderedMap[MonthlyVolume] `json:"monthly_search_volumes"`
	Competition              Competition                `json:"competition"`
}

// ResultSet maps keyword text to its metrics, in API order
type ResultSet = OrderedMap[KeywordIdea]

// IdeaIterator is the consume-once sequence the transformation reads
type IdeaIterator interface {
	Next() bool
	Idea() ads.GenerateKeywordIdeaResult
	Err() error
}

// Transform drains ideas into a ResultSet. On a stream error no partial
// result is returned.
func Transform(ideas IdeaIterator) (*ResultSet, error) {
	result := NewOrderedMap[KeywordIdea]()

	for ideas.Next() {
		idea := ideas.Idea()
		result.Set(idea.Text, toKeywordIdea(idea.KeywordIdeaMetrics))
	}
	if err := ideas.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func toKeywordIdea(metrics ads.KeywordPlanHistoricalMetrics) KeywordIdea {
	volumes := NewOrderedMap[MonthlyVolume]()

	records := metrics.MonthlySearchVolumes
	if len(records) > monthsPerIdea {
		records = records[:monthsPerIdea]
	}
	for _, record := range records {
		key, ok := MonthKey(record.Month.String(), int64(record.Year))
		if !ok {
			continue
		}
		volumes.Set(key, MonthlyVolume{Value: int64(record.MonthlySearches)})
	}

	return KeywordIdea{
		AvgMonthlySearchesVolume: int64(metrics.AvgMonthlySearches),
		MonthlySearchVolumes:     volumes,
		Competition: Competition{
			Level: metrics.Competition.String(),
			Value: int64(metrics.CompetitionIndex),
		},
	}
}
