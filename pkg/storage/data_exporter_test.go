package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyword-planner/pkg/keywords"
)

func sampleResult() *keywords.ResultSet {
	result := keywords.NewOrderedMap[keywords.KeywordIdea]()
	result.Set("zebra", keywords.KeywordIdea{AvgMonthlySearchesVolume: 1})
	result.Set("apple", keywords.KeywordIdea{AvgMonthlySearchesVolume: 2})
	return result
}

func TestDataExporter_WriteKeepsOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewDataExporter("").Write(&buf, sampleResult()))

	out := buf.String()
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\n")))
	assert.Less(t, bytes.Index([]byte(out), []byte("zebra")), bytes.Index([]byte(out), []byte("apple")))
}

func TestDataExporter_ExportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ideas.json")

	require.NoError(t, NewDataExporter("  ").ExportFile(path, sampleResult()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"zebra\": {")
	assert.JSONEq(t, `{
		"zebra": {"avg_monthly_searches_volume": 1, "monthly_search_volumes": null, "competition": {"level": "", "value": 0}},
		"apple": {"avg_monthly_searches_volume": 2, "monthly_search_volumes": null, "competition": {"level": "", "value": 0}}
	}`, string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}
