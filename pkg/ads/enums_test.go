package ads

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthOfYear_Unmarshal(t *testing.T) {
	tests := []struct {
		input    string
		expected MonthOfYear
	}{
		{`"JANUARY"`, January},
		{`"DECEMBER"`, December},
		{`2`, January},
		{`13`, December},
		{`"SMARCH"`, MonthUnknown},
		{`null`, MonthUnspecified},
	}

	for _, tt := range tests {
		var m MonthOfYear
		require.NoError(t, json.Unmarshal([]byte(tt.input), &m), tt.input)
		assert.Equal(t, tt.expected, m, tt.input)
	}
}

func TestCompetitionLevel_RoundTripName(t *testing.T) {
	var c CompetitionLevel
	require.NoError(t, json.Unmarshal([]byte(`4`), &c))
	assert.Equal(t, "HIGH", c.String())

	out, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `"HIGH"`, string(out))
}

func TestEnums_OutOfRangeString(t *testing.T) {
	assert.Equal(t, "UNKNOWN", MonthOfYear(99).String())
	assert.Equal(t, "UNKNOWN", CompetitionLevel(-1).String())
}

func TestEnums_InvalidValue(t *testing.T) {
	var c CompetitionLevel
	assert.Error(t, json.Unmarshal([]byte(`true`), &c))
}

func TestResourceNames(t *testing.T) {
	names := ResourceNames{}

	geo, err := names.GeoTargetConstantPath("2392")
	require.NoError(t, err)
	assert.Equal(t, "geoTargetConstants/2392", geo)

	lang, err := names.LanguageConstantPath(" 1005 ")
	require.NoError(t, err)
	assert.Equal(t, "languageConstants/1005", lang)

	_, err = names.GeoTargetConstantPath("")
	assert.ErrorIs(t, err, ErrEmptyResourceID)
}

func TestNormalizeCustomerID(t *testing.T) {
	assert.Equal(t, "1234567890", NormalizeCustomerID(" 123-456-7890 "))
	assert.Equal(t, "1234567890", NormalizeCustomerID("1234567890"))
}
