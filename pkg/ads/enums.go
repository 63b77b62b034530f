package ads

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// MonthOfYear mirrors the MonthOfYearEnum codes
type MonthOfYear int32

const (
	MonthUnspecified MonthOfYear = iota
	MonthUnknown
	January
	February
	March
	April
	May
	June
	July
	August
	September
	October
	November
	December
)

var monthNames = [...]string{
	"UNSPECIFIED", "UNKNOWN",
	"JANUARY", "FEBRUARY", "MARCH", "APRIL", "MAY", "JUNE",
	"JULY", "AUGUST", "SEPTEMBER", "OCTOBER", "NOVEMBER", "DECEMBER",
}

func (m MonthOfYear) String() string {
	if m < 0 || int(m) >= len(monthNames) {
		return "UNKNOWN"
	}
	return monthNames[m]
}

func (m MonthOfYear) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *MonthOfYear) UnmarshalJSON(data []byte) error {
	code, err := decodeEnum(data, monthNames[:])
	if err != nil {
		return fmt.Errorf("month of year: %w", err)
	}
	*m = MonthOfYear(code)
	return nil
}

// CompetitionLevel mirrors the KeywordPlanCompetitionLevelEnum codes
type CompetitionLevel int32

const (
	CompetitionUnspecified CompetitionLevel = iota
	CompetitionUnknown
	CompetitionLow
	CompetitionMedium
	CompetitionHigh
)

var competitionNames = [...]string{"UNSPECIFIED", "UNKNOWN", "LOW", "MEDIUM", "HIGH"}

func (c CompetitionLevel) String() string {
	if c < 0 || int(c) >= len(competitionNames) {
		return "UNKNOWN"
	}
	return competitionNames[c]
}

func (c CompetitionLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *CompetitionLevel) UnmarshalJSON(data []byte) error {
	code, err := decodeEnum(data, competitionNames[:])
	if err != nil {
		return fmt.Errorf("competition level: %w", err)
	}
	*c = CompetitionLevel(code)
	return nil
}

// decodeEnum accepts either the symbolic name or the numeric code.
// Names the table does not know decode to UNKNOWN (1), as newer API
// versions may add values.
func decodeEnum(data []byte, names []string) (int32, error) {
	raw := string(data)
	if raw == "null" {
		return 0, nil
	}
	if strings.HasPrefix(raw, `"`) {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return 0, err
		}
		for code, n := range names {
			if n == name {
				return int32(code), nil
			}
		}
		return 1, nil
	}
	code, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid enum value %s", raw)
	}
	return int32(code), nil
}
