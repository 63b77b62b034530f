package ads

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// failureEnvelope is the google.rpc.Status body returned on errors
type failureEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
		Details []struct {
			Type      string           `json:"@type"`
			Errors    []GoogleAdsError `json:"errors"`
			RequestID string           `json:"requestId"`
		} `json:"details"`
	} `json:"error"`
}

// ResponseParser decodes generateKeywordIdeas responses and failures
type ResponseParser struct{}

// NewResponseParser creates a new response parser
func NewResponseParser() *ResponseParser {
	return &ResponseParser{}
}

// ParseResponse decodes one page of keyword ideas
func (p *ResponseParser) ParseResponse(body []byte) (*GenerateKeywordIdeaResponse, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("empty response body from keyword plan idea service")
	}

	var page GenerateKeywordIdeaResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to decode keyword ideas: %w (response: %s)", err, snippet(body))
	}
	return &page, nil
}

// ParseFailure turns a non-200 response into an error. Bodies carrying a
// google.rpc.Status decode to *Fault; anything else is a plain error.
// requestID is the value of the request-id response header, used when the
// failure details do not carry one.
func (p *ResponseParser) ParseFailure(statusCode int, body []byte, requestID string) error {
	var env failureEnvelope
	if err := json.Unmarshal(body, &env); err != nil || (env.Error.Status == "" && env.Error.Code == 0) {
		return fmt.Errorf("API returned status %d: %s", statusCode, snippet(body))
	}

	fault := &Fault{
		RequestID:      requestID,
		Status:         env.Error.Status,
		HTTPStatusCode: statusCode,
	}
	if fault.Status == "" {
		fault.Status = "UNKNOWN"
	}

	for _, detail := range env.Error.Details {
		if !strings.HasSuffix(detail.Type, "GoogleAdsFailure") {
			continue
		}
		fault.Errors = append(fault.Errors, detail.Errors...)
		if detail.RequestID != "" {
			fault.RequestID = detail.RequestID
		}
	}

	// No GoogleAdsFailure detail: keep the status message so the fault is
	// never reported without an explanation
	if len(fault.Errors) == 0 && env.Error.Message != "" {
		fault.Errors = []GoogleAdsError{{Message: env.Error.Message}}
	}

	return fault
}

// snippet cuts body to at most 200 bytes without splitting a rune
func snippet(body []byte) string {
	n := min(len(body), 200)
	for n > 0 && n < len(body) && !utf8.RuneStart(body[n]) {
		n--
	}
	return string(body[:n])
}
