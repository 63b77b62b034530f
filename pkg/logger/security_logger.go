package logger

import (
	"crypto/sha256"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var secretPattern = regexp.MustCompile(`(?i)(token|secret|key)([=:]\s*)[A-Za-z0-9._\-/]+`)

// SecurityLogger masks credentials and account ids before logging
type SecurityLogger struct {
	*Logger
}

// NewSecurityLogger creates a new security-aware logger
func NewSecurityLogger() *SecurityLogger {
	return &SecurityLogger{Logger: GetLogger()}
}

// GetSecurityLogger returns a security logger over the current global logger
func GetSecurityLogger() *SecurityLogger {
	return NewSecurityLogger()
}

// MaskSecret keeps a short hash so two log lines can be correlated
// without exposing the value
func (sl *SecurityLogger) MaskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	return "secret#" + sl.GenerateHash(secret)[:8]
}

// MaskCustomerID keeps the last four digits of an account id
func (sl *SecurityLogger) MaskCustomerID(customerID string) string {
	digits := strings.ReplaceAll(customerID, "-", "")
	if len(digits) <= 4 {
		return strings.Repeat("*", len(digits))
	}
	return strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
}

// MaskURL keeps only the host of a URL
func (sl *SecurityLogger) MaskURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return "url#" + sl.GenerateHash(rawURL)[:8]
	}
	return fmt.Sprintf("%s#%s", parsed.Host, sl.GenerateHash(rawURL)[:8])
}

// MaskSensitiveData masks values whose keys look sensitive
func (sl *SecurityLogger) MaskSensitiveData(data map[string]interface{}) map[string]interface{} {
	masked := make(map[string]interface{}, len(data))

	for key, value := range data {
		lowerKey := strings.ToLower(key)
		str, isString := value.(string)

		switch {
		case !isString:
			masked[key] = value
		case strings.Contains(lowerKey, "token") || strings.Contains(lowerKey, "secret"):
			masked[key] = sl.MaskSecret(str)
		case strings.Contains(lowerKey, "customer"):
			masked[key] = sl.MaskCustomerID(str)
		case strings.Contains(lowerKey, "url"):
			masked[key] = sl.MaskURL(str)
		default:
			masked[key] = value
		}
	}

	return masked
}

// MaskLogMessage removes credentials from free-form messages
func (sl *SecurityLogger) MaskLogMessage(message string) string {
	return secretPattern.ReplaceAllString(message, "${1}${2}***")
}

// GenerateHash returns a hex SHA-256 prefix of data
func (sl *SecurityLogger) GenerateHash(data string) string {
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash[:8])
}

// SafeInfo logs info with automatic sensitive data masking
func (sl *SecurityLogger) SafeInfo(msg string, fields map[string]interface{}) {
	sl.Logger.WithFields(sl.MaskSensitiveData(fields)).Info(sl.MaskLogMessage(msg))
}

// SafeDebug logs debug with automatic sensitive data masking
func (sl *SecurityLogger) SafeDebug(msg string, fields map[string]interface{}) {
	sl.Logger.WithFields(sl.MaskSensitiveData(fields)).Debug(sl.MaskLogMessage(msg))
}

// SafeError logs an error with automatic sensitive data masking
func (sl *SecurityLogger) SafeError(msg string, err error, fields map[string]interface{}) {
	masked := sl.MaskSensitiveData(fields)
	masked["error"] = sl.MaskLogMessage(err.Error())
	sl.Logger.WithFields(masked).Error(sl.MaskLogMessage(msg))
}
