package ads

import (
	"errors"
	"strings"
)

// ErrEmptyResourceID is returned when a criterion id is blank
var ErrEmptyResourceID = errors.New("resource id is empty")

// GeoTargetConstantService resolves location criterion ids
type GeoTargetConstantService interface {
	GeoTargetConstantPath(locationID string) (string, error)
}

// LanguageConstantService resolves language criterion ids
type LanguageConstantService interface {
	LanguageConstantPath(languageID string) (string, error)
}

// ResourceNames builds fully-qualified resource names locally, the same
// way the official client libraries do.
type ResourceNames struct{}

func (ResourceNames) GeoTargetConstantPath(locationID string) (string, error) {
	return resourcePath("geoTargetConstants", locationID)
}

func (ResourceNames) LanguageConstantPath(languageID string) (string, error) {
	return resourcePath("languageConstants", languageID)
}

func resourcePath(collection, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrEmptyResourceID
	}
	return collection + "/" + id, nil
}
