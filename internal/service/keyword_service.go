// Package service assembles the Google Ads client and keyword fetcher from
// configuration.
package service

import (
	"context"
	"fmt"

	"keyword-planner/internal/config"
	"keyword-planner/pkg/ads"
	"keyword-planner/pkg/keywords"
	"keyword-planner/pkg/logger"
)

// KeywordService bundles a fetcher with the client it calls through
type KeywordService struct {
	Fetcher *keywords.Fetcher
	Client  *ads.Client
}

// NewKeywordService builds the REST client (OAuth2 refresh-token flow over
// fasthttp) and a fetcher using the configured targeting defaults.
// connConfig may be the zero value.
func NewKeywordService(ctx context.Context, cfg *config.Config, connConfig ads.ConnectionConfig) (*KeywordService, error) {
	if cfg.RequestTimeout > 0 {
		connConfig.RequestTimeout = cfg.RequestTimeout
	}

	client, err := ads.NewClient(ads.ClientConfig{
		Endpoint:        cfg.Endpoint,
		APIVersion:      cfg.APIVersion,
		DeveloperToken:  cfg.DeveloperToken,
		LoginCustomerID: cfg.LoginCustomerID,
	}, ads.NewTokenSource(ctx, ads.Credentials{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RefreshToken: cfg.RefreshToken,
	}), connConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Ads client: %w", err)
	}

	secureLog := logger.GetSecurityLogger()
	secureLog.SafeDebug("Google Ads client configured", map[string]interface{}{
		"endpoint":          cfg.Endpoint,
		"api_version":       cfg.APIVersion,
		"developer_token":   cfg.DeveloperToken,
		"login_customer_id": cfg.LoginCustomerID,
	})

	resolver := ads.ResourceNames{}
	fetcher := keywords.NewFetcher(client, resolver, resolver, keywords.Options{
		DefaultLocationIDs: cfg.DefaultLocationIDs,
		DefaultLanguageID:  cfg.DefaultLanguageID,
		PageSize:           cfg.PageSize,
	})

	return &KeywordService{Fetcher: fetcher, Client: client}, nil
}

// Close releases the client's connections
func (s *KeywordService) Close() {
	s.Client.Close()
}
