package ads

import (
	"context"
	"encoding/json"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
	"golang.org/x/oauth2"
)

type recordedRequest struct {
	path           string
	authorization  string
	developerToken string
	loginCustomer  string
	body           GenerateKeywordIdeasRequest
}

// startFakeAPI serves handler on an in-memory listener and returns a
// client wired to it
func startFakeAPI(t *testing.T, handler fasthttp.RequestHandler) *Client {
	t.Helper()

	ln := fasthttputil.NewInmemoryListener()
	server := &fasthttp.Server{Handler: handler}
	go func() { _ = server.Serve(ln) }()
	t.Cleanup(func() { _ = ln.Close() })

	conn := DefaultConnectionConfig()
	conn.Dial = func(addr string) (net.Conn, error) { return ln.Dial() }

	client, err := NewClient(ClientConfig{
		Endpoint:        "http://ads.test/",
		APIVersion:      "v17",
		DeveloperToken:  "dev-token",
		LoginCustomerID: "111-222-3333",
	}, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "access", TokenType: "Bearer"}), conn)
	require.NoError(t, err)
	t.Cleanup(client.Close)
	return client
}

func TestClient_GenerateKeywordIdeas_Pages(t *testing.T) {
	var requests []recordedRequest

	client := startFakeAPI(t, func(ctx *fasthttp.RequestCtx) {
		rec := recordedRequest{
			path:           string(ctx.Path()),
			authorization:  string(ctx.Request.Header.Peek("Authorization")),
			developerToken: string(ctx.Request.Header.Peek("developer-token")),
			loginCustomer:  string(ctx.Request.Header.Peek("login-customer-id")),
		}
		_ = json.Unmarshal(ctx.PostBody(), &rec.body)
		requests = append(requests, rec)

		ctx.SetContentType("application/json")
		if rec.body.PageToken == "" {
			ctx.SetBodyString(`{"results":[{"text":"shoes","keywordIdeaMetrics":{"avgMonthlySearches":"1000","competition":"HIGH","competitionIndex":"80"}}],"nextPageToken":"p2"}`)
			return
		}
		ctx.SetBodyString(`{"results":[{"text":"boots","keywordIdeaMetrics":{"competition":"LOW"}}]}`)
	})

	stream := client.GenerateKeywordIdeas(context.Background(), GenerateKeywordIdeasRequest{
		CustomerID:         "123-456-7890",
		Language:           "languageConstants/1005",
		GeoTargetConstants: []string{"geoTargetConstants/2392"},
		KeywordPlanNetwork: NetworkGoogleSearchAndPartners,
		PageSize:           100,
		KeywordSeed:        &KeywordSeed{Keywords: []string{"shoes"}},
	})

	var texts []string
	for stream.Next() {
		texts = append(texts, stream.Idea().Text)
	}
	require.NoError(t, stream.Err())
	assert.Equal(t, []string{"shoes", "boots"}, texts)

	require.Len(t, requests, 2)
	first := requests[0]
	assert.Equal(t, "/v17/customers/1234567890:generateKeywordIdeas", first.path)
	assert.Equal(t, "Bearer access", first.authorization)
	assert.Equal(t, "dev-token", first.developerToken)
	assert.Equal(t, "1112223333", first.loginCustomer)
	assert.Equal(t, "languageConstants/1005", first.body.Language)
	assert.Equal(t, []string{"geoTargetConstants/2392"}, first.body.GeoTargetConstants)
	assert.Equal(t, NetworkGoogleSearchAndPartners, first.body.KeywordPlanNetwork)
	assert.Equal(t, 100, first.body.PageSize)
	require.NotNil(t, first.body.KeywordSeed)
	assert.Nil(t, first.body.URLSeed)
	assert.Nil(t, first.body.KeywordAndURLSeed)
	assert.Equal(t, "p2", requests[1].body.PageToken)

	total, failed := client.Stats()
	assert.Equal(t, uint64(2), total)
	assert.Zero(t, failed)
}

func TestClient_GenerateKeywordIdeas_Fault(t *testing.T) {
	client := startFakeAPI(t, func(ctx *fasthttp.RequestCtx) {
		ctx.Response.Header.Set("request-id", "header-id")
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		ctx.SetContentType("application/json")
		ctx.SetBodyString(`{"error":{"code":400,"status":"INVALID_ARGUMENT","message":"bad","details":[{"@type":"type.googleapis.com/google.ads.googleads.v17.errors.GoogleAdsFailure","errors":[{"message":"Invalid customer ID","location":{"fieldPathElements":[{"fieldName":"customer_id"}]}}]}]}}`)
	})

	stream := client.GenerateKeywordIdeas(context.Background(), GenerateKeywordIdeasRequest{
		CustomerID: "1",
		URLSeed:    &URLSeed{URL: "http://example.com"},
	})

	assert.False(t, stream.Next())
	var fault *Fault
	require.ErrorAs(t, stream.Err(), &fault)
	assert.Equal(t, "header-id", fault.RequestID)
	assert.Equal(t, "INVALID_ARGUMENT", fault.Status)
	require.Len(t, fault.Errors, 1)
	assert.Equal(t, []string{"customer_id"}, fault.Errors[0].FieldPath())

	_, failed := client.Stats()
	assert.Equal(t, uint64(1), failed)
}

func TestClient_GenerateKeywordIdeas_MissingCustomer(t *testing.T) {
	client := startFakeAPI(t, func(ctx *fasthttp.RequestCtx) {
		t.Error("no request expected")
	})

	stream := client.GenerateKeywordIdeas(context.Background(), GenerateKeywordIdeasRequest{})
	assert.False(t, stream.Next())
	assert.Error(t, stream.Err())
}

func TestNewClient_Validation(t *testing.T) {
	tokens := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "x"})

	_, err := NewClient(ClientConfig{}, tokens, DefaultConnectionConfig())
	assert.Error(t, err)

	_, err = NewClient(ClientConfig{DeveloperToken: "d"}, nil, DefaultConnectionConfig())
	assert.Error(t, err)

	client, err := NewClient(ClientConfig{DeveloperToken: "d"}, tokens, ConnectionConfig{})
	require.NoError(t, err)
	assert.Equal(t, "https://googleads.googleapis.com/v17/customers/42:generateKeywordIdeas", client.generateURL("42"))
}
