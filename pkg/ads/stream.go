package ads

import (
	"context"
	"fmt"
)

// PageFetcher loads the page identified by pageToken ("" for the first page)
type PageFetcher func(ctx context.Context, pageToken string) (*GenerateKeywordIdeaResponse, error)

// IdeaStream iterates keyword ideas page by page. Pages are fetched only
// when the previous one is used up. A stream is consumed once: after it is
// exhausted or fails, Next keeps returning false.
//
//	for stream.Next() {
//		idea := stream.Idea()
//	}
//	if err := stream.Err(); err != nil { ... }
type IdeaStream struct {
	ctx   context.Context
	fetch PageFetcher

	page      []GenerateKeywordIdeaResult
	pos       int
	nextToken string
	started   bool
	done      bool

	current GenerateKeywordIdeaResult
	err     error
	pages   int
}

// NewIdeaStream creates a lazy stream over fetch
func NewIdeaStream(ctx context.Context, fetch PageFetcher) *IdeaStream {
	return &IdeaStream{ctx: ctx, fetch: fetch}
}

// Next advances to the next idea, fetching a new page when needed
func (s *IdeaStream) Next() bool {
	if s.done {
		return false
	}

	for s.pos >= len(s.page) {
		if s.started && s.nextToken == "" {
			s.done = true
			return false
		}
		if err := s.ctx.Err(); err != nil {
			return s.fail(err)
		}

		token := s.nextToken
		resp, err := s.fetch(s.ctx, token)
		s.started = true
		if err != nil {
			return s.fail(err)
		}
		if resp == nil {
			resp = &GenerateKeywordIdeaResponse{}
		}
		if resp.NextPageToken != "" && resp.NextPageToken == token {
			return s.fail(fmt.Errorf("page token %q repeated by server", token))
		}

		s.pages++
		s.page = resp.Results
		s.pos = 0
		s.nextToken = resp.NextPageToken
	}

	s.current = s.page[s.pos]
	s.pos++
	return true
}

// Idea returns the idea Next advanced to
func (s *IdeaStream) Idea() GenerateKeywordIdeaResult {
	return s.current
}

// Err returns the error that stopped the stream, if any
func (s *IdeaStream) Err() error {
	return s.err
}

// Pages returns how many pages were fetched so far
func (s *IdeaStream) Pages() int {
	return s.pages
}

func (s *IdeaStream) fail(err error) bool {
	s.err = err
	s.done = true
	s.page = nil
	return false
}
