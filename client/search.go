package client

import (
	"context"
	"net/url"
	"strconv"
)

// SearchService handles product search.
type SearchService struct {
	c *Client
}

// searchResponse wraps ranked search results.
type searchResponse struct {
	Results []RankedProduct `json:"results"`
	Total   int             `json:"total"`
}

// Query performs a hybrid product search.
func (s *SearchService) Query(ctx context.Context, query string, opts *SearchOptions) ([]RankedProduct, error) {
	params := url.Values{"q": {query}}
	if opts != nil {
		if opts.Limit > 0 {
			params.Set("limit", strconv.Itoa(opts.Limit))
		}
		if opts.Offset > 0 {
			params.Set("offset", strconv.Itoa(opts.Offset))
		}
		if opts.MaxPrice > 0 {
			params.Set("max_price", strconv.FormatFloat(opts.MaxPrice, 'f', -1, 64))
		}
	}
	var resp searchResponse
	if err := s.c.get(ctx, "/api/search", params, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}
