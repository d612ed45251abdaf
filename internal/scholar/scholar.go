// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scholar queries the external bibliometric author lookup keyed
// by Google Scholar user ID.
package scholar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"

	"github.com/pdiddy/scholar-directory/internal/httputil"
	"github.com/pdiddy/scholar-directory/pkg/types"
)

// authorAPIBase is the author lookup endpoint (SerpAPI's Google Scholar
// author engine). Declared as a var so tests can substitute an httptest
// server.
var authorAPIBase = "https://serpapi.com/search"

// userIDPattern extracts the stable author identifier from a Scholar
// profile URL's user= query parameter.
var userIDPattern = regexp.MustCompile(`user=([\w-]+)`)

// ExtractUserID pulls the author ID out of a Scholar profile URL. The
// second return is false when the URL carries no parseable identifier.
func ExtractUserID(scholarURL string) (string, bool) {
	m := userIDPattern.FindStringSubmatch(scholarURL)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Author is the bibliometric result for one researcher. All fields are
// optional on the wire; absent ones stay at their zero values.
type Author struct {
	HIndex      int
	CitedBy     int
	Affiliation string
	Homepage    string
	PictureURL  string
	Interests   []string
}

// Client performs author lookups.
type Client struct {
	HTTP *http.Client
	Cfg  types.EnrichConfig
}

// Lookup fetches the author record for id. A not-found author or any
// transport or decode problem is returned as an error; the enrichment
// pass treats it as a per-record failure, not a batch failure.
func (c *Client) Lookup(ctx context.Context, id string) (Author, error) {
	params := url.Values{
		"engine":    {"google_scholar_author"},
		"author_id": {id},
		"hl":        {"en"},
	}
	if c.Cfg.APIKey != "" {
		params.Set("api_key", c.Cfg.APIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, authorAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return Author{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.Cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, 0)
	if err != nil {
		return Author{}, fmt.Errorf("author lookup request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Author{}, fmt.Errorf("author lookup returned HTTP %d", resp.StatusCode)
	}

	var ar authorResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return Author{}, fmt.Errorf("parsing author response: %w", err)
	}
	if ar.Error != "" {
		return Author{}, fmt.Errorf("author lookup failed: %s", ar.Error)
	}

	author := Author{
		Affiliation: ar.Author.Affiliations,
		Homepage:    ar.Author.Website,
		PictureURL:  ar.Author.Thumbnail,
	}
	for _, in := range ar.Author.Interests {
		if in.Title != "" {
			author.Interests = append(author.Interests, in.Title)
		}
	}
	for _, row := range ar.CitedBy.Table {
		if row.Citations != nil {
			author.CitedBy = row.Citations.All
		}
		if row.HIndex != nil {
			author.HIndex = row.HIndex.All
		}
	}
	return author, nil
}

// Author lookup API JSON structures.
type authorResponse struct {
	Error   string         `json:"error"`
	Author  authorProfile  `json:"author"`
	CitedBy authorCitedBy  `json:"cited_by"`
}

type authorProfile struct {
	Name         string           `json:"name"`
	Affiliations string           `json:"affiliations"`
	Website      string           `json:"website"`
	Thumbnail    string           `json:"thumbnail"`
	Interests    []authorInterest `json:"interests"`
}

type authorInterest struct {
	Title string `json:"title"`
}

type authorCitedBy struct {
	Table []authorTableRow `json:"table"`
}

type authorTableRow struct {
	Citations *authorMetric `json:"citations,omitempty"`
	HIndex    *authorMetric `json:"h_index,omitempty"`
}

type authorMetric struct {
	All int `json:"all"`
}
