package api

import (
	"net/url"
	"strconv"
	"time"
)

// queryDateLayout is the wire format for date-range filter bounds.
const queryDateLayout = "2006-01-02"

// PageParams is page/limit paging for the sample and product generations.
type PageParams struct {
	Page  int
	Limit int
}

// Values encodes the paging parameters, defaulting page to 1.
func (p PageParams) Values() url.Values {
	v := url.Values{}
	page := p.Page
	if page <= 0 {
		page = 1
	}
	v.Set("page", strconv.Itoa(page))
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	return v
}

// SkipParams is skip/limit paging for the inventory generation.
type SkipParams struct {
	Skip  int
	Limit int
}

// Values encodes the paging parameters.
func (p SkipParams) Values() url.Values {
	v := url.Values{}
	v.Set("skip", strconv.Itoa(max(p.Skip, 0)))
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	return v
}

// AddMulti appends one query parameter per value under the same key, the
// repeated-key encoding the backend expects for multi-select filters
// (status=A&status=B, never a comma-joined value).
func AddMulti(v url.Values, key string, values []string) {
	for _, val := range values {
		v.Add(key, val)
	}
}

// AddSearch sets the free-text search parameter when non-empty.
func AddSearch(v url.Values, search string) {
	if search != "" {
		v.Set("search", search)
	}
}

// AddDateRange sets created_from/created_to bounds when present.
func AddDateRange(v url.Values, from, to *time.Time) {
	if from != nil {
		v.Set("created_from", from.Format(queryDateLayout))
	}
	if to != nil {
		v.Set("created_to", to.Format(queryDateLayout))
	}
}
