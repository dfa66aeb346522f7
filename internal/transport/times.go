package transport

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/zeity-dev/zeity/internal/domain/times"
)

// TimeListOptions filter a time listing.
type TimeListOptions struct {
	Offset int
	Limit  int

	OrganisationMemberID []string
	ProjectID            []string
	RangeStart           time.Time
	RangeEnd             time.Time
}

func (o TimeListOptions) query() url.Values {
	q := url.Values{}
	if o.Offset > 0 {
		q.Set("offset", strconv.Itoa(o.Offset))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	appendEach(q, "organisationMemberId", o.OrganisationMemberID)
	appendEach(q, "projectId", o.ProjectID)
	if !o.RangeStart.IsZero() {
		q.Set("rangeStart", o.RangeStart.Format(time.RFC3339))
	}
	if !o.RangeEnd.IsZero() {
		q.Set("rangeEnd", o.RangeEnd.Format(time.RFC3339))
	}
	return q
}

// ListTimes fetches a page of time entries.
func (c *Client) ListTimes(ctx context.Context, opts TimeListOptions) ([]times.Time, error) {
	var out []times.Time
	if err := c.do(ctx, http.MethodGet, "/api/times", opts.query(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTime fetches a single time entry.
func (c *Client) GetTime(ctx context.Context, id string) (times.Time, error) {
	var out times.Time
	if err := c.do(ctx, http.MethodGet, "/api/times/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return times.Time{}, err
	}
	return out, nil
}

// CreateTime posts a new entry. The id in the response is the
// server-assigned one and is authoritative.
func (c *Client) CreateTime(ctx context.Context, entry times.Time) (times.Time, error) {
	var out times.Time
	if err := c.do(ctx, http.MethodPost, "/api/times", nil, entry, &out); err != nil {
		return times.Time{}, err
	}
	return out, nil
}

// UpdateTime patches an existing entry and returns the server's copy.
func (c *Client) UpdateTime(ctx context.Context, id string, patch times.Patch) (times.Time, error) {
	var out times.Time
	if err := c.do(ctx, http.MethodPatch, "/api/times/"+url.PathEscape(id), nil, patch, &out); err != nil {
		return times.Time{}, err
	}
	return out, nil
}

// DeleteTime removes an entry on the server.
func (c *Client) DeleteTime(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/times/"+url.PathEscape(id), nil, nil, nil)
}
