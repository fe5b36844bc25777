package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

// encode renders the query as the table surface's URL parameters: column
// projection via select, equality filters as col=eq.value, ordering as
// order=col.asc|desc.
func (q Query) encode() url.Values {
	v := url.Values{}
	if len(q.Columns) > 0 {
		v.Set("select", strings.Join(q.Columns, ","))
	} else {
		v.Set("select", "*")
	}
	for _, f := range q.Filters {
		v.Set(f.Column, "eq."+f.Value)
	}
	if q.OrderBy != "" {
		dir := ".asc"
		if q.Descending {
			dir = ".desc"
		}
		v.Set("order", q.OrderBy+dir)
	}
	return v
}

// Select lists rows of the named table matching the query.
func (c *RestClient) Select(ctx context.Context, table string, q Query) ([]json.RawMessage, error) {
	var rows []json.RawMessage
	err := c.do(ctx, restRequest{
		method: http.MethodGet,
		path:   "/rest/v1/" + table,
		query:  q.encode(),
		authed: true,
	}, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Insert adds one row and returns the representation the backend stored,
// server-assigned columns included.
func (c *RestClient) Insert(ctx context.Context, table string, row any) ([]json.RawMessage, error) {
	var rows []json.RawMessage
	err := c.do(ctx, restRequest{
		method: http.MethodPost,
		path:   "/rest/v1/" + table,
		body:   row,
		prefer: "return=representation",
		authed: true,
	}, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Update patches every row matching the query's filters and returns the
// updated representations.
func (c *RestClient) Update(ctx context.Context, table string, q Query, patch any) ([]json.RawMessage, error) {
	var rows []json.RawMessage
	err := c.do(ctx, restRequest{
		method: http.MethodPatch,
		path:   "/rest/v1/" + table,
		query:  q.encode(),
		body:   patch,
		prefer: "return=representation",
		authed: true,
	}, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Delete removes every row matching the query's filters.
func (c *RestClient) Delete(ctx context.Context, table string, q Query) error {
	return c.do(ctx, restRequest{
		method: http.MethodDelete,
		path:   "/rest/v1/" + table,
		query:  q.encode(),
		authed: true,
	}, nil)
}
