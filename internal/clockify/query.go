package clockify

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// TimeLayout is the timestamp format Clockify accepts.
const TimeLayout = "2006-01-02T15:04:05Z"

// FormatTime renders t in UTC using TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// Query builds list/filter query strings. Zero values are skipped so that
// an unfiltered call sends no parameters at all.
type Query struct {
	values url.Values
}

// NewQuery returns an empty query.
func NewQuery() *Query {
	return &Query{values: url.Values{}}
}

// Set adds key=value unless value is blank.
func (q *Query) Set(key, value string) *Query {
	if strings.TrimSpace(value) != "" {
		q.values.Set(key, value)
	}
	return q
}

// SetInt adds key=n unless n is zero.
func (q *Query) SetInt(key string, n int) *Query {
	if n != 0 {
		q.values.Set(key, strconv.Itoa(n))
	}
	return q
}

// SetBool adds key=true|false unless b is nil.
func (q *Query) SetBool(key string, b *bool) *Query {
	if b != nil {
		q.values.Set(key, strconv.FormatBool(*b))
	}
	return q
}

// SetList adds key as a comma separated list unless items is empty.
func (q *Query) SetList(key string, items []string) *Query {
	kept := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			kept = append(kept, item)
		}
	}
	if len(kept) > 0 {
		q.values.Set(key, strings.Join(kept, ","))
	}
	return q
}

// Page passes page and page-size through unchanged.
func (q *Query) Page(page, pageSize int) *Query {
	return q.SetInt("page", page).SetInt("page-size", pageSize)
}

// Values returns the encoded parameters, or nil when nothing was set.
func (q *Query) Values() url.Values {
	if len(q.values) == 0 {
		return nil
	}
	return q.values
}
