package pagination

import (
	"net/url"
	"strconv"
)

const DefaultPerPage = 10

// Page is a 1-based page request.
type Page struct {
	Number  int
	PerPage int
}

// NewPage normalizes a page request: page < 1 becomes 1, perPage < 1 becomes
// DefaultPerPage.
func NewPage(number, perPage int) Page {
	if number < 1 {
		number = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	return Page{Number: number, PerPage: perPage}
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}

func (p Page) Limit() int {
	return p.PerPage
}

// Meta is the pagination block attached to list responses.
type Meta struct {
	Total       int     `json:"total"`
	CurrentPage int     `json:"current_page"`
	LastPage    int     `json:"last_page"`
	PerPage     int     `json:"per_page"`
	From        *int    `json:"from"`
	To          *int    `json:"to"`
	NextPageURL *string `json:"next_page_url"`
	PrevPageURL *string `json:"prev_page_url"`
	Path        string  `json:"path"`
}

// NewMeta describes page p of a result set with total items. itemCount is
// the number of items actually returned for the page. base is the request
// URL; its query string is preserved in the next/prev links.
func NewMeta(p Page, total, itemCount int, base *url.URL) Meta {
	lastPage := 1
	if total > 0 {
		lastPage = (total + p.PerPage - 1) / p.PerPage
	}

	m := Meta{
		Total:       total,
		CurrentPage: p.Number,
		LastPage:    lastPage,
		PerPage:     p.PerPage,
		Path:        pathOf(base),
	}

	if itemCount > 0 {
		from := p.Offset() + 1
		to := p.Offset() + itemCount
		m.From, m.To = &from, &to
	}
	if p.Number < lastPage {
		next := pageURL(base, p.Number+1)
		m.NextPageURL = &next
	}
	if p.Number > 1 {
		prev := pageURL(base, min(p.Number-1, lastPage))
		m.PrevPageURL = &prev
	}
	return m
}

func pathOf(base *url.URL) string {
	if base == nil {
		return ""
	}
	u := *base
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

func pageURL(base *url.URL, page int) string {
	if base == nil {
		return "?page=" + strconv.Itoa(page)
	}
	u := *base
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	u.Fragment = ""
	return u.String()
}
