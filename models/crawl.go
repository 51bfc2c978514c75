package models

import "time"

// CrawledPage is one fetched page: the resolved URL and its raw HTML.
// Pages are collected in fetch-completion order, which is not reproducible
// across runs because concurrent fetches race.
type CrawledPage struct {
	URL  string
	HTML string
}

// CrawlRun is the ephemeral aggregate state of a single crawl. It lives for
// the duration of one report request and is never persisted.
type CrawlRun struct {
	Pages     []CrawledPage
	StartedAt time.Time
}

// PageCount returns the number of successfully fetched pages.
func (r *CrawlRun) PageCount() int {
	return len(r.Pages)
}
