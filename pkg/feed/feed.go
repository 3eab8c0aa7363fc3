package feed

import (
	"fmt"
	"time"
)

// RawEntry is one entry pulled from a syndicated feed before it is mapped
// onto a NewsItem.
type RawEntry struct {
	Title       string
	Link        string
	PublishedAt time.Time
	Summary     string
	Author      string
	ImageURL    string
}

// FetchError wraps a per-source retrieval failure. It never aborts the other
// sources in a cycle; the aggregator records it on the source's result.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
