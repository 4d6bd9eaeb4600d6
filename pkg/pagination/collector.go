package pagination

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"
)

// Page is one fetch result from a paged listing endpoint.
type Page struct {
	// Items are the records on this page, in API order.
	Items []map[string]any

	// Meta is the raw pagination metadata block of the response.
	Meta map[string]any
}

// TotalPages reads total_pages from the page metadata.
// Absent or non-numeric metadata defaults to 1.
func (p *Page) TotalPages() int {
	v, ok := p.Meta["total_pages"]
	if !ok {
		return 1
	}

	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 1
		}
		return int(i)
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	default:
		return 1
	}
}

// FetchFunc fetches a single page of a listing. Implementations perform the
// authenticated HTTP GET and decode the response into a Page. Any error
// aborts the collection and reaches the caller unchanged; cancellation is
// the fetcher's responsibility.
type FetchFunc func(ctx context.Context, pageNum int) (*Page, error)

// Collect walks a paged listing to completion and returns the concatenation
// of all pages' items in fetch order. Duplicates across overlapping pages
// are not removed.
//
// Termination:
//   - an empty page signals end of data regardless of metadata
//   - page >= total_pages (total_pages <= 0 stops after the current page)
//   - maxPages reached: stop silently, the caller gets partial data
//
// Collect with maxPages = 0 returns an empty result without fetching.
func Collect(ctx context.Context, fetch FetchFunc, maxPages int) ([]map[string]any, error) {
	var items []map[string]any

	for pageNum := 1; pageNum <= maxPages; pageNum++ {
		page, err := fetch(ctx, pageNum)
		if err != nil {
			return nil, err
		}

		if len(page.Items) == 0 {
			break
		}

		items = append(items, page.Items...)

		totalPages := page.TotalPages()
		log.Debug().
			Int("page", pageNum).
			Int("total_pages", totalPages).
			Int("items", len(items)).
			Msg("Page collected")

		if pageNum >= totalPages {
			break
		}
	}

	return items, nil
}
