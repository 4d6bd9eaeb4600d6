// Package pagination implements sequential collection of paged CRM listing
// endpoints.
//
// Freshworks listing responses carry a meta.total_pages field that is only
// known after a page has been fetched, so pages are walked one at a time:
// each continuation decision depends on the previous page's metadata, and
// prefetching in parallel would risk wasted requests past the true last page.
//
// Example usage:
//
//	fetch := func(ctx context.Context, pageNum int) (*pagination.Page, error) {
//		resp, err := svc.ListContacts(ctx, freshsales.ListOptions{Page: pageNum})
//		if err != nil {
//			return nil, err
//		}
//		return &pagination.Page{Items: resp.Contacts, Meta: resp.Meta}, nil
//	}
//	contacts, err := pagination.Collect(ctx, fetch, 100)
//
// The collector:
//   - Fetches pages starting at 1, accumulating items in fetch order
//   - Stops on an empty page, on page >= total_pages, or at maxPages
//   - Propagates fetch errors to the caller unchanged
package pagination
