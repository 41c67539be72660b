// Package pagination provides parallel batch fetching for paginated Strapi
// collections.
//
// Strapi reports the page count in meta.pagination.pageCount. The batch
// fetcher reads page 1 to learn it, then spreads the remaining pages across a
// small worker pool:
//
//	fetcher := pagination.NewBatchFetcher(strapiClient, pagination.DefaultConfig())
//	pages, err := fetcher.FetchAllPages(ctx, "articles")
//
// A failed page does not discard the others: the pages fetched so far are
// returned together with the error.
package pagination
