package strapi

import (
	"context"
	"fmt"
	"sort"

	"github.com/Sternrassler/strapi-client/pkg/content"
	"github.com/Sternrassler/strapi-client/pkg/pagination"
)

// Find queries a collection and decodes its entities.
func Find[T any](ctx context.Context, c *Client, endpoint string, opts Options) (*content.Response[[]content.Entity[T]], error) {
	body, err := c.Raw(ctx, endpoint, opts)
	if err != nil {
		return nil, err
	}
	return decode[[]content.Entity[T]](endpoint, body)
}

// FindFirst returns the first entity matching opts, or nil when none does.
// Uniqueness is not enforced: with several matches the first one in sort
// order wins.
func FindFirst[T any](ctx context.Context, c *Client, endpoint string, opts Options) (*content.Entity[T], error) {
	resp, err := Find[T](ctx, c, endpoint, opts)
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, nil
	}
	first := resp.Data[0]
	return &first, nil
}

// FindSingle queries a single type (one record, no list).
func FindSingle[T any](ctx context.Context, c *Client, endpoint string, opts Options) (*content.Response[*content.Entity[T]], error) {
	body, err := c.Raw(ctx, endpoint, opts)
	if err != nil {
		return nil, err
	}
	return decode[*content.Entity[T]](endpoint, body)
}

// FindAll walks every page of a collection in parallel and returns the
// entities in page order. opts.Pagination.PageSize is honored; Page is
// ignored.
func FindAll[T any](ctx context.Context, c *Client, endpoint string, opts Options, cfg pagination.Config) ([]content.Entity[T], error) {
	fetcher := pagination.NewBatchFetcher(&optionsFetcher{client: c, opts: opts}, cfg)

	pages, fetchErr := fetcher.FetchAllPages(ctx, endpoint)
	if len(pages) == 0 {
		return nil, fetchErr
	}

	nums := make([]int, 0, len(pages))
	for n := range pages {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	var all []content.Entity[T]
	for _, n := range nums {
		resp, err := decode[[]content.Entity[T]](endpoint, pages[n])
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", n, err)
		}
		all = append(all, resp.Data...)
	}
	return all, fetchErr
}

// optionsFetcher binds query options to page fetches.
type optionsFetcher struct {
	client *Client
	opts   Options
}

func (f *optionsFetcher) FetchPage(ctx context.Context, endpoint string, pageNum int) ([]byte, int, error) {
	return f.client.fetchPage(ctx, endpoint, f.opts, pageNum)
}
