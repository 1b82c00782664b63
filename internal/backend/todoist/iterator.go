package todoist

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"google.golang.org/api/iterator"
)

// Iterator yields the records of a cursor-paginated endpoint, fetching the
// next page only when the buffered records are used up. It is finite and
// can not be restarted. Next returns iterator.Done after the last record.
type Iterator[T any] struct {
	items    []T
	pageInfo *iterator.PageInfo
	nextFunc func() error
}

func newIterator[T any](ctx context.Context, c *Client, path string, query url.Values) *Iterator[T] {
	it := &Iterator[T]{}
	fetch := func(pageSize int, pageToken string) (string, error) {
		q := url.Values{}
		for k, v := range query {
			q[k] = v
		}
		if pageSize > 0 {
			q.Set("limit", strconv.Itoa(pageSize))
		}
		if pageToken != "" {
			q.Set("cursor", pageToken)
		}
		var p page[T]
		if err := c.get(ctx, path, q, &p); err != nil {
			return "", err
		}
		it.items = append(it.items, p.Results...)
		return deref(p.NextCursor), nil
	}
	it.pageInfo, it.nextFunc = iterator.NewPageInfo(fetch, it.bufLen, it.takeBuf)
	it.pageInfo.MaxSize = PageSize
	return it
}

// PageInfo supports pagination. See the google.golang.org/api/iterator package for details.
func (it *Iterator[T]) PageInfo() *iterator.PageInfo {
	return it.pageInfo
}

// Next returns the next record. Its second return value is iterator.Done if
// there are no more results.
func (it *Iterator[T]) Next() (T, error) {
	var zero T
	if err := it.nextFunc(); err != nil {
		return zero, err
	}
	item := it.items[0]
	it.items = it.items[1:]
	return item, nil
}

func (it *Iterator[T]) bufLen() int {
	return len(it.items)
}

func (it *Iterator[T]) takeBuf() interface{} {
	b := it.items
	it.items = nil
	return b
}

// collect exhausts the iterator into a slice, preserving order.
func collect[T any](it *Iterator[T]) ([]T, error) {
	var all []T
	for {
		item, err := it.Next()
		if errors.Is(err, iterator.Done) {
			return all, nil
		}
		if err != nil {
			return nil, err
		}
		all = append(all, item)
	}
}
