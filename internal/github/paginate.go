package github

import "context"

// PageFunc fetches one page of a resource. A zero cursor requests the first
// page; the returned cursor selects the following page and is empty once the
// resource is exhausted.
type PageFunc[T any] func(ctx context.Context, cursor string) (*Page[T], error)

// Collection is the flattened result of paginating one resource.
type Collection[T any] struct {
	// Items holds every record gathered, in upstream order.
	Items []T
	// Exhaustive is true when pagination ran to natural completion rather
	// than being cut short by an error or the page ceiling.
	Exhaustive bool
	// Pages counts the pages successfully fetched.
	Pages int
	// Err is the failure that interrupted pagination, if any. Items fetched
	// before the failure are retained.
	Err error
}

// CollectAll drives fetch until the resource is exhausted, an error occurs,
// or maxPages pages have been fetched. Records gathered before a failure are
// never discarded. Hitting the page ceiling is not an error; it only marks
// the collection as non-exhaustive.
func CollectAll[T any](ctx context.Context, fetch PageFunc[T], maxPages int) Collection[T] {
	var col Collection[T]
	cursor := ""

	for {
		page, err := fetch(ctx, cursor)
		if err != nil {
			col.Err = err
			return col
		}

		col.Items = append(col.Items, page.Records...)
		col.Pages++

		if page.NextCursor == "" {
			col.Exhaustive = true
			return col
		}
		if col.Pages >= maxPages {
			return col
		}
		cursor = page.NextCursor
	}
}
