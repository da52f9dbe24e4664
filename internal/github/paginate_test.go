package github

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// pagedFetch returns a PageFunc serving the given pages in order, keyed by
// the cursor chain "", "c1", "c2", ...
func pagedFetch(pages [][]int, failAt int) PageFunc[int] {
	return func(ctx context.Context, cursor string) (*Page[int], error) {
		index := 0
		if cursor != "" {
			fmt.Sscanf(cursor, "c%d", &index)
		}
		if failAt >= 0 && index == failAt {
			return nil, ErrServer(500, "boom")
		}
		page := &Page[int]{Records: pages[index]}
		if index < len(pages)-1 {
			page.NextCursor = fmt.Sprintf("c%d", index+1)
		}
		return page, nil
	}
}

func TestCollectAllExhaustsResource(t *testing.T) {
	pages := [][]int{{1, 2}, {3, 4}, {5}}
	col := CollectAll(context.Background(), pagedFetch(pages, -1), 100)

	if col.Err != nil {
		t.Fatalf("unexpected error: %v", col.Err)
	}
	if !col.Exhaustive {
		t.Error("expected collection to be exhaustive")
	}
	if col.Pages != 3 {
		t.Errorf("expected 3 pages, got %d", col.Pages)
	}
	want := []int{1, 2, 3, 4, 5}
	if len(col.Items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(col.Items))
	}
	for i, v := range want {
		if col.Items[i] != v {
			t.Errorf("item %d: expected %d, got %d", i, v, col.Items[i])
		}
	}
}

func TestCollectAllKeepsRecordsOnMidPaginationFailure(t *testing.T) {
	pages := [][]int{{1, 2}, {3, 4}, {5, 6}}
	col := CollectAll(context.Background(), pagedFetch(pages, 2), 100)

	if col.Err == nil {
		t.Fatal("expected the page-3 error to be attached")
	}
	var apiErr *APIError
	if !errors.As(col.Err, &apiErr) || apiErr.Kind != KindServerError {
		t.Errorf("expected a server error, got %v", col.Err)
	}
	if col.Exhaustive {
		t.Error("failed collection must not be exhaustive")
	}
	if col.Pages != 2 {
		t.Errorf("expected 2 pages gathered, got %d", col.Pages)
	}
	want := []int{1, 2, 3, 4}
	if len(col.Items) != len(want) {
		t.Fatalf("expected %d items retained, got %d", len(want), len(col.Items))
	}
	for i, v := range want {
		if col.Items[i] != v {
			t.Errorf("item %d: expected %d, got %d", i, v, col.Items[i])
		}
	}
}

func TestCollectAllStopsAtPageCeiling(t *testing.T) {
	// Every page advertises a next cursor.
	endless := func(ctx context.Context, cursor string) (*Page[int], error) {
		return &Page[int]{Records: []int{1}, NextCursor: "more"}, nil
	}

	col := CollectAll(context.Background(), endless, 5)

	if col.Err != nil {
		t.Fatalf("hitting the ceiling must not be an error, got %v", col.Err)
	}
	if col.Exhaustive {
		t.Error("truncated collection must not be exhaustive")
	}
	if col.Pages != 5 {
		t.Errorf("expected exactly 5 pages, got %d", col.Pages)
	}
	if len(col.Items) != 5 {
		t.Errorf("expected 5 items, got %d", len(col.Items))
	}
}

func TestCollectAllSinglePage(t *testing.T) {
	col := CollectAll(context.Background(), pagedFetch([][]int{{7}}, -1), 100)

	if !col.Exhaustive || col.Pages != 1 || len(col.Items) != 1 {
		t.Errorf("expected one exhaustive page, got pages=%d items=%d exhaustive=%v",
			col.Pages, len(col.Items), col.Exhaustive)
	}
}

func TestCollectAllFirstPageFailure(t *testing.T) {
	col := CollectAll(context.Background(), pagedFetch([][]int{{1}}, 0), 100)

	if col.Err == nil {
		t.Fatal("expected the first-page error to be attached")
	}
	if len(col.Items) != 0 || col.Pages != 0 {
		t.Errorf("expected no items, got %d items over %d pages", len(col.Items), col.Pages)
	}
}
