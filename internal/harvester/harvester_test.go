package harvester

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"sirescan/internal/config"
	"sirescan/internal/extractor"
	"sirescan/internal/model"
)

// fakeFetcher serves canned bodies by URL and records the visit order.
// URLs absent from the map fail, modeling a page the fetcher gave up on.
type fakeFetcher struct {
	pages  map[string]string
	visits []string
	pauses int
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.visits = append(f.visits, url)
	body, ok := f.pages[url]
	if !ok {
		return "", errors.New("unreachable page")
	}
	return body, nil
}

func (f *fakeFetcher) Pause(_ context.Context) error {
	f.pauses++
	return nil
}

// newTestHarvester wires a fake fetcher and a real extractor over a small
// page-year range.
func newTestHarvester(pages map[string]string, first, last int) (*Harvester, *fakeFetcher) {
	cfg := config.New()
	cfg.BaseURL = "http://test.local/stallion-register"
	cfg.FirstPageYear = first
	cfg.LastPageYear = last

	f := &fakeFetcher{pages: pages}
	return New(f, extractor.New(cfg), cfg, nil), f
}

func pageURL(year int) string {
	return fmt.Sprintf("http://test.local/stallion-register/stallions/123456/test-horse/auctions/%d", year)
}

var testEntity = model.ResolvedEntity{ID: "123456", Slug: "test-horse"}

func TestHarvest(t *testing.T) {
	t.Parallel()

	t.Run("earlier page wins a contested fact-year", func(t *testing.T) {
		t.Parallel()

		pages := map[string]string{
			pageURL(2015): "Weanlings 2015 Stud Fee $15,000",
			pageURL(2016): "Weanlings 2015 Stud Fee $16,000 and 2016 Stud Fee $20,000",
		}
		h, _ := newTestHarvester(pages, 2015, 2016)

		res, err := h.Harvest(context.Background(), testEntity)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		rows := res.Table.Rows()
		want := []model.FactRow{{Year: 2015, Amount: 15000}, {Year: 2016, Amount: 20000}}
		if len(rows) != len(want) {
			t.Fatalf("expected %d rows, got %d", len(want), len(rows))
		}
		for i, w := range want {
			if rows[i] != w {
				t.Errorf("row %d: expected %+v, got %+v", i, w, rows[i])
			}
		}
	})

	t.Run("visits every page-year inclusive and ascending", func(t *testing.T) {
		t.Parallel()

		pages := map[string]string{
			pageURL(2014): "",
			pageURL(2015): "",
			pageURL(2016): "",
		}
		h, f := newTestHarvester(pages, 2014, 2016)

		if _, err := h.Harvest(context.Background(), testEntity); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{pageURL(2014), pageURL(2015), pageURL(2016)}
		if len(f.visits) != len(want) {
			t.Fatalf("expected %d visits, got %d", len(want), len(f.visits))
		}
		for i, w := range want {
			if f.visits[i] != w {
				t.Errorf("visit %d: expected %s, got %s", i, w, f.visits[i])
			}
		}
	})

	t.Run("failed page contributes nothing and the crawl continues", func(t *testing.T) {
		t.Parallel()

		pages := map[string]string{
			pageURL(2015): "Weanlings 2015 Stud Fee $15,000",
			// 2016 missing: fetch fails
			pageURL(2017): "Weanlings 2017 Stud Fee $25,000",
		}
		h, _ := newTestHarvester(pages, 2015, 2017)

		res, err := h.Harvest(context.Background(), testEntity)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.PagesFetched != 2 || res.PagesFailed != 1 {
			t.Errorf("expected 2 fetched / 1 failed, got %d / %d",
				res.PagesFetched, res.PagesFailed)
		}
		if res.Table.Len() != 2 {
			t.Errorf("expected 2 fact rows, got %d", res.Table.Len())
		}
	})

	t.Run("pauses between pages but not after the last", func(t *testing.T) {
		t.Parallel()

		pages := map[string]string{
			pageURL(2015): "",
			pageURL(2016): "",
			pageURL(2017): "",
		}
		h, f := newTestHarvester(pages, 2015, 2017)

		if _, err := h.Harvest(context.Background(), testEntity); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.pauses != 2 {
			t.Errorf("expected 2 pauses for 3 pages, got %d", f.pauses)
		}
	})

	t.Run("single-year range fetches one page", func(t *testing.T) {
		t.Parallel()

		pages := map[string]string{pageURL(2015): "Weanlings 2015 Stud Fee $15,000"}
		h, f := newTestHarvester(pages, 2015, 2015)

		res, err := h.Harvest(context.Background(), testEntity)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(f.visits) != 1 || res.PagesFetched != 1 {
			t.Errorf("expected exactly one fetch, got %d visits", len(f.visits))
		}
		if f.pauses != 0 {
			t.Errorf("expected no pause for a single page, got %d", f.pauses)
		}
	})

	t.Run("page-year and fact-year are independent", func(t *testing.T) {
		t.Parallel()

		// The 2015 page asserts a fee for 2019.
		pages := map[string]string{
			pageURL(2015): "Weanlings 2019 Stud Fee $35,000",
			pageURL(2016): "Weanlings 2016 Stud Fee $20,000",
		}
		h, _ := newTestHarvester(pages, 2015, 2016)

		res, err := h.Harvest(context.Background(), testEntity)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		rows := res.Table.Rows()
		if len(rows) != 2 || rows[0].Year != 2016 || rows[1].Year != 2019 {
			t.Errorf("unexpected rows %+v", rows)
		}
	})

	t.Run("cancelled context stops the crawl", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		h, f := newTestHarvester(map[string]string{}, 2015, 2017)
		_, err := h.Harvest(ctx, testEntity)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if len(f.visits) != 0 {
			t.Errorf("expected no fetches after cancellation, got %d", len(f.visits))
		}
	})
}

func TestPageURL(t *testing.T) {
	t.Parallel()

	h, _ := newTestHarvester(nil, 2015, 2015)
	got := h.pageURL(testEntity, 2020)
	if !strings.HasSuffix(got, "/stallions/123456/test-horse/auctions/2020") {
		t.Errorf("unexpected page URL %q", got)
	}
}
