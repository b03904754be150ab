package crawler

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/pulse-cx/insight/internal/domain/reviews"
)

const naverMaxScrolls = 20

// JS evaluated in the page; innerText keeps the line structure the cleaner
// depends on, which serialized HTML does not.
const (
	jsFirstPlaceHref = `() => {
		const a = document.querySelector('a[href*="/place/"], a[href*="/restaurant/"]');
		return a ? a.getAttribute('href') : '';
	}`
	jsListItemTexts = `() => Array.from(document.querySelectorAll('ul > li')).map(el => el.innerText)`
)

// collectNaver pages through the Naver place visitor-review list.
func (c *Collector) collectNaver(ctx context.Context, query string) ([]reviews.Review, error) {
	page, err := c.browser.NewMobilePage()
	if err != nil {
		return nil, err
	}
	defer page.Close()

	searchURL := "https://m.map.naver.com/search2/search.naver?query=" + url.QueryEscape(query)
	if err := c.navigate(ctx, page, searchURL); err != nil {
		return nil, err
	}
	time.Sleep(2 * time.Second)

	// search may land on the place page directly, or on a result list
	placeID := ""
	if info, err := page.Context(ctx).Info(); err == nil {
		placeID = extractPlaceID(info.URL)
	}
	if placeID == "" {
		if res, err := page.Context(ctx).Eval(jsFirstPlaceHref); err == nil {
			placeID = extractPlaceID(res.Value.Str())
		}
	}
	if placeID == "" {
		return nil, fmt.Errorf("naver: place id not found for %q", query)
	}

	reviewURL := fmt.Sprintf("https://m.place.naver.com/restaurant/%s/review/visitor", placeID)
	log.Printf("naver: review page %s", reviewURL)
	if err := c.navigate(ctx, page, reviewURL); err != nil {
		return nil, err
	}
	time.Sleep(3 * time.Second)

	seen := reviews.NewSeenSet()
	var out []reviews.Review
	attempts, prev := 0, 0

	for len(out) < c.cfg.MaxReviews && attempts < naverMaxScrolls {
		res, err := page.Context(ctx).Eval(jsListItemTexts)
		if err != nil {
			return out, fmt.Errorf("naver: read review list: %w", err)
		}
		for _, item := range res.Value.Arr() {
			rev, ok := naverReviewFromItem(item.Str())
			if !ok || !seen.Add(rev.RawText) {
				continue
			}
			out = append(out, rev)
		}

		if len(out) == prev {
			attempts++
			if c.clickByText(ctx, page, "더보기") {
				time.Sleep(time.Second)
				attempts = 0
			}
		} else {
			attempts = 0
			prev = len(out)
		}

		c.scrollToBottom(ctx, page)
		time.Sleep(1500 * time.Millisecond)
	}

	if len(out) > c.cfg.MaxReviews {
		out = out[:c.cfg.MaxReviews]
	}
	log.Printf("naver: collected %d reviews", len(out))
	return out, nil
}
