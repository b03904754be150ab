package crawler

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/pulse-cx/insight/internal/domain/reviews"
)

const kakaoMaxScrolls = 15

const (
	jsFirstDataID = `() => {
		const li = document.querySelector('li[data-id]');
		return li ? li.getAttribute('data-id') : '';
	}`
	// expand collapsed review bodies before snapshotting the list
	jsExpandReviews = `() => {
		document.querySelectorAll('p.desc_review .btn_more').forEach(b => b.click());
		return true;
	}`
)

// collectKakao pages through the Kakao place review list.
func (c *Collector) collectKakao(ctx context.Context, query string) ([]reviews.Review, error) {
	page, err := c.browser.NewMobilePage()
	if err != nil {
		return nil, err
	}
	defer page.Close()

	searchURL := "https://m.map.kakao.com/actions/searchView?q=" + url.QueryEscape(query)
	if err := c.navigate(ctx, page, searchURL); err != nil {
		return nil, err
	}
	time.Sleep(2 * time.Second)

	dataID := ""
	if res, err := page.Context(ctx).Eval(jsFirstDataID); err == nil {
		dataID = res.Value.Str()
	}
	if dataID == "" {
		return nil, fmt.Errorf("kakao: no search results for %q", query)
	}

	reviewURL := fmt.Sprintf("https://place.map.kakao.com/%s#review", dataID)
	log.Printf("kakao: review page %s", reviewURL)
	if err := c.navigate(ctx, page, reviewURL); err != nil {
		return nil, err
	}
	time.Sleep(3 * time.Second)

	seen := reviews.NewSeenSet()
	var out []reviews.Review
	attempts, prev := 0, 0

	for len(out) < c.cfg.MaxReviews && attempts < kakaoMaxScrolls {
		if _, err := page.Context(ctx).Eval(jsExpandReviews); err != nil {
			log.Printf("kakao: expand reviews: %v", err)
		}
		html, err := page.Context(ctx).HTML()
		if err != nil {
			return out, fmt.Errorf("kakao: read page: %w", err)
		}
		parsed, err := parseKakaoReviews(html)
		if err != nil {
			return out, fmt.Errorf("kakao: parse review list: %w", err)
		}
		for _, rev := range parsed {
			if !seen.Add(rev.RawText) {
				continue
			}
			out = append(out, rev)
		}

		if len(out) == prev {
			attempts++
			if c.clickByText(ctx, page, "후기 더보기") {
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
	log.Printf("kakao: collected %d reviews", len(out))
	return out, nil
}
