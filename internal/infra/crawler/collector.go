package crawler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"

	"github.com/pulse-cx/insight/internal/domain/reviews"
)

// Config bounds one collection run.
type Config struct {
	MaxReviews int           // per platform
	NavTimeout time.Duration // per navigation
}

func (c *Config) defaults() {
	if c.MaxReviews <= 0 {
		c.MaxReviews = 50
	}
	if c.NavTimeout <= 0 {
		c.NavTimeout = 30 * time.Second
	}
}

// Collector implements reviews.Collector over a shared Browser. Both
// platforms are scraped concurrently; a platform failure is logged and
// tolerated so the other platform's reviews still count.
type Collector struct {
	browser *Browser
	cfg     Config
}

func NewCollector(b *Browser, cfg Config) *Collector {
	cfg.defaults()
	return &Collector{browser: b, cfg: cfg}
}

func (c *Collector) Collect(ctx context.Context, storeName, address string) ([]reviews.Review, error) {
	query := strings.TrimSpace(address + " " + storeName)
	log.Printf("crawler: collecting reviews for %q", query)

	var (
		wg           sync.WaitGroup
		naver, kakao []reviews.Review
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		revs, err := c.collectNaver(ctx, query)
		if err != nil {
			log.Printf("crawler: naver failed: %v", err)
			return
		}
		naver = revs
	}()
	go func() {
		defer wg.Done()
		revs, err := c.collectKakao(ctx, query)
		if err != nil {
			log.Printf("crawler: kakao failed: %v", err)
			return
		}
		kakao = revs
	}()
	wg.Wait()

	log.Printf("crawler: total=%d naver=%d kakao=%d", len(naver)+len(kakao), len(naver), len(kakao))
	return append(naver, kakao...), nil
}

// navigate goes to the URL under the per-navigation timeout. A slow load is
// tolerated; only navigation itself is fatal.
func (c *Collector) navigate(ctx context.Context, page *rod.Page, u string) error {
	navCtx, cancel := context.WithTimeout(ctx, c.cfg.NavTimeout)
	defer cancel()
	if err := page.Context(navCtx).Navigate(u); err != nil {
		return fmt.Errorf("navigate %s: %w", u, err)
	}
	if err := page.Context(navCtx).WaitLoad(); err != nil {
		log.Printf("crawler: wait load timeout url=%s: %v", u, err)
	}
	return nil
}

// clickByText clicks the first anchor or button whose text contains the
// label, reporting whether anything was clicked.
func (c *Collector) clickByText(ctx context.Context, page *rod.Page, label string) bool {
	js := `(label) => {
		const els = Array.from(document.querySelectorAll('a, button'));
		const el = els.find(e => e.textContent.trim().includes(label));
		if (el) { el.click(); return true; }
		return false;
	}`
	res, err := page.Context(ctx).Eval(js, label)
	if err != nil {
		return false
	}
	return res.Value.Bool()
}

func (c *Collector) scrollToBottom(ctx context.Context, page *rod.Page) {
	if _, err := page.Context(ctx).Eval(`() => window.scrollTo(0, document.body.scrollHeight)`); err != nil {
		log.Printf("crawler: scroll failed: %v", err)
	}
}
