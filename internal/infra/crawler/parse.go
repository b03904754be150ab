package crawler

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/pulse-cx/insight/internal/domain/reviews"
)

var (
	placeIDRe = regexp.MustCompile(`/(?:restaurant|place)/(\d+)`)
	ratingRe  = regexp.MustCompile(`([1-5])(점|개)`)
	dateRe    = regexp.MustCompile(`(\d{4}\.\d{1,2}\.\d{1,2})`)
)

// extractPlaceID pulls the numeric place id out of a Naver place or
// restaurant URL (or href); empty when absent.
func extractPlaceID(u string) string {
	m := placeIDRe.FindStringSubmatch(u)
	if m == nil {
		return ""
	}
	return m[1]
}

// extractRating finds a 1-5 rating marker in raw list-item text; 0 when the
// item carries none.
func extractRating(text string) int {
	m := ratingRe.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// extractDate finds the first yyyy.m.d date in raw list-item text.
func extractDate(text string) string {
	m := dateRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

// naverReviewFromItem turns one list-item innerText into a Review. The
// second return is false when the item is UI chrome rather than a review:
// too short raw text, or nothing substantive left after cleaning.
func naverReviewFromItem(raw string) (reviews.Review, bool) {
	raw = strings.TrimSpace(raw)
	if utf8.RuneCountInString(raw) <= 10 {
		return reviews.Review{}, false
	}
	cleaned := reviews.Clean(raw)
	if utf8.RuneCountInString(cleaned) < 5 {
		return reviews.Review{}, false
	}
	return reviews.Review{
		RawText: raw,
		Text:    cleaned,
		Rating:  extractRating(raw),
		Date:    extractDate(raw),
		Source:  reviews.SourceNaver,
		Topic:   reviews.TopicUnclustered,
	}, true
}

// parseKakaoReviews extracts reviews from a snapshot of the Kakao place
// review list. Kakao review bodies are already clean prose, so the raw and
// cleaned texts coincide.
func parseKakaoReviews(html string) ([]reviews.Review, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var out []reviews.Review
	doc.Find("ul.list_review > li").Each(func(_ int, li *goquery.Selection) {
		text := li.Find("p.desc_review").First().Text()
		text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "더보기"))
		if text == "" {
			return
		}

		rating := 0
		li.Find(".starred_grade .screen_out").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			v := strings.TrimSpace(s.Text())
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				rating = int(f)
				return false
			}
			return true
		})

		date := strings.TrimSpace(li.Find(".txt_date").First().Text())

		out = append(out, reviews.Review{
			RawText: text,
			Text:    text,
			Rating:  rating,
			Date:    date,
			Source:  reviews.SourceKakao,
			Topic:   reviews.TopicUnclustered,
		})
	})
	return out, nil
}
