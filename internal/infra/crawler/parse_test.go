package crawler

import (
	"testing"

	"github.com/pulse-cx/insight/internal/domain/reviews"
)

func TestExtractPlaceID(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://m.place.naver.com/restaurant/12345/review/visitor", "12345"},
		{"https://m.place.naver.com/place/987", "987"},
		{"/restaurant/555?entry=pll", "555"},
		{"https://m.map.naver.com/search2/search.naver?query=x", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := extractPlaceID(tc.in); got != tc.want {
			t.Errorf("extractPlaceID(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestExtractRatingAndDate(t *testing.T) {
	text := "리뷰 3\n5점 만점에 5점\n방문일 2024.3.15"
	if got := extractRating(text); got != 5 {
		t.Errorf("extractRating = %d, want 5", got)
	}
	if got := extractDate(text); got != "2024.3.15" {
		t.Errorf("extractDate = %q, want 2024.3.15", got)
	}
	if got := extractRating("별점 없음"); got != 0 {
		t.Errorf("extractRating no marker = %d, want 0", got)
	}
}

func TestNaverReviewFromItem(t *testing.T) {
	raw := "리뷰 56\n사진 164\n맛있어요 국물이 진해서 해장에 최고예요\n팔로워 3\n방문일 2024.3.15.\n5점"
	rev, ok := naverReviewFromItem(raw)
	if !ok {
		t.Fatal("expected a review")
	}
	if rev.Text != "맛있어요 국물이 진해서 해장에 최고예요" {
		t.Errorf("cleaned text = %q", rev.Text)
	}
	if rev.Rating != 5 {
		t.Errorf("rating = %d, want 5", rev.Rating)
	}
	if rev.Date != "2024.3.15" {
		t.Errorf("date = %q", rev.Date)
	}
	if rev.Source != reviews.SourceNaver || rev.Topic != reviews.TopicUnclustered {
		t.Errorf("review = %+v", rev)
	}

	// UI chrome items are rejected
	if _, ok := naverReviewFromItem("더보기"); ok {
		t.Error("short chrome item must be rejected")
	}
	if _, ok := naverReviewFromItem("리뷰 56\n사진 164\n팔로워 3\n영수증 결제내역 더보기"); ok {
		t.Error("noise-only item must be rejected")
	}
}

const kakaoListHTML = `
<html><body>
<ul class="list_review">
  <li>
    <div class="starred_grade"><span class="screen_out">별점</span><span class="screen_out">5.0</span></div>
    <p class="desc_review">국물이 진하고 양도 푸짐해요 더보기</p>
    <span class="txt_date">2024.03.15.</span>
  </li>
  <li>
    <div class="starred_grade"><span class="screen_out">별점</span><span class="screen_out">3.0</span></div>
    <p class="desc_review">보통이에요</p>
    <span class="txt_date">2024.02.01.</span>
  </li>
  <li>
    <p class="desc_review"></p>
  </li>
</ul>
</body></html>`

func TestParseKakaoReviews(t *testing.T) {
	revs, err := parseKakaoReviews(kakaoListHTML)
	if err != nil {
		t.Fatalf("parseKakaoReviews: %v", err)
	}
	if len(revs) != 2 {
		t.Fatalf("reviews = %d, want 2 (empty body skipped)", len(revs))
	}
	if revs[0].Text != "국물이 진하고 양도 푸짐해요" {
		t.Errorf("text = %q, want trailing 더보기 stripped", revs[0].Text)
	}
	if revs[0].Rating != 5 || revs[1].Rating != 3 {
		t.Errorf("ratings = %d,%d, want 5,3", revs[0].Rating, revs[1].Rating)
	}
	if revs[0].Date != "2024.03.15." {
		t.Errorf("date = %q", revs[0].Date)
	}
	if revs[0].Source != reviews.SourceKakao {
		t.Errorf("source = %q", revs[0].Source)
	}
}

// Same raw text twice in one run yields exactly one review.
func TestSeenSetDedupAcrossBatches(t *testing.T) {
	seen := reviews.NewSeenSet()
	revs, _ := parseKakaoReviews(kakaoListHTML)

	var out []reviews.Review
	for i := 0; i < 2; i++ { // two scroll iterations seeing the same list
		for _, r := range revs {
			if seen.Add(r.RawText) {
				out = append(out, r)
			}
		}
	}
	if len(out) != 2 {
		t.Errorf("deduped reviews = %d, want 2", len(out))
	}
}
