package reviews

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// noiseRule pairs a pattern with a description of the UI chrome it matches,
// so coverage can be tested rule by rule.
type noiseRule struct {
	re   *regexp.Regexp
	desc string
}

// noiseRules is the ordered table of platform UI metadata that leaks into
// scraped list-item text. A line matching any rule is dropped whole.
var noiseRules = []noiseRule{
	{regexp.MustCompile(`^리뷰\s+\d+`), "review count header"},
	{regexp.MustCompile(`^사진\s+\d+`), "photo count header"},
	{regexp.MustCompile(`팔로워?\s+\d+`), "follower count"},
	{regexp.MustCompile(`^\d+\s*팔로우`), "follow count"},
	{regexp.MustCompile(`방문일\s+\d+\.\d+\.`), "visit date"},
	{regexp.MustCompile(`\d{4}년\s+\d{1,2}월\s+\d{1,2}일`), "long-form date"},
	{regexp.MustCompile(`[일월화수목금토]요일`), "weekday"},
	{regexp.MustCompile(`\d+번째\s+방문`), "nth visit"},
	{regexp.MustCompile(`인증\s+수단`), "verification method"},
	{regexp.MustCompile(`영수증|결제내역`), "receipt/payment boilerplate"},
	{regexp.MustCompile(`더\s*보기`), "see-more button"},
	{regexp.MustCompile(`펼쳐보기`), "expand button"},
	{regexp.MustCompile(`반응\s+남기기`), "leave-reaction button"},
	{regexp.MustCompile(`개의\s+리뷰가\s+더\s+있습니다`), "more-reviews footer"},
	{regexp.MustCompile(`^\s*[+※]\d+\s*$`), "photo counter artifact"},
	{regexp.MustCompile(`예약\s+없이\s+이용`), "no-reservation tag"},
	{regexp.MustCompile(`대기\s+시간\s+바로\s+입장`), "no-wait tag"},
	{regexp.MustCompile(`[저점]심에?\s+방문`), "visit-time tag"},
	{regexp.MustCompile(`일상|친목|데이트|나들이`), "visit-purpose tag"},
	{regexp.MustCompile(`혼자|연인・배우자|친구|가족|아이`), "companion tag"},
	{regexp.MustCompile(`@\w+`), "social handle"},
}

// uiChips are short canned review phrases the platform renders as quoted
// keyword buttons rather than prose.
var uiChips = []string{
	"음식이 맛있어요",
	"매장이 청결해요",
	"친절해요",
	"가성비가 좋아요",
}

var (
	numericLine = regexp.MustCompile(`^\d+$`)
	symbolRuns  = regexp.MustCompile(`[+※~]{2,}`)
	spaceRuns   = regexp.MustCompile(`\s+`)
)

// Clean strips platform UI metadata from a raw multi-line review scrape and
// returns a single-line body. An empty result means no substantive content
// survived; the caller must discard the item, not treat it as a review.
func Clean(raw string) string {
	var kept []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if isNoise(line) {
			continue
		}
		if isQuotedChip(line) {
			continue
		}
		if numericLine.MatchString(line) {
			continue
		}
		if utf8.RuneCountInString(line) <= 3 {
			continue
		}
		kept = append(kept, line)
	}
	out := strings.Join(kept, " ")
	out = symbolRuns.ReplaceAllString(out, "")
	out = spaceRuns.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

func isNoise(line string) bool {
	for _, r := range noiseRules {
		if r.re.MatchString(line) {
			return true
		}
	}
	return false
}

func isQuotedChip(line string) bool {
	if !strings.HasPrefix(line, `"`) {
		return false
	}
	for _, chip := range uiChips {
		if strings.Contains(line, chip) {
			return true
		}
	}
	return false
}

// SeenSet tracks raw texts already collected within a single run. Dedup is
// per platform; runs never share a set.
type SeenSet map[string]struct{}

func NewSeenSet() SeenSet { return make(SeenSet) }

// Add records the raw text and reports whether it was new.
func (s SeenSet) Add(raw string) bool {
	if _, dup := s[raw]; dup {
		return false
	}
	s[raw] = struct{}{}
	return true
}
