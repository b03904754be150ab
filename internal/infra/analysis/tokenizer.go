package analysis

import (
	"regexp"
	"unicode/utf8"
)

// stopwords covers platform UI metadata that survives cleaning inside prose,
// weekday/date words, visit tags and generic filler that would otherwise
// dominate frequency-based keywords.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		// UI metadata
		"리뷰", "사진", "팔로우", "팔로워", "방문", "예약", "이용", "대기", "시간",
		"입장", "반응", "인증", "수단", "영수증", "결제", "내역",
		// weekdays and date words
		"일요일", "월요일", "화요일", "수요일", "목요일", "금요일", "토요일",
		"년", "월", "일", "번째", "저녁", "점심", "아침", "오전", "오후",
		// visit purpose / companion tags
		"일상", "친목", "데이트", "나들이", "혼자", "친구", "가족", "연인", "배우자", "아이", "동료",
		// generic filler
		"개", "곳", "더", "있다", "있습니다", "없다", "하다", "합니다", "이다", "입니다",
		"것", "거", "수", "등", "때", "및", "위해", "통해", "하나", "가지",
		"인원", "선택", "키워드", "조회", "업체", "장소", "테마", "리스트",
	} {
		stopwords[w] = struct{}{}
	}
}

// Hangul or Latin word runs; digits and symbols split tokens.
var tokenRe = regexp.MustCompile(`[가-힣]+|[A-Za-z]+`)

// Tokenize extracts content words from cleaned review text: word runs of
// more than one rune, minus stopwords. An empty result means the review
// carries no usable signal and should be left unclustered.
func Tokenize(text string) []string {
	var out []string
	for _, tok := range tokenRe.FindAllString(text, -1) {
		if utf8.RuneCountInString(tok) < 2 {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		out = append(out, tok)
	}
	return out
}
