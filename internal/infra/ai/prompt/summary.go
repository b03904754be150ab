package prompt

import (
	"fmt"
	"strings"
)

// SummaryPrompt asks for a one-line store image built from keywords and
// review samples. Plain text out, no JSON.
func SummaryPrompt(storeName string, avgRating float64, keywords, samples []string) string {
	if len(keywords) > 10 {
		keywords = keywords[:10]
	}
	return fmt.Sprintf(`당신은 음식점 리뷰 분석 전문가입니다. 다음은 "%s"의 분석 결과입니다.

[기본 정보]
- 평균 평점: %.1f/5.0
- 주요 키워드: %s

[실제 고객 리뷰]
%s

위 정보를 바탕으로 이 가게의 핵심 이미지를 **한 문장**으로 매력적으로 요약하세요.
(예: "매콤한 수제비가 인기인 가성비 좋은 맛집")
JSON 없이 텍스트만 출력하세요.`,
		storeName, avgRating, strings.Join(keywords, ", "), strings.Join(samples, "\n"))
}

// FallbackSummary is used when the summary call fails.
func FallbackSummary(storeName string, avgRating float64) string {
	return fmt.Sprintf("%s (평점 %.1f)", storeName, avgRating)
}

// ReplyPrompt drafts an owner reply to one customer review.
func ReplyPrompt(reviewText, tone, length string) string {
	if tone == "" {
		tone = "친근함"
	}
	if length == "" {
		length = "보통"
	}
	return fmt.Sprintf(`당신은 사장님을 대신해 고객 리뷰에 답글을 다는 AI 비서입니다.
다음 리뷰에 대해 **%s** 말투로, **%s** 길이의 답글을 작성해주세요.

[고객 리뷰]
%s

[답글 작성 가이드]
1. 고객의 칭찬 포인트에 감사함을 표현하세요.
2. 불만 사항이 있다면 정중히 사과하고 개선을 약속하세요.
3. 재방문을 유도하는 따뜻한 멘트로 마무리하세요.`,
		tone, length, reviewText)
}
