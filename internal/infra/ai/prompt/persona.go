package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pulse-cx/insight/internal/domain/report"
)

// PersonaSystemPrompt pins the model to JSON-only output.
func PersonaSystemPrompt() string {
	return "You are a helpful CX analyst. Output only valid JSON."
}

// PersonaPrompt builds the per-topic persona + journey-map request.
func PersonaPrompt(storeName string, topicID int, keywords []string, percentage, avgRating float64, samples []string) string {
	if len(keywords) > 10 {
		keywords = keywords[:10]
	}
	return fmt.Sprintf(`당신은 고객 경험(CX) 분석 전문가입니다. "%s"의 특정 고객 그룹(토픽 %d)을 심층 분석하여 페르소나와 고객 여정 지도를 작성해주세요.

## 분석 데이터
- 키워드: %s
- 그룹 비중: %.1f%%
- 평균 평점: %.1f
- 리뷰 샘플:
%s

## 요청사항 (JSON 포맷 준수)
다음 구조를 가진 JSON을 생성하세요. (Markdown code block 없이 순수 JSON만 출력)

{
    "nickname": "그룹을 대표하는 매력적인 별명 (예: 시원 국물파, 가성비 직장인)",
    "tags": ["특징1", "특징2", "특징3"],
    "summary": "이 그룹의 행동 패턴과 니즈를 한 문장으로 요약",
    "journey": {
        "explore": {"label": "탐색", "action": "가게를 찾게 된 구체적 행동", "thought": "방문 전 속마음", "type": "good|neutral|pain 중 택1", "touchpoint": "접점", "painPoint": "불편했던 점 (없으면 null)", "opportunity": "이 단계에서 어필할 수 있는 기회"},
        "visit": {"label": "방문", "action": "가게 도착 및 웨이팅/입장 행동", "thought": "입장 시 속마음", "type": "good|neutral|pain 중 택1", "touchpoint": "매장 입구/대기석", "painPoint": "불편했던 점 (없으면 null)", "opportunity": "첫인상을 개선할 아이디어"},
        "eat": {"label": "식사", "action": "메뉴 주문 및 식사 중 행동", "thought": "음식을 먹으며 든 생각", "type": "good|neutral|pain 중 택1", "touchpoint": "테이블/음식", "painPoint": "불편했던 점 (없으면 null)", "opportunity": "맛/서비스 경험을 극대화할 아이디어"},
        "share": {"label": "공유", "action": "결제 및 퇴장, 후기 작성 행동", "thought": "나가면서 든 생각", "type": "good|neutral|pain 중 택1", "touchpoint": "카운터/SNS", "painPoint": "불편했던 점 (없으면 null)", "opportunity": "단골 유치 및 리뷰 작성을 유도할 아이디어"}
    },
    "overall_comment": "이 페르소나의 전체 여정을 분석한 총평 (2~3문장)",
    "action_recommendation": "가장 시급하게 개선해야 할 구체적인 액션 아이템 (1~2문장)"
}`,
		storeName, topicID, strings.Join(keywords, ", "), percentage, avgRating, strings.Join(samples, "\n"))
}

// PersonaDraft is the fixed JSON shape expected back from the model.
type PersonaDraft struct {
	Nickname             string            `json:"nickname"`
	Tags                 []string          `json:"tags"`
	Summary              string            `json:"summary"`
	Journey              report.JourneyMap `json:"journey"`
	OverallComment       string            `json:"overall_comment"`
	ActionRecommendation string            `json:"action_recommendation"`
}

// ParsePersonaDraft decodes the model response, tolerating a markdown code
// fence the model was told not to emit.
func ParsePersonaDraft(raw string) (*PersonaDraft, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
		raw = strings.TrimSpace(raw)
	}
	var d PersonaDraft
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return nil, fmt.Errorf("parse persona draft: %w", err)
	}
	if d.Nickname == "" {
		return nil, fmt.Errorf("parse persona draft: missing nickname")
	}
	return &d, nil
}

// FallbackPersona is the fixed object substituted when a persona call fails
// or returns unparsable content.
func FallbackPersona(topicID int) PersonaDraft {
	step := func(label string) report.JourneyStep {
		return report.JourneyStep{Label: label, Action: "-", Thought: "-", Type: "neutral", Touchpoint: "-", Opportunity: "-"}
	}
	return PersonaDraft{
		Nickname: fmt.Sprintf("고객 그룹 %d", topicID),
		Tags:     []string{"분석 실패"},
		Summary:  "데이터를 분석하는 중 오류가 발생했습니다.",
		Journey: report.JourneyMap{
			Explore: step("탐색"),
			Visit:   step("방문"),
			Eat:     step("식사"),
			Share:   step("공유"),
		},
		OverallComment:       "데이터 분석 중 오류가 발생하여 총평을 생성할 수 없습니다.",
		ActionRecommendation: "다시 분석을 시도해주세요.",
	}
}
