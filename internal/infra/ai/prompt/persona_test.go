package prompt

import (
	"strings"
	"testing"
)

const validDraft = `{
  "nickname": "시원 국물파",
  "tags": ["해장러", "혼밥"],
  "summary": "든든한 국물 한 끼를 찾는 단골형 고객",
  "journey": {
    "explore": {"label": "탐색", "action": "네이버 검색", "thought": "해장할 곳 없나", "type": "neutral", "touchpoint": "네이버 플레이스", "painPoint": null, "opportunity": "해장 키워드 노출"},
    "visit": {"label": "방문", "action": "바로 입장", "thought": "웨이팅 없어 다행", "type": "good", "touchpoint": "매장 입구", "painPoint": null, "opportunity": "회전율 홍보"},
    "eat": {"label": "식사", "action": "국밥 주문", "thought": "국물이 진하다", "type": "good", "touchpoint": "테이블", "painPoint": null, "opportunity": "리필 서비스"},
    "share": {"label": "공유", "action": "영수증 리뷰 작성", "thought": "또 와야지", "type": "good", "touchpoint": "SNS", "painPoint": null, "opportunity": "리뷰 이벤트"}
  },
  "overall_comment": "전 여정에서 만족도가 높습니다.",
  "action_recommendation": "해장 메뉴를 전면에 내세우세요."
}`

func TestParsePersonaDraft(t *testing.T) {
	d, err := ParsePersonaDraft(validDraft)
	if err != nil {
		t.Fatalf("ParsePersonaDraft: %v", err)
	}
	if d.Nickname != "시원 국물파" {
		t.Errorf("nickname = %q", d.Nickname)
	}
	if len(d.Tags) != 2 {
		t.Errorf("tags = %v", d.Tags)
	}
	if d.Journey.Explore.Label != "탐색" || d.Journey.Share.Label != "공유" {
		t.Errorf("journey labels = %q/%q", d.Journey.Explore.Label, d.Journey.Share.Label)
	}
	if d.Journey.Eat.Type != "good" {
		t.Errorf("eat type = %q", d.Journey.Eat.Type)
	}
}

func TestParsePersonaDraftCodeFence(t *testing.T) {
	fenced := "```json\n" + validDraft + "\n```"
	d, err := ParsePersonaDraft(fenced)
	if err != nil {
		t.Fatalf("ParsePersonaDraft fenced: %v", err)
	}
	if d.Nickname != "시원 국물파" {
		t.Errorf("nickname = %q", d.Nickname)
	}
}

func TestParsePersonaDraftInvalid(t *testing.T) {
	for _, raw := range []string{"", "not json", `{"tags": []}`} {
		if _, err := ParsePersonaDraft(raw); err == nil {
			t.Errorf("ParsePersonaDraft(%q) expected error", raw)
		}
	}
}

func TestFallbackPersonaShape(t *testing.T) {
	p := FallbackPersona(2)
	if p.Nickname != "고객 그룹 2" {
		t.Errorf("nickname = %q", p.Nickname)
	}
	steps := []struct {
		label string
		got   string
	}{
		{"탐색", p.Journey.Explore.Label},
		{"방문", p.Journey.Visit.Label},
		{"식사", p.Journey.Eat.Label},
		{"공유", p.Journey.Share.Label},
	}
	for _, s := range steps {
		if s.got != s.label {
			t.Errorf("journey stage label = %q, want %q", s.got, s.label)
		}
	}
	if p.Journey.Visit.Type != "neutral" {
		t.Errorf("fallback step type = %q, want neutral", p.Journey.Visit.Type)
	}
}

func TestPersonaPromptContainsContext(t *testing.T) {
	out := PersonaPrompt("해장국집", 1, []string{"국물", "해장"}, 42.5, 4.3, []string{"★5: 국물이 진해요"})
	for _, want := range []string{"해장국집", "국물, 해장", "42.5%", "★5: 국물이 진해요"} {
		if !strings.Contains(out, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestSummaryPromptAndFallback(t *testing.T) {
	out := SummaryPrompt("해장국집", 4.3, []string{"국물"}, []string{"- 진한 국물"})
	if !strings.Contains(out, "해장국집") || !strings.Contains(out, "4.3/5.0") {
		t.Errorf("summary prompt missing context: %s", out)
	}
	if got := FallbackSummary("해장국집", 4.3); got != "해장국집 (평점 4.3)" {
		t.Errorf("FallbackSummary = %q", got)
	}
}
