package reviews

import "testing"

func TestClean(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "metadata around body",
			in:   "리뷰 56\n사진 164\n맛있어요\n팔로워 3",
			want: "맛있어요",
		},
		{
			name: "noise only",
			in:   "리뷰 12\n사진 3\n방문일 24.1.\n더보기",
			want: "",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
		{
			name: "numeric line dropped",
			in:   "42\n국물이 진하고 면발이 쫄깃해요",
			want: "국물이 진하고 면발이 쫄깃해요",
		},
		{
			name: "quoted ui chip dropped",
			in:   "\"음식이 맛있어요\"\n재료가 신선해서 또 오고 싶어요",
			want: "재료가 신선해서 또 오고 싶어요",
		},
		{
			name: "short residue dropped",
			in:   "굿\n분위기가 좋고 직원분들이 상냥했어요",
			want: "분위기가 좋고 직원분들이 상냥했어요",
		},
		{
			name: "symbol runs collapsed",
			in:   "정말 최고였어요+++ 재방문 의사 있습니다~~~",
			want: "정말 최고였어요 재방문 의사 있습니다",
		},
		{
			name: "visit purpose and companion tags dropped",
			in:   "데이트\n혼자\n조용해서 책 읽기 좋은 곳이었습니다",
			want: "조용해서 책 읽기 좋은 곳이었습니다",
		},
		{
			name: "date and weekday dropped",
			in:   "2024년 3월 15일\n금요일\n웨이팅은 있었지만 그만한 가치가 있어요",
			want: "웨이팅은 있었지만 그만한 가치가 있어요",
		},
		{
			name: "photo counter artifact dropped",
			in:   "+3\n사장님이 직접 반겨주셔서 기분 좋게 식사했어요",
			want: "사장님이 직접 반겨주셔서 기분 좋게 식사했어요",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Clean(tc.in); got != tc.want {
				t.Errorf("Clean(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

// Cleaning output must contain nothing a second pass would remove.
func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"리뷰 56\n사진 164\n맛있어요 국물이 끝내줘요\n팔로워 3",
		"2023년 7월 2일\n분위기 좋은 곳에서 모처럼 여유로운 식사를 했습니다\n영수증",
		"웨이팅이 길었지만 음식이 나오자마자 납득했어요+++",
	}
	for _, in := range inputs {
		once := Clean(in)
		if twice := Clean(once); twice != once {
			t.Errorf("Clean not idempotent: first %q, second %q", once, twice)
		}
	}
}

func TestCleanOutputHasNoNoise(t *testing.T) {
	in := "리뷰 56\n사진 164\n국물이 시원하고 양도 푸짐해서 해장하기 좋아요\n팔로워 3\n42\n더보기"
	out := Clean(in)
	if out == "" {
		t.Fatal("expected surviving content")
	}
	for _, r := range noiseRules {
		// Tags that can legitimately appear mid-sentence (e.g. 혼자) are
		// checked against whole lines at clean time; here we assert the
		// line-anchored rules never survive.
		if r.re.MatchString(out) && r.re.String()[0] == '^' {
			t.Errorf("output %q still matches %s rule", out, r.desc)
		}
	}
	if numericLine.MatchString(out) {
		t.Errorf("output %q is purely numeric", out)
	}
}

func TestSeenSet(t *testing.T) {
	s := NewSeenSet()
	if !s.Add("리뷰 원문") {
		t.Error("first add should be new")
	}
	if s.Add("리뷰 원문") {
		t.Error("second add of same raw text should be a duplicate")
	}
	if !s.Add("다른 리뷰 원문") {
		t.Error("distinct raw text should be new")
	}
}
