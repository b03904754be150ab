package analysis

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "content words kept",
			in:   "국물이 진하고 수제비가 쫄깃해요",
			want: []string{"국물이", "진하고", "수제비가", "쫄깃해요"},
		},
		{
			name: "stopwords removed",
			in:   "데이트 하기 좋은 분위기 친구 추천",
			want: []string{"하기", "좋은", "분위기", "추천"},
		},
		{
			name: "single rune and digits dropped",
			in:   "맛 5 점 국물 최고",
			want: []string{"국물", "최고"},
		},
		{
			name: "empty after filtering",
			in:   "3 + 1",
			want: nil,
		},
		{
			name: "latin runs kept",
			in:   "brunch 메뉴가 다양해요",
			want: []string{"brunch", "메뉴가", "다양해요"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Tokenize(tc.in); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}
