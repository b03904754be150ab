package analysis

import (
	"math"
	"reflect"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	cases := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 0}, []float32{1, 0}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"length mismatch", []float32{1, 0}, []float32{1}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 0}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CosineSimilarity(tc.a, tc.b); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("CosineSimilarity = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	v := []float32{3, 4}
	Normalize(v)
	if math.Abs(float64(v[0])-0.6) > 1e-6 || math.Abs(float64(v[1])-0.8) > 1e-6 {
		t.Errorf("Normalize = %v, want [0.6 0.8]", v)
	}

	zero := []float32{0, 0}
	Normalize(zero)
	if zero[0] != 0 || zero[1] != 0 {
		t.Errorf("zero vector must stay zero, got %v", zero)
	}
}

func TestKMeansSeparatesObviousClusters(t *testing.T) {
	// two tight groups on opposite axes
	vectors := [][]float32{
		{1, 0.01}, {0.99, 0.02}, {1, -0.01},
		{0.01, 1}, {-0.02, 0.99}, {0.02, 1},
	}
	for _, v := range vectors {
		Normalize(v)
	}
	labels := KMeans(vectors, 2, 25, 42)

	if labels[0] != labels[1] || labels[1] != labels[2] {
		t.Errorf("first group split: %v", labels)
	}
	if labels[3] != labels[4] || labels[4] != labels[5] {
		t.Errorf("second group split: %v", labels)
	}
	if labels[0] == labels[3] {
		t.Errorf("groups merged: %v", labels)
	}
}

func TestKMeansDeterministic(t *testing.T) {
	vectors := [][]float32{
		{1, 0}, {0.9, 0.1}, {0, 1}, {0.1, 0.9}, {0.5, 0.5}, {0.4, 0.6},
	}
	for _, v := range vectors {
		Normalize(v)
	}
	first := KMeans(vectors, 3, 25, 7)
	second := KMeans(vectors, 3, 25, 7)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same seed produced different labels: %v vs %v", first, second)
	}
}

func TestKMeansClampsK(t *testing.T) {
	vectors := [][]float32{{1, 0}, {0, 1}}
	labels := KMeans(vectors, 5, 10, 1)
	if len(labels) != 2 {
		t.Fatalf("labels = %v", labels)
	}
	for _, l := range labels {
		if l < 0 || l >= 2 {
			t.Errorf("label %d out of clamped range", l)
		}
	}
}
