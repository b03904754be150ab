package analysis

import (
	"math"
	"math/rand"
)

// CosineSimilarity computes cosine similarity between two vectors.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Normalize scales the vector to unit L2 norm in place. Zero vectors are
// left untouched.
func Normalize(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	inv := 1 / math.Sqrt(sum)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) * inv)
	}
}

// KMeans clusters unit-normalized vectors by cosine similarity and returns a
// label per input vector. Seeding is deterministic for a given seed, so runs
// over the same corpus reproduce the same topics.
func KMeans(vectors [][]float32, k, maxIter int, seed int64) []int {
	n := len(vectors)
	labels := make([]int, n)
	if n == 0 || k <= 0 {
		return labels
	}
	if k > n {
		k = n
	}

	rng := rand.New(rand.NewSource(seed))
	dim := len(vectors[0])

	// init centroids from a random permutation of the inputs
	centroids := make([][]float32, k)
	for i, idx := range rng.Perm(n)[:k] {
		c := make([]float32, dim)
		copy(c, vectors[idx])
		centroids[i] = c
	}

	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i, v := range vectors {
			best, bestSim := 0, math.Inf(-1)
			for j, c := range centroids {
				if sim := CosineSimilarity(v, c); sim > bestSim {
					best, bestSim = j, sim
				}
			}
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		// recompute centroids as member means
		counts := make([]int, k)
		next := make([][]float32, k)
		for j := range next {
			next[j] = make([]float32, dim)
		}
		for i, v := range vectors {
			j := labels[i]
			counts[j]++
			for d := range v {
				next[j][d] += v[d]
			}
		}
		for j := range next {
			if counts[j] == 0 {
				// empty cluster keeps its previous centroid
				next[j] = centroids[j]
				continue
			}
			inv := 1 / float32(counts[j])
			for d := range next[j] {
				next[j][d] *= inv
			}
			Normalize(next[j])
		}
		centroids = next
	}
	return labels
}
