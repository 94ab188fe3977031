package cluster

import "math"

// MinCover implements spec.md §4.4.3's weighted minimum path cover: a
// greedy set-cover over the read-path boolean coverage matrix, weighted
// by remaining per-read counts and per-path negative-log-probability
// weight. pathWeight[j] should already be the path's (positive)
// -log-probability weight; ties are broken by ascending column index
// (first occurrence).
func MinCover(m *Matrix, pathWeight []float64) []int {
	remaining := append([]int(nil), m.Count...)

	var chosen []int
	for {
		bestCol, bestScore := -1, -math.MaxFloat64
		for j := range m.Paths {
			weight := pathWeight[j]
			if weight <= 0 {
				continue
			}
			coverage := 0
			for i, row := range m.Rows {
				if remaining[i] <= 0 {
					continue
				}
				if _, ok := row[j]; ok {
					coverage += remaining[i]
				}
			}
			if coverage == 0 {
				continue
			}
			score := float64(coverage) / weight
			if score > bestScore {
				bestScore = score
				bestCol = j
			}
		}
		if bestCol < 0 {
			break
		}
		chosen = append(chosen, bestCol)
		for i, row := range m.Rows {
			if _, ok := row[bestCol]; ok {
				remaining[i] = 0
			}
		}
		anyUncovered := false
		for _, r := range remaining {
			if r > 0 {
				anyUncovered = true
				break
			}
		}
		if !anyUncovered {
			break
		}
	}

	sortedChosen := append([]int(nil), chosen...)
	insertionSortInts(sortedChosen)
	return sortedChosen
}

func insertionSortInts(s []int) {
	for i := 1; i < len(s); i++ {
		v := s[i]
		j := i - 1
		for j >= 0 && s[j] > v {
			s[j+1] = s[j]
			j--
		}
		s[j+1] = v
	}
}
