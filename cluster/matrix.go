// Package cluster implements C7, the Path Cluster Estimator: sparse
// read×path probability matrix assembly, EM abundance estimation,
// weighted minimum path cover, grouped (diplotype) posteriors exact and
// Gibbs, and a Gibbs read-count sampler, per spec.md §4.4.
package cluster

import (
	"sort"

	"github.com/jonassibbesen/vgprob/pathindex"
	"github.com/jonassibbesen/vgprob/rpp"
)

// PathInfo describes one candidate path, per spec.md §3 PCE.paths.
type PathInfo struct {
	Name             string
	Length           int
	EffectiveLength  float64
	SourceIDs        []string
	GroupID          int
	SourceCount      int
}

// AssemblyMode selects one of the three matrix-assembly strategies of
// spec.md §4.4.1.
type AssemblyMode int

const (
	Full AssemblyMode = iota
	Partial
	Grouped
)

// Matrix is the sparse row-major read×path probability matrix plus its
// parallel noise and count vectors (spec.md §4.4.1).
type Matrix struct {
	Paths []PathInfo
	// Rows is one entry per unique (pre-collapse) read; P[pathIdx]=prob.
	Rows  []map[int]float64
	Noise []float64
	Count []int
}

// Assemble builds a Matrix from collapsed RPPs and a path-id-to-column
// index, per the assembly mode requested. subsetCols is only consulted for
// Partial; pathIDToCol maps a pathindex.PathID to its column in
// the *full* path list (needed to resolve Grouped's max-within-group
// rule and Partial's subset filter).
func Assemble(rpps []*rpp.Probabilities, paths []PathInfo, pathIDToCol map[pathindex.PathID]int, mode AssemblyMode, subsetCols map[int]bool, zeroNoiseRows bool) *Matrix {
	m := &Matrix{Paths: paths}
	groupCols := map[int]int{} // groupID -> output column, used by Grouped
	var outCols []int
	switch mode {
	case Full:
		outCols = make([]int, len(paths))
		for i := range outCols {
			outCols[i] = i
		}
	case Partial:
		for c := range subsetCols {
			outCols = append(outCols, c)
		}
		sort.Ints(outCols)
	case Grouped:
		seen := map[int]bool{}
		for i, p := range paths {
			if !seen[p.GroupID] {
				seen[p.GroupID] = true
				groupCols[p.GroupID] = len(outCols)
				outCols = append(outCols, i)
			}
			_ = i
		}
	}
	colIndex := map[int]int{}
	for oi, pc := range outCols {
		colIndex[pc] = oi
	}

	for _, p := range rpps {
		row := map[int]float64{}
		for prob, ids := range p.PathProbs {
			for _, id := range ids {
				col, ok := pathIDToCol[id]
				if !ok {
					continue
				}
				switch mode {
				case Full:
					row[col] = prob
				case Partial:
					if oi, ok := colIndex[col]; ok {
						if prob > row[oi] {
							row[oi] = prob
						}
					}
				case Grouped:
					gid := paths[col].GroupID
					oi := groupCols[gid]
					if prob > row[oi] {
						row[oi] = prob
					}
				}
			}
		}
		noise := p.NoiseProb
		count := p.ReadCount
		if mode == Partial && zeroNoiseRows && noise >= 1-1e-12 {
			count = 0
		}
		m.Rows = append(m.Rows, row)
		m.Noise = append(m.Noise, noise)
		m.Count = append(m.Count, count)
	}

	if mode != Full {
		outPaths := make([]PathInfo, len(outCols))
		for oi, pc := range outCols {
			outPaths[oi] = paths[pc]
		}
		m.Paths = outPaths
	}
	return m
}

// NoiseSubtractAndNormalize implements spec.md §4.4.1's post-assembly
// steps: subtract each row's noise from every entry (floored at 0), drop
// rows that become entirely zero, then row-normalize to sum to 1.
func (m *Matrix) NoiseSubtractAndNormalize() {
	keptRows := m.Rows[:0]
	keptNoise := m.Noise[:0]
	keptCount := m.Count[:0]
	for i, row := range m.Rows {
		noise := m.Noise[i]
		sum := 0.0
		subtracted := map[int]float64{}
		for col, v := range row {
			nv := v - noise
			if nv < 0 {
				nv = 0
			}
			if nv > 0 {
				subtracted[col] = nv
				sum += nv
			}
		}
		if sum == 0 {
			continue
		}
		for col := range subtracted {
			subtracted[col] /= sum
		}
		keptRows = append(keptRows, subtracted)
		keptNoise = append(keptNoise, noise)
		keptCount = append(keptCount, m.Count[i])
	}
	m.Rows = keptRows
	m.Noise = keptNoise
	m.Count = keptCount
}

// AdditiveNoiseNormalize implements the alternative path of spec.md
// §4.4.1 used before posterior calculation: expose noise as an explicit
// extra column (index len(Paths)) and row-normalize including it.
func (m *Matrix) AdditiveNoiseNormalize() (rows []map[int]float64, noiseCol int) {
	noiseCol = len(m.Paths)
	rows = make([]map[int]float64, len(m.Rows))
	for i, row := range m.Rows {
		sum := m.Noise[i]
		for _, v := range row {
			sum += v
		}
		nr := map[int]float64{}
		if sum > 0 {
			for col, v := range row {
				nr[col] = v / sum
			}
			nr[noiseCol] = m.Noise[i] / sum
		}
		rows[i] = nr
	}
	return rows, noiseCol
}

// RowKey canonicalizes a row's numeric content to prob_precision so
// read-collapse (spec.md §4.4.1 "Read-collapse") can merge rows that
// were assembled from distinct RPPs but ended up numerically identical
// after noise-subtraction/normalization.
func RowKey(row map[int]float64, precision float64) string {
	cols := make([]int, 0, len(row))
	for c := range row {
		cols = append(cols, c)
	}
	sort.Ints(cols)
	b := make([]byte, 0, 16*len(cols))
	for _, c := range cols {
		v := row[c]
		if precision > 0 {
			v = roundTo(v, precision)
		}
		b = appendFloatKey(b, c, v)
	}
	return string(b)
}

func roundTo(v, precision float64) float64 {
	if precision <= 0 {
		return v
	}
	q := v / precision
	r := q - float64(int64(q))
	if r >= 0.5 {
		q = float64(int64(q)) + 1
	} else {
		q = float64(int64(q))
	}
	return q * precision
}

func appendFloatKey(b []byte, col int, v float64) []byte {
	b = append(b, '|')
	b = appendInt(b, col)
	b = append(b, ':')
	b = appendFloat(b, v)
	return b
}

func appendInt(b []byte, n int) []byte {
	if n == 0 {
		return append(b, '0')
	}
	if n < 0 {
		b = append(b, '-')
		n = -n
	}
	start := len(b)
	for n > 0 {
		b = append(b, byte('0'+n%10))
		n /= 10
	}
	for i, j := start, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return b
}

// appendFloat renders v with enough fixed decimal digits to distinguish
// values at prob_precision scale without pulling in strconv/fmt on this
// hot path.
func appendFloat(b []byte, v float64) []byte {
	scaled := int64(v*1e12 + 0.5)
	return appendInt(b, int(scaled))
}

// CollapseRows merges rows with identical RowKey by summing their counts
// (spec.md §4.4.1 read-collapse), after noise-subtract/normalize.
func (m *Matrix) CollapseRows(precision float64) {
	type bucket struct {
		row   map[int]float64
		noise float64
		count int
	}
	byKey := map[string]*bucket{}
	var order []string
	for i, row := range m.Rows {
		key := RowKey(row, precision)
		if b, ok := byKey[key]; ok {
			b.count += m.Count[i]
			continue
		}
		byKey[key] = &bucket{row: row, noise: m.Noise[i], count: m.Count[i]}
		order = append(order, key)
	}
	m.Rows = m.Rows[:0]
	m.Noise = m.Noise[:0]
	m.Count = m.Count[:0]
	for _, key := range order {
		b := byKey[key]
		m.Rows = append(m.Rows, b.row)
		m.Noise = append(m.Noise, b.noise)
		m.Count = append(m.Count, b.count)
	}
}
