// Package output implements C9: thread-safe serializers for the
// collapsed probability matrix and the estimates table, per spec.md §6.
// The writers themselves are external-collaborator-facing (a real
// deployment chooses where the bytes land), but spec.md §5 explicitly
// calls for mutex-guarded, flush-on-close implementations, so this
// package ships one concrete implementation of each interface.
package output

import (
	"bufio"
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"

	"github.com/grailbio/base/file"

	"github.com/jonassibbesen/vgprob/cluster"
)

// MatrixWriter is the C9 contract for the collapsed probability matrix
// format of spec.md §6.
type MatrixWriter interface {
	WriteCluster(clusterID string, paths []cluster.PathInfo, rows []MatrixRow) error
	Close(ctx context.Context) error
}

// MatrixRow is one line of a cluster's probability-matrix block:
// read_count noise_prob followed by prob:id[,id]* groups.
type MatrixRow struct {
	ReadCount int
	NoiseProb float64
	// Groups maps a probability value to its sorted path-id list; the
	// writer renders groups in ascending probability order for
	// determinism across runs (spec.md §5).
	Groups map[float64][]int64
}

// EstimatesWriter is the C9 contract for the TSV estimates table.
type EstimatesWriter interface {
	WriteHeader() error
	WriteRow(row EstimateRow) error
	Close(ctx context.Context) error
}

// EstimateRow is one row of the estimates table, column order per
// spec.md §6.
type EstimateRow struct {
	Name                      string
	ClusterID                string
	Length                    int
	EffectiveLength           float64
	HaplotypeProbability      float64
	ClusterRelativeExpression float64
	ReadCount                 float64
	TPM                       float64
}

// fileMatrixWriter is the mutex-guarded concrete MatrixWriter, styled on
// markduplicates' single-output-file pattern: one buffered writer behind
// a single mutex, flushed explicitly on Close.
type fileMatrixWriter struct {
	mu         sync.Mutex
	f          file.File
	gz         *gzip.Writer
	bw         *bufio.Writer
	probDigits int
}

// NewMatrixWriter opens path (via github.com/grailbio/base/file, so the
// destination may be a local path or any scheme that package supports)
// and returns a MatrixWriter that formats probabilities with
// ceil(-log10(probPrecision)) fixed decimal digits, per spec.md §6. When
// gzipCompress is true the matrix stream is gzip-compressed with
// github.com/klauspost/compress/gzip, the same gzip implementation
// encoding/bam and interval's BED-union reader use elsewhere in the
// corpus for optionally-compressed record streams.
func NewMatrixWriter(ctx context.Context, path string, probPrecision float64, gzipCompress bool) (MatrixWriter, error) {
	f, err := file.Create(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "output: opening matrix file %s", path)
	}
	w := &fileMatrixWriter{f: f, probDigits: probDigits(probPrecision)}
	out := f.Writer(ctx)
	if gzipCompress {
		w.gz = gzip.NewWriter(out)
		out = w.gz
	}
	w.bw = bufio.NewWriter(out)
	return w, nil
}

func probDigits(precision float64) int {
	if precision <= 0 || precision >= 1 {
		return 0
	}
	return int(math.Ceil(-math.Log10(precision)))
}

// WriteCluster implements spec.md §6's block format, including the
// header line for clusters with zero reads (SPEC_FULL.md §4.8, matching
// original_source/src/probability_matrix_writer.cpp's behavior of still
// emitting an empty block).
func (w *fileMatrixWriter) WriteCluster(clusterID string, paths []cluster.PathInfo, rows []MatrixRow) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := fmt.Fprintln(w.bw, "#"); err != nil {
		return errors.Wrap(err, "output: writing cluster marker")
	}
	for i, p := range paths {
		if i > 0 {
			if _, err := fmt.Fprint(w.bw, " "); err != nil {
				return errors.Wrap(err, "output: writing path header")
			}
		}
		if _, err := fmt.Fprintf(w.bw, "%s,%d,%.2f", p.Name, p.Length, p.EffectiveLength); err != nil {
			return errors.Wrap(err, "output: writing path header")
		}
	}
	if _, err := fmt.Fprintln(w.bw); err != nil {
		return errors.Wrap(err, "output: writing path header newline")
	}

	for _, row := range rows {
		if err := w.writeRow(row); err != nil {
			return err
		}
	}
	return nil
}

func (w *fileMatrixWriter) writeRow(row MatrixRow) error {
	if _, err := fmt.Fprintf(w.bw, "%d %.*f", row.ReadCount, w.probDigits, row.NoiseProb); err != nil {
		return errors.Wrap(err, "output: writing row prefix")
	}
	probs := make([]float64, 0, len(row.Groups))
	for p := range row.Groups {
		probs = append(probs, p)
	}
	sortFloat64s(probs)
	for _, p := range probs {
		ids := row.Groups[p]
		if _, err := fmt.Fprintf(w.bw, " %.*f:", w.probDigits, p); err != nil {
			return errors.Wrap(err, "output: writing group probability")
		}
		for i, id := range ids {
			if i > 0 {
				if _, err := fmt.Fprint(w.bw, ","); err != nil {
					return errors.Wrap(err, "output: writing group ids")
				}
			}
			if _, err := fmt.Fprintf(w.bw, "%d", id); err != nil {
				return errors.Wrap(err, "output: writing group ids")
			}
		}
	}
	_, err := fmt.Fprintln(w.bw)
	return errors.Wrap(err, "output: writing row newline")
}

func sortFloat64s(s []float64) {
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

func (w *fileMatrixWriter) Close(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.bw.Flush(); err != nil {
		return errors.Wrap(err, "output: flushing matrix writer")
	}
	if w.gz != nil {
		if err := w.gz.Close(); err != nil {
			return errors.Wrap(err, "output: closing gzip stream")
		}
	}
	return errors.Wrap(w.f.Close(ctx), "output: closing matrix file")
}

// fileEstimatesWriter is the mutex-guarded concrete EstimatesWriter.
type fileEstimatesWriter struct {
	mu sync.Mutex
	f  file.File
	bw *bufio.Writer
}

// NewEstimatesWriter opens path and returns an EstimatesWriter for the
// TSV format of spec.md §6.
func NewEstimatesWriter(ctx context.Context, path string) (EstimatesWriter, error) {
	f, err := file.Create(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "output: opening estimates file %s", path)
	}
	return &fileEstimatesWriter{f: f, bw: bufio.NewWriter(f.Writer(ctx))}, nil
}

func (w *fileEstimatesWriter) WriteHeader() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, err := fmt.Fprintln(w.bw, "Name\tClusterID\tLength\tEffectiveLength\tHaplotypeProbability\tClusterRelativeExpression\tReadCount\tTPM")
	return errors.Wrap(err, "output: writing estimates header")
}

func (w *fileEstimatesWriter) WriteRow(row EstimateRow) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, err := fmt.Fprintf(w.bw, "%s\t%s\t%d\t%.2f\t%.6f\t%.6f\t%.4f\t%.4f\n",
		row.Name, row.ClusterID, row.Length, row.EffectiveLength,
		row.HaplotypeProbability, row.ClusterRelativeExpression, row.ReadCount, row.TPM)
	return errors.Wrap(err, "output: writing estimates row")
}

func (w *fileEstimatesWriter) Close(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.bw.Flush(); err != nil {
		return errors.Wrap(err, "output: flushing estimates writer")
	}
	return errors.Wrap(w.f.Close(ctx), "output: closing estimates file")
}

// TPM computes the TPM column of spec.md §6:
// expression * read_count / eff_length / Σ(...) * 1e6.
func TPM(expression, readCount, effLength, sumRatio float64) float64 {
	if effLength <= 0 || sumRatio <= 0 {
		return 0
	}
	return expression * readCount / effLength / sumRatio * 1e6
}
