package output

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbDigits(t *testing.T) {
	assert.Equal(t, 2, probDigits(1e-2))
	assert.Equal(t, 8, probDigits(1e-8))
	assert.Equal(t, 0, probDigits(0))
	assert.Equal(t, 0, probDigits(1))
}

func TestSortFloat64s(t *testing.T) {
	s := []float64{0.5, 0.1, 0.9, 0.1, 0.3}
	sortFloat64s(s)
	assert.Equal(t, []float64{0.1, 0.1, 0.3, 0.5, 0.9}, s)
}

func TestWriteRowFormatsGroupsInAscendingOrder(t *testing.T) {
	var buf bytes.Buffer
	w := &fileMatrixWriter{probDigits: 2, bw: bufio.NewWriter(&buf)}
	row := MatrixRow{
		ReadCount: 3,
		NoiseProb: 0.01,
		Groups: map[float64][]int64{
			0.9: {5, 1},
			0.1: {2},
		},
	}
	require.NoError(t, w.writeRow(row))
	require.NoError(t, w.bw.Flush())
	assert.Equal(t, "3 0.01 0.10:2 0.90:5,1\n", buf.String())
}

func TestWriteClusterEmitsHeaderForZeroReadCluster(t *testing.T) {
	var buf bytes.Buffer
	w := &fileMatrixWriter{probDigits: 2, bw: bufio.NewWriter(&buf)}
	err := w.WriteCluster("c1", nil, nil)
	require.NoError(t, err)
	require.NoError(t, w.bw.Flush())
	assert.Equal(t, "#\n\n", buf.String())
}

func TestTPMZeroOnDegenerateInputs(t *testing.T) {
	assert.Equal(t, 0.0, TPM(1, 1, 0, 1))
	assert.Equal(t, 0.0, TPM(1, 1, 1, 0))
	assert.Greater(t, TPM(1, 1, 1, 1), 0.0)
}
