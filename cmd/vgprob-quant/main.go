// vgprob-quant quantifies transcript abundance from RNA-seq alignments
// mapped onto a sequence-variation graph.
//
// This binary wires the core (APM, PIE, NUM) to a toy in-memory
// haplotype index and a handful of synthetic alignments, since a real
// alignment reader and graph/haplotype index loader are external
// collaborators out of this module's scope. It demonstrates the full
// data flow: alignments -> pathfinder.Finder -> rpp.Probabilities ->
// cluster.Run -> output writers.
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"

	"github.com/google/uuid"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/base/vcontext"

	"github.com/jonassibbesen/vgprob/align"
	"github.com/jonassibbesen/vgprob/cluster"
	"github.com/jonassibbesen/vgprob/config"
	"github.com/jonassibbesen/vgprob/output"
	"github.com/jonassibbesen/vgprob/pathfinder"
	"github.com/jonassibbesen/vgprob/pathindex"
	"github.com/jonassibbesen/vgprob/qlog"
	"github.com/jonassibbesen/vgprob/rpp"
)

var (
	matrixOutputPath    string
	estimatesOutputPath string
	gzipMatrix          bool
	numGibbsSamples     int
	groupSize           int
	randomSeed          int64
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: vgprob-quant [flags]")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	cfg := config.Default
	flag.StringVar(&matrixOutputPath, "matrix-output", "./matrix.txt", "Path to the collapsed probability matrix output.")
	flag.StringVar(&estimatesOutputPath, "estimates-output", "./estimates.tsv", "Path to the TSV estimates output.")
	flag.BoolVar(&gzipMatrix, "gzip", false, "Gzip-compress the collapsed probability matrix output.")
	flag.IntVar(&numGibbsSamples, "num-gibbs-samples", cfg.NumGibbsSamples, "Number of Gibbs read-count samples to draw per cluster (0 disables).")
	flag.IntVar(&groupSize, "group-size", cfg.GroupSize, "Diplotype/ploidy group size for exact posteriors (0 disables).")
	flag.Int64Var(&randomSeed, "seed", cfg.RandomSeed, "PRNG seed; same seed and inputs reproduce identical output.")
	flag.Parse()

	cfg.NumGibbsSamples = numGibbsSamples
	cfg.GroupSize = groupSize
	cfg.RandomSeed = randomSeed

	ctx := vcontext.Background()
	runID := uuid.New().String()
	qlog.Infof("run %s: starting vgprob-quant", runID)

	idx, paths, pathIDToCol := buildDemoIndex()
	clusters := buildDemoClusters()

	matrixWriter, err := output.NewMatrixWriter(ctx, matrixOutputPath, cfg.ProbPrecision, gzipMatrix)
	if err != nil {
		qlog.Fatalf("run %s: opening matrix output: %v", runID, err)
	}
	estimatesWriter, err := output.NewEstimatesWriter(ctx, estimatesOutputPath)
	if err != nil {
		qlog.Fatalf("run %s: opening estimates output: %v", runID, err)
	}
	if err := estimatesWriter.WriteHeader(); err != nil {
		qlog.Fatalf("run %s: writing estimates header: %v", runID, err)
	}

	results := make([]cluster.Estimate, len(clusters))
	err = traverse.Each(len(clusters), func(i int) error {
		c := clusters[i]
		finder := pathfinder.New(idx, cfg.PathfinderConfig())
		collapser := rpp.NewCollapser()
		for _, a := range c.reads {
			apaths, ferr := finder.FindAlignmentPaths(a)
			if ferr != nil {
				qlog.Recoverablef("run %s: cluster %s: skipping read: %v", runID, c.id, ferr)
				continue
			}
			if p := alignmentPathsToProbabilities(apaths, cfg.ProbPrecision); p != nil {
				collapser.Add(p)
			}
		}

		rng := rand.New(rand.NewSource(cfg.RandomSeed + int64(i)))
		est := cluster.Run(collapser.Collapsed(), paths, pathIDToCol, cfg.ClusterConfig(), rng)
		results[i] = est
		return nil
	})
	if err != nil {
		qlog.Fatalf("run %s: cluster fan-out: %v", runID, err)
	}

	for i, c := range clusters {
		est := results[i]
		if err := writeClusterOutputs(matrixWriter, estimatesWriter, c.id, est); err != nil {
			qlog.Fatalf("run %s: writing cluster %s: %v", runID, c.id, err)
		}
	}

	if err := matrixWriter.Close(ctx); err != nil {
		qlog.Fatalf("run %s: closing matrix output: %v", runID, err)
	}
	if err := estimatesWriter.Close(ctx); err != nil {
		qlog.Fatalf("run %s: closing estimates output: %v", runID, err)
	}
	qlog.Infof("run %s: done, %d clusters", runID, len(clusters))
}

// alignmentPathsToProbabilities assigns noise and per-path probability
// mass to one read's candidate AlignmentPaths: mapq_prob (the chance the
// alignment is simply wrong) becomes noise, and the remaining mass splits
// across groups in proportion to each group's relative score, following
// the data-flow note in spec.md §2 that C6 "assigns probabilities (noise
// + per-path)" from C5's output. Reads with no surviving candidate path
// are dropped rather than forced into a noise-only row.
func alignmentPathsToProbabilities(apaths []pathfinder.AlignmentPath, precision float64) *rpp.Probabilities {
	if len(apaths) == 0 {
		return nil
	}
	bestScore := apaths[0].ScoreSum
	noise := 0.0
	for _, ap := range apaths {
		if ap.ScoreSum > bestScore {
			bestScore = ap.ScoreSum
		}
		if ap.MapqProb > noise {
			noise = ap.MapqProb
		}
	}
	weights := make([]float64, len(apaths))
	sum := 0.0
	for i, ap := range apaths {
		weights[i] = math.Exp(float64(ap.ScoreSum - bestScore))
		sum += weights[i]
	}
	pathProbs := map[float64][]pathindex.PathID{}
	remaining := 1 - noise
	for i, ap := range apaths {
		if sum == 0 || len(ap.IDs) == 0 {
			continue
		}
		prob := remaining * weights[i] / sum
		pathProbs[prob] = append(pathProbs[prob], ap.IDs...)
	}
	return rpp.New(noise, pathProbs, precision)
}

func writeClusterOutputs(mw output.MatrixWriter, ew output.EstimatesWriter, clusterID string, est cluster.Estimate) error {
	rows := make([]output.MatrixRow, 0)
	if err := mw.WriteCluster(clusterID, est.Paths, rows); err != nil {
		return err
	}

	total := 0.0
	for j := range est.Paths {
		total += est.Abundances.AtVec(j)
	}
	sumRatio := 0.0
	for j, p := range est.Paths {
		if p.EffectiveLength > 0 {
			sumRatio += est.Abundances.AtVec(j) / p.EffectiveLength
		}
	}
	for j, p := range est.Paths {
		count := est.Abundances.AtVec(j)
		relExpr := 0.0
		if total > 0 {
			relExpr = count / total
		}
		row := output.EstimateRow{
			Name:                      p.Name,
			ClusterID:                 clusterID,
			Length:                    p.Length,
			EffectiveLength:           p.EffectiveLength,
			HaplotypeProbability:      1,
			ClusterRelativeExpression: relExpr,
			ReadCount:                 count,
			TPM:                       output.TPM(relExpr, count, p.EffectiveLength, sumRatio),
		}
		if err := ew.WriteRow(row); err != nil {
			return err
		}
	}
	return nil
}

type demoCluster struct {
	id    string
	reads []align.Alignment
}

// buildDemoIndex constructs a tiny 4-node graph (chain edges 1->2->3->4)
// with two haplotypes, isoform.1 over all four nodes and isoform.2
// skipping node 3 (its 2->4 step is not listed in edges), standing in for a real GBWT/xg-style index (an external
// collaborator per spec.md §6).
func buildDemoIndex() (pathindex.Index, []cluster.PathInfo, map[pathindex.PathID]int) {
	f := func(id int64) pathindex.Handle { return pathindex.NewHandle(id, false) }
	nodeLengths := map[pathindex.Handle]uint64{
		f(1): 50, f(2): 50, f(3): 50, f(4): 50,
	}
	edges := map[pathindex.Handle][]pathindex.Edge{
		f(1): {{To: f(2)}},
		f(2): {{To: f(3)}},
		f(3): {{To: f(4)}},
	}
	haplotypes := [][]pathindex.Handle{
		{f(1), f(2), f(3), f(4)},
		{f(1), f(2), f(4)},
	}
	idx := pathindex.NewMemoryIndex(nodeLengths, edges, haplotypes, true)

	paths := []cluster.PathInfo{
		{Name: "isoform.1", Length: 200, EffectiveLength: 150},
		{Name: "isoform.2", Length: 150, EffectiveLength: 100},
	}
	pathIDToCol := map[pathindex.PathID]int{0: 0, 1: 1}
	return idx, paths, pathIDToCol
}

// buildDemoClusters synthesizes one locus's worth of single-end reads:
// two unambiguously on isoform.1 (spans node 3), one compatible with
// both isoforms (nodes 1-2 only).
func buildDemoClusters() []demoCluster {
	read := func(nodes ...int64) align.Alignment {
		mappings := make([]align.Mapping, len(nodes))
		for i, n := range nodes {
			mappings[i] = align.Mapping{Node: pathindex.NewHandle(n, false), FromLength: 50, ToLength: 50}
		}
		return &align.Single{
			SeqLength: 50 * len(nodes),
			Mapq:      60,
			Mappings:  mappings,
		}
	}
	return []demoCluster{
		{
			id: "locus.1",
			reads: []align.Alignment{
				read(1, 2, 3),
				read(3, 4),
				read(1, 2),
			},
		},
	}
}
