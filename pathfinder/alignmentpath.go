package pathfinder

import "github.com/jonassibbesen/vgprob/pathindex"

// AlignmentPath is the C5 output: one set of haplotypes an alignment (or
// merged pair) is consistent with, plus the statistics rpp.Probabilities
// needs to weigh it against the other candidate paths of the same read
// (spec.md §4.2 "ASP→AlignmentPath conversion").
type AlignmentPath struct {
	SeqLength      int
	MapqProb       float64
	ScoreSum       int
	IDs            []pathindex.PathID
	IsDisconnected bool
}
