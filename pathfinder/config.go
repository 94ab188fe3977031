package pathfinder

// LibraryType is one of the three strandedness conventions spec.md §4.2
// names for extending an alignment through the index.
type LibraryType string

const (
	FR          LibraryType = "fr"
	RF          LibraryType = "rf"
	Unstranded  LibraryType = "unstranded"
)

// Config holds the per-run knobs spec.md §6 lists for APM. It mirrors
// fusion.Opts's style: one flat struct, a package-level Default, no
// builder layer.
type Config struct {
	LibraryType        LibraryType
	MaxPairFragLength  int
	MaxInternalOffset  int
	MinMapqFilter      int
	MinBestScoreFilter float64
	MaxSoftclipFilter  float64

	// MaxScoreDiff fixes the "open question" of spec.md §9: the source's
	// scorePrecision(double_precision) epsilon becomes this explicit
	// threshold.
	MaxScoreDiff float64

	// DisconnectedScoreDiffMultiplier widens MaxScoreDiff for alignment
	// groups flagged IsDisconnected, resolving the second open question
	// of spec.md §9 (see SPEC_FULL.md §4.8): disconnection relaxes,
	// rather than suppresses, the score-diff filter, since a
	// deliberately broken subpath should not be penalized relative to a
	// connected one when comparing best-scoring groups.
	DisconnectedScoreDiffMultiplier float64
}

// Default matches the numbers referenced in spec.md §9 and standard vg
// defaults for the filters that spec.md leaves to the caller.
var Default = Config{
	LibraryType:                     Unstranded,
	MaxPairFragLength:               1000,
	MaxInternalOffset:               0,
	MinMapqFilter:                   0,
	MinBestScoreFilter:              0,
	MaxSoftclipFilter:               1,
	MaxScoreDiff:                    1e-8,
	DisconnectedScoreDiffMultiplier: 10,
}
