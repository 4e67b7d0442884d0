package structdiff

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"
)

// Strategy selects the algorithm used to align sequences
type Strategy int

const (
	// StrategyClassicLCS aligns with Myers' O(ND) algorithm, producing a
	// minimal edit script in time proportional to the number of differences.
	// It's the default
	StrategyClassicLCS Strategy = iota
	// StrategyExhaustive fills a full O(NM) table, guaranteeing a minimal
	// script with earliest-source tie breaking. Only suitable for small inputs
	StrategyExhaustive
	// StrategyLibrary uses difflib's longest-matching-block heuristic. Scripts
	// are correct but may not be minimal. Only usable with the Equality
	// predicate
	StrategyLibrary
)

// String implements the fmt.Stringer interface for Strategy
func (s Strategy) String() string {
	switch s {
	case StrategyClassicLCS:
		return "classic-lcs"
	case StrategyExhaustive:
		return "exhaustive"
	case StrategyLibrary:
		return "library"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy reads a strategy name, as used in configuration files
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "classic-lcs", "classic", "myers", "lcs":
		return StrategyClassicLCS, nil
	case "exhaustive", "bruteforce":
		return StrategyExhaustive, nil
	case "library", "difflib":
		return StrategyLibrary, nil
	default:
		return StrategyClassicLCS, errors.Errorf("unknown sequence strategy %q", s)
	}
}

// TextDiffer computes a diff between two strings. Results must be sequence
// diffs over the Chars of a, with single-character text values as payloads
type TextDiffer func(a, b string) (Diff, error)

// DiffConfig are any possible configuration parameters for calculating diffs
type DiffConfig struct {
	// Strategy used to align sequences, defaults to StrategyClassicLCS
	Strategy Strategy
	// Registry of per-path predicates & differs, nil uses defaults everywhere
	Registry *PathRegistry
	// TextDiffer computes diffs of text values, defaults to DiffGraphemes
	TextDiffer TextDiffer
	// Logger receives debug output, defaults to discarding
	Logger logr.Logger
	// Provide a non-nil stats pointer & diff will populate it with data from
	// the diff process
	Stats *Stats
}

// DiffOption is a function that adjust a config, zero or more DiffOptions
// can be passed to the New function
type DiffOption func(cfg *DiffConfig)

// OptionStrategy sets the sequence alignment strategy
func OptionStrategy(s Strategy) DiffOption {
	return func(cfg *DiffConfig) {
		cfg.Strategy = s
	}
}

// OptionRegistry sets the path registry consulted at every level
func OptionRegistry(reg *PathRegistry) DiffOption {
	return func(cfg *DiffConfig) {
		cfg.Registry = reg
	}
}

// OptionTextDiffer sets the differ used for pairs of text values
func OptionTextDiffer(td TextDiffer) DiffOption {
	return func(cfg *DiffConfig) {
		cfg.TextDiffer = td
	}
}

// OptionLogger sets a logger for debug output
func OptionLogger(l logr.Logger) DiffOption {
	return func(cfg *DiffConfig) {
		cfg.Logger = l
	}
}

// OptionSetStats will set the passed-in stats pointer when Diff is called. A
// differ with stats must not be used from multiple goroutines at once
func OptionSetStats(st *Stats) DiffOption {
	return func(cfg *DiffConfig) {
		cfg.Stats = st
	}
}

// Differ calculates structural diffs. A Differ holds only immutable
// configuration and may be shared between goroutines, unless it was created
// with OptionSetStats
type Differ struct {
	cfg DiffConfig
	log logr.Logger
}

// New creates a Differ, applying options over the default configuration
func New(opts ...DiffOption) *Differ {
	cfg := DiffConfig{
		Strategy:   StrategyClassicLCS,
		TextDiffer: DiffGraphemes,
		Logger:     logr.Discard(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.TextDiffer == nil {
		cfg.TextDiffer = DiffGraphemes
	}
	return &Differ{cfg: cfg, log: cfg.Logger.WithName("structdiff")}
}

// Config returns a copy of the differ's configuration
func (d *Differ) Config() DiffConfig { return d.cfg }

// Registry returns the path registry in use, which may be nil
func (d *Differ) Registry() *PathRegistry { return d.cfg.Registry }

// Diff computes an edit script that turns a into b, starting at the root
// path. a and b must both be sequences, mappings, or text. An empty result
// means the values are equal
func (d *Differ) Diff(a, b Value) (Diff, error) {
	diff, err := d.DiffAt(a, b, "")
	if err != nil {
		d.log.V(1).Info("diff failed", "error", err.Error())
		return nil, err
	}
	if d.cfg.Stats != nil {
		*d.cfg.Stats = CalcStats(a, b, diff)
	}
	d.log.V(2).Info("diff complete", "entries", len(diff))
	return diff, nil
}

// DiffAt computes the diff of two values found at path, consulting the
// registry for rules below it. Override differs call DiffAt to recurse with
// default behaviour
func (d *Differ) DiffAt(a, b Value, path string) (Diff, error) {
	switch {
	case a.Kind() == KindSequence && b.Kind() == KindSequence:
		return d.DiffLists(a, b, path)
	case a.Kind() == KindMapping && b.Kind() == KindMapping:
		return d.DiffDicts(a, b, path)
	case a.Kind() == KindText && b.Kind() == KindText:
		diff, err := d.DiffText(a.Text(), b.Text())
		return diff, errors.Wrapf(err, "at %q", displayPath(path))
	default:
		return nil, errors.Wrapf(ErrUnsupportedValueKind, "at %q: can't diff %s and %s", displayPath(path), a.Kind(), b.Kind())
	}
}

// DiffText computes a character-level diff of two strings with the
// configured TextDiffer, validating its result
func (d *Differ) DiffText(a, b string) (Diff, error) {
	if a == b {
		return nil, nil
	}
	diff, err := d.cfg.TextDiffer(a, b)
	if err != nil {
		return nil, err
	}
	if err := Validate(Text(a), diff); err != nil {
		return nil, errors.Wrap(err, "text differ")
	}
	if len(diff) == 0 {
		return nil, nil
	}
	return diff, nil
}

// diffWith runs the differ registered at path. Results of custom differs are
// validated against a before they're patched into the enclosing diff
func (d *Differ) diffWith(a, b Value, path string) (Diff, error) {
	reg := d.cfg.Registry
	sub, err := reg.DifferAt(path)(d, a, b, path)
	if err != nil {
		return nil, err
	}
	if reg.HasDiffer(path) {
		if err := Validate(a, sub); err != nil {
			d.log.V(1).Info("invalid diff from registered differ", "path", displayPath(path), "error", err.Error())
			return nil, errors.Wrapf(err, "differ registered at %q", displayPath(path))
		}
	}
	return sub, nil
}

// diffable is true for pairs the structural differ can descend into
func diffable(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case KindSequence, KindMapping, KindText:
		return true
	default:
		return false
	}
}

func displayPath(path string) string {
	if path == "" {
		return "/"
	}
	return path
}
