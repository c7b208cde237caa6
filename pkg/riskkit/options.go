// Package riskkit inspects workbooks produced by the spreadsheet, chart and
// preprocessing helpers of the risk model toolkit.
package riskkit

import "fmt"

// Mode represents the inspection depth.
type Mode string

const (
	// ModeLight reports cells and table candidates only.
	ModeLight Mode = "light"
	// ModeStandard adds native charts, pictures and print areas.
	ModeStandard Mode = "standard"
	// ModeVerbose adds drawing sizes and cell hyperlinks.
	ModeVerbose Mode = "verbose"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeLight, ModeStandard, ModeVerbose:
		return m, nil
	default:
		return "", fmt.Errorf("invalid mode: %s (must be light, standard, or verbose)", s)
	}
}

// Options configures inspection behavior.
type Options struct {
	Mode Mode
	// IncludeLinks defaults to true for verbose mode, false otherwise.
	IncludeLinks *bool
	// IncludePrintAreas defaults to false for light mode, true otherwise.
	IncludePrintAreas *bool
	// Sheets restricts inspection to the named sheets. Empty means all.
	Sheets []string
}

// DefaultOptions returns default inspection options.
func DefaultOptions() Options {
	return Options{
		Mode: ModeStandard,
	}
}

// ShouldIncludeLinks returns whether to include cell hyperlinks.
func (o Options) ShouldIncludeLinks() bool {
	if o.IncludeLinks != nil {
		return *o.IncludeLinks
	}
	return o.Mode == ModeVerbose
}

// ShouldIncludePrintAreas returns whether to include print areas.
func (o Options) ShouldIncludePrintAreas() bool {
	if o.IncludePrintAreas != nil {
		return *o.IncludePrintAreas
	}
	return o.Mode != ModeLight
}

func (o Options) wants(sheet string) bool {
	if len(o.Sheets) == 0 {
		return true
	}
	for _, s := range o.Sheets {
		if s == sheet {
			return true
		}
	}
	return false
}
