package fluxcodec

/*--------------------------------------------------------------------------------
 *
 * Purpose:	Surface handler warnings (timing deviation, reconstruction)
 *		through a callback, never as an error (§7). The teacher's
 *		C-heritage code prints straight to the terminal via
 *		dw_printf/text_color_set; the idiomatic replacement here is
 *		charmbracelet/log, which the module already depends on.
 *
 *--------------------------------------------------------------------------------*/

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// WarningKind classifies a non-fatal condition a handler surfaces during
// decode.
type WarningKind int

const (
	WarningTimingDeviation WarningKind = iota
	WarningReconstructed
)

// Warning is the structured form of a handler warning. Message is the
// rendered, human-readable text; callers that only want to log can ignore
// every other field.
type Warning struct {
	Kind    WarningKind
	Format  FormatTag
	Sector  int
	Percent float64
	Message string
}

// Warner receives warnings as a handler produces them. It must not block
// or panic; handlers call it synchronously from within Decode/Encode.
type Warner interface {
	Warn(w Warning)
}

// LogWarner adapts a *log.Logger (charmbracelet/log) into a Warner.
type LogWarner struct {
	Logger *log.Logger
}

// NewLogWarner returns a LogWarner around the given logger, or the package
// default logger if l is nil.
func NewLogWarner(l *log.Logger) *LogWarner {
	if l == nil {
		l = log.Default()
	}

	return &LogWarner{Logger: l}
}

func (lw *LogWarner) Warn(w Warning) {
	lw.Logger.Warn(w.Message, "format", w.Format, "sector", w.Sector, "percent", w.Percent)
}

// discardWarner is used where a caller passes a nil Warner; it drops every
// warning, matching "warnings are never errors" (§7) even when nobody is
// listening.
type discardWarner struct{}

func (discardWarner) Warn(Warning) {}

func warnerOrDiscard(w Warner) Warner {
	if w == nil {
		return discardWarner{}
	}

	return w
}

func sectorTimingWarning(format FormatTag, sector int, percent float64) Warning {
	var sign = "Short"
	if percent > 0 {
		sign = "Long"
	}

	return Warning{
		Kind:    WarningTimingDeviation,
		Format:  format,
		Sector:  sector,
		Percent: percent,
		Message: fmt.Sprintf("%s sector is only %+.2f%% different", sign, percent),
	}
}
