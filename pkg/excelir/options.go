package excelir

import "go.uber.org/zap"

// Options configures workbook analysis.
type Options struct {
	// MaxSampleValues caps how many sample values each column descriptor
	// keeps. If nil, defaults to 3.
	MaxSampleValues *int
	// IncludeStyles specifies whether styled ranges are extracted.
	// If nil, defaults to true.
	IncludeStyles *bool
	// IncludeCharts specifies whether charts are extracted.
	// If nil, defaults to true.
	IncludeCharts *bool
	// Author overrides the author recorded in the workbook metadata.
	Author string
	// Logger receives per-element degradation warnings. If nil, logging
	// is disabled.
	Logger *zap.Logger
}

// DefaultOptions returns default analysis options.
func DefaultOptions() Options {
	return Options{}
}

// SampleLimit returns the effective per-column sample cap.
func (o Options) SampleLimit() int {
	if o.MaxSampleValues != nil {
		return *o.MaxSampleValues
	}
	return 3
}

// ShouldIncludeStyles returns whether styled ranges are extracted.
func (o Options) ShouldIncludeStyles() bool {
	if o.IncludeStyles != nil {
		return *o.IncludeStyles
	}
	return true
}

// ShouldIncludeCharts returns whether charts are extracted.
func (o Options) ShouldIncludeCharts() bool {
	if o.IncludeCharts != nil {
		return *o.IncludeCharts
	}
	return true
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}
