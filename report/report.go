package report

import (
	"encoding/json"
	"errors"
	"fmt"

	"codeberg.org/iklabib/metriccull/model"
	"github.com/elastic/go-ucfg"
)

var (
	ErrEmptyInput = errors.New("empty input")
	ErrNotObject  = errors.New("report is not a JSON object")
	ErrNotNumber  = errors.New("not a number")
)

// fields read from a report, ucfg would otherwise coerce "2000" and null
var numericFields = []string{"total_time_ms", "peak_memory_kb"}

// Decode parses a run report. Missing fields stay zero and unknown fields
// are ignored.
func Decode(buf []byte) (model.Report, error) {
	var rep model.Report

	if len(buf) == 0 {
		return rep, ErrEmptyInput
	}

	var fields map[string]any
	if err := json.Unmarshal(buf, &fields); err != nil {
		// arrays and scalars are valid JSON but not reports
		if json.Valid(buf) {
			return rep, ErrNotObject
		}
		return rep, fmt.Errorf("invalid report: %w", err)
	}

	if fields == nil {
		return rep, ErrNotObject
	}

	for _, name := range numericFields {
		v, ok := fields[name]
		if !ok {
			continue
		}
		if _, isNumber := v.(float64); !isNumber {
			return rep, fmt.Errorf("invalid report: %s: %w", name, ErrNotNumber)
		}
	}

	cfg, err := ucfg.NewFrom(fields)
	if err != nil {
		return rep, fmt.Errorf("invalid report: %w", err)
	}

	if err := cfg.Unpack(&rep); err != nil {
		return rep, fmt.Errorf("failed to unpack report: %w", err)
	}

	return rep, nil
}
