// Package profiler implements the benchmark/profile sink (spec.md §6, C9):
// a line-oriented file format — partition config, benchmark config, then
// one JSON object per round — recording per-unit timed events from the
// parallel scheduler (package parsolver).
//
// Grounded on junjiewwang-perf-analysis/pkg/parallel's PoolMetrics (timed
// task accounting), adapted from aggregate pool statistics to the
// per-round, per-unit event_time_vec shape spec.md §6 names.
package profiler

import (
	"sort"

	"github.com/qecsim/fusionmatch/parsolver"
)

// EventTime is one unit's scheduled interval (spec.md §6
// "solver_profile.primal.event_time_vec").
type EventTime struct {
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
	ThreadIndex int     `json:"thread_index"`
}

// PrimalProfile holds the primal module's timed events for one round.
type PrimalProfile struct {
	EventTimeVec []EventTime `json:"event_time_vec"`
}

// SolverProfile is the per-round solver-internal profile.
type SolverProfile struct {
	Primal PrimalProfile `json:"primal"`
}

// RoundEvents records whether a round's result was independently verified
// and whether decoding completed (spec.md §6 "events: {verified, decoded}").
type RoundEvents struct {
	Verified bool `json:"verified"`
	Decoded  bool `json:"decoded"`
}

// Round is one profile-file JSON line (spec.md §6).
type Round struct {
	RoundTime     float64       `json:"round_time"`
	Events        RoundEvents   `json:"events"`
	SolverProfile SolverProfile `json:"solver_profile"`
	DefectNum     int           `json:"defect_num"`
}

// EventTimeVec converts a Scheduler run's per-unit events into the
// profile format's event_time_vec: units are assigned synthetic start/end
// offsets by scheduling level (deepest first, matching parsolver.Scheduler's
// actual execution order), and a thread_index by position within their
// level modulo maxWorkers — real wall-clock durations, synthetic
// timeline, since the worker pool does not expose each goroutine's
// absolute start time.
func EventTimeVec(events []parsolver.UnitEvent, maxWorkers int) []EventTime {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}

	byDepth := make(map[int][]parsolver.UnitEvent)
	var depths []int
	for _, e := range events {
		if _, ok := byDepth[e.Depth]; !ok {
			depths = append(depths, e.Depth)
		}
		byDepth[e.Depth] = append(byDepth[e.Depth], e)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(depths)))

	var out []EventTime
	var cursor float64
	for _, d := range depths {
		level := byDepth[d]
		var levelMax float64
		for i, e := range level {
			dur := e.Duration.Seconds()
			out = append(out, EventTime{Start: cursor, End: cursor + dur, ThreadIndex: i % maxWorkers})
			if dur > levelMax {
				levelMax = dur
			}
		}
		cursor += levelMax
	}
	return out
}
