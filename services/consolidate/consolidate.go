package consolidate

import (
	"context"
	"fmt"
	"time"

	"github.com/Olympedpnt/concerts-etl-sa/lib/chrono"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("services/consolidate")

// Strategy selects the decision policy used to link the two sides.
type Strategy string

const (
	// StrategyStrict links only on an exact (normalized name, rounded
	// timestamp) key.
	StrategyStrict Strategy = "strict"
	// StrategyThreshold scores day-bucket candidates and keeps the best
	// one at or above the threshold.
	StrategyThreshold Strategy = "threshold"
	// StrategyGreedy scores every unconsumed shotgun record for each dice
	// record, first-come-first-served.
	StrategyGreedy Strategy = "greedy"
)

type Options struct {
	Strategy Strategy
	// minimum rubric score a pair needs to merge, used by the threshold
	// and greedy strategies
	NameThreshold float64
	// how far apart two start times may be and still count as the same
	// slot when they fall on different days
	TimeTolerance time.Duration
}

func DefaultOptions() Options {
	return Options{
		Strategy:      StrategyGreedy,
		NameThreshold: 0.60,
		TimeTolerance: 30 * time.Minute,
	}
}

type pair struct {
	shotgun, dice int
}

// Consolidate links the two scraped sides into one row per concert. Every
// input record lands in exactly one output row, either merged with its
// counterpart or as a singleton; no record is consumed twice. The inputs
// are never mutated and identical inputs produce identical output.
func Consolidate(ctx context.Context, shotgun, dice []Event, opts Options) []Row {
	_, span := tracer.Start(ctx, "Consolidate")
	defer span.End()
	span.SetAttributes(
		attribute.Int("shotgun", len(shotgun)),
		attribute.Int("dice", len(dice)),
		attribute.String("strategy", string(opts.Strategy)),
	)

	sgProfiles := make([]profile, len(shotgun))
	for i, ev := range shotgun {
		sgProfiles[i] = newProfile(ev)
	}
	dcProfiles := make([]profile, len(dice))
	for i, ev := range dice {
		dcProfiles[i] = newProfile(ev)
	}

	var pairs []pair
	switch opts.Strategy {
	case StrategyStrict:
		pairs = matchStrict(sgProfiles, dcProfiles)
	case StrategyThreshold:
		pairs = matchThreshold(sgProfiles, dcProfiles, opts)
	default:
		pairs = matchGreedy(sgProfiles, dcProfiles, opts)
	}
	span.SetAttributes(attribute.Int("matched", len(pairs)))

	return buildRows(shotgun, dice, pairs)
}

// strictKey is the canonical exact-match key: stopword-free normalized
// name plus the start time rounded down to a 5 minute slot ("na" when
// unknown, mirroring records that never report a time).
func strictKey(p profile) string {
	ts := "na"
	if !p.start.IsZero() {
		ts = chrono.RoundSlot(p.start).Format("2006-01-02T15:04")
	}
	return fmt.Sprintf("%s|%s", dropStopTokens(p.name), ts)
}

func matchStrict(sg, dc []profile) []pair {
	index := map[string]int{}
	for i := range sg {
		key := strictKey(sg[i])
		if _, taken := index[key]; taken {
			continue
		}
		index[key] = i
	}

	usedShotgun := map[int]struct{}{}
	var pairs []pair
	for j := range dc {
		i, ok := index[strictKey(dc[j])]
		if !ok {
			continue
		}
		if _, used := usedShotgun[i]; used {
			continue
		}
		usedShotgun[i] = struct{}{}
		pairs = append(pairs, pair{shotgun: i, dice: j})
	}
	return pairs
}

func matchThreshold(sg, dc []profile, opts Options) []pair {
	// coarse candidate index: shotgun records bucketed by local day, with
	// dateless records in the "" bucket so they stay reachable
	buckets := map[string][]int{}
	for i := range sg {
		buckets[sg[i].day] = append(buckets[sg[i].day], i)
	}

	usedShotgun := map[int]struct{}{}
	var pairs []pair
	for j := range dc {
		var candidates []int
		if dc[j].day == "" {
			// a dateless dice record can sit on any day
			for i := range sg {
				candidates = append(candidates, i)
			}
		} else {
			candidates = append(append([]int{}, buckets[dc[j].day]...), buckets[""]...)
		}

		best := -1
		bestScore := 0.0
		for _, i := range candidates {
			if _, used := usedShotgun[i]; used {
				continue
			}
			s := score(sg[i], dc[j], opts.TimeTolerance)
			// strict greater-than keeps the first candidate in input
			// order on ties
			if s >= opts.NameThreshold && s > bestScore {
				best = i
				bestScore = s
			}
		}
		if best >= 0 {
			usedShotgun[best] = struct{}{}
			pairs = append(pairs, pair{shotgun: best, dice: j})
		}
	}
	return pairs
}

func matchGreedy(sg, dc []profile, opts Options) []pair {
	usedShotgun := map[int]struct{}{}
	var pairs []pair
	for j := range dc {
		best := -1
		bestScore := 0.0
		for i := range sg {
			if _, used := usedShotgun[i]; used {
				continue
			}
			s := score(sg[i], dc[j], opts.TimeTolerance)
			if s >= opts.NameThreshold && s > bestScore {
				best = i
				bestScore = s
			}
		}
		if best >= 0 {
			usedShotgun[best] = struct{}{}
			pairs = append(pairs, pair{shotgun: best, dice: j})
		}
	}
	return pairs
}

// buildRows emits one merged row per accepted pair and one singleton row
// for every record neither side consumed, then orders the table.
func buildRows(shotgun, dice []Event, pairs []pair) []Row {
	usedShotgun := map[int]struct{}{}
	usedDice := map[int]struct{}{}

	rows := make([]Row, 0, len(shotgun)+len(dice)-len(pairs))
	for _, p := range pairs {
		usedShotgun[p.shotgun] = struct{}{}
		usedDice[p.dice] = struct{}{}
		rows = append(rows, mergeRow(&shotgun[p.shotgun], &dice[p.dice]))
	}
	for i := range shotgun {
		if _, used := usedShotgun[i]; used {
			continue
		}
		rows = append(rows, mergeRow(&shotgun[i], nil))
	}
	for j := range dice {
		if _, used := usedDice[j]; used {
			continue
		}
		rows = append(rows, mergeRow(nil, &dice[j]))
	}

	SortRows(rows)
	return rows
}
