package dataset

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/graphtrain/internal/ctxlog"
	"github.com/vk/graphtrain/internal/expr"
)

// Partition is a compiled selection predicate bound to a seed. Membership is
// a pure function of the event index, so a partition is reproducible across
// runs of the same schema and seed.
type Partition struct {
	Name string
	pred *expr.Predicate
	seed int64
}

// Contains reports whether the given event index belongs to the partition.
func (p *Partition) Contains(index int64) (bool, error) {
	return p.pred.Match(index, p.seed)
}

// ResolveSelection compiles every named partition predicate of the schema
// and binds it to the given seed. Two calls with the same schema and seed
// produce identical partitions.
func ResolveSelection(s *Schema, seed int64) (map[string]*Partition, error) {
	parts := make(map[string]*Partition, len(s.Selection))
	for name, src := range s.Selection {
		p, err := expr.CompilePredicate(src, s.IndexColumn)
		if err != nil {
			return nil, fmt.Errorf("partition %q: %w", name, err)
		}
		parts[name] = &Partition{Name: name, pred: p, seed: seed}
	}
	return parts, nil
}

// VerifyPartitions evaluates every partition over a probe domain of indices
// [0, probe) and fails if two partitions ever claim the same index. Indices
// claimed by no partition are reported as a warning only, since intentional
// exclusion of events is a supported configuration.
func VerifyPartitions(ctx context.Context, parts map[string]*Partition, probe int64) error {
	names := make([]string, 0, len(parts))
	for name := range parts {
		names = append(names, name)
	}
	sort.Strings(names)

	var uncovered int64
	for index := int64(0); index < probe; index++ {
		owner := ""
		for _, name := range names {
			match, err := parts[name].Contains(index)
			if err != nil {
				return fmt.Errorf("partition %q: %w", name, err)
			}
			if !match {
				continue
			}
			if owner != "" {
				return fmt.Errorf("partitions %q and %q are not disjoint: both match index %d", owner, name, index)
			}
			owner = name
		}
		if owner == "" {
			uncovered++
		}
	}

	if uncovered > 0 {
		ctxlog.FromContext(ctx).Warn("Some indices are matched by no partition.",
			"uncovered", uncovered, "probe", probe)
	}
	return nil
}
