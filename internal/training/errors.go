package training

import (
	"fmt"
	"sort"
	"strings"
)

// MissingTruthColumnsError indicates truth columns required by one or more
// tasks that a dataset schema (at validation time) or a record set (at loss
// time, as a safety net) does not provide. It names every missing column and
// the tasks that reference it.
type MissingTruthColumnsError struct {
	Missing []string
	// Tasks maps each missing column to the names of the tasks referencing it.
	Tasks map[string][]string
	// Where identifies the schema or record set the columns are missing from.
	Where string
}

func (e *MissingTruthColumnsError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "missing truth column(s) in %s:", e.Where)
	missing := append([]string(nil), e.Missing...)
	sort.Strings(missing)
	for _, col := range missing {
		if tasks := e.Tasks[col]; len(tasks) > 0 {
			fmt.Fprintf(&b, " %s (required by %s)", col, strings.Join(tasks, ", "))
		} else {
			fmt.Fprintf(&b, " %s", col)
		}
	}
	return b.String()
}

// NonScalarTaskLossError indicates a task whose loss function produced a
// non-scalar value. The aggregator sums task losses into a single training
// signal; a shape mismatch here would silently corrupt gradients rather than
// fail visibly, so it is rejected as a configuration error.
type NonScalarTaskLossError struct {
	Task  string
	Shape []int
}

func (e *NonScalarTaskLossError) Error() string {
	return fmt.Sprintf("task %q: loss function returned shape %v, expected a scalar", e.Task, e.Shape)
}
