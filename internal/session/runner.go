package session

import (
	"fmt"
	"io"
	"sort"

	"github.com/emistat-io/emistat/internal/engine"
	"github.com/emistat-io/emistat/internal/series"
)

// Event statuses. Empty results, "nothing to undo", and unavailable sector
// aggregation are normal observable outcomes; only invalid arguments and
// consistency breaches surface as StatusError.
const (
	StatusOK            = "ok"
	StatusEmpty         = "empty"
	StatusNothingToUndo = "nothing_to_undo"
	StatusUnavailable   = "unavailable"
	StatusError         = "error"
)

// Event records the outcome of one scripted operation.
type Event struct {
	Seq     int                  `json:"seq"`
	Op      string               `json:"op"`
	Args    string               `json:"args,omitempty"`
	Status  string               `json:"status"`
	Detail  string               `json:"detail,omitempty"`
	Records []series.Observation `json:"records,omitempty"`
	Total   *float64             `json:"total,omitempty"`
	Ranked  []engine.Ranked      `json:"ranked,omitempty"`
	Sectors map[string]float64   `json:"sectors,omitempty"`
	Undone  *engine.UndoResult   `json:"undone,omitempty"`
}

// Transcript is the ordered record of a script execution.
type Transcript struct {
	Script string  `json:"script"`
	Events []Event `json:"events"`
}

// Failed reports whether any event ended in StatusError.
func (t *Transcript) Failed() bool {
	for _, e := range t.Events {
		if e.Status == StatusError {
			return true
		}
	}
	return false
}

// Run executes every operation of the script, in order, against the
// analyzer. Operation-level failures are recorded in the transcript and do
// not stop execution; only a script that slipped past validation with an
// unknown op aborts the run.
func Run(a *engine.Analyzer, script *Script) (*Transcript, error) {
	tr := &Transcript{Script: script.Name}

	for i, op := range script.Ops {
		ev := Event{Seq: i + 1, Op: op.Op}

		switch op.Op {
		case OpSearch, OpTrend:
			ev.Args = "country=" + op.Country
			var records []series.Observation
			if op.Op == OpTrend {
				records = a.Trend(op.Country)
			} else {
				records = a.SearchCountry(op.Country)
			}
			if len(records) == 0 {
				ev.Status = StatusEmpty
			} else {
				ev.Status = StatusOK
				ev.Records = records
			}

		case OpTotal:
			ev.Args = fmt.Sprintf("year=%d", op.Year)
			if total, ok := a.YearlyTotal(op.Year); ok {
				ev.Status = StatusOK
				ev.Total = &total
			} else {
				ev.Status = StatusEmpty
			}

		case OpTop:
			ev.Args = fmt.Sprintf("year=%d n=%d", op.Year, op.N)
			ranked, err := a.TopN(op.Year, op.N)
			switch {
			case err != nil:
				ev.Status = StatusError
				ev.Detail = err.Error()
			case len(ranked) == 0:
				ev.Status = StatusEmpty
			default:
				ev.Status = StatusOK
				ev.Ranked = ranked
			}

		case OpSectors:
			if op.Column != "" {
				ev.Args = "column=" + op.Column
			}
			sums, err := a.SectorAggregate(op.Column)
			switch {
			case engine.IsColumnUnavailable(err):
				ev.Status = StatusUnavailable
				ev.Detail = err.Error()
			case err != nil:
				ev.Status = StatusError
				ev.Detail = err.Error()
			default:
				ev.Status = StatusOK
				ev.Sectors = sums
			}

		case OpInsert:
			ev.Args = fmt.Sprintf("country=%s year=%d emission=%.2f", op.Country, op.Year, op.Emission)
			a.Insert(op.Country, op.Year, op.Emission)
			ev.Status = StatusOK

		case OpUndo:
			res, err := a.Undo()
			switch {
			case err != nil:
				ev.Status = StatusError
				ev.Detail = err.Error()
			case !res.Undone:
				ev.Status = StatusNothingToUndo
			default:
				ev.Status = StatusOK
				ev.Undone = &res
			}

		default:
			return nil, fmt.Errorf("unknown op %q at index %d", op.Op, i)
		}

		tr.Events = append(tr.Events, ev)
	}

	return tr, nil
}

// RenderText writes the transcript in a fixed human-readable layout.
// The layout is deterministic (stable ordering, %.2f emissions) so golden
// files can compare against it byte for byte.
func (t *Transcript) RenderText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "session %s\n", t.Script); err != nil {
		return err
	}

	for _, e := range t.Events {
		if e.Args != "" {
			fmt.Fprintf(w, "[%d] %s %s\n", e.Seq, e.Op, e.Args)
		} else {
			fmt.Fprintf(w, "[%d] %s\n", e.Seq, e.Op)
		}

		switch e.Status {
		case StatusOK:
			renderOK(w, e)
		case StatusEmpty:
			fmt.Fprintln(w, "    empty")
		case StatusNothingToUndo:
			fmt.Fprintln(w, "    nothing to undo")
		case StatusUnavailable:
			fmt.Fprintf(w, "    unavailable: %s\n", e.Detail)
		case StatusError:
			fmt.Fprintf(w, "    error: %s\n", e.Detail)
		}
	}
	return nil
}

func renderOK(w io.Writer, e Event) {
	switch {
	case e.Records != nil:
		fmt.Fprintf(w, "    ok: records=%d\n", len(e.Records))
		for _, r := range e.Records {
			fmt.Fprintf(w, "      %d: %.2f Mt\n", r.Year, r.Emission)
		}
	case e.Total != nil:
		fmt.Fprintf(w, "    ok: total=%.2f Mt\n", *e.Total)
	case e.Ranked != nil:
		fmt.Fprintf(w, "    ok: ranked=%d\n", len(e.Ranked))
		for i, r := range e.Ranked {
			fmt.Fprintf(w, "      %d. %s: %.2f Mt\n", i+1, r.Country, r.Emission)
		}
	case e.Sectors != nil:
		fmt.Fprintf(w, "    ok: sectors=%d\n", len(e.Sectors))
		keys := make([]string, 0, len(e.Sectors))
		for k := range e.Sectors {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "      %s: %.2f Mt\n", k, e.Sectors[k])
		}
	case e.Undone != nil:
		fmt.Fprintf(w, "    ok: removed %s %d (%.2f Mt)\n", e.Undone.Country, e.Undone.Year, e.Undone.Emission)
	default:
		fmt.Fprintln(w, "    ok")
	}
}
