package query

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/nodeadmin/elreasoner/abox"
	"github.com/nodeadmin/elreasoner/ontology"
)

// Evaluate translates q into a Plan and runs it as a nested-loop join
// against sat's two in-memory tables, with a hash index on each join/
// filter column so a step's candidate rows are looked up rather than
// scanned in full wherever a constraining value is already known. ctx is
// checked between join steps so a caller can cancel evaluation over a
// very large saturated ABox; cancellation does not change result
// semantics, only when evaluation gives up.
func Evaluate(ctx context.Context, sat *abox.Saturation, arena *ontology.Arena, q *Query) ([]Row, error) {
	plan, err := translate(q, arena)
	if err != nil {
		return nil, err
	}

	idx := buildIndexes(sat)
	bindings := []binding{make(binding)}
	for _, step := range plan.steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		bindings = idx.joinStep(step, bindings)
		if len(bindings) == 0 {
			break
		}
	}

	rows := materialize(bindings, plan.projection, arena)
	rows = dedupe(rows, plan)
	orderRows(rows, plan.orderBy)
	rows = paginate(rows, plan.limit, plan.offset)
	return rows, nil
}

// binding is one partial variable assignment, the Go analogue of the
// teacher's Mu mapping — but keyed by variable name to ontology.Entity
// rather than Term to Term, since every bound value here is always a
// ground entity handle, never an unresolved term.
type binding map[string]ontology.Entity

func (b binding) clone() binding {
	out := make(binding, len(b)+2)
	for k, v := range b {
		out[k] = v
	}
	return out
}

// indexes are hash lookups over a Saturation's two tables, built once per
// Evaluate call and consulted by every join step instead of a full scan
// whenever a step already has a constraining column value.
type indexes struct {
	sat *abox.Saturation

	caByIndividual map[ontology.Entity][]int
	caByClass      map[ontology.Entity][]int

	paByProperty map[ontology.Entity][]int
	paByLeft     map[ontology.Entity][]int
	paByRight    map[ontology.Entity][]int
}

func buildIndexes(sat *abox.Saturation) *indexes {
	idx := &indexes{
		sat:            sat,
		caByIndividual: make(map[ontology.Entity][]int),
		caByClass:      make(map[ontology.Entity][]int),
		paByProperty:   make(map[ontology.Entity][]int),
		paByLeft:       make(map[ontology.Entity][]int),
		paByRight:      make(map[ontology.Entity][]int),
	}
	for i, row := range sat.ClassAssertions {
		idx.caByIndividual[row.Individual] = append(idx.caByIndividual[row.Individual], i)
		idx.caByClass[row.Class] = append(idx.caByClass[row.Class], i)
	}
	for i, row := range sat.PropertyAssertions {
		idx.paByProperty[row.Property] = append(idx.paByProperty[row.Property], i)
		idx.paByLeft[row.Left] = append(idx.paByLeft[row.Left], i)
		idx.paByRight[row.Right] = append(idx.paByRight[row.Right], i)
	}
	return idx
}

// joinStep extends every binding in prior with every row of step's table
// that is compatible with both step's constant filters and prior's
// already-bound join columns, returning the expanded binding set.
func (idx *indexes) joinStep(step *scanStep, prior []binding) []binding {
	if step.impossible {
		return nil
	}

	var out []binding
	for _, b := range prior {
		constraints := make(map[string]ontology.Entity, len(step.filters)+len(step.joins))
		for col, e := range step.filters {
			constraints[col] = e
		}
		ok := true
		for col, v := range step.joins {
			e, bound := b[v]
			if !bound {
				ok = false
				break
			}
			constraints[col] = e
		}
		if !ok {
			continue
		}

		for _, rowIdx := range idx.candidates(step.table, constraints) {
			ext, matched := idx.extend(step, rowIdx, constraints, b)
			if matched {
				out = append(out, ext)
			}
		}
	}
	return out
}

// candidates returns the row indices of step's table most likely to
// satisfy constraints, preferring whichever column already has a known
// value so the lookup is a hash hit rather than a full scan. extend still
// re-checks every constraint, so picking any one indexed column is always
// safe — it only affects how large the candidate set is, never
// correctness.
func (idx *indexes) candidates(t table, constraints map[string]ontology.Entity) []int {
	switch t {
	case classAssertionTable:
		if e, ok := constraints[colIndividual]; ok {
			return idx.caByIndividual[e]
		}
		if e, ok := constraints[colClassName]; ok {
			return idx.caByClass[e]
		}
		out := make([]int, len(idx.sat.ClassAssertions))
		for i := range out {
			out[i] = i
		}
		return out
	default:
		if e, ok := constraints[colObjectProperty]; ok {
			return idx.paByProperty[e]
		}
		if e, ok := constraints[colLeftIndividual]; ok {
			return idx.paByLeft[e]
		}
		if e, ok := constraints[colRightIndividual]; ok {
			return idx.paByRight[e]
		}
		out := make([]int, len(idx.sat.PropertyAssertions))
		for i := range out {
			out[i] = i
		}
		return out
	}
}

func (idx *indexes) extend(step *scanStep, rowIdx int, constraints map[string]ontology.Entity, prior binding) (binding, bool) {
	var cols map[string]ontology.Entity
	switch step.table {
	case classAssertionTable:
		row := idx.sat.ClassAssertions[rowIdx]
		cols = map[string]ontology.Entity{colIndividual: row.Individual, colClassName: row.Class}
	default:
		row := idx.sat.PropertyAssertions[rowIdx]
		cols = map[string]ontology.Entity{colObjectProperty: row.Property, colLeftIndividual: row.Left, colRightIndividual: row.Right}
	}

	for col, want := range constraints {
		if cols[col] != want {
			return nil, false
		}
	}

	out := prior.clone()
	for col, v := range step.binds {
		out[v] = cols[col]
	}
	return out, true
}

// materialize converts bound entity handles into the string values exposed
// in a Row. An individual minted during normalization (never present in
// the source ontology, so its arena-assigned IRI is an internal auxiliary
// name like "I_3") is surfaced as a synthetic blank-node identifier instead
// of leaking that internal name — a fresh one for each occurrence in each
// row, so the same individual gets a different identifier every time, since nothing
// downstream needs it to be stable across separate Evaluate calls.
func materialize(bindings []binding, projection []string, arena *ontology.Arena) []Row {
	rows := make([]Row, 0, len(bindings))
	for _, b := range bindings {
		row := make(Row, len(projection))
		for _, v := range projection {
			e, ok := b[v]
			if !ok {
				continue
			}
			if e.Kind() == ontology.Individual && arena.IsAuxiliary(e) {
				row[v] = "_:" + uuid.New().String()
				continue
			}
			row[v] = arena.IRI(e)
		}
		rows = append(rows, row)
	}
	return rows
}

func rowKey(r Row, projection []string) string {
	key := ""
	for _, v := range projection {
		key += v + "=" + r[v] + "\x00"
	}
	return key
}

func dedupe(rows []Row, plan *Plan) []Row {
	if !plan.distinct && !plan.reduced {
		return rows
	}
	seen := make(map[string]bool, len(rows))
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		k := rowKey(r, plan.projection)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, r)
	}
	return out
}

func orderRows(rows []Row, orderBy []OrderKey) {
	if len(orderBy) == 0 {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		for _, key := range orderBy {
			a, b := rows[i][key.Variable], rows[j][key.Variable]
			if a == b {
				continue
			}
			if key.Direction == Desc {
				return a > b
			}
			return a < b
		}
		return false
	})
}

func paginate(rows []Row, limit, offset int) []Row {
	if offset > 0 {
		if offset >= len(rows) {
			return nil
		}
		rows = rows[offset:]
	}
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}
