package game

import (
	"reflect"

	"github.com/brunoga/deep/v2"
)

// DiffResult partitions the keys of two snapshots. The three sets are
// disjoint by construction: a key lives in exactly one of added, removed,
// or (when its value changed) updated.
type DiffResult struct {
	// Added holds full records for keys that only exist in the next
	// snapshot.
	Added map[string]EntityState
	// Updated holds, per surviving key whose value changed, only the
	// changed sub-fields. A sub-field deleted from the record appears
	// with a nil value.
	Updated map[string]EntityState
	// Removed holds keys that only exist in the previous snapshot.
	Removed map[string]struct{}
}

// Empty reports whether the diff carries no changes at all.
func (d DiffResult) Empty() bool {
	return len(d.Added) == 0 && len(d.Updated) == 0 && len(d.Removed) == 0
}

// Diff compares two entity mappings structurally. Records placed in the
// result are detached copies, safe to hold after the inputs are mutated.
// Cost is linear in the total field count of both mappings; every call
// recomputes from scratch.
func Diff(prev, next map[string]EntityState) DiffResult {
	out := DiffResult{
		Added:   make(map[string]EntityState),
		Updated: make(map[string]EntityState),
		Removed: make(map[string]struct{}),
	}
	for id, record := range next {
		old, ok := prev[id]
		if !ok {
			out.Added[id] = deep.MustCopy(record)
			continue
		}
		if changed := diffObject(old, record); len(changed) > 0 {
			out.Updated[id] = changed
		}
	}
	for id := range prev {
		if _, ok := next[id]; !ok {
			out.Removed[id] = struct{}{}
		}
	}
	return out
}

// diffObject returns the fields of next that differ from prev. Objects are
// recursed into so unchanged siblings stay out of the result; arrays and
// scalars are compared whole.
func diffObject(prev, next map[string]any) map[string]any {
	var out map[string]any
	put := func(k string, v any) {
		if out == nil {
			out = make(map[string]any)
		}
		out[k] = v
	}
	for k, nv := range next {
		pv, ok := prev[k]
		if !ok {
			put(k, deep.MustCopy(nv))
			continue
		}
		if reflect.DeepEqual(pv, nv) {
			continue
		}
		pm, pok := pv.(map[string]any)
		nm, nok := nv.(map[string]any)
		if pok && nok {
			if nested := diffObject(pm, nm); len(nested) > 0 {
				put(k, nested)
			}
			continue
		}
		put(k, deep.MustCopy(nv))
	}
	for k := range prev {
		if _, ok := next[k]; !ok {
			put(k, nil)
		}
	}
	return out
}
