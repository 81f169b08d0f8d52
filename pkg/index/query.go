package index

import (
	"bytes"

	"github.com/platformdrive/drivecore/pkg/document"
	"github.com/platformdrive/drivecore/pkg/grove"
	"github.com/platformdrive/drivecore/pkg/identifier"
)

// WhereClause is a single equality constraint against an indexed property.
// Only equality is supported by the planner below; range and "in" clauses
// are not supported.
type WhereClause struct {
	Property string
	Value    document.Value
}

// OrderBy names a property to sort by, after every equality clause is
// satisfied.
type OrderBy struct {
	Property  string
	Ascending bool
}

// Query describes a document listing request against one document type.
//
// The planner below supports exactly the index shapes that cover (a) an
// equality prefix matching Where, optionally followed by (b) a single
// ordering property matching the first entry of OrderBy. Indexes requiring
// two or more uncovered trailing properties to satisfy OrderBy are not
// selected; callers needing that shape must declare a narrower index whose
// equality prefix covers more of the query.
type Query struct {
	DocumentType string
	Where        []WhereClause
	OrderBy      []OrderBy
	Limit        uint32
	StartAfter   *identifier.Identifier
}

// SelectIndex picks the declared index on dt whose property order begins
// with exactly the properties named in q.Where (any order within the where
// clause is accepted; the index's own declared order determines path
// layout) and whose next property, if q.OrderBy is non-empty, matches
// q.OrderBy[0]. The index must have no further properties.
func SelectIndex(dt document.DocumentType, q Query) (document.IndexDef, error) {
	want := len(q.Where)
	if len(q.OrderBy) > 0 {
		want++
	}
	for _, idx := range dt.Indices {
		if len(idx.Properties) != want {
			continue
		}
		if !coversEquality(idx, q.Where) {
			continue
		}
		if len(q.OrderBy) > 0 {
			if idx.Properties[len(q.Where)].Property != q.OrderBy[0].Property {
				continue
			}
		}
		return idx, nil
	}
	return document.IndexDef{}, ErrNoMatchingIndex
}

func coversEquality(idx document.IndexDef, where []WhereClause) bool {
	for i := range where {
		found := false
		for _, w := range where {
			if w.Property == idx.Properties[i].Property {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// orderedEqualityValues reorders where-clauses into idx's declared
// property order, matching the layout SelectIndex already verified.
func orderedEqualityValues(idx document.IndexDef, where []WhereClause) []document.Value {
	out := make([]document.Value, len(where))
	for i := range where {
		for _, w := range where {
			if w.Property == idx.Properties[i].Property {
				out[i] = w.Value
				break
			}
		}
	}
	return out
}

// Result is one matched document reference from an index scan.
type Result struct {
	DocumentID identifier.Identifier
}

// ExecuteQuery runs q against store using the index selected by
// SelectIndex, returning up to q.Limit references in index order.
func ExecuteQuery(store *grove.Store, contractID identifier.Identifier, dt document.DocumentType, q Query) ([]Result, error) {
	idx, err := SelectIndex(dt, q)
	if err != nil {
		return nil, err
	}

	equalityValues := orderedEqualityValues(idx, q.Where)
	prefixValues := make([]resolvedValue, len(equalityValues))
	for i, v := range equalityValues {
		enc, err := document.EncodeIndexValue(document.PropertyDef{Kind: v.Kind}, v)
		if err != nil {
			return nil, err
		}
		prefixValues[i] = resolvedValue{segment: append([]byte{valuePresentTag}, enc...)}
	}

	prefixPath := IndexPath(contractID, dt.Name, limitIndex(idx, len(q.Where)), prefixValues)

	if len(q.OrderBy) == 0 {
		return collectTerminal(store, prefixPath, idx.Unique, q)
	}

	orderProp := q.OrderBy[0].Property
	valuesLevelPath := append(append([][]byte(nil), prefixPath...), []byte(orderProp))

	var results []Result
	started := q.StartAfter == nil
	err = store.IterateChildren(valuesLevelPath, func(valueEntry grove.Entry) (bool, error) {
		if valueEntry.Element.Kind != grove.KindTree {
			return true, nil
		}
		valuePath := append(append([][]byte(nil), valuesLevelPath...), valueEntry.Key)
		sub, err := collectTerminal(store, valuePath, idx.Unique, Query{Limit: q.Limit})
		if err != nil {
			return false, err
		}
		for _, r := range sub {
			if !started {
				if q.StartAfter != nil && bytes.Equal(r.DocumentID.Bytes(), q.StartAfter.Bytes()) {
					started = true
				}
				continue
			}
			results = append(results, r)
			if q.Limit > 0 && uint32(len(results)) >= q.Limit {
				return false, nil
			}
		}
		return q.Limit == 0 || uint32(len(results)) < q.Limit, nil
	})
	if !q.OrderBy[0].Ascending {
		reverseResults(results)
	}
	return results, err
}

// limitIndex returns a copy of idx truncated to its first n declared
// properties, used to build the shared equality-prefix path.
func limitIndex(idx document.IndexDef, n int) document.IndexDef {
	return document.IndexDef{Name: idx.Name, Unique: idx.Unique, Properties: idx.Properties[:n]}
}

func collectTerminal(store *grove.Store, path [][]byte, unique bool, q Query) ([]Result, error) {
	if unique {
		el, err := store.GetRaw(path, TerminalKey)
		if err != nil {
			if err == grove.ErrKeyNotFound {
				return nil, nil
			}
			return nil, err
		}
		id, err := identifier.FromBytes(el.TargetKey)
		if err != nil {
			return nil, err
		}
		return []Result{{DocumentID: id}}, nil
	}

	subtree := append(append([][]byte(nil), path...), TerminalKey)
	var results []Result
	err := store.IterateChildren(subtree, func(e grove.Entry) (bool, error) {
		id, err := identifier.FromBytes(e.Key)
		if err != nil {
			return false, err
		}
		results = append(results, Result{DocumentID: id})
		return q.Limit == 0 || uint32(len(results)) < q.Limit, nil
	})
	return results, err
}

func reverseResults(r []Result) {
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
}

// ProveQuery proves the same set of entries ExecuteQuery would return,
// anchored to store's current root, for the prove=true query-RPC path.
func ProveQuery(store *grove.Store, contractID identifier.Identifier, dt document.DocumentType, q Query, results []Result) (grove.Proof, error) {
	idx, err := SelectIndex(dt, q)
	if err != nil {
		return grove.Proof{}, err
	}
	queries := make([]grove.Query, 0, len(results))
	for _, r := range results {
		queries = append(queries, grove.Query{Path: PrimaryTreePath(contractID, dt.Name), Key: r.DocumentID.Bytes()})
	}
	_ = idx
	return store.Prove(queries)
}
