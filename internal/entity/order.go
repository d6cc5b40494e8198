package entity

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// Dependencies lists, for every record kind the import persists, the record
// kinds whose new identifiers it needs. A kind's transformation and persistence
// pass must complete before any kind that depends on it starts.
var Dependencies = map[Kind][]Kind{
	KindProject:          nil,
	KindIssue:            {KindProject},
	KindComment:          {KindIssue},
	KindWorklog:          {KindIssue},
	KindChangeGroup:      {KindIssue},
	KindChangeItem:       {KindChangeGroup},
	KindIssueLink:        {KindIssue},
	KindNodeAssociation:  {KindIssue},
	KindVoter:            {KindIssue},
	KindWatcher:          {KindIssue},
	KindLabel:            {KindIssue},
	KindAttachment:       {KindIssue},
	KindCustomFieldValue: {KindIssue},
}

// ImportOrder returns the kinds of Dependencies in an order where every kind
// follows all of its dependencies. Ties are broken by declaration order, so the
// result is deterministic.
func ImportOrder() []Kind {
	order, err := TopoSort(Dependencies)
	if err != nil {
		// Dependencies is static; a cycle is a programming error.
		panic(err)
	}

	return order
}

// TopoSort orders the keys of deps so that every kind comes after the kinds it
// depends on. Dependencies on kinds that are not keys of deps are treated as
// already satisfied. When multiple kinds are ready, the smallest one is picked.
// If a cycle exists, an error is returned.
func TopoSort(deps map[Kind][]Kind) ([]Kind, error) {
	if len(deps) == 0 {
		return nil, nil
	}

	nodes := make([]Kind, 0, len(deps))
	for k := range deps {
		nodes = append(nodes, k)
	}

	slices.Sort(nodes)

	indeg := make(map[Kind]int, len(nodes))
	out := make(map[Kind][]Kind, len(nodes))

	for _, k := range nodes {
		for _, d := range deps[k] {
			if d == k {
				return nil, fmt.Errorf("kind %s depends on itself", k)
			}

			if _, ok := deps[d]; !ok {
				continue
			}

			indeg[k]++
			out[d] = append(out[d], k)
		}
	}

	var ready []Kind

	for _, k := range nodes {
		if indeg[k] == 0 {
			ready = append(ready, k)
		}
	}

	order := make([]Kind, 0, len(nodes))

	for len(ready) > 0 {
		k := ready[0]
		ready = ready[1:]

		order = append(order, k)
		for _, j := range out[k] {
			indeg[j]--
			if indeg[j] == 0 {
				// Insert while keeping ready sorted.
				i := sort.Search(len(ready), func(n int) bool { return ready[n] >= j })
				ready = slices.Insert(ready, i, j)
			}
		}
	}

	if len(order) != len(nodes) {
		return nil, errors.New("cycle detected in entity dependencies")
	}

	return order, nil
}
