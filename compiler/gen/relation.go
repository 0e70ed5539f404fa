package gen

import (
	"github.com/welevelacademy/prisma"
)

// pairKey identifies an unordered type pair. a <= b lexically; self
// relations repeat the name.
type pairKey struct {
	a, b string
}

func newPairKey(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

// resolveRelations pairs relation fields into relation edges. It is a
// two-pass algorithm: first all candidates across all types are collected
// and grouped by unordered type pair, then each group is split into
// relations by the explicit @relation name where one is required. The
// result is independent of declaration order except for the order of the
// relations and the positions diagnostics point at. Edges that belong to
// @relationTable join types are not candidates; the join types themselves
// are bound to their relation afterwards.
func (b *graphBuilder) resolveRelations() {
	var (
		order  []pairKey
		groups = make(map[pairKey][]*Edge)
	)
	for _, node := range b.graph.Nodes {
		if node.JoinTable {
			continue
		}
		for _, e := range node.Edges {
			key := newPairKey(node.Name, e.Type.Name)
			if _, seen := groups[key]; !seen {
				order = append(order, key)
			}
			groups[key] = append(groups[key], e)
		}
	}
	for _, key := range order {
		b.resolveGroup(key, groups[key])
	}
}

// resolveGroup resolves all relations between one unordered type pair.
func (b *graphBuilder) resolveGroup(key pairKey, edges []*Edge) {
	self := key.a == key.b
	// Count the candidates per side. More than one field on either side
	// means more than one plausible correspondence, so every participant
	// must carry a disambiguating name. Self-relations always do.
	var sideA, sideB int
	for _, e := range edges {
		if e.Owner.Name == key.a {
			sideA++
		} else {
			sideB++
		}
	}
	ambiguous := self || sideA > 1 || sideB > 1
	if ambiguous {
		missing := false
		for _, e := range edges {
			if e.RelName != "" {
				continue
			}
			missing = true
			msg := ""
			if self {
				msg = "self-relations require an explicit @relation(name: ...)"
			}
			b.errs = append(b.errs, &prisma.AmbiguousRelationError{
				Pos: e.Pos, Type: e.Owner.Name, Field: e.Name,
				Target: e.Type.Name, Message: msg,
			})
		}
		if missing {
			return
		}
		b.resolveNamed(key, edges)
		return
	}
	// At most one candidate per side: a single implicit correspondence,
	// unless the two sides carry conflicting explicit names, which makes
	// them two unidirectional relations.
	if len(edges) == 2 && edges[0].RelName != "" && edges[1].RelName != "" && edges[0].RelName != edges[1].RelName {
		b.addRelation(key, edges[:1])
		b.addRelation(key, edges[1:])
		return
	}
	b.addRelation(key, edges)
}

// resolveNamed splits an ambiguous group by the @relation name.
func (b *graphBuilder) resolveNamed(key pairKey, edges []*Edge) {
	var (
		names   []string
		buckets = make(map[string][]*Edge)
	)
	for _, e := range edges {
		if _, seen := buckets[e.RelName]; !seen {
			names = append(names, e.RelName)
		}
		buckets[e.RelName] = append(buckets[e.RelName], e)
	}
	for _, name := range names {
		bucket := buckets[name]
		if len(bucket) > 2 {
			for _, e := range bucket[2:] {
				b.errs = append(b.errs, &prisma.AmbiguousRelationError{
					Pos: e.Pos, Type: e.Owner.Name, Field: e.Name, Target: e.Type.Name,
					Message: "more than two fields share the relation name " + name,
				})
			}
			continue
		}
		if len(bucket) == 2 && !key.self() && bucket[0].Owner == bucket[1].Owner {
			e := bucket[1]
			b.errs = append(b.errs, &prisma.AmbiguousRelationError{
				Pos: e.Pos, Type: e.Owner.Name, Field: e.Name, Target: e.Type.Name,
				Message: "relation name " + name + " used twice on the same type",
			})
			continue
		}
		b.addRelation(key, bucket)
	}
}

func (k pairKey) self() bool { return k.a == k.b }

// addRelation builds one relation from its declared endpoints, determines
// multiplicity, link strategy and delete behavior, and verifies the cascade
// invariant. The missing endpoint of a unidirectional relation counts as a
// list: a lone non-list field is the "many" side of a one-to-many relation,
// a lone list field forms a many-to-many relation.
func (b *graphBuilder) addRelation(key pairKey, edges []*Edge) {
	r := &Relation{
		Edges: edges,
		Types: [2]*Type{b.graph.nodes[key.a], b.graph.nodes[key.b]},
	}
	for _, e := range edges {
		if e.RelName != "" {
			r.Name, r.Explicit = e.RelName, true
			break
		}
	}
	if r.Name == "" {
		r.Name = defaultRelName(key.a, key.b)
	}
	if prev, taken := b.relNames[r.Name]; taken {
		b.fail(prisma.KindRedeclared, edges[0].Pos, edges[0].Owner.Name, edges[0].Name,
			"relation name %q already used between %s and %s",
			r.Name, prev.Types[0].Name, prev.Types[1].Name)
		return
	}
	listA, listB := edges[0].List, true
	if len(edges) == 2 {
		listB = edges[1].List
	}
	switch {
	case !listA && !listB:
		r.Type = O2O
	case listA && listB:
		r.Type = M2M
	default:
		r.Type = O2M
	}
	// Explicit link arguments win; conflicting ones are rejected.
	link := LinkNone
	for _, e := range edges {
		if e.Link == LinkNone {
			continue
		}
		if link != LinkNone && e.Link != link {
			b.fail(prisma.KindDirectiveArgument, e.Pos, e.Owner.Name, e.Name,
				"conflicting link arguments for relation %s", r.Name)
			return
		}
		link = e.Link
	}
	switch r.Type {
	case O2O:
		if link == LinkNone {
			b.errs = append(b.errs, &prisma.UnsupportedLinkError{
				Pos: edges[0].Pos, Relation: r.Name,
				Message: "one-to-one relations must specify link: INLINE or link: TABLE",
			})
			return
		}
	case O2M:
		if link == LinkNone {
			link = Inline
		}
	case M2M:
		if link == Inline {
			b.errs = append(b.errs, &prisma.UnsupportedLinkError{
				Pos: edges[0].Pos, Relation: r.Name,
				Message: "many-to-many relations cannot be stored inline; use link: TABLE",
			})
			return
		}
		link = Table
	}
	r.Link = link
	if len(edges) == 2 && edges[0].OnDelete == Cascade && edges[1].OnDelete == Cascade {
		b.errs = append(b.errs, &prisma.InvalidCascadeError{
			Pos: edges[1].Pos, Relation: r.Name,
			Types: [2]string{key.a, key.b},
		})
		return
	}
	for _, e := range edges {
		e.Rel = r
	}
	b.relNames[r.Name] = r
	b.graph.Relations = append(b.graph.Relations, r)
}

// bindRelationTables attaches @relationTable join types to the relation
// they store. A join type declares exactly two relation fields, one per
// endpoint, and its name must match the relation name used by the endpoint
// fields. The synthesized table keeps the join type's name and column
// names, with no underscore prefix.
func (b *graphBuilder) bindRelationTables() {
	for _, node := range b.graph.Nodes {
		if !node.JoinTable {
			continue
		}
		if len(node.Edges) != 2 || len(node.Fields) != 0 || node.ID != nil {
			b.fail(prisma.KindRelationTable, node.Pos, node.Name, "",
				"@relationTable types must declare exactly two relation fields and nothing else")
			continue
		}
		key := newPairKey(node.Edges[0].Type.Name, node.Edges[1].Type.Name)
		var bound *Relation
		for _, r := range b.graph.Relations {
			if r.Name == node.Name && r.Types[0].Name == key.a && r.Types[1].Name == key.b {
				bound = r
				break
			}
		}
		switch {
		case bound == nil:
			b.fail(prisma.KindRelationTable, node.Pos, node.Name, "",
				"no relation named %q between %s and %s", node.Name, key.a, key.b)
		case bound.Link != Table:
			b.fail(prisma.KindRelationTable, node.Pos, node.Name, "",
				"relation %q is stored inline and cannot have a relation table", node.Name)
		default:
			bound.Through = node
		}
	}
}
