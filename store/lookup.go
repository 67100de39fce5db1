package store

// lookup is the keyed side of a load-then-stitch read: a set fetched by an
// independent query and indexed once per aggregation call.
type lookup[T any] struct {
	entity string
	items  map[uint]T
}

func newLookup[T any](entity string, items []T, key func(T) uint) lookup[T] {
	l := lookup[T]{entity: entity, items: make(map[uint]T, len(items))}
	for _, it := range items {
		l.items[key(it)] = it
	}
	return l
}

func (l lookup[T]) resolve(id uint, referrer string) (T, error) {
	it, ok := l.items[id]
	if !ok {
		var zero T
		return zero, &ConsistencyError{Entity: l.entity, ID: id, Referrer: referrer}
	}
	return it, nil
}

// uniqueRefs guards the per-container uniqueness of a reference, e.g. one line
// per food within a cart or an order.
type uniqueRefs map[uint]struct{}

func (u uniqueRefs) claim(id uint, entity, referrer string) error {
	if _, dup := u[id]; dup {
		return &ConsistencyError{Entity: entity, ID: id, Referrer: referrer + " (duplicate)"}
	}
	u[id] = struct{}{}
	return nil
}

func distinct(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
