package repository

// ReconcilePlan is the outcome of diffing a persisted key set against an
// incoming one: which keys to insert, which to overwrite, which to remove.
type ReconcilePlan[K comparable] struct {
	ToInsert []K
	ToUpdate []K
	ToRemove []K
}

// ReconcileKeys diffs persisted against incoming record keys. Keys only in
// incoming are inserts, keys in both are updates, keys only in persisted are
// removals. After applying the plan the persisted key set equals the
// incoming one exactly.
//
// Insert/update order follows incoming, removal order follows persisted, so
// the plan is deterministic for a given pair of inputs. Duplicate keys are
// collapsed to their first occurrence.
func ReconcileKeys[K comparable](persisted, incoming []K) ReconcilePlan[K] {
	persistedSet := make(map[K]struct{}, len(persisted))
	for _, k := range persisted {
		persistedSet[k] = struct{}{}
	}

	incomingSet := make(map[K]struct{}, len(incoming))

	var plan ReconcilePlan[K]

	for _, k := range incoming {
		if _, dup := incomingSet[k]; dup {
			continue
		}
		incomingSet[k] = struct{}{}

		if _, ok := persistedSet[k]; ok {
			plan.ToUpdate = append(plan.ToUpdate, k)
		} else {
			plan.ToInsert = append(plan.ToInsert, k)
		}
	}

	for _, k := range persisted {
		if _, ok := incomingSet[k]; !ok {
			plan.ToRemove = append(plan.ToRemove, k)
		}
	}

	return plan
}
