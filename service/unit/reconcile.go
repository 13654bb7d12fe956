package unit

import (
	"sort"

	"github.com/beldeveloper/repo-keeper/model"
)

// reconcile matches the parsed set against the stored one by (language, id_hash)
// and resolves the IDs of the survivors. It returns the parsed set, stamped with
// the component and the surviving IDs (zero marks a fresh insert), plus the IDs
// of the stored rows that the parsed set no longer contains.
func reconcile(componentID uint64, existing, parsed []model.Unit) ([]model.Unit, []uint64) {
	byKey := make(map[string]uint64, len(existing))
	for _, u := range existing {
		byKey[unitKey(u)] = u.ID
	}
	res := make([]model.Unit, 0, len(parsed))
	for _, u := range parsed {
		u.ComponentID = componentID
		key := unitKey(u)
		if id, ok := byKey[key]; ok {
			u.ID = id
			delete(byKey, key)
		}
		res = append(res, u)
	}
	stale := make([]uint64, 0, len(byKey))
	for _, id := range byKey {
		stale = append(stale, id)
	}
	sort.Slice(stale, func(i, j int) bool { return stale[i] < stale[j] })
	return res, stale
}

func unitKey(u model.Unit) string {
	return u.Language + "\x00" + u.IDHash
}
