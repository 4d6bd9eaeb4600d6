// Package enrich attaches owner records and human-readable stage names to
// deal records fetched from the Freshworks CRM API.
package enrich

import (
	"encoding/json"
	"fmt"
)

// Deals joins each deal to its owner record from users and attaches a
// deal_stage object resolved from the static stage table. Deals are mutated
// in place and returned in input order.
//
// The owner lookup is built fresh from users on every call; when two users
// share an id, the later one wins. A deal whose owner_id is absent or has
// no matching user keeps its owner field unset.
func Deals(deals, users []map[string]any) []map[string]any {
	owners := make(map[int64]map[string]any, len(users))
	for _, user := range users {
		if id, ok := recordID(user["id"]); ok {
			owners[id] = user
		}
	}

	for _, deal := range deals {
		if ownerID, ok := recordID(deal["owner_id"]); ok {
			if owner, found := owners[ownerID]; found {
				deal["owner"] = owner
			}
		}

		// Presence, not truthiness: stage id 0 still gets a stage object.
		stageID, present := deal["deal_stage_id"]
		if !present || stageID == nil {
			continue
		}
		deal["deal_stage"] = map[string]any{
			"id":   stageID,
			"name": stageNameFor(stageID),
		}
	}

	return deals
}

// stageNameFor resolves a raw deal_stage_id value. Values that do not
// coerce to an integer still produce a generated name from their literal
// form.
func stageNameFor(v any) string {
	if id, ok := recordID(v); ok {
		return StageName(id)
	}
	return fmt.Sprintf("Stage %v", v)
}

// recordID coerces a raw JSON field value to an integer identifier.
// Listing payloads decoded with json.Number land in the first case; plain
// float64 and integer values are accepted for callers that decode without
// UseNumber.
func recordID(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		id, err := n.Int64()
		return id, err == nil
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}
