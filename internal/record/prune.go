package record

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/franz/play-archivist/internal/util"
)

// RemoveEmptyFields recursively drops fields holding nothing worth storing:
// empty or placeholder strings ("-", "n/a"), empty slices, and maps that end
// up empty after pruning. Numeric zeros survive; a zero cast count is data.
func RemoveEmptyFields(doc bson.M) bson.M {
	pruned := bson.M{}
	for key, value := range doc {
		if v, ok := pruneValue(value); ok {
			pruned[key] = v
		}
	}
	return pruned
}

func pruneValue(value interface{}) (interface{}, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case string:
		if util.IsPlaceholder(v) {
			return nil, false
		}
		return v, true
	case bson.M:
		nested := RemoveEmptyFields(v)
		if len(nested) == 0 {
			return nil, false
		}
		return nested, true
	case map[string]interface{}:
		nested := RemoveEmptyFields(bson.M(v))
		if len(nested) == 0 {
			return nil, false
		}
		return nested, true
	case []interface{}:
		kept := make([]interface{}, 0, len(v))
		for _, item := range v {
			if pv, ok := pruneValue(item); ok {
				kept = append(kept, pv)
			}
		}
		if len(kept) == 0 {
			return nil, false
		}
		return kept, true
	default:
		return v, true
	}
}
