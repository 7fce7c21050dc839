package graph

import (
	"encoding/json"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"socialgraph/backend/internal/network"
)

// ============================================================================
// Helper Functions
// ============================================================================

// attributePrefix keeps projected attributes from colliding with node bookkeeping properties
const attributePrefix = "attr_"

func getIntFromRecord(record *neo4j.Record, key string) int {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return 0
	}
	if i, ok := val.(int64); ok {
		return int(i)
	}
	if i, ok := val.(int); ok {
		return i
	}
	return 0
}

func prefixedAttributes(attrs network.Attributes) map[string]interface{} {
	out := make(map[string]interface{}, len(attrs))
	for k, v := range attrs {
		out[attributePrefix+k] = v.Interface()
	}
	return out
}

func attributesJSON(attrs network.Attributes) (string, error) {
	data, err := json.Marshal(attrs)
	if err != nil {
		return "", fmt.Errorf("failed to encode attributes: %w", err)
	}
	return string(data), nil
}
