package output

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MergeJSON structurally merges incoming into existing. Objects merge
// recursively with incoming values winning on conflict; arrays and scalars
// are replaced wholesale. Keys present only in existing are preserved.
func MergeJSON(existing, incoming []byte) ([]byte, error) {
	var oldDoc, newDoc map[string]any
	if err := json.Unmarshal(existing, &oldDoc); err != nil {
		return nil, fmt.Errorf("existing file is not a JSON object: %w", err)
	}
	if err := json.Unmarshal(incoming, &newDoc); err != nil {
		return nil, fmt.Errorf("generated content is not a JSON object: %w", err)
	}

	merged := mergeMaps(oldDoc, newDoc)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(merged); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func mergeMaps(base, over map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		if oldMap, ok := out[k].(map[string]any); ok {
			if newMap, ok := v.(map[string]any); ok {
				out[k] = mergeMaps(oldMap, newMap)
				continue
			}
		}
		out[k] = v
	}
	return out
}
