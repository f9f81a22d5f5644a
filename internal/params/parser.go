package params

import (
	"fmt"
	"strings"
)

// ParseKeyValuePairs converts a slice of "key=value" strings into a map.
// Uses strings.Cut() (Go 1.18+) for cleaner parsing.
//
// Example:
//
//	env, err := ParseKeyValuePairs([]string{"BATCH_LABEL=nightly", "DRY_RUN=1"})
//	// Returns: map[string]string{"BATCH_LABEL": "nightly", "DRY_RUN": "1"}
func ParseKeyValuePairs(pairs []string) (map[string]string, error) {
	result := make(map[string]string, len(pairs))

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("parameter %q is not in key=value format (example: --env DRY_RUN=1)", pair)
		}

		if key == "" {
			return nil, fmt.Errorf("parameter has empty key: %q", pair)
		}

		result[key] = value
	}

	return result, nil
}
