package request

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// parseFlag reads a bool-like query value. Missing means false.
func parseFlag(values url.Values, key string) (bool, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return false, nil
	}

	flag, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s need to be bool-like string", key)
	}
	return flag, nil
}

// parseIDList splits a comma separated list. A key that is present but empty
// gives an empty, non-nil list; a missing key gives nil.
func parseIDList(values url.Values, key string) []string {
	if !values.Has(key) {
		return nil
	}

	ids := make([]string, 0)
	for _, raw := range values[key] {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}
