package artifact

import (
	"encoding/json"
	"fmt"
	"os"
)

// loadSimilarityMap reads the precomputed id -> ordered neighbor ids mapping.
// The map is built already sorted by similarity descending and self-excluded;
// neither property is re-validated here.
func loadSimilarityMap(path string) (map[string][]string, Result) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, absent()
		}
		return nil, malformed(err)
	}

	var similarityMap map[string][]string
	if err := json.Unmarshal(data, &similarityMap); err != nil {
		return nil, malformed(fmt.Errorf("failed to parse %s: %w", path, err))
	}
	return similarityMap, loaded()
}
