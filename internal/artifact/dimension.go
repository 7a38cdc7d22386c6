package artifact

import (
	"encoding/json"
	"fmt"
	"os"
)

// reducerDescriptor is the dimensionality-reducer artifact. The build
// pipeline has written it both bare and wrapped under a "model" key; both
// shapes are accepted and normalized here.
type reducerDescriptor struct {
	NComponents int `json:"n_components"`
}

type wrappedReducerDescriptor struct {
	Model *reducerDescriptor `json:"model"`
}

// resolveEmbeddingDimension reads the dimensionality hint, falling back to
// defaultDimension when the artifact is missing, unreadable, or carries no
// positive component count.
func resolveEmbeddingDimension(path string, defaultDimension int) (int, Result) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultDimension, absent()
		}
		return defaultDimension, malformed(err)
	}

	var bare reducerDescriptor
	if err := json.Unmarshal(data, &bare); err == nil && bare.NComponents > 0 {
		return bare.NComponents, loaded()
	}

	var wrapped wrappedReducerDescriptor
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Model != nil && wrapped.Model.NComponents > 0 {
		return wrapped.Model.NComponents, loaded()
	}

	return defaultDimension, malformed(fmt.Errorf("no usable component count in %s", path))
}
