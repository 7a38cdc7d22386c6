// Package ann provides the approximate-nearest-neighbor index boundary used
// by the similarity resolver. Items are addressed by their catalog ordinal;
// neighbor queries return ordinals ordered by ascending angular distance.
package ann

// Encoding identifies how vector values are stored in an index artifact
type Encoding uint8

const (
	EncodingFP32 Encoding = iota
	EncodingFP16
)

// Neighbor holds a neighbor's ordinal and its computed distance
type Neighbor struct {
	Ordinal  int
	Distance float32
}

// IndexStats contains metadata about the index
type IndexStats struct {
	Count     int
	Dimension int
}

// Index is the nearest-neighbor index consumed by the resolver. The query
// item may appear in its own neighbor list since its self-distance is minimal;
// callers are expected to filter it.
type Index interface {
	// AddItem inserts the vector for the given ordinal. Ordinals must be
	// added sequentially from 0 so the index ordering matches the catalog.
	AddItem(ordinal int, vector []float32) error

	// NeighborsByItem returns up to n neighbors of the item at the given
	// ordinal, ordered by ascending angular distance.
	NeighborsByItem(ordinal int, n int) ([]Neighbor, error)

	// Save persists the index to the specified file.
	Save(path string) error

	// Load initializes the index from a previously saved file. The file's
	// declared dimension must match the dimension the index was created with.
	Load(path string) error

	// Stats returns the item count and dimensionality of the index.
	Stats() IndexStats
}
