package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/Hayagreevan-K/recommendation-sys/internal/ann"
	"github.com/Hayagreevan-K/recommendation-sys/internal/compression"
)

const compressedExt = ".gz"

// decompressMut serializes decompression so two initializations sharing a
// model directory cannot interleave writes to the canonical path.
var decompressMut sync.Mutex

// loadANNArtifact loads the nearest-neighbor index. When only the compressed
// variant exists it is decompressed once to the canonical path; the write
// goes to a temp file and is renamed into place so a racing process never
// observes a partial file. The dimension must be resolved before this call.
func loadANNArtifact(path string, dimension int) (ann.Index, Result) {
	if result := ensureCanonicalIndexFile(path); result.Status != StatusLoaded {
		return nil, result
	}

	index, err := ann.NewFlatIndex(dimension, ann.EncodingFP32)
	if err != nil {
		return nil, malformed(err)
	}
	if err := index.Load(path); err != nil {
		return nil, malformed(fmt.Errorf("failed to load ANN index %s: %w", path, err))
	}
	return index, loaded()
}

// ensureCanonicalIndexFile decompresses the .gz variant to the canonical path
// if needed. Idempotent: an existing canonical file is used as-is.
func ensureCanonicalIndexFile(path string) Result {
	if _, err := os.Stat(path); err == nil {
		return loaded()
	}

	compressedPath := path + compressedExt
	if _, err := os.Stat(compressedPath); err != nil {
		if os.IsNotExist(err) {
			return absent()
		}
		return malformed(err)
	}

	decompressMut.Lock()
	defer decompressMut.Unlock()

	// a racing initialization may have finished while we waited on the lock
	if _, err := os.Stat(path); err == nil {
		return loaded()
	}

	if err := decompressToCanonical(compressedPath, path); err != nil {
		return malformed(fmt.Errorf("failed to decompress %s: %w", compressedPath, err))
	}
	log.Info().Msgf("Decompressed %s to %s", compressedPath, path)
	return loaded()
}

func decompressToCanonical(compressedPath, path string) error {
	in, err := os.Open(compressedPath)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	decoder := compression.NewGzipDecoder()
	if err := decoder.DecodeStream(tmp, in); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
