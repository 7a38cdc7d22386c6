package ann

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/x448/float16"
)

const (
	fileMagic   = "ANNF"
	fileVersion = uint8(1)
)

// FlatIndex is an exact angular-distance index over ordinal-addressed vectors.
// The scan is exhaustive, which keeps results deterministic for fixed
// artifacts; ties break toward the lower ordinal.
type FlatIndex struct {
	dimension int
	encoding  Encoding
	vectors   [][]float32
	norms     []float32
}

// NewFlatIndex creates an empty index for vectors of the given dimension
func NewFlatIndex(dimension int, encoding Encoding) (*FlatIndex, error) {
	if dimension <= 0 {
		return nil, fmt.Errorf("dimension must be positive, got %d", dimension)
	}
	return &FlatIndex{
		dimension: dimension,
		encoding:  encoding,
	}, nil
}

func (f *FlatIndex) AddItem(ordinal int, vector []float32) error {
	if ordinal != len(f.vectors) {
		return fmt.Errorf("ordinal %d out of sequence, expected %d", ordinal, len(f.vectors))
	}
	if len(vector) != f.dimension {
		return fmt.Errorf("vector dimension %d does not match index dimension %d", len(vector), f.dimension)
	}
	owned := make([]float32, len(vector))
	copy(owned, vector)
	f.vectors = append(f.vectors, owned)
	f.norms = append(f.norms, norm(owned))
	return nil
}

func (f *FlatIndex) NeighborsByItem(ordinal int, n int) ([]Neighbor, error) {
	if ordinal < 0 || ordinal >= len(f.vectors) {
		return nil, fmt.Errorf("ordinal %d not in index of %d items", ordinal, len(f.vectors))
	}
	if n <= 0 {
		return []Neighbor{}, nil
	}

	query := f.vectors[ordinal]
	queryNorm := f.norms[ordinal]

	neighbors := make([]Neighbor, len(f.vectors))
	for i, v := range f.vectors {
		neighbors[i] = Neighbor{
			Ordinal:  i,
			Distance: angularDistance(query, v, queryNorm, f.norms[i]),
		}
	}
	sort.SliceStable(neighbors, func(a, b int) bool {
		return neighbors[a].Distance < neighbors[b].Distance
	})

	if n > len(neighbors) {
		n = len(neighbors)
	}
	return neighbors[:n], nil
}

func (f *FlatIndex) Stats() IndexStats {
	return IndexStats{
		Count:     len(f.vectors),
		Dimension: f.dimension,
	}
}

// Save writes the index artifact: magic, version, encoding, dimension, count,
// then vectors row-major in ordinal order, little-endian.
func (f *FlatIndex) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create index file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if _, err = w.WriteString(fileMagic); err != nil {
		return err
	}
	if err = w.WriteByte(fileVersion); err != nil {
		return err
	}
	if err = w.WriteByte(byte(f.encoding)); err != nil {
		return err
	}
	header := make([]byte, 8)
	binary.LittleEndian.PutUint32(header[0:4], uint32(f.dimension))
	binary.LittleEndian.PutUint32(header[4:8], uint32(len(f.vectors)))
	if _, err = w.Write(header); err != nil {
		return err
	}

	buf := make([]byte, 4)
	for _, vector := range f.vectors {
		for _, value := range vector {
			switch f.encoding {
			case EncodingFP16:
				binary.LittleEndian.PutUint16(buf[:2], float16.Fromfloat32(value).Bits())
				_, err = w.Write(buf[:2])
			default:
				binary.LittleEndian.PutUint32(buf, math.Float32bits(value))
				_, err = w.Write(buf)
			}
			if err != nil {
				return err
			}
		}
	}
	return w.Flush()
}

// Load reads a previously saved artifact. The artifact's dimension must match
// the dimension the index was created with, mirroring index libraries that
// need the dimension declared before loading.
func (f *FlatIndex) Load(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open index file: %w", err)
	}
	defer file.Close()

	r := bufio.NewReader(file)
	magic := make([]byte, 4)
	if _, err = io.ReadFull(r, magic); err != nil {
		return fmt.Errorf("failed to read index header: %w", err)
	}
	if string(magic) != fileMagic {
		return fmt.Errorf("not an index file: bad magic %q", magic)
	}
	version, err := r.ReadByte()
	if err != nil {
		return err
	}
	if version != fileVersion {
		return fmt.Errorf("unsupported index file version %d", version)
	}
	encodingByte, err := r.ReadByte()
	if err != nil {
		return err
	}
	encoding := Encoding(encodingByte)
	if encoding != EncodingFP32 && encoding != EncodingFP16 {
		return fmt.Errorf("unsupported vector encoding %d", encodingByte)
	}

	header := make([]byte, 8)
	if _, err = io.ReadFull(r, header); err != nil {
		return fmt.Errorf("failed to read index header: %w", err)
	}
	dimension := int(binary.LittleEndian.Uint32(header[0:4]))
	count := int(binary.LittleEndian.Uint32(header[4:8]))
	if dimension != f.dimension {
		return fmt.Errorf("index file dimension %d does not match declared dimension %d", dimension, f.dimension)
	}

	valueSize := 4
	if encoding == EncodingFP16 {
		valueSize = 2
	}
	row := make([]byte, dimension*valueSize)
	vectors := make([][]float32, 0, count)
	norms := make([]float32, 0, count)
	for i := 0; i < count; i++ {
		if _, err = io.ReadFull(r, row); err != nil {
			return fmt.Errorf("truncated index file at item %d: %w", i, err)
		}
		vector := make([]float32, dimension)
		for j := 0; j < dimension; j++ {
			if encoding == EncodingFP16 {
				vector[j] = float16.Frombits(binary.LittleEndian.Uint16(row[j*2 : j*2+2])).Float32()
			} else {
				vector[j] = math.Float32frombits(binary.LittleEndian.Uint32(row[j*4 : j*4+4]))
			}
		}
		vectors = append(vectors, vector)
		norms = append(norms, norm(vector))
	}

	f.encoding = encoding
	f.vectors = vectors
	f.norms = norms
	return nil
}

// angularDistance is 1 - cosine similarity; zero-norm vectors are treated as
// maximally distant from everything but themselves
func angularDistance(a, b []float32, normA, normB float32) float32 {
	if normA == 0 || normB == 0 {
		if normA == 0 && normB == 0 {
			return 0
		}
		return 2
	}
	var dot float32
	for i := range a {
		dot += a[i] * b[i]
	}
	return 1 - dot/(normA*normB)
}

func norm(v []float32) float32 {
	var sum float64
	for _, value := range v {
		sum += float64(value) * float64(value)
	}
	return float32(math.Sqrt(sum))
}
