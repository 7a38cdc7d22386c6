package compression

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGzipRoundTrip(t *testing.T) {
	enc, err := GetEncoder(TypeGzip)
	assert.NoError(t, err)
	dec, err := GetDecoder(TypeGzip)
	assert.NoError(t, err)

	data := bytes.Repeat([]byte("recommendation"), 256)
	cdata, err := enc.Encode(data)
	assert.NoError(t, err)
	assert.Less(t, len(cdata), len(data))

	out, err := dec.Decode(cdata)
	assert.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestGzipDecodeMalformed(t *testing.T) {
	dec := NewGzipDecoder()
	_, err := dec.Decode([]byte("not a gzip stream"))
	assert.Error(t, err)
}

func TestNoOpCodec(t *testing.T) {
	enc, err := GetEncoder(TypeNone)
	assert.NoError(t, err)
	dec, err := GetDecoder(TypeNone)
	assert.NoError(t, err)

	data := []byte("passthrough")
	cdata, err := enc.Encode(data)
	assert.NoError(t, err)
	assert.Equal(t, data, cdata)

	out, err := dec.Decode(cdata)
	assert.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestGetCodecUnsupported(t *testing.T) {
	_, err := GetEncoder(Type(42))
	assert.Error(t, err)
	_, err = GetDecoder(Type(42))
	assert.Error(t, err)
}
