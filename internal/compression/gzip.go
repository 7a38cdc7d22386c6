package compression

import (
	"bytes"
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog/log"
)

var (
	encoder *GzipEncoder

	decoder *GzipDecoder

	mut sync.Mutex
)

type GzipEncoder struct{}

func NewGzipEncoder() *GzipEncoder {
	if encoder != nil {
		return encoder
	}
	mut.Lock()
	defer mut.Unlock()
	if encoder != nil {
		return encoder
	}
	encoder = &GzipEncoder{}
	return encoder
}

func (e *GzipEncoder) Encode(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	gw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err = gw.Write(data); err != nil {
		return nil, err
	}
	if err = gw.Close(); err != nil {
		return nil, err
	}
	log.Debug().Msgf("Original data length: %d", len(data))
	log.Debug().Msgf("Compressed data length: %d", buf.Len())
	return buf.Bytes(), nil
}

func (e *GzipEncoder) EncoderType() Type {
	return TypeGzip
}

type GzipDecoder struct{}

func NewGzipDecoder() *GzipDecoder {
	if decoder != nil {
		return decoder
	}
	mut.Lock()
	defer mut.Unlock()
	if decoder != nil {
		return decoder
	}
	decoder = &GzipDecoder{}
	return decoder
}

func (d *GzipDecoder) Decode(cdata []byte) ([]byte, error) {
	gr, err := gzip.NewReader(bytes.NewReader(cdata))
	if err != nil {
		return nil, err
	}
	defer gr.Close()
	data, err := io.ReadAll(gr)
	if err != nil {
		return nil, err
	}
	log.Debug().Msgf("Compressed data length: %d", len(cdata))
	log.Debug().Msgf("Decompressed data length: %d", len(data))
	return data, nil
}

// DecodeStream decompresses from r to w without buffering the whole payload
func (d *GzipDecoder) DecodeStream(w io.Writer, r io.Reader) error {
	gr, err := gzip.NewReader(r)
	if err != nil {
		return err
	}
	defer gr.Close()
	_, err = io.Copy(w, gr)
	return err
}

func (d *GzipDecoder) DecoderType() Type {
	return TypeGzip
}
