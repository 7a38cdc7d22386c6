package compression

import "fmt"

type Type uint8

const (
	TypeNone Type = iota
	TypeGzip
)

type Encoder interface {
	Encode(data []byte) ([]byte, error)
	EncoderType() Type
}

type Decoder interface {
	Decode(cdata []byte) ([]byte, error)
	DecoderType() Type
}

type NoOpEncoder struct{}

func (e *NoOpEncoder) Encode(data []byte) ([]byte, error) {
	return data, nil
}

func (e *NoOpEncoder) EncoderType() Type {
	return TypeNone
}

type NoOpDecoder struct{}

func (d *NoOpDecoder) Decode(cdata []byte) ([]byte, error) {
	return cdata, nil
}

func (d *NoOpDecoder) DecoderType() Type {
	return TypeNone
}

func GetEncoder(compressionType Type) (Encoder, error) {
	switch compressionType {
	case TypeGzip:
		return NewGzipEncoder(), nil
	case TypeNone:
		return &NoOpEncoder{}, nil
	default:
		return nil, fmt.Errorf("unsupported compression type: %d", compressionType)
	}
}

func GetDecoder(compressionType Type) (Decoder, error) {
	switch compressionType {
	case TypeGzip:
		return NewGzipDecoder(), nil
	case TypeNone:
		return &NoOpDecoder{}, nil
	default:
		return nil, fmt.Errorf("unsupported compression type: %d", compressionType)
	}
}
