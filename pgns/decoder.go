package pgns

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/aldas/go-canframe"
)

// PayloadBytes is size of single NMEA 2000 frame payload.
const PayloadBytes = 8

var (
	// ErrUnknownPGN indicates that registry has no definition for given PGN. This is expected outcome
	// for unregistered message types and is not an input error.
	ErrUnknownPGN = errors.New("decode failed, unknown PGN seen")
	// ErrInvalidPayloadLength indicates that payload input is not exactly 16 hex characters (8 bytes).
	ErrInvalidPayloadLength = errors.New("payload must be exactly 16 hex characters")
	// ErrSchemaRange indicates field definition that reads past the 8 byte payload.
	ErrSchemaRange = errors.New("field byte range is out of payload bounds")
)

// FieldValue holds extracted and rendered value for single PGN field.
type FieldValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// FieldValues is ordered slice of FieldValue. Order follows field declaration order in PGN definition.
type FieldValues []FieldValue

func (fvs FieldValues) FindByName(name string) (FieldValue, bool) {
	for _, f := range fvs {
		if f.Name == name {
			return f, true
		}
	}
	return FieldValue{}, false
}

// Decoder decodes 8 byte frame payloads against definitions in Registry.
type Decoder struct {
	registry *Registry
}

// NewDecoder creates new instance of payload decoder with given registry.
func NewDecoder(registry *Registry) *Decoder {
	return &Decoder{registry: registry}
}

// Decode extracts all fields that definition for given PGN declares out of 16 hex character payload.
// Fields are output in declaration order. Decode either fully succeeds or fails, there is no partial
// output.
func (d *Decoder) Decode(pgn uint32, rawHex string) (FieldValues, error) {
	if len(rawHex) != 2*PayloadBytes {
		return nil, fmt.Errorf("%w, got length: %v", ErrInvalidPayloadLength, len(rawHex))
	}
	data, ok := canframe.ParseHex(rawHex)
	if !ok {
		return nil, fmt.Errorf("%w, input is not valid hex", ErrInvalidPayloadLength)
	}

	def, ok := d.registry.Find(pgn)
	if !ok {
		return nil, fmt.Errorf("%w, PGN: %v", ErrUnknownPGN, pgn)
	}

	result := make(FieldValues, 0, len(def.Fields))
	for _, f := range def.Fields {
		value, err := extract(f, data)
		if err != nil {
			return nil, err
		}
		result = append(result, FieldValue{Name: f.Name, Value: value})
	}
	return result, nil
}

func extract(f Field, data []byte) (string, error) {
	start := int(f.StartByte)
	end := start + int(f.LengthBytes)
	if end > len(data) {
		return "", fmt.Errorf("%w, field: %v, bytes: %v-%v", ErrSchemaRange, f.Name, start, end-1)
	}

	value := uint64(0)
	for _, b := range data[start:end] { // big-endian
		value = value<<8 | uint64(b)
	}
	if resolution := f.Unit.Resolution(); resolution != 1 {
		return strconv.FormatFloat(float64(value)*resolution, 'f', 4, 64), nil
	}
	return strconv.FormatUint(value, 10), nil
}
