package pgns

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testRegistry(t *testing.T) *Registry {
	registry, err := NewRegistry(
		PGN{
			PGN:  127508,
			Name: "Vessel Heading",
			Fields: []Field{
				{Name: "SID", StartByte: 0, LengthBytes: 1},
				{Name: "Heading", StartByte: 1, LengthBytes: 2, Unit: UnitRadians},
				{Name: "Deviation", StartByte: 3, LengthBytes: 2, Unit: UnitRadians},
				{Name: "Variation", StartByte: 5, LengthBytes: 2, Unit: UnitRadians},
				{Name: "Reference", StartByte: 7, LengthBytes: 1},
			},
		},
		PGN{
			PGN:  65280,
			Name: "Manufacturer Proprietary",
			Fields: []Field{
				{Name: "Whole", StartByte: 0, LengthBytes: 8},
			},
		},
	)
	assert.NoError(t, err)
	return registry
}

func TestDecoder_Decode(t *testing.T) {
	var testCases = []struct {
		name        string
		pgn         uint32
		rawHex      string
		expect      FieldValues
		expectError string
	}{
		{
			name:   "ok, scaled radians fields",
			pgn:    127508,
			rawHex: "00123456789ABCDE",
			expect: FieldValues{
				{Name: "SID", Value: "0"},
				{Name: "Heading", Value: "0.4660"},   // 0x1234 = 4660
				{Name: "Deviation", Value: "2.2136"}, // 0x5678 = 22136
				{Name: "Variation", Value: "3.9612"}, // 0x9ABC = 39612
				{Name: "Reference", Value: "222"},    // 0xDE
			},
		},
		{
			name:   "ok, lowercase payload",
			pgn:    127508,
			rawHex: "00123456789abcde",
			expect: FieldValues{
				{Name: "SID", Value: "0"},
				{Name: "Heading", Value: "0.4660"},
				{Name: "Deviation", Value: "2.2136"},
				{Name: "Variation", Value: "3.9612"},
				{Name: "Reference", Value: "222"},
			},
		},
		{
			name:   "ok, full 8 byte unsigned field",
			pgn:    65280,
			rawHex: "FFFFFFFFFFFFFFFF",
			expect: FieldValues{
				{Name: "Whole", Value: "18446744073709551615"},
			},
		},
		{
			name:        "nok, 15 characters",
			pgn:         127508,
			rawHex:      "00123456789ABCD",
			expectError: "payload must be exactly 16 hex characters, got length: 15",
		},
		{
			name:        "nok, 17 characters",
			pgn:         127508,
			rawHex:      "00123456789ABCDE0",
			expectError: "payload must be exactly 16 hex characters, got length: 17",
		},
		{
			name:        "nok, length is checked before PGN lookup",
			pgn:         999999,
			rawHex:      "00",
			expectError: "payload must be exactly 16 hex characters, got length: 2",
		},
		{
			name:        "nok, non hex payload",
			pgn:         127508,
			rawHex:      "00123456789ABCDG",
			expectError: "payload must be exactly 16 hex characters, input is not valid hex",
		},
		{
			name:        "nok, unregistered PGN",
			pgn:         999999,
			rawHex:      "00123456789ABCDE",
			expectError: "decode failed, unknown PGN seen, PGN: 999999",
		},
	}

	decoder := NewDecoder(testRegistry(t))
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := decoder.Decode(tc.pgn, tc.rawHex)

			assert.Equal(t, tc.expect, result)
			if tc.expectError != "" {
				assert.EqualError(t, err, tc.expectError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDecoder_Decode_errorClass(t *testing.T) {
	decoder := NewDecoder(testRegistry(t))

	_, err := decoder.Decode(999999, "00123456789ABCDE")
	assert.ErrorIs(t, err, ErrUnknownPGN)
	assert.NotErrorIs(t, err, ErrInvalidPayloadLength)

	_, err = decoder.Decode(999999, "0012")
	assert.ErrorIs(t, err, ErrInvalidPayloadLength)
	assert.NotErrorIs(t, err, ErrUnknownPGN)
}

func TestDecoder_Decode_schemaRange(t *testing.T) {
	registry, err := NewRegistry(PGN{
		PGN:  60928,
		Name: "Broken",
		Fields: []Field{
			{Name: "First", StartByte: 0, LengthBytes: 1},
			{Name: "Overflow", StartByte: 7, LengthBytes: 2},
		},
	})
	assert.NoError(t, err)

	result, err := NewDecoder(registry).Decode(60928, "00123456789ABCDE")

	// whole decode fails, valid leading field is not output
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrSchemaRange)
	assert.EqualError(t, err, "field byte range is out of payload bounds, field: Overflow, bytes: 7-8")
}

func TestDecoder_Decode_isDeterministic(t *testing.T) {
	decoder := NewDecoder(testRegistry(t))

	first, err := decoder.Decode(127508, "00123456789ABCDE")
	assert.NoError(t, err)
	for i := 0; i < 100; i++ {
		again, err := decoder.Decode(127508, "00123456789ABCDE")
		assert.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestFieldValues_FindByName(t *testing.T) {
	decoder := NewDecoder(testRegistry(t))
	result, err := decoder.Decode(127508, "00123456789ABCDE")
	assert.NoError(t, err)

	heading, ok := result.FindByName("Heading")
	assert.True(t, ok)
	assert.Equal(t, FieldValue{Name: "Heading", Value: "0.4660"}, heading)

	_, ok = result.FindByName("DoesNotExist")
	assert.False(t, ok)
}
