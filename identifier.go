package canframe

import (
	"errors"
	"fmt"
)

// J1939/NMEA 2000 well-known addresses.
const (
	// AddressGlobal is broadcast to all nodes on the bus.
	AddressGlobal uint8 = 255
	// AddressNull is "can not claim address" source.
	AddressNull uint8 = 254
)

var (
	// ErrInvalidLength indicates that identifier input is not exactly 8 characters long.
	ErrInvalidLength = errors.New("identifier must be exactly 8 hex characters")
	// ErrInvalidHexDigit indicates that identifier input contains a character that is not a hex digit.
	ErrInvalidHexDigit = errors.New("identifier contains invalid hex digit")
)

// PDUFormat is J1939 addressing mode of the identifier. PDU1 messages are addressed peer-to-peer and
// carry destination address in the PS byte. PDU2 messages are broadcast and the PS byte is part of PGN.
type PDUFormat uint8

const (
	PDU1 PDUFormat = 1
	PDU2 PDUFormat = 2
)

func (f PDUFormat) String() string {
	switch f {
	case PDU1:
		return "PDU1"
	case PDU2:
		return "PDU2"
	}
	return "UNKNOWN"
}

// MarshalJSON custom marshalling function for PDUFormat.
func (f PDUFormat) MarshalJSON() ([]byte, error) {
	return []byte(`"` + f.String() + `"`), nil
}

// Identifier is 29 bit extended CAN identifier decomposed into J1939/NMEA 2000 fields.
type Identifier struct {
	PGN         uint32    `json:"pgn"`
	Priority    uint8     `json:"priority"`
	Format      PDUFormat `json:"pdu_format"`
	Source      uint8     `json:"source"`
	Destination uint8     `json:"destination"`
}

// DecodeIdentifier decodes 8 hex characters (i.e. `19F21451`, case-insensitive) into Identifier fields.
// Input is interpreted as big-endian 32 bit value of which only the low 29 bits are significant. The top
// 3 bits are not part of the identifier and are ignored, not validated.
func DecodeIdentifier(raw string) (Identifier, error) {
	if len(raw) != 8 {
		return Identifier{}, fmt.Errorf("%w, got length: %v", ErrInvalidLength, len(raw))
	}
	canID := uint32(0)
	for i := 0; i < len(raw); i++ {
		nibble, ok := hexNibble(raw[i])
		if !ok {
			return Identifier{}, fmt.Errorf("%w, character %q at index %v", ErrInvalidHexDigit, raw[i], i)
		}
		canID = canID<<4 | uint32(nibble)
	}
	return ParseCANID(canID), nil
}

// ParseCANID parses identifier fields from CANID (29 bits of 32 bit).
func ParseCANID(canID uint32) Identifier {
	result := Identifier{
		Priority: uint8((canID >> 26) & 0x7), // bit 26,27,28
		Source:   uint8(canID),               // bit 0-7
	}
	ps := uint8(canID >> 8)         // bits 8-15
	pduFormat := uint8(canID >> 16) // bits 16-23
	rAndDP := uint8(canID>>24) & 3  // bits 24,25
	pgn := uint32(rAndDP)<<16 + uint32(pduFormat)<<8
	if pduFormat < 240 {
		result.Format = PDU1
		result.Destination = ps
		result.PGN = pgn
	} else {
		result.Format = PDU2
		result.Destination = AddressGlobal // 0xff is broadcast to all
		result.PGN = pgn + uint32(ps)
	}
	return result
}

// Uint32 composes 29 bit CANID back from identifier fields.
func (id Identifier) Uint32() uint32 {
	canID := uint32(id.Source) // bit 0-7

	pf := uint8(id.PGN >> 8)
	if pf < 240 {
		canID |= uint32(id.Destination) << 8 // bits 8-15
	}
	canID |= id.PGN << 8 // bits 8-25
	canID = canID | uint32(id.Priority&0x7)<<26 // bit 26,27,28
	return canID // this needs to be turned to big endian when written to the wire
}

// ParseHex parses case-insensitive hex string into bytes. Returns false when input has odd length or
// contains a character that is not a hex digit.
func ParseHex(raw string) ([]byte, bool) {
	if len(raw)%2 != 0 {
		return nil, false
	}
	result := make([]byte, len(raw)/2)
	for i := 0; i < len(result); i++ {
		hi, okHi := hexNibble(raw[2*i])
		lo, okLo := hexNibble(raw[2*i+1])
		if !okHi || !okLo {
			return nil, false
		}
		result[i] = hi<<4 | lo
	}
	return result, true
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
