package pgns

// Built-in definitions cover common single-frame PGNs so that decoding works out of the box without a
// schema file. Anything beyond these should come from LoadSchema.
var builtinPGNs = []PGN{
	{
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
	{
		PGN:  127488,
		Name: "Engine Parameters, Rapid Update",
		Fields: []Field{
			{Name: "Instance", StartByte: 0, LengthBytes: 1},
			{Name: "Speed", StartByte: 1, LengthBytes: 2},
			{Name: "BoostPressure", StartByte: 3, LengthBytes: 2},
			{Name: "TiltTrim", StartByte: 5, LengthBytes: 1},
		},
	},
	{
		PGN:  127245,
		Name: "Rudder",
		Fields: []Field{
			{Name: "Instance", StartByte: 0, LengthBytes: 1},
			{Name: "DirectionOrder", StartByte: 1, LengthBytes: 1},
			{Name: "AngleOrder", StartByte: 2, LengthBytes: 2, Unit: UnitRadians},
			{Name: "Position", StartByte: 4, LengthBytes: 2, Unit: UnitRadians},
		},
	},
}

// DefaultRegistry returns registry with built-in parameter group definitions.
func DefaultRegistry() *Registry {
	registry, err := NewRegistry(builtinPGNs...)
	if err != nil { // built-in definitions are covered by tests, this is unreachable
		panic(err)
	}
	return registry
}
