package pgns

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"

	"gopkg.in/yaml.v3"
)

// Unit is measurement unit tag for PGN field values. Fields are transmitted as fixed-point unsigned
// integers and unit determines the scale factor applied when value is rendered.
type Unit string

const (
	// UnitNone renders the raw unsigned integer value.
	UnitNone Unit = "NONE"
	// UnitRadians - value is fixed-point angle, one count is 1e-4 rad.
	UnitRadians Unit = "RADIANS"
)

// Resolution returns scale factor for raw field value. Resolution 1 means value is used as-is.
func (u Unit) Resolution() float64 {
	if u == UnitRadians {
		return 0.0001
	}
	return 1
}

// UnmarshalJSON custom unmarshalling function for Unit.
func (u *Unit) UnmarshalJSON(b []byte) error {
	if b[0] == '"' && b[len(b)-1] == '"' {
		b = b[1 : len(b)-1]
	}
	return u.set(string(b))
}

// UnmarshalYAML custom unmarshalling function for Unit.
func (u *Unit) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	return u.set(raw)
}

func (u *Unit) set(raw string) error {
	switch raw {
	case "": // schema files may leave unit out for raw integer fields
		*u = UnitNone
	case string(UnitNone), string(UnitRadians):
		*u = Unit(raw)
	default:
		return fmt.Errorf("unknown Unit value: `%v`", raw)
	}
	return nil
}

// Field describes single value packed into 8 byte PGN payload as consecutive whole bytes.
type Field struct {
	Name        string `json:"Name" yaml:"name"`
	StartByte   uint8  `json:"StartByte" yaml:"start_byte"`
	LengthBytes uint8  `json:"LengthBytes" yaml:"length_bytes"`
	Unit        Unit   `json:"Unit" yaml:"unit"`
}

func (f *Field) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("field has empty name")
	}
	if f.LengthBytes < 1 || f.LengthBytes > 8 {
		return fmt.Errorf("field: %v has invalid byte length: %v", f.Name, f.LengthBytes)
	}
	switch f.Unit {
	case "", UnitNone, UnitRadians: // zero value means no unit
	default:
		return fmt.Errorf("field: %v has unknown unit: %v", f.Name, f.Unit)
	}
	return nil
}

// PGN describes single parameter group: its number, human-readable name and ordered list of payload
// fields. Field order in definition is the order values are decoded and output in.
type PGN struct {
	PGN    uint32  `json:"PGN" yaml:"pgn"`
	Name   string  `json:"Name" yaml:"name"`
	Fields []Field `json:"Fields" yaml:"fields"`
}

// Schema is root element for PGN definitions file.
type Schema struct {
	Version string `json:"Version" yaml:"version"`
	PGNs    []PGN  `json:"PGNs" yaml:"pgns"`
}

// Registry builds immutable registry out of schema definitions.
func (s Schema) Registry() (*Registry, error) {
	return NewRegistry(s.PGNs...)
}

// LoadSchema loads PGN schema from JSON or YAML file. Format is chosen by file extension, files
// without `.yaml`/`.yml` extension are read as JSON.
func LoadSchema(filesystem fs.FS, p string) (Schema, error) {
	f, err := filesystem.Open(p)
	if err != nil {
		return Schema{}, err
	}
	defer func() {
		err = f.Close()
	}()

	schema := Schema{}
	switch path.Ext(p) {
	case ".yaml", ".yml":
		if err := yaml.NewDecoder(f).Decode(&schema); err != nil {
			return Schema{}, err
		}
	default:
		if err := json.NewDecoder(f).Decode(&schema); err != nil {
			return Schema{}, err
		}
	}
	return schema, err
}
