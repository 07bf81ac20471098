package columnar

import (
	"fmt"

	"github.com/aristath/marketframe/pkg/errs"
	"github.com/aristath/marketframe/pkg/scalar"
)

// Field describes one column: its name, logical type, and nullability.
type Field struct {
	Name     string
	Type     scalar.Type
	Nullable bool
}

// Schema is an ordered list of Fields with unique names.
type Schema struct {
	fields []Field
	index  map[string]int
}

// NewSchema builds a Schema, rejecting duplicate field names.
func NewSchema(fields ...Field) (*Schema, error) {
	idx := make(map[string]int, len(fields))
	for i, f := range fields {
		if _, dup := idx[f.Name]; dup {
			return nil, errs.Newf(errs.TypeMismatch, "schema", "duplicate field name %q", f.Name)
		}
		idx[f.Name] = i
	}
	return &Schema{fields: append([]Field(nil), fields...), index: idx}, nil
}

// MustNewSchema is NewSchema, panicking on error. Intended for static
// exchange/table construction where the field list is a compile-time
// literal known to be valid.
func MustNewSchema(fields ...Field) *Schema {
	s, err := NewSchema(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) Fields() []Field   { return append([]Field(nil), s.fields...) }
func (s *Schema) NumFields() int    { return len(s.fields) }
func (s *Schema) Field(i int) Field { return s.fields[i] }

// FieldByName returns the index of name, or -1 if absent.
func (s *Schema) FieldByName(name string) int {
	if i, ok := s.index[name]; ok {
		return i
	}
	return -1
}

// HasField reports whether name is present.
func (s *Schema) HasField(name string) bool {
	_, ok := s.index[name]
	return ok
}

// WithField returns a new Schema with an additional field appended.
func (s *Schema) WithField(f Field) (*Schema, error) {
	return NewSchema(append(s.Fields(), f)...)
}

func (s *Schema) String() string {
	out := "schema{"
	for i, f := range s.fields {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s:%s", f.Name, f.Type)
	}
	return out + "}"
}
