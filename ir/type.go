package ir

import "fmt"

// Type discriminates the Node union. The zero value is NullType.
type Type int

const (
	NullType Type = iota
	BoolType
	NumberType
	StringType
	ArrayType
	ObjectType
)

func Types() []Type {
	return []Type{NullType, BoolType, NumberType, StringType, ArrayType, ObjectType}
}

func (t Type) String() string {
	d, err := t.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (t Type) MarshalText() ([]byte, error) {
	switch t {
	case NullType:
		return []byte("null"), nil
	case BoolType:
		return []byte("bool"), nil
	case NumberType:
		return []byte("number"), nil
	case StringType:
		return []byte("string"), nil
	case ArrayType:
		return []byte("array"), nil
	case ObjectType:
		return []byte("object"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a type>", t)
	}
}

// IsScalar reports whether t is one of the atom types.
func (t Type) IsScalar() bool {
	switch t {
	case NullType, BoolType, NumberType, StringType:
		return true
	}
	return false
}
