package schema

import "fmt"

// NonNullType wraps another type, forbidding null as a value: as an output
// type it turns a null resolver result into a field error that propagates
// to the nearest nullable ancestor; as an input type it requires a value to
// be provided.
type NonNullType struct {
	Type Type
}

func NewNonNullType(t Type) *NonNullType {
	return &NonNullType{
		Type: t,
	}
}

func (t *NonNullType) String() string {
	return t.Type.String() + "!"
}

func (t *NonNullType) IsInputType() bool {
	return t.Type.IsInputType()
}

func (t *NonNullType) IsOutputType() bool {
	return t.Type.IsOutputType()
}

func (t *NonNullType) IsSubTypeOf(other Type) bool {
	if nn, ok := other.(*NonNullType); ok {
		return t.Type.IsSubTypeOf(nn.Type)
	}
	return t.Type.IsSubTypeOf(other)
}

func (t *NonNullType) IsSameType(other Type) bool {
	if nn, ok := other.(*NonNullType); ok {
		return t.Type.IsSameType(nn.Type)
	}
	return false
}

func (t *NonNullType) Unwrap() Type {
	return t.Type
}

func (t *NonNullType) shallowValidate() error {
	if IsNonNullType(t.Type) {
		return fmt.Errorf("non-null types cannot wrap other non-null types")
	}
	return nil
}

// IsNonNullType reports whether t is a *NonNullType.
func IsNonNullType(t Type) bool {
	_, ok := t.(*NonNullType)
	return ok
}

// NullableType strips every NonNullType wrapper from t, returning the
// nullable type underneath (which may still be a ListType).
func NullableType(t Type) Type {
	for {
		if nnt, ok := t.(*NonNullType); ok {
			t = nnt.Unwrap()
		} else {
			break
		}
	}
	return t
}
