package flow

import (
	"fmt"
)

// ArgumentType is the declared Cadence type of a transaction argument.
type ArgumentType string

const (
	ArgumentTypeString   ArgumentType = "String"
	ArgumentTypeBool     ArgumentType = "Bool"
	ArgumentTypeAddress  ArgumentType = "Address"
	ArgumentTypeUInt8    ArgumentType = "UInt8"
	ArgumentTypeUInt16   ArgumentType = "UInt16"
	ArgumentTypeUInt32   ArgumentType = "UInt32"
	ArgumentTypeUInt64   ArgumentType = "UInt64"
	ArgumentTypeInt8     ArgumentType = "Int8"
	ArgumentTypeInt16    ArgumentType = "Int16"
	ArgumentTypeInt32    ArgumentType = "Int32"
	ArgumentTypeInt64    ArgumentType = "Int64"
	ArgumentTypeUFix64   ArgumentType = "UFix64"
	ArgumentTypeFix64    ArgumentType = "Fix64"
	ArgumentTypeOptional ArgumentType = "Optional"
	ArgumentTypeArray    ArgumentType = "Array"
	// ArgumentTypeRaw carries an argument that is already JSON-Cadence encoded.
	ArgumentTypeRaw ArgumentType = "Raw"
)

// Argument is a typed value passed to the transaction script.
//
// Scalar values are carried in their textual form: decimal for integers and
// fixed point numbers, hex for addresses, "true"/"false" for booleans. An
// Array lists its values in Elements; an Optional holds at most one element
// and is nil when Elements is empty. A Raw argument holds JSON-Cadence in Value.
type Argument struct {
	Type     ArgumentType `json:"type"`
	Value    string       `json:"value,omitempty"`
	Elements []Argument   `json:"elements,omitempty"`
}

func StringArgument(s string) Argument {
	return Argument{Type: ArgumentTypeString, Value: s}
}

func BoolArgument(b bool) Argument {
	return Argument{Type: ArgumentTypeBool, Value: fmt.Sprintf("%t", b)}
}

func AddressArgument(address Address) Argument {
	return Argument{Type: ArgumentTypeAddress, Value: address.HexWithPrefix()}
}

func UInt64Argument(v uint64) Argument {
	return Argument{Type: ArgumentTypeUInt64, Value: fmt.Sprintf("%d", v)}
}

// UFix64Argument returns a UFix64 argument for a decimal amount such as "10.5".
func UFix64Argument(amount string) Argument {
	return Argument{Type: ArgumentTypeUFix64, Value: amount}
}

// OptionalArgument wraps inner in an Optional. A nil inner is the nil Optional.
func OptionalArgument(inner *Argument) Argument {
	if inner == nil {
		return Argument{Type: ArgumentTypeOptional}
	}
	return Argument{Type: ArgumentTypeOptional, Elements: []Argument{inner.Copy()}}
}

func ArrayArgument(elements ...Argument) Argument {
	arg := Argument{Type: ArgumentTypeArray, Elements: make([]Argument, 0, len(elements))}
	for _, e := range elements {
		arg.Elements = append(arg.Elements, e.Copy())
	}
	return arg
}

// RawArgument returns an argument for an already JSON-Cadence encoded value.
// Only the decoded value is signed, not the given bytes.
func RawArgument(encoded []byte) Argument {
	return Argument{Type: ArgumentTypeRaw, Value: string(encoded)}
}

// Copy returns a deep copy of the argument.
func (a Argument) Copy() Argument {
	c := Argument{Type: a.Type, Value: a.Value}
	if a.Elements != nil {
		c.Elements = make([]Argument, len(a.Elements))
		for i, e := range a.Elements {
			c.Elements[i] = e.Copy()
		}
	}
	return c
}

func (a Argument) String() string {
	switch a.Type {
	case ArgumentTypeOptional:
		if len(a.Elements) == 0 {
			return "Optional(nil)"
		}
		return fmt.Sprintf("Optional(%s)", a.Elements[0])
	case ArgumentTypeArray:
		return fmt.Sprintf("Array%v", a.Elements)
	}
	return fmt.Sprintf("%s(%s)", a.Type, a.Value)
}
