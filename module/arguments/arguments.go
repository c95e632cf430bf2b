// Package arguments converts typed transaction arguments to and from their
// JSON-Cadence encoding.
package arguments

import (
	"fmt"
	"strconv"

	"github.com/onflow/cadence"
	jsoncdc "github.com/onflow/cadence/encoding/json"
	"github.com/shopspring/decimal"

	"github.com/onflow/flow-signer/model/flow"
)

// maxDepth bounds the nesting of Optional and Array arguments.
const maxDepth = 16

// fixedPointScale is the number of fractional digits of UFix64 and Fix64.
const fixedPointScale = 8

var (
	maxUFix64 = decimal.RequireFromString("184467440737.09551615")
	maxFix64  = decimal.RequireFromString("92233720368.54775807")
	minFix64  = decimal.RequireFromString("-92233720368.54775808")
)

// Encode returns the canonical JSON-Cadence encoding of arg.
//
// The value is checked against the range of its declared type and addresses
// must be valid on the given chain. Raw arguments are decoded and encoded
// again, so a value has the same encoding however it was given. All errors
// indicate the argument cannot be represented as a value of its declared type.
func Encode(arg flow.Argument, chainID flow.ChainID) ([]byte, error) {
	chain, err := chainID.Chain()
	if err != nil {
		return nil, err
	}

	value, err := ToCadence(arg, chain)
	if err != nil {
		return nil, err
	}

	encoded, err := jsoncdc.Encode(value)
	if err != nil {
		return nil, fmt.Errorf("could not encode %s argument: %w", arg.Type, err)
	}
	return encoded, nil
}

// Decode decodes a JSON-Cadence value into an argument.
//
// Values of types without a typed representation decode as Raw arguments
// holding the input bytes.
func Decode(b []byte) (flow.Argument, error) {
	value, err := jsoncdc.Decode(nil, b)
	if err != nil {
		return flow.Argument{}, fmt.Errorf("argument is not valid JSON-Cadence: %w", err)
	}

	arg, ok := FromCadence(value)
	if !ok {
		return flow.RawArgument(b), nil
	}
	return arg, nil
}

// ToCadence converts arg to the Cadence value of its declared type.
func ToCadence(arg flow.Argument, chain *flow.Chain) (cadence.Value, error) {
	return toCadence(arg, chain, 0)
}

func toCadence(arg flow.Argument, chain *flow.Chain, depth int) (cadence.Value, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("argument nesting exceeds %d levels", maxDepth)
	}

	switch arg.Type {
	case flow.ArgumentTypeString:
		return cadence.NewString(arg.Value)

	case flow.ArgumentTypeBool:
		switch arg.Value {
		case "true":
			return cadence.NewBool(true), nil
		case "false":
			return cadence.NewBool(false), nil
		}
		return nil, fmt.Errorf("value %q is not a Bool", arg.Value)

	case flow.ArgumentTypeAddress:
		address, err := flow.StringToAddress(arg.Value)
		if err != nil {
			return nil, err
		}
		if !chain.IsValid(address) {
			return nil, fmt.Errorf("address %s is not valid on %s", address, chain.ChainID())
		}
		return cadence.NewAddress(address), nil

	case flow.ArgumentTypeUInt8, flow.ArgumentTypeUInt16, flow.ArgumentTypeUInt32, flow.ArgumentTypeUInt64:
		return unsignedInteger(arg)

	case flow.ArgumentTypeInt8, flow.ArgumentTypeInt16, flow.ArgumentTypeInt32, flow.ArgumentTypeInt64:
		return signedInteger(arg)

	case flow.ArgumentTypeUFix64:
		d, err := fixedPoint(arg.Value, decimal.Zero, maxUFix64)
		if err != nil {
			return nil, fmt.Errorf("value %q is not a UFix64: %w", arg.Value, err)
		}
		return cadence.NewUFix64(d.StringFixed(fixedPointScale))

	case flow.ArgumentTypeFix64:
		d, err := fixedPoint(arg.Value, minFix64, maxFix64)
		if err != nil {
			return nil, fmt.Errorf("value %q is not a Fix64: %w", arg.Value, err)
		}
		return cadence.NewFix64(d.StringFixed(fixedPointScale))

	case flow.ArgumentTypeOptional:
		switch len(arg.Elements) {
		case 0:
			return cadence.NewOptional(nil), nil
		case 1:
			inner, err := toCadence(arg.Elements[0], chain, depth+1)
			if err != nil {
				return nil, fmt.Errorf("optional: %w", err)
			}
			return cadence.NewOptional(inner), nil
		default:
			return nil, fmt.Errorf("optional holds %d values", len(arg.Elements))
		}

	case flow.ArgumentTypeArray:
		values := make([]cadence.Value, len(arg.Elements))
		for i, element := range arg.Elements {
			if element.Type != arg.Elements[0].Type {
				return nil, fmt.Errorf("array element %d is %s, expected %s", i, element.Type, arg.Elements[0].Type)
			}
			value, err := toCadence(element, chain, depth+1)
			if err != nil {
				return nil, fmt.Errorf("array element %d: %w", i, err)
			}
			values[i] = value
		}
		return cadence.NewArray(values), nil

	case flow.ArgumentTypeRaw:
		value, err := jsoncdc.Decode(nil, []byte(arg.Value))
		if err != nil {
			return nil, fmt.Errorf("raw argument is not valid JSON-Cadence: %w", err)
		}
		return value, nil
	}

	return nil, fmt.Errorf("argument type %q is not supported", arg.Type)
}

func unsignedInteger(arg flow.Argument) (cadence.Value, error) {
	bits := map[flow.ArgumentType]int{
		flow.ArgumentTypeUInt8:  8,
		flow.ArgumentTypeUInt16: 16,
		flow.ArgumentTypeUInt32: 32,
		flow.ArgumentTypeUInt64: 64,
	}[arg.Type]

	v, err := strconv.ParseUint(arg.Value, 10, bits)
	if err != nil {
		return nil, fmt.Errorf("value %q is not a %s: %w", arg.Value, arg.Type, err)
	}

	switch bits {
	case 8:
		return cadence.NewUInt8(uint8(v)), nil
	case 16:
		return cadence.NewUInt16(uint16(v)), nil
	case 32:
		return cadence.NewUInt32(uint32(v)), nil
	default:
		return cadence.NewUInt64(v), nil
	}
}

func signedInteger(arg flow.Argument) (cadence.Value, error) {
	bits := map[flow.ArgumentType]int{
		flow.ArgumentTypeInt8:  8,
		flow.ArgumentTypeInt16: 16,
		flow.ArgumentTypeInt32: 32,
		flow.ArgumentTypeInt64: 64,
	}[arg.Type]

	v, err := strconv.ParseInt(arg.Value, 10, bits)
	if err != nil {
		return nil, fmt.Errorf("value %q is not a %s: %w", arg.Value, arg.Type, err)
	}

	switch bits {
	case 8:
		return cadence.NewInt8(int8(v)), nil
	case 16:
		return cadence.NewInt16(int16(v)), nil
	case 32:
		return cadence.NewInt32(int32(v)), nil
	default:
		return cadence.NewInt64(v), nil
	}
}

// fixedPoint parses a decimal with at most 8 fractional digits within [lower, upper].
func fixedPoint(s string, lower decimal.Decimal, upper decimal.Decimal) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if !d.Equal(d.Truncate(fixedPointScale)) {
		return decimal.Zero, fmt.Errorf("more than %d fractional digits", fixedPointScale)
	}
	if d.LessThan(lower) || d.GreaterThan(upper) {
		return decimal.Zero, fmt.Errorf("out of range [%s, %s]", lower, upper)
	}
	return d, nil
}

// FromCadence converts a Cadence value to an argument. It returns false for
// values without a typed representation.
func FromCadence(value cadence.Value) (flow.Argument, bool) {
	return fromCadence(value, 0)
}

func fromCadence(value cadence.Value, depth int) (flow.Argument, bool) {
	if depth > maxDepth {
		return flow.Argument{}, false
	}

	switch v := value.(type) {
	case cadence.String:
		return flow.StringArgument(string(v)), true
	case cadence.Bool:
		return flow.BoolArgument(bool(v)), true
	case cadence.Address:
		return flow.AddressArgument(flow.Address(v)), true
	case cadence.UInt8:
		return integer(flow.ArgumentTypeUInt8, uint64(v)), true
	case cadence.UInt16:
		return integer(flow.ArgumentTypeUInt16, uint64(v)), true
	case cadence.UInt32:
		return integer(flow.ArgumentTypeUInt32, uint64(v)), true
	case cadence.UInt64:
		return integer(flow.ArgumentTypeUInt64, uint64(v)), true
	case cadence.Int8:
		return flow.Argument{Type: flow.ArgumentTypeInt8, Value: strconv.FormatInt(int64(v), 10)}, true
	case cadence.Int16:
		return flow.Argument{Type: flow.ArgumentTypeInt16, Value: strconv.FormatInt(int64(v), 10)}, true
	case cadence.Int32:
		return flow.Argument{Type: flow.ArgumentTypeInt32, Value: strconv.FormatInt(int64(v), 10)}, true
	case cadence.Int64:
		return flow.Argument{Type: flow.ArgumentTypeInt64, Value: strconv.FormatInt(int64(v), 10)}, true
	case cadence.UFix64:
		return flow.Argument{Type: flow.ArgumentTypeUFix64, Value: v.String()}, true
	case cadence.Fix64:
		return flow.Argument{Type: flow.ArgumentTypeFix64, Value: v.String()}, true
	case cadence.Optional:
		if v.Value == nil {
			return flow.OptionalArgument(nil), true
		}
		inner, ok := fromCadence(v.Value, depth+1)
		if !ok {
			return flow.Argument{}, false
		}
		return flow.OptionalArgument(&inner), true
	case cadence.Array:
		elements := make([]flow.Argument, len(v.Values))
		for i, element := range v.Values {
			arg, ok := fromCadence(element, depth+1)
			if !ok {
				return flow.Argument{}, false
			}
			elements[i] = arg
		}
		return flow.ArrayArgument(elements...), true
	}

	return flow.Argument{}, false
}

func integer(t flow.ArgumentType, v uint64) flow.Argument {
	return flow.Argument{Type: t, Value: strconv.FormatUint(v, 10)}
}
