package flow

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
)

// Address represents the 8 byte address of an account.
type Address [AddressLength]byte

const (
	// AddressLength is the size of an account address in bytes.
	AddressLength = 8
)

// EmptyAddress is the zero value of Address. It is never a valid account address.
var EmptyAddress = Address{}

// HexToAddress converts a hex string to an Address, ignoring malformed input.
//
// Use StringToAddress when the input comes from a caller and must be checked.
func HexToAddress(h string) Address {
	a, _ := StringToAddress(h)
	return a
}

// StringToAddress parses a hex string, with or without the 0x prefix, into an Address.
//
// Shorter inputs are left padded with zeros. Inputs that are not hex or that
// are longer than AddressLength bytes return an error.
func StringToAddress(s string) (Address, error) {
	h := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(h)%2 == 1 {
		h = "0" + h
	}
	b, err := hex.DecodeString(h)
	if err != nil {
		return EmptyAddress, fmt.Errorf("address %q is not hex encoded: %w", s, err)
	}
	if len(b) > AddressLength {
		return EmptyAddress, fmt.Errorf("address %q is longer than %d bytes", s, AddressLength)
	}
	return BytesToAddress(b), nil
}

// BytesToAddress returns Address with value b.
//
// If b is larger than 8, b will be cropped from the left.
// If b is smaller than 8, b will be appended by zeroes at the front.
func BytesToAddress(b []byte) Address {
	var a Address
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
	return a
}

// Uint64ToAddress returns an address with value v.
func Uint64ToAddress(v uint64) Address {
	var b [AddressLength]byte
	binary.BigEndian.PutUint64(b[:], v)
	return b
}

// Uint64 converts an address into a uint64.
func (a Address) Uint64() uint64 {
	return binary.BigEndian.Uint64(a[:])
}

// Bytes returns the byte representation of the address.
func (a Address) Bytes() []byte { return a[:] }

// Hex returns the hex string representation of the address.
func (a Address) Hex() string {
	return hex.EncodeToString(a.Bytes())
}

// HexWithPrefix returns the hex string representation of the address, including the 0x prefix.
func (a Address) HexWithPrefix() string {
	return "0x" + a.Hex()
}

// String returns the string representation of the address.
func (a Address) String() string {
	return a.Hex()
}

// Short returns the string representation of the address with leading zeros
// removed.
func (a Address) Short() string {
	trimmed := strings.TrimLeft(a.Hex(), "0")
	if len(trimmed)%2 != 0 {
		trimmed = "0" + trimmed
	}
	return trimmed
}

func (a Address) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("\"%s\"", a.Hex())), nil
}

func (a *Address) UnmarshalJSON(data []byte) error {
	parsed, err := StringToAddress(strings.Trim(string(data), "\""))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

const (
	// [n,k,d]-Linear code parameters
	// The linear code used in the account addressing is a [64,45,7]
	// It generates a [64,45]-code, which is the space of Flow account addresses
	//
	// size of the code words in bits,
	// which is also the size of the account addresses in bits
	linearCodeN = AddressLength << 3
	// size of the words in bits.
	// 2^k is the total number of possible account addresses.
	linearCodeK = 45

	// maxIndex is the largest address index, 2^k - 1.
	maxIndex = (1 << linearCodeK) - 1
)

// encodeWord multiplies the index GF(2) vector by the code generator matrix.
// The function assumes the index is valid (<2^k).
func encodeWord(index uint64) uint64 {
	word := uint64(0)
	for i := 0; i < linearCodeK; i++ {
		if index&1 == 1 {
			word ^= generatorMatrixRows[i]
		}
		index >>= 1
	}
	return word
}

// isValidCodeWord multiplies the code word GF(2)-vector by the parity-check
// matrix and checks the syndrome is zero.
func isValidCodeWord(codeWord uint64) bool {
	parity := uint(0)
	for i := 0; i < linearCodeN; i++ {
		if codeWord&1 == 1 {
			parity ^= parityCheckMatrixColumns[i]
		}
		codeWord >>= 1
	}
	return parity == 0
}

// Rows of the generator matrix G of the [64,45]-code used for Flow addresses
// G is a (k x n) matrix with coefficients in GF(2), each row is converted into
// a big endian integer representation of the GF(2) raw vector.
// G is used to generate the account addresses
var generatorMatrixRows = [linearCodeK]uint64{
	0xe467b9dd11fa00df, 0xf233dcee88fe0abe, 0xf919ee77447b7497, 0xfc8cf73ba23a260d,
	0xfe467b9dd11ee2a1, 0xff233dcee888d807, 0xff919ee774476ce6, 0x7fc8cf73ba231d10,
	0x3fe467b9dd11b183, 0x1ff233dcee8f96d6, 0x8ff919ee774757ba, 0x47fc8cf73ba2b331,
	0x23fe467b9dd27f6c, 0x11ff233dceee8e82, 0x88ff919ee775dd8f, 0x447fc8cf73b905e4,
	0xa23fe467b9de0d83, 0xd11ff233dce8d5a7, 0xe88ff919ee73c38a, 0x7447fc8cf73f171f,
	0xba23fe467b9dcb2b, 0xdd11ff233dcb0cb4, 0xee88ff919ee26c5d, 0x77447fc8cf775dd3,
	0x3ba23fe467b9b5a1, 0x9dd11ff233d9117a, 0xcee88ff919efa640, 0xe77447fc8cf3e297,
	0x73ba23fe467fabd2, 0xb9dd11ff233fb16c, 0xdcee88ff919adde7, 0xee77447fc8ceb196,
	0xf73ba23fe4621cd0, 0x7b9dd11ff2379ac3, 0x3dcee88ff91df46c, 0x9ee77447fc88e702,
	0xcf73ba23fe4131b6, 0x67b9dd11ff240f9a, 0x33dcee88ff90f9e0, 0x19ee77447fcff4e3,
	0x8cf73ba23fe64091, 0x467b9dd11ff115c7, 0x233dcee88ffdb735, 0x919ee77447fe2309,
	0xc8cf73ba23fdc736,
}

// Columns of the parity-check matrix H of the [64,45]-code used for Flow addresses
// H is a (n x p) matrix with coefficients in GF(2), each column is converted into
// a big endian integer representation of the GF(2) column vector.
// H is used to verify a code word is a valid account address
var parityCheckMatrixColumns = [linearCodeN]uint{
	0x00001, 0x00002, 0x00004, 0x00008,
	0x00010, 0x00020, 0x00040, 0x00080,
	0x00100, 0x00200, 0x00400, 0x00800,
	0x01000, 0x02000, 0x04000, 0x08000,
	0x10000, 0x20000, 0x40000, 0x7328d,
	0x6689a, 0x6112f, 0x6084b, 0x433fd,
	0x42aab, 0x41951, 0x233ce, 0x22a81,
	0x21948, 0x1ef60, 0x1deca, 0x1c639,
	0x1bdd8, 0x1a535, 0x194ac, 0x18c46,
	0x1632b, 0x1529b, 0x14a43, 0x13184,
	0x12942, 0x118c1, 0x0f812, 0x0e027,
	0x0d00e, 0x0c83c, 0x0b01d, 0x0a831,
	0x0982b, 0x07034, 0x0682a, 0x05819,
	0x03807, 0x007d2, 0x00727, 0x0068e,
	0x0067c, 0x0059d, 0x004eb, 0x003b4,
	0x0036a, 0x002d9, 0x001c7, 0x0003f,
}
