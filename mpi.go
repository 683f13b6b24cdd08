package botan

//#include "common.h"
import "C"

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// MPI is an arbitrary precision signed integer held by the native library.
// Arithmetic methods return new values and leave operands intact, except
// for the *Assign variants which update the receiver.
type MPI struct {
	h *handle[C.botan_mp_t]
}

var _ fmt.Formatter = (*MPI)(nil)

func destroyMPI(obj C.botan_mp_t) C.int {
	return C.botan_mp_destroy(obj)
}

// NewMPI creates MPI holding zero.
func NewMPI() (*MPI, error) {
	h, err := acquire(kindMPI, destroyMPI, func(obj *C.botan_mp_t) C.int {
		return C.botan_mp_init(obj)
	})
	if err != nil {
		return nil, err
	}
	return &MPI{h: h}, nil
}

// newMPIWith creates zero MPI and applies set to it, releasing the value
// when set fails.
func newMPIWith(set func(*MPI) error) (*MPI, error) {
	res, err := NewMPI()
	if err != nil {
		return nil, err
	}
	if err := set(res); err != nil {
		res.Close()
		return nil, err
	}
	return res, nil
}

// NewMPIFromString parses decimal or "0x" prefixed hexadecimal literal with
// optional leading minus sign.
func NewMPIFromString(s string) (*MPI, error) {
	return newMPIWith(func(m *MPI) error { return m.SetString(s) })
}

// NewMPIFromInt creates MPI holding v.
func NewMPIFromInt(v int64) (*MPI, error) {
	return newMPIWith(func(m *MPI) error { return m.SetInt64(v) })
}

// NewMPIFromBytes creates non-negative MPI from big-endian bytes.
func NewMPIFromBytes(buf []byte) (*MPI, error) {
	return newMPIWith(func(m *MPI) error { return m.SetBytes(buf) })
}

// NewMPIFromBigInt creates MPI holding the value of x.
func NewMPIFromBigInt(x *big.Int) (*MPI, error) {
	if x == nil {
		return nil, newError("Error creating MPI from nil big.Int", CodeNullPointer, ErrInvalidInput)
	}
	return newMPIWith(func(m *MPI) error { return m.SetString(x.String()) })
}

func (m *MPI) obj() (C.botan_mp_t, error) {
	if m == nil {
		return nil, releasedErr(kindMPI)
	}
	return m.h.get()
}

func (m *MPI) call(msg string, fn func(obj C.botan_mp_t) C.int) error {
	obj, err := m.obj()
	if err != nil {
		return err
	}
	return getErr(msg, fn(obj))
}

// SetInt32 assigns v to m.
func (m *MPI) SetInt32(v int32) error {
	return m.call("Error setting MPI value", func(obj C.botan_mp_t) C.int {
		return C.botan_mp_set_from_int(obj, C.int(v))
	})
}

// SetInt64 assigns v to m.
func (m *MPI) SetInt64(v int64) error {
	if int64(int32(v)) == v {
		return m.SetInt32(int32(v))
	}
	return m.SetString(strconv.FormatInt(v, 10))
}

// SetString parses decimal or "0x" prefixed hexadecimal literal into m.
func (m *MPI) SetString(s string) error {
	cs, err := cString(s)
	if err != nil {
		return err
	}
	defer freePtr(cs)
	return asConversion(m.call("Error parsing MPI "+strconv.Quote(s), func(obj C.botan_mp_t) C.int {
		return C.botan_mp_set_from_str(obj, cs)
	}))
}

// SetBytes assigns non-negative value of big-endian buf to m.
func (m *MPI) SetBytes(buf []byte) error {
	return m.call("Error setting MPI bytes", func(obj C.botan_mp_t) C.int {
		return C.botan_mp_from_bin(obj, bytesPtr(buf), sizeT(len(buf)))
	})
}

// Set assigns value of x to m.
func (m *MPI) Set(x *MPI) error {
	src, err := x.obj()
	if err != nil {
		return err
	}
	return m.call("Error copying MPI", func(obj C.botan_mp_t) C.int {
		return C.botan_mp_set_from_mp(obj, src)
	})
}

// Copy returns independent MPI with the same value.
func (m *MPI) Copy() (*MPI, error) {
	return newMPIWith(func(res *MPI) error { return res.Set(m) })
}

// binary computes a new value from two operands.
func (m *MPI) binary(msg string, y *MPI, fn func(res, x, y C.botan_mp_t) C.int) (*MPI, error) {
	x, err := m.obj()
	if err != nil {
		return nil, err
	}
	yo, err := y.obj()
	if err != nil {
		return nil, err
	}
	return newMPIWith(func(res *MPI) error {
		return res.call(msg, func(obj C.botan_mp_t) C.int {
			return fn(obj, x, yo)
		})
	})
}

// Add returns m + y.
func (m *MPI) Add(y *MPI) (*MPI, error) {
	return m.binary("Error adding MPI", y, func(res, x, y C.botan_mp_t) C.int {
		return C.botan_mp_add(res, x, y)
	})
}

// Sub returns m - y.
func (m *MPI) Sub(y *MPI) (*MPI, error) {
	return m.binary("Error subtracting MPI", y, func(res, x, y C.botan_mp_t) C.int {
		return C.botan_mp_sub(res, x, y)
	})
}

// Mul returns m * y.
func (m *MPI) Mul(y *MPI) (*MPI, error) {
	return m.binary("Error multiplying MPI", y, func(res, x, y C.botan_mp_t) C.int {
		return C.botan_mp_mul(res, x, y)
	})
}

// GCD returns greatest common divisor of m and y.
func (m *MPI) GCD(y *MPI) (*MPI, error) {
	return m.binary("Error computing GCD", y, func(res, x, y C.botan_mp_t) C.int {
		return C.botan_mp_gcd(res, x, y)
	})
}

// ModInverse returns inverse of m modulo mod.
func (m *MPI) ModInverse(mod *MPI) (*MPI, error) {
	return m.binary("Error computing modular inverse", mod, func(res, x, y C.botan_mp_t) C.int {
		return C.botan_mp_mod_inverse(res, x, y)
	})
}

// DivMod returns quotient and remainder of m divided by y.
func (m *MPI) DivMod(y *MPI) (q, r *MPI, err error) {
	x, err := m.obj()
	if err != nil {
		return nil, nil, err
	}
	yo, err := y.obj()
	if err != nil {
		return nil, nil, err
	}
	if q, err = NewMPI(); err != nil {
		return nil, nil, err
	}
	if r, err = NewMPI(); err != nil {
		q.Close()
		return nil, nil, err
	}
	qo, _ := q.obj()
	ro, _ := r.obj()
	if rc := C.botan_mp_div(qo, ro, x, yo); rc != 0 {
		CloseAll(q, r)
		return nil, nil, getErr("Error dividing MPI", rc)
	}
	return q, r, nil
}

// Mod returns remainder of m divided by y.
func (m *MPI) Mod(y *MPI) (*MPI, error) {
	q, r, err := m.DivMod(y)
	if err != nil {
		return nil, err
	}
	q.Close()
	return r, nil
}

// PowMod returns m**exp mod modulus.
func (m *MPI) PowMod(exp, modulus *MPI) (*MPI, error) {
	x, err := m.obj()
	if err != nil {
		return nil, err
	}
	e, err := exp.obj()
	if err != nil {
		return nil, err
	}
	mod, err := modulus.obj()
	if err != nil {
		return nil, err
	}
	return newMPIWith(func(res *MPI) error {
		return res.call("Error computing modular exponent", func(obj C.botan_mp_t) C.int {
			return C.botan_mp_powmod(obj, x, e, mod)
		})
	})
}

func (m *MPI) shift(msg string, n uint, fn func(res, x C.botan_mp_t, n C.size_t) C.int) (*MPI, error) {
	x, err := m.obj()
	if err != nil {
		return nil, err
	}
	return newMPIWith(func(res *MPI) error {
		return res.call(msg, func(obj C.botan_mp_t) C.int {
			return fn(obj, x, C.size_t(n))
		})
	})
}

// Lsh returns m << n.
func (m *MPI) Lsh(n uint) (*MPI, error) {
	return m.shift("Error shifting MPI", n, func(res, x C.botan_mp_t, n C.size_t) C.int {
		return C.botan_mp_lshift(res, x, n)
	})
}

// Rsh returns m >> n.
func (m *MPI) Rsh(n uint) (*MPI, error) {
	return m.shift("Error shifting MPI", n, func(res, x C.botan_mp_t, n C.size_t) C.int {
		return C.botan_mp_rshift(res, x, n)
	})
}

// assign stores fn(m, y) into m.
func (m *MPI) assign(msg string, y *MPI, fn func(res, x, y C.botan_mp_t) C.int) error {
	yo, err := y.obj()
	if err != nil {
		return err
	}
	return m.call(msg, func(obj C.botan_mp_t) C.int {
		return fn(obj, obj, yo)
	})
}

// AddAssign sets m to m + y.
func (m *MPI) AddAssign(y *MPI) error {
	return m.assign("Error adding MPI", y, func(res, x, y C.botan_mp_t) C.int {
		return C.botan_mp_add(res, x, y)
	})
}

// SubAssign sets m to m - y.
func (m *MPI) SubAssign(y *MPI) error {
	return m.assign("Error subtracting MPI", y, func(res, x, y C.botan_mp_t) C.int {
		return C.botan_mp_sub(res, x, y)
	})
}

// MulAssign sets m to m * y.
func (m *MPI) MulAssign(y *MPI) error {
	return m.assign("Error multiplying MPI", y, func(res, x, y C.botan_mp_t) C.int {
		return C.botan_mp_mul(res, x, y)
	})
}

// Neg flips the sign of m in place.
func (m *MPI) Neg() error {
	return m.call("Error negating MPI", func(obj C.botan_mp_t) C.int {
		return C.botan_mp_flip_sign(obj)
	})
}

// Cmp returns -1, 0 or 1 when m is less than, equal to or greater than y.
func (m *MPI) Cmp(y *MPI) (int, error) {
	yo, err := y.obj()
	if err != nil {
		return 0, err
	}
	var res C.int
	if err := m.call("Error comparing MPI", func(obj C.botan_mp_t) C.int {
		return C.botan_mp_cmp(&res, obj, yo)
	}); err != nil {
		return 0, err
	}
	return int(res), nil
}

// Equal reports whether m and y hold the same value.
func (m *MPI) Equal(y *MPI) (bool, error) {
	x, err := m.obj()
	if err != nil {
		return false, err
	}
	yo, err := y.obj()
	if err != nil {
		return false, err
	}
	return predicate("Error comparing MPI", C.botan_mp_equal(x, yo))
}

// predicate interprets status of native boolean queries, which return 1
// for true and 0 for false.
func predicate(msg string, rc C.int) (bool, error) {
	switch {
	case rc == 0:
		return false, nil
	case rc == 1:
		return true, nil
	}
	return false, getErr(msg, rc)
}

func (m *MPI) test(fn func(C.botan_mp_t) C.int) (bool, error) {
	obj, err := m.obj()
	if err != nil {
		return false, err
	}
	return predicate("Error testing MPI", fn(obj))
}

// IsZero reports whether m is zero.
func (m *MPI) IsZero() (bool, error) {
	return m.test(func(obj C.botan_mp_t) C.int { return C.botan_mp_is_zero(obj) })
}

// IsNegative reports whether m is less than zero.
func (m *MPI) IsNegative() (bool, error) {
	return m.test(func(obj C.botan_mp_t) C.int { return C.botan_mp_is_negative(obj) })
}

// IsPositive reports whether m is greater than or equal to zero, following
// the library convention.
func (m *MPI) IsPositive() (bool, error) {
	return m.test(func(obj C.botan_mp_t) C.int { return C.botan_mp_is_positive(obj) })
}

// IsOdd reports whether m is odd.
func (m *MPI) IsOdd() (bool, error) {
	return m.test(func(obj C.botan_mp_t) C.int { return C.botan_mp_is_odd(obj) })
}

// IsPrime runs probabilistic primality test with error probability of at
// most 2**-prob.
func (m *MPI) IsPrime(rng *RNG, prob int) (bool, error) {
	if err := checkMin("Error testing MPI", "probability", prob, 0); err != nil {
		return false, err
	}
	r, err := rng.obj()
	if err != nil {
		return false, err
	}
	return m.test(func(obj C.botan_mp_t) C.int { return C.botan_mp_is_prime(obj, r, sizeT(prob)) })
}

// BitLen returns number of significant bits.
func (m *MPI) BitLen() (int, error) {
	var n C.size_t
	if err := m.call("Error getting MPI size", func(obj C.botan_mp_t) C.int {
		return C.botan_mp_num_bits(obj, &n)
	}); err != nil {
		return 0, err
	}
	return int(n), nil
}

// ByteLen returns number of significant bytes.
func (m *MPI) ByteLen() (int, error) {
	var n C.size_t
	if err := m.call("Error getting MPI size", func(obj C.botan_mp_t) C.int {
		return C.botan_mp_num_bytes(obj, &n)
	}); err != nil {
		return 0, err
	}
	return int(n), nil
}

// ToUint32 returns value of m, which must fit into 32 bits.
func (m *MPI) ToUint32() (uint32, error) {
	var v C.uint32_t
	if err := m.call("Error converting MPI", func(obj C.botan_mp_t) C.int {
		return C.botan_mp_to_uint32(obj, &v)
	}); err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// Bytes returns big-endian magnitude of m without leading zero bytes.
func (m *MPI) Bytes() ([]byte, error) {
	n, err := m.ByteLen()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return []byte{}, nil
	}
	obj, err := m.obj()
	if err != nil {
		return nil, err
	}
	return fixedOutput("Error encoding MPI", n, func(out *C.uint8_t) C.int {
		return C.botan_mp_to_bin(obj, out)
	})
}

// FillBytes returns big-endian magnitude of m left padded with zeros to
// width bytes. Values longer than width are returned unpadded.
func (m *MPI) FillBytes(width int) ([]byte, error) {
	buf, err := m.Bytes()
	if err != nil || len(buf) >= width {
		return buf, err
	}
	res := make([]byte, width)
	copy(res[width-len(buf):], buf)
	return res, nil
}

// BigInt returns the value of m as standard library integer.
func (m *MPI) BigInt() (*big.Int, error) {
	buf, err := m.Bytes()
	if err != nil {
		return nil, err
	}
	neg, err := m.IsNegative()
	if err != nil {
		return nil, err
	}
	res := new(big.Int).SetBytes(buf)
	if neg {
		res.Neg(res)
	}
	return res, nil
}

// Text returns representation of m in base 10 or 16. Hexadecimal output
// is uppercase, has an even number of digits and no prefix.
func (m *MPI) Text(base int) (string, error) {
	switch base {
	case 10:
	case 16:
		return m.ToHex()
	default:
		return "", newError(fmt.Sprintf("Unsupported MPI base %d", base), CodeBadParameter, ErrInvalidInput)
	}
	obj, err := m.obj()
	if err != nil {
		return "", err
	}
	neg, err := m.IsNegative()
	if err != nil {
		return "", err
	}
	s, err := negotiateString("Error formatting MPI", 0, func(out *C.char, outLen *C.size_t) C.int {
		return C.botan_mp_to_str(obj, 10, out, outLen)
	})
	if err != nil {
		return "", err
	}
	return signed(neg, strings.TrimPrefix(s, "-")), nil
}

// ToHex returns uppercase hexadecimal magnitude of m with sign and without
// prefix, zero padded to whole bytes. Zero is "00".
func (m *MPI) ToHex() (string, error) {
	n, err := m.ByteLen()
	if err != nil {
		return "", err
	}
	neg, err := m.IsNegative()
	if err != nil {
		return "", err
	}
	obj, err := m.obj()
	if err != nil {
		return "", err
	}
	// "0x", two digits per byte and terminating NUL
	buf := make([]byte, 2*n+5)
	if err := getErr("Error formatting MPI", C.botan_mp_to_hex(obj, charPtr(buf))); err != nil {
		return "", err
	}
	s := strings.TrimPrefix(trimNul(buf), "-")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s)%2 != 0 {
		s = "0" + s
	}
	if s == "" {
		s = "00"
	}
	return signed(neg, strings.ToUpper(s)), nil
}

func signed(neg bool, s string) string {
	if neg {
		return "-" + s
	}
	return s
}

// String returns decimal representation of m.
func (m *MPI) String() string {
	s, err := m.Text(10)
	if err != nil {
		return "%!(MPI=" + err.Error() + ")"
	}
	return s
}

// Format implements fmt.Formatter. Verbs d, s and v print decimal, x and
// X hexadecimal digits, with "0x" prefix when the # flag is present.
func (m *MPI) Format(f fmt.State, verb rune) {
	var (
		s   string
		err error
	)
	switch verb {
	case 'd', 's', 'v':
		s, err = m.Text(10)
	case 'x', 'X':
		s, err = m.ToHex()
		if err != nil {
			break
		}
		neg := strings.HasPrefix(s, "-")
		s = strings.TrimPrefix(s, "-")
		if verb == 'x' {
			s = strings.ToLower(s)
		}
		if f.Flag('#') {
			s = "0x" + s
		}
		s = signed(neg, s)
	default:
		fmt.Fprintf(f, "%%!%c(*botan.MPI=%s)", verb, m.String())
		return
	}
	if err != nil {
		fmt.Fprintf(f, "%%!%c(MPI=%s)", verb, err)
		return
	}
	if w, ok := f.Width(); ok && len(s) < w {
		pad := strings.Repeat(" ", w-len(s))
		if f.Flag('-') {
			s += pad
		} else {
			s = pad + s
		}
	}
	fmt.Fprint(f, s)
}

// RandomBits sets m to random non-negative value of at most bits bits.
func (m *MPI) RandomBits(rng *RNG, bits int) error {
	if err := checkMin("Error generating random MPI", "bits", bits, 0); err != nil {
		return err
	}
	r, err := rng.obj()
	if err != nil {
		return err
	}
	return m.call("Error generating random MPI", func(obj C.botan_mp_t) C.int {
		return C.botan_mp_rand_bits(obj, r, sizeT(bits))
	})
}

// RandomRange sets m to random value in [lower, upper).
func (m *MPI) RandomRange(rng *RNG, lower, upper *MPI) error {
	r, err := rng.obj()
	if err != nil {
		return err
	}
	lo, err := lower.obj()
	if err != nil {
		return err
	}
	hi, err := upper.obj()
	if err != nil {
		return err
	}
	return m.call("Error generating random MPI", func(obj C.botan_mp_t) C.int {
		return C.botan_mp_rand_range(obj, r, lo, hi)
	})
}

// Close releases MPI handle.
func (m *MPI) Close() error {
	if m == nil {
		return nil
	}
	m.h.release()
	return nil
}
