package botan

import (
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/tylerb/is.v1"
)

func mpi(t testing.TB, s string) *MPI {
	t.Helper()
	m, err := NewMPIFromString(s)
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return m
}

func TestMPI_Basics(t *testing.T) {
	is := is.New(t)
	x, err := NewMPI()
	is.NotErr(err)
	defer x.Close()

	v, err := x.ToUint32()
	is.NotErr(err)
	is.Equal(v, uint32(0))
	zero, err := x.IsZero()
	is.NotErr(err)
	is.True(zero)
	is.Equal(x.String(), "0")
	hex, err := x.ToHex()
	is.NotErr(err)
	is.Equal(hex, "00")
	b, err := x.Bytes()
	is.NotErr(err)
	is.Equal(len(b), 0)

	is.NotErr(x.SetInt32(9))
	y, err := NewMPIFromInt(81)
	is.NotErr(err)
	defer y.Close()

	z, err := x.Add(y)
	is.NotErr(err)
	defer z.Close()
	is.Equal(z.String(), "90")
	is.Equal(x.String(), "9")

	eq, err := z.Equal(mpi(t, "0x5A"))
	is.NotErr(err)
	is.True(eq)

	is.NotErr(z.MulAssign(mpi(t, "1030")))
	is.Equal(z.String(), "92700")
	is.Equal(fmt.Sprintf("%x", z), "016a1c")
	is.Equal(fmt.Sprintf("%X", z), "016A1C")
	is.Equal(fmt.Sprintf("%#x", z), "0x016a1c")
	is.Equal(fmt.Sprintf("%#X", z), "0x016A1C")
	is.Equal(fmt.Sprintf("%d|%v|%s", z, z, z), "92700|92700|92700")
	is.Equal(fmt.Sprintf("%8d|%-8d|", z, z), "   92700|92700   |")

	b, err = z.Bytes()
	is.NotErr(err)
	is.Equal(b, []byte{0x01, 0x6A, 0x1C})
	b, err = z.FillBytes(5)
	is.NotErr(err)
	is.Equal(b, []byte{0, 0, 0x01, 0x6A, 0x1C})

	bits, err := z.BitLen()
	is.NotErr(err)
	is.Equal(bits, 17)
	n, err := z.ByteLen()
	is.NotErr(err)
	is.Equal(n, 3)
	odd, err := z.IsOdd()
	is.NotErr(err)
	is.False(odd)
}

func TestMPI_Sign(t *testing.T) {
	x := mpi(t, "-255")
	neg, err := x.IsNegative()
	require.NoError(t, err)
	assert.True(t, neg)
	assert.Equal(t, "-255", x.String())
	s, err := x.ToHex()
	require.NoError(t, err)
	assert.Equal(t, "-FF", s)
	assert.Equal(t, "-0xff", fmt.Sprintf("%#x", x))

	require.NoError(t, x.Neg())
	pos, err := x.IsPositive()
	require.NoError(t, err)
	assert.True(t, pos)
	assert.Equal(t, "255", x.String())

	c, err := mpi(t, "-1").Cmp(mpi(t, "1"))
	require.NoError(t, err)
	assert.Equal(t, -1, c)
	c, err = mpi(t, "7").Cmp(mpi(t, "7"))
	require.NoError(t, err)
	assert.Equal(t, 0, c)
	c, err = mpi(t, "8").Cmp(mpi(t, "7"))
	require.NoError(t, err)
	assert.Equal(t, 1, c)
}

func TestMPI_Arithmetic(t *testing.T) {
	a := mpi(t, "123456789012345678901234567890")
	b := mpi(t, "987654321")
	bigA, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	bigB := big.NewInt(987654321)

	check := func(name string, m *MPI, err error, want *big.Int) {
		t.Helper()
		require.NoError(t, err, name)
		defer m.Close()
		got, err := m.BigInt()
		require.NoError(t, err, name)
		assert.Equal(t, 0, want.Cmp(got), "%s: %s != %s", name, got, want)
	}

	m, err := a.Sub(b)
	check("sub", m, err, new(big.Int).Sub(bigA, bigB))
	m, err = a.Mul(b)
	check("mul", m, err, new(big.Int).Mul(bigA, bigB))
	m, err = a.Mod(b)
	check("mod", m, err, new(big.Int).Mod(bigA, bigB))
	m, err = a.GCD(b)
	check("gcd", m, err, new(big.Int).GCD(nil, nil, bigA, bigB))
	m, err = a.Lsh(70)
	check("lsh", m, err, new(big.Int).Lsh(bigA, 70))
	m, err = a.Rsh(13)
	check("rsh", m, err, new(big.Int).Rsh(bigA, 13))

	p := mpi(t, "1000000007")
	bigP := big.NewInt(1000000007)
	m, err = b.ModInverse(p)
	check("inverse", m, err, new(big.Int).ModInverse(bigB, bigP))
	m, err = a.PowMod(b, p)
	check("powmod", m, err, new(big.Int).Exp(bigA, bigB, bigP))

	q, r, err := a.DivMod(b)
	require.NoError(t, err)
	defer CloseAll(q, r)
	bigQ, bigR := new(big.Int).QuoRem(bigA, bigB, new(big.Int))
	assert.Equal(t, bigQ.String(), q.String())
	assert.Equal(t, bigR.String(), r.String())

	x := mpi(t, "10")
	require.NoError(t, x.AddAssign(mpi(t, "5")))
	require.NoError(t, x.SubAssign(mpi(t, "20")))
	assert.Equal(t, "-5", x.String())
}

func TestMPI_Conversions(t *testing.T) {
	ref, _ := new(big.Int).SetString("-340282366920938463463374607431768211457", 10)
	m, err := NewMPIFromBigInt(ref)
	require.NoError(t, err)
	defer m.Close()
	back, err := m.BigInt()
	require.NoError(t, err)
	assert.Equal(t, 0, ref.Cmp(back))

	m2, err := NewMPIFromBytes([]byte{0xDE, 0xAD, 0xBE, 0xEF})
	require.NoError(t, err)
	defer m2.Close()
	v, err := m2.ToUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), v)
	s, err := m2.Text(16)
	require.NoError(t, err)
	assert.Equal(t, "DEADBEEF", s)

	m3, err := NewMPIFromInt(-1 << 40)
	require.NoError(t, err)
	defer m3.Close()
	assert.Equal(t, "-1099511627776", m3.String())

	cp, err := m3.Copy()
	require.NoError(t, err)
	defer cp.Close()
	require.NoError(t, m3.SetInt32(1))
	assert.Equal(t, "-1099511627776", cp.String())

	_, err = m2.Text(8)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestMPI_Parse(t *testing.T) {
	_, err := NewMPIFromString("not a number")
	assert.True(t, errors.Is(err, ErrConversion))
	_, err = NewMPIFromString("12\x0034")
	assert.True(t, errors.Is(err, ErrConversion))
}

func TestMPI_Random(t *testing.T) {
	m, err := NewMPI()
	require.NoError(t, err)
	defer m.Close()

	require.NoError(t, m.RandomBits(nil, 64))
	bits, err := m.BitLen()
	require.NoError(t, err)
	assert.LessOrEqual(t, bits, 64)

	lo, hi := mpi(t, "1000"), mpi(t, "2000")
	for i := 0; i < 10; i++ {
		require.NoError(t, m.RandomRange(nil, lo, hi))
		c, err := m.Cmp(lo)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, c, 0)
		c, err = m.Cmp(hi)
		require.NoError(t, err)
		assert.Equal(t, -1, c)
	}
}

func TestMPI_IsPrime(t *testing.T) {
	prime, err := mpi(t, "2305843009213693951").IsPrime(nil, 64)
	require.NoError(t, err)
	assert.True(t, prime)
	prime, err = mpi(t, "2305843009213693953").IsPrime(nil, 64)
	require.NoError(t, err)
	assert.False(t, prime)
}

func TestMPI_Closed(t *testing.T) {
	m, err := NewMPIFromInt(1)
	require.NoError(t, err)
	require.NoError(t, m.Close())
	_, err = m.Add(mpi(t, "1"))
	assert.True(t, errors.Is(err, ErrInvalidInput))

	var nilMPI *MPI
	_, err = nilMPI.IsZero()
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestMPI_FromNilBigInt(t *testing.T) {
	m, err := NewMPIFromBigInt(nil)
	assert.Nil(t, m)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	var e Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, CodeNullPointer, e.Code)
}
