package attribute

import (
	"fmt"
	"math"
	"math/big"

	"github.com/vocdoni/davinci-attrenc/crypto/domain"
)

// IEEE-754 binary64 layout.
const (
	mantissaBits = 52
	exponentBias = 1023
	exponentMax  = 0x7ff
	fractionMask = 1<<mantissaBits - 1

	// exact band limits once every double is representable: the smallest
	// subnormal step is 2^-1074 and the largest finite value is below 2^1024
	maxFloatShift = 1074
	maxFloatTop   = 1024
)

type floatClass uint8

const (
	classNaN floatClass = iota
	classInfinite
	classZero
	classSubnormal
	classNormal
)

func (c floatClass) String() string {
	switch c {
	case classNaN:
		return "nan"
	case classInfinite:
		return "infinite"
	case classZero:
		return "zero"
	case classSubnormal:
		return "subnormal"
	case classNormal:
		return "normal"
	}
	return fmt.Sprintf("floatClass(%d)", uint8(c))
}

func classify(v float64) floatClass {
	bits := math.Float64bits(v)
	exp := (bits >> mantissaBits) & exponentMax
	frac := bits & fractionMask
	switch {
	case exp == exponentMax && frac != 0:
		return classNaN
	case exp == exponentMax:
		return classInfinite
	case exp == 0 && frac == 0:
		return classZero
	case exp == 0:
		return classSubnormal
	default:
		return classNormal
	}
}

// floatLayout maps the magnitude of a normal double to an integer, strictly
// increasing in the magnitude. Three bands are stacked on top of each other:
//
//	|v| <  2^bottom          : the IEEE-754 bit pattern of |v| (below 2^63)
//	2^bottom <= |v| < 2^top  : base + |v|·2^shift, exact
//	2^top <= |v|             : highBase + bits(|v|) - bits(2^top)
//
// with base = 2^64 and highBase = base + 2^(top+shift). For zero-center
// bits B, shift+top <= B-2, so every magnitude is below limit = 2^(B-1).
type floatLayout struct {
	shift    uint
	bottom   int
	top      int
	base     *big.Int
	highBase *big.Int
	topBits  uint64
	limit    *big.Int
}

func newFloatLayout(zeroBits uint) floatLayout {
	shift := min((zeroBits-2)/2, maxFloatShift)
	top := min(int(zeroBits-2-shift), maxFloatTop)
	base := new(big.Int).Lsh(big.NewInt(1), 64)
	highBase := new(big.Int).Lsh(big.NewInt(1), shift+uint(top))
	highBase.Add(highBase, base)
	return floatLayout{
		shift:    shift,
		bottom:   mantissaBits - int(shift),
		top:      top,
		base:     base,
		highBase: highBase,
		topBits:  uint64(top+exponentBias) << mantissaBits,
		limit:    new(big.Int).Lsh(big.NewInt(1), zeroBits-1),
	}
}

// magnitude returns the encoded magnitude of a positive normal double given
// its bit pattern.
func (l *floatLayout) magnitude(bits uint64) *big.Int {
	exp := int(bits>>mantissaBits) - exponentBias
	switch {
	case exp < l.bottom:
		return new(big.Int).SetUint64(bits)
	case exp < l.top:
		// |v| = mant·2^(exp-52); the shift is non-negative inside the band
		mant := new(big.Int).SetUint64(bits&fractionMask | 1<<mantissaBits)
		mant.Lsh(mant, uint(exp-mantissaBits+int(l.shift)))
		return mant.Add(mant, l.base)
	default:
		m := new(big.Int).SetUint64(bits - l.topBits)
		return m.Add(m, l.highBase)
	}
}

// Float encodes a double. It never fails: NaN, subnormals and infinities get
// fixed sentinels, both zeros encode as the zero-center, and normal values
// encode as zero-center ± magnitude so that for normal a < b,
// Float(a) < Float(b), and Float(x) + Float(-x) = 2·zero-center.
func (e *Encoder) Float(v float64) domain.Element {
	switch c := classify(v); c {
	case classNaN:
		return e.sentinel(NaNSentinel)
	case classSubnormal:
		return e.sentinel(SubnormalSentinel)
	case classZero:
		return e.ZeroCenter()
	case classInfinite:
		if math.Signbit(v) {
			return e.sentinel(NegInfSentinel)
		}
		return e.PositiveInfinity()
	case classNormal:
		// the magnitude is below 2^(B-1), so its big-endian bytes never
		// exceed the backend width
		mag := e.backend.New()
		if err := mag.SetBytes(e.float.magnitude(math.Float64bits(math.Abs(v))).Bytes()); err != nil {
			panic(fmt.Sprintf("float magnitude does not fit the %s domain: %v", e.backend.Type(), err))
		}
		return e.center(math.Signbit(v), mag)
	default:
		panic("unexpected float class " + c.String())
	}
}
