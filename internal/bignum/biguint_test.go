package bignum

import (
	"errors"
	"math/rand"
	"testing"

	apperrors "github.com/agbru/bigpi/internal/errors"
)

func mustLimbs(limbs ...uint64) BigUint { return FromLimbs(limbs) }

func TestBigUint_AddSubRoundTrip(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		a, b BigUint
	}{
		{"zero plus zero", BigUint{}, BigUint{}},
		{"small plus small", NewBigUint(41), NewBigUint(1)},
		{"carry across limb boundary", mustLimbs(0xFFFFFFFFFFFFFFFF), NewBigUint(1)},
		{"multi-limb", mustLimbs(1, 2, 3), mustLimbs(0xFFFFFFFFFFFFFFFF, 0xFFFFFFFFFFFFFFFF)},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sum := tt.a.Add(tt.b)
			back, err := sum.Sub(tt.b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if back.Cmp(tt.a) != 0 {
				t.Errorf("(a+b)-b = %s, want %s", back.String(), tt.a.String())
			}
		})
	}
}

// TestBigUint_SubBorrowBeyondRHSLength exercises the case the source
// kernel calls out explicitly: a borrow chain that must propagate past
// rhs's own limbs because rhs is shorter than lhs and lhs has trailing
// zero limbs directly above where rhs ends.
func TestBigUint_SubBorrowBeyondRHSLength(t *testing.T) {
	t.Parallel()

	// lhs = [0, 0, 1] (== 2^128), rhs = [1] (== 1).
	// lhs - rhs = 2^128 - 1 = [maxU64, maxU64, 0] trimmed to two limbs.
	lhs := mustLimbs(0, 0, 1)
	rhs := mustLimbs(1)

	got, err := lhs.Sub(rhs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := mustLimbs(0xFFFFFFFFFFFFFFFF, 0xFFFFFFFFFFFFFFFF)
	if got.Cmp(want) != 0 {
		t.Errorf("got %s, want %s", got.String(), want.String())
	}

	// Round-trip: (lhs - rhs) + rhs == lhs.
	back := got.Add(rhs)
	if back.Cmp(lhs) != 0 {
		t.Errorf("(lhs-rhs)+rhs = %s, want %s", back.String(), lhs.String())
	}
}

func TestBigUint_SubUnderflow(t *testing.T) {
	t.Parallel()
	_, err := NewBigUint(1).Sub(NewBigUint(2))
	if err == nil {
		t.Fatal("expected UnderflowError")
	}
	var underflow apperrors.UnderflowError
	if !errors.As(err, &underflow) {
		t.Fatalf("expected UnderflowError, got %T", err)
	}
}

func TestBigUint_ShiftMod2Pow_ShlAddAssign_RoundTrip(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 20; trial++ {
		nLimbs := 1 + rng.Intn(8)
		limbs := make([]uint64, nLimbs)
		for i := range limbs {
			limbs[i] = rng.Uint64()
		}
		v := FromLimbs(limbs)
		windowBits := uint64(37)

		lowWindow := v.ShiftMod2Pow(0, windowBits)
		high := v.Shr(windowBits)

		rebuilt := lowWindow.ShlAddAssign(high, windowBits)
		if rebuilt.Cmp(v) != 0 {
			t.Fatalf("trial %d: rebuilt %s != original %s", trial, rebuilt.String(), v.String())
		}
	}
}

func TestBigUint_NumberOfBits(t *testing.T) {
	t.Parallel()
	cases := []struct {
		v    BigUint
		want uint64
	}{
		{BigUint{}, 0},
		{mustLimbs(0x334), 10},
		{mustLimbs(0x0, 0x1), 65},
	}
	for _, tt := range cases {
		if got := tt.v.NumberOfBits(); got != tt.want {
			t.Errorf("NumberOfBits(%s) = %d, want %d", tt.v.String(), got, tt.want)
		}
	}
}

func TestBigUint_Uint64Overflow(t *testing.T) {
	t.Parallel()
	_, err := mustLimbs(1, 2).Uint64()
	if err == nil {
		t.Fatal("expected OverflowError")
	}
	var overflow apperrors.OverflowError
	if !errors.As(err, &overflow) {
		t.Fatalf("expected OverflowError, got %T", err)
	}
}

func TestBigUint_MultiplyAlgorithmsAgree(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(2))

	for trial := 0; trial < 10; trial++ {
		aLimbs := make([]uint64, 3+rng.Intn(150))
		bLimbs := make([]uint64, 3+rng.Intn(150))
		for i := range aLimbs {
			aLimbs[i] = rng.Uint64()
		}
		for i := range bLimbs {
			bLimbs[i] = rng.Uint64()
		}
		a := FromLimbs(aLimbs)
		b := FromLimbs(bLimbs)

		naive := MultiplyNaive(a, b)
		karatsuba := MultiplyKaratsuba(a, b)
		if naive.Cmp(karatsuba) != 0 {
			t.Fatalf("trial %d: naive and Karatsuba disagree", trial)
		}
	}
}
