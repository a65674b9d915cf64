package decimal

import (
	"strings"
	"testing"

	"github.com/agbru/bigpi/internal/bigfloat"
	"github.com/agbru/bigpi/internal/bignum"
)

func TestBigUintToString_SmallValues(t *testing.T) {
	t.Parallel()
	cases := []struct {
		v    uint64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{9, "9"},
		{10, "10"},
		{12345, "12345"},
		{9999999999, "9999999999"},
	}
	for _, tt := range cases {
		got, err := BigUintToString(bignum.NewBigUint(tt.v))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tt.want {
			t.Errorf("BigUintToString(%d) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestBigIntToString_Sign(t *testing.T) {
	t.Parallel()
	got, err := BigIntToString(bignum.NewBigIntFromInt64(-42))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "-42" {
		t.Errorf("got %q, want -42", got)
	}

	got, err = BigIntToString(bignum.NewBigIntFromInt64(42))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "42" {
		t.Errorf("got %q, want 42", got)
	}
}

func TestBigFloatToString_ExactDyadicFraction(t *testing.T) {
	t.Parallel()
	// 1 >> 2 == 0.25, exactly representable in binary.
	quarter := bigfloat.New(64, bignum.NewBigIntFromInt64(1)).Shr(2)

	got, err := BigFloatToString(quarter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "0.25") {
		t.Errorf("BigFloatToString(0.25) = %q, want prefix \"0.25\"", got)
	}
}

func TestBigFloatToString_Integer(t *testing.T) {
	t.Parallel()
	seven := bigfloat.New(64, bignum.NewBigIntFromInt64(7))
	got, err := BigFloatToString(seven)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "7.") {
		t.Errorf("BigFloatToString(7) = %q, want prefix \"7.\"", got)
	}
}
