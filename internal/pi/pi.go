// Package pi computes decimal digits of π via the Chudnovsky series,
// using binary splitting to keep every intermediate BigInt as small as
// the recursion depth allows before the final combine.
package pi

import (
	"context"
	"math/bits"
	"runtime"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/bigpi/internal/bigfloat"
	"github.com/agbru/bigpi/internal/bignum"
	"github.com/agbru/bigpi/internal/bignum/mul"
	"github.com/agbru/bigpi/internal/decimal"
	"github.com/agbru/bigpi/internal/progress"
)

const (
	chudnovskyA = 13591409
	chudnovskyB = 545140134
	chudnovskyC = 640320
	log2Of10    = 3.321928094887362
)

var chudnovskyC3Over24 = func() uint64 {
	c := uint64(chudnovskyC)
	return c * c * c / 24
}()

var tracer = otel.Tracer("github.com/agbru/bigpi/internal/pi")

// Options controls the precision/parallelism/algorithm tradeoffs of
// ComputePi.
type Options struct {
	// Thresholds selects which multiplication algorithm the binary
	// splitting recursion uses at each combine step, by operand size.
	// Ignored when ForcedAlgorithm is set.
	Thresholds mul.Thresholds
	// ForcedAlgorithm, when non-empty, bypasses size-based dispatch and
	// uses this algorithm for the combine-step products, the leaf a(n)*p(n)
	// product and the final integer products; the small leaf-term products
	// and the final BigFloat square root and division use bignum's own
	// multiplier.
	// Comparison mode uses this to benchmark schoolbook, Karatsuba, and
	// SSA against each other on the same digit count.
	ForcedAlgorithm mul.Algorithm
	// MaxParallelDepth bounds how many levels of the splitting recursion
	// fan out onto separate goroutines before falling back to a single
	// goroutine per subtree. 0 disables fan-out entirely.
	MaxParallelDepth int
	// Progress, when non-nil, is called with a completed fraction in
	// [0, 1] as binary-splitting leaf terms finish. Safe for concurrent
	// calls from the recursion's fanned-out goroutines.
	Progress progress.ProgressCallback
}

// DefaultOptions returns thresholds tuned the same way the production
// multiplication dispatcher is, with a parallel fan-out depth sized to
// the host's CPU count.
func DefaultOptions() Options {
	return Options{
		Thresholds:       mul.DefaultThresholds(),
		MaxParallelDepth: bits.Len(uint(runtime.NumCPU())),
	}
}

// pqt holds one node's P(n1,n2), Q(n1,n2), T(n1,n2) binary-splitting
// triple.
type pqt struct {
	P, Q, T bignum.BigInt
}

// splitState carries the values every level of the binary-splitting
// recursion needs but that don't change across the recursion, plus the
// shared leaf-completion counter progress reporting is derived from.
type splitState struct {
	opts      Options
	total     uint64
	completed *atomic.Uint64
}

func multiplyBigInt(lhs, rhs bignum.BigInt, opts Options) bignum.BigInt {
	var mag bignum.BigUint
	if opts.ForcedAlgorithm != "" {
		mag = mul.MultiplyWithAlgorithm(lhs.Abs(), rhs.Abs(), opts.ForcedAlgorithm)
	} else {
		mag = mul.Multiply(lhs.Abs(), rhs.Abs(), opts.Thresholds)
	}
	negative := (lhs.Sign() < 0) != (rhs.Sign() < 0)
	return bignum.NewBigInt(mag, negative)
}

// computeA returns a(n) = A + B*n, negated when n is odd.
func computeA(n uint64) bignum.BigInt {
	value := bignum.NewBigUint(chudnovskyA).Add(bignum.Multiply(bignum.NewBigUint(chudnovskyB), bignum.NewBigUint(n)))
	return bignum.NewBigInt(value, n%2 != 0)
}

// computeP returns p(n) = (2n-1)(6n-5)(6n-1).
func computeP(n uint64) bignum.BigInt {
	p1 := bignum.NewBigIntFromInt64(int64(2*n - 1))
	p2 := bignum.NewBigIntFromInt64(int64(6*n - 5))
	p3 := bignum.NewBigIntFromInt64(int64(6*n - 1))
	return p1.Mul(p2).Mul(p3)
}

// computeQ returns q(n) = n^3 * C^3/24.
func computeQ(n uint64) bignum.BigInt {
	nCubed, _ := bignum.NewBigUint(n).Pow(3)
	q := bignum.Multiply(nCubed, bignum.NewBigUint(chudnovskyC3Over24))
	return bignum.NewBigInt(q, false)
}

// computePQT computes the binary-split triple over [n1, n2), fanning
// the two halves out onto separate goroutines while depth remains.
func computePQT(ctx context.Context, n1, n2 uint64, state *splitState, depth int) (pqt, error) {
	if err := ctx.Err(); err != nil {
		return pqt{}, err
	}

	if n1+1 == n2 {
		p := computeP(n2)
		q := computeQ(n2)
		a := computeA(n2)
		t := multiplyBigInt(a, p, state.opts)
		if state.opts.Progress != nil {
			done := state.completed.Add(1)
			state.opts.Progress(float64(done) / float64(state.total))
		}
		return pqt{P: p, Q: q, T: t}, nil
	}

	m := (n1 + n2) / 2

	var left, right pqt
	if depth > 0 {
		ctx, span := tracer.Start(ctx, "pi.computePQT")
		defer span.End()

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			r, err := computePQT(gctx, n1, m, state, depth-1)
			left = r
			return err
		})
		g.Go(func() error {
			r, err := computePQT(gctx, m, n2, state, depth-1)
			right = r
			return err
		})
		if err := g.Wait(); err != nil {
			return pqt{}, err
		}
	} else {
		var err error
		left, err = computePQT(ctx, n1, m, state, 0)
		if err != nil {
			return pqt{}, err
		}
		right, err = computePQT(ctx, m, n2, state, 0)
		if err != nil {
			return pqt{}, err
		}
	}

	t1q2 := multiplyBigInt(left.T, right.Q, state.opts)
	t2p1 := multiplyBigInt(right.T, left.P, state.opts)
	t := t1q2.Add(t2p1)
	p := multiplyBigInt(left.P, right.P, state.opts)
	q := multiplyBigInt(left.Q, right.Q, state.opts)

	return pqt{P: p, Q: q, T: t}, nil
}

// ComputePi returns π to digits decimal digits. It returns early with
// ctx's error if ctx is canceled mid-computation.
func ComputePi(ctx context.Context, digits uint64, opts Options) (string, error) {
	ctx, span := tracer.Start(ctx, "pi.ComputePi")
	defer span.End()

	if digits == 0 {
		digits = 1
	}

	n := digits / 14
	if n < 1 {
		n = 1
	}
	precision := int64(float64(digits)*log2Of10) + 1

	state := &splitState{opts: opts, total: n, completed: &atomic.Uint64{}}
	result, err := computePQT(ctx, 0, n, state, opts.MaxParallelDepth)
	if err != nil {
		return "", err
	}

	sqrtCInv, err := bigfloat.SqrtInverse(bigfloat.New(precision, bignum.NewBigIntFromInt64(chudnovskyC)))
	if err != nil {
		return "", err
	}

	cSquared := bignum.NewBigIntFromInt64(chudnovskyC * chudnovskyC)
	numerator := bigfloat.New(precision, multiplyBigInt(cSquared, result.Q, opts))

	aq := multiplyBigInt(bignum.NewBigIntFromInt64(chudnovskyA), result.Q, opts)
	aqPlusT := aq.Add(result.T)
	denominatorMag := multiplyBigInt(bignum.NewBigIntFromInt64(12), aqPlusT, opts)
	denominator := bigfloat.New(precision, denominatorMag)

	value, err := bigfloat.Quo(numerator.Mul(sqrtCInv), denominator)
	if err != nil {
		return "", err
	}

	str, err := decimal.BigFloatToString(value)
	if err != nil {
		return "", err
	}

	if limit := digits + 2; uint64(len(str)) > limit {
		str = str[:limit]
	}
	return str, nil
}
