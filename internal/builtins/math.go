package builtins

import (
	"math"

	"github.com/cwbudde/go-esvm/internal/diag"
	"github.com/cwbudde/go-esvm/internal/runtime"
)

// builtinMathFloor implements Math.floor, grounded on the teacher's
// builtinInt-style single-float-argument math builtins.
func builtinMathFloor(host Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	n, err := floatArg(args, 0, "Math.floor")
	if err != nil {
		return runtime.Undefined, err
	}
	return runtime.Number(math.Floor(n)), nil
}

// builtinMathPow implements Math.pow(base, exponent).
func builtinMathPow(host Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	base, err := floatArg(args, 0, "Math.pow")
	if err != nil {
		return runtime.Undefined, err
	}
	exp, err := floatArg(args, 1, "Math.pow")
	if err != nil {
		return runtime.Undefined, err
	}
	return runtime.Number(math.Pow(base, exp)), nil
}

// builtinMathRandom implements Math.random: draws from the VM's seeded
// random source so results are reproducible given a fixed VM seed, rather
// than reading the global math/rand source the way a naive port would.
func builtinMathRandom(host Host, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	return runtime.Number(host.Rand().Float64()), nil
}

func floatArg(args []runtime.Value, i int, op string) (float64, error) {
	if i >= len(args) {
		return 0, diag.NewCallError(op, -1, "expected %d arguments, got %d", i+1, len(args))
	}
	v := args[i]
	if v.Tag != runtime.TagNumber {
		return 0, diag.NewCallError(op, -1, "argument %d must be a number, got %s", i, v.Tag)
	}
	return v.AsNumber(), nil
}
