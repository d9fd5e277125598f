package ari

import "testing"

func TestPower(t *testing.T) {
	wantNum(t, evalSrc(t, `power(2, 10);`), 1024)
	wantNum(t, evalSrc(t, `power(9, 0.5);`), 3)
}

func TestLog(t *testing.T) {
	// base 2 goes through Log2, exact on powers of two
	wantNum(t, evalSrc(t, `log(2, 8);`), 3)
	wantNumNear(t, evalSrc(t, `log(10, 1000);`), 3, 1e-12)
	wantNumNear(t, evalSrc(t, `log(3, 81);`), 4, 1e-12)
}

func TestLogRangeErrors(t *testing.T) {
	wantNativeErr(t, evalErr(t, `log(2, 0);`), NativeRangeError)
	wantNativeErr(t, evalErr(t, `log(2, 0 - 5);`), NativeRangeError)
	wantNativeErr(t, evalErr(t, `log(1, 10);`), NativeRangeError)
}

func TestModNative(t *testing.T) {
	wantNum(t, evalSrc(t, `mod(7, 3);`), 1)
	wantNum(t, evalSrc(t, `mod(0 - 7, 3);`), -1)
	wantRuntimeErr(t, evalErr(t, `mod(1, 0);`), DivisionByZero)
}

func TestAbsFloorCeil(t *testing.T) {
	wantNum(t, evalSrc(t, `abs(0 - 2.5);`), 2.5)
	wantNum(t, evalSrc(t, `floor(2.9);`), 2)
	wantNum(t, evalSrc(t, `floor(0 - 2.1);`), -3)
	wantNum(t, evalSrc(t, `ceil(2.1);`), 3)
}

func TestMaxMin(t *testing.T) {
	wantNum(t, evalSrc(t, `max(2, 5);`), 5)
	wantNum(t, evalSrc(t, `min(2, 0 - 5);`), -5)
}

func TestToString(t *testing.T) {
	wantStr(t, evalSrc(t, `to_string(42);`), "42")
	wantStr(t, evalSrc(t, `to_string(2.5);`), "2.5")
	wantStr(t, evalSrc(t, `to_string(true);`), "true")
	wantStr(t, evalSrc(t, `to_string(null);`), "null")
	wantStr(t, evalSrc(t, `to_string([1, "a", [2]]);`), `[1, a, [2]]`)
}

func TestToNumber(t *testing.T) {
	wantNum(t, evalSrc(t, `to_number("42");`), 42)
	wantNum(t, evalSrc(t, `to_number("  -3.5 ");`), -3.5)
}

func TestToNumberParseError(t *testing.T) {
	wantNativeErr(t, evalErr(t, `to_number("abc");`), NativeParseError)
	wantNativeErr(t, evalErr(t, `to_number("");`), NativeParseError)
}

func TestNativeArgumentTypeChecking(t *testing.T) {
	wantRuntimeErr(t, evalErr(t, `abs("x");`), TypeMismatch)
	wantRuntimeErr(t, evalErr(t, `to_number(42);`), TypeMismatch)
}

func TestNativeArity(t *testing.T) {
	wantRuntimeErr(t, evalErr(t, `abs(1, 2);`), ArityMismatch)
	wantRuntimeErr(t, evalErr(t, `power(2);`), ArityMismatch)
}

func TestNativesAreFirstClass(t *testing.T) {
	wantNums(t, evalSrc(t, `map([0 - 1, 2, 0 - 3], abs);`), []float64{1, 2, 3})
}
