package interp_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/bintmpl/host"
	"github.com/mna/bintmpl/lang/interp"
	"github.com/mna/bintmpl/lang/parser"
	"github.com/mna/bintmpl/lang/token"
)

func runSrc(t *testing.T, src string, data []byte) (*host.Buffer, error) {
	t.Helper()
	fset := token.NewFileSet()
	chunk, err := parser.ParseChunk(fset, "t.bt", []byte(src))
	require.NoError(t, err)

	buf := host.NewBuffer(data)
	err = interp.Run(context.Background(), fset, nil, chunk, buf)
	return buf, err
}

func TestIntDeclarationAnnotatesAndComments(t *testing.T) {
	buf, err := runSrc(t, `int x;`, []byte{1, 2, 3, 4})
	require.NoError(t, err)
	require.Equal(t, []host.DataType{{Offset: 0, Length: 4, Code: "s32le"}}, buf.DataTypes)
	require.Equal(t, []host.Comment{{Offset: 0, Length: 4, Text: "x"}}, buf.Comments)
}

func TestEndiannessToggling(t *testing.T) {
	buf, err := runSrc(t, `BigEndian(); int x; LittleEndian(); int y;`, []byte{0, 0, 0, 1, 0, 0, 0, 1})
	require.NoError(t, err)
	require.Len(t, buf.DataTypes, 2)
	require.Equal(t, "s32be", buf.DataTypes[0].Code)
	require.Equal(t, "s32le", buf.DataTypes[1].Code)
}

func TestStructMemberBindingNoDataTypeForStructItself(t *testing.T) {
	src := `
struct Point {
    int x;
    int y;
};
struct Point p;
`
	buf, err := runSrc(t, src, make([]byte, 8))
	require.NoError(t, err)
	require.Len(t, buf.DataTypes, 2)
	require.Equal(t, "x", buf.Comments[0].Text)
	require.Equal(t, "y", buf.Comments[1].Text)
}

func TestArrayBindingPerElementComments(t *testing.T) {
	buf, err := runSrc(t, `int xs[3];`, make([]byte, 12))
	require.NoError(t, err)
	require.Len(t, buf.DataTypes, 3)
	require.Equal(t, "xs[0]", buf.Comments[0].Text)
	require.Equal(t, "xs[1]", buf.Comments[1].Text)
	require.Equal(t, "xs[2]", buf.Comments[2].Text)
}

func TestConditionalPrintf(t *testing.T) {
	src := `
int x;
if (x == 1) {
    Printf("one");
} else {
    Printf("not one: %d", x);
}
`
	buf, err := runSrc(t, src, []byte{1, 0, 0, 0})
	require.NoError(t, err)
	require.Equal(t, []string{"one"}, buf.Prints)

	buf2, err := runSrc(t, src, []byte{9, 0, 0, 0})
	require.NoError(t, err)
	require.Equal(t, []string{"not one: 9"}, buf2.Prints)
}

func TestReturnOutsideFunctionAtTemplateScope(t *testing.T) {
	_, err := runSrc(t, `return;`, nil)
	require.Error(t, err)
	var target *interp.ReturnOutsideFunctionError
	require.ErrorAs(t, err, &target)
}

func TestArrayIndexAtLengthIsOutOfRange(t *testing.T) {
	src := `
int xs[3];
local int y;
y = xs[3];
`
	_, err := runSrc(t, src, make([]byte, 12))
	require.Error(t, err)
	var target *interp.OutOfRangeIndexError
	require.ErrorAs(t, err, &target)
}

func TestNegativeArrayIndexIsOutOfRange(t *testing.T) {
	src := `
int xs[3];
local int i;
i = -1;
local int y;
y = xs[i];
`
	_, err := runSrc(t, src, make([]byte, 12))
	require.Error(t, err)
	var target *interp.OutOfRangeIndexError
	require.ErrorAs(t, err, &target)
}

func TestShortFileSurfacesEndOfBufferAtAccess(t *testing.T) {
	src := `
int x;
local int y;
y = x;
`
	_, err := runSrc(t, src, []byte{1, 2})
	require.Error(t, err)
	var target *interp.EndOfBufferError
	require.ErrorAs(t, err, &target)
}

func TestUserFunctionCallAndReturn(t *testing.T) {
	src := `
int square(int n) {
    return n * n;
}
local int x;
x = square(5);
Printf("%d", x);
`
	buf, err := runSrc(t, src, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"25"}, buf.Prints)
}

func TestMissingReturnErrors(t *testing.T) {
	src := `
int bad() {
    local int x;
    x = 1;
}
local int y;
y = bad();
`
	_, err := runSrc(t, src, nil)
	require.Error(t, err)
	var target *interp.MissingReturnError
	require.ErrorAs(t, err, &target)
}

func TestBreakOutsideLoopErrors(t *testing.T) {
	src := `
int f() {
    break;
}
local int x;
x = f();
`
	_, err := runSrc(t, src, nil)
	require.Error(t, err)
	var target *interp.BreakOutsideLoopError
	require.ErrorAs(t, err, &target)
}

func TestForLoopBreakAndContinue(t *testing.T) {
	src := `
local int total;
local int i;
for (i = 0; i < 10; i = i + 1) {
    if (i == 5) {
        break;
    }
    if (i % 2 == 0) {
        continue;
    }
    total = total + i;
}
Printf("%d", total);
`
	buf, err := runSrc(t, src, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"4"}, buf.Prints)
}

func TestSwitchFallsThroughToDefault(t *testing.T) {
	src := `
local int x;
x = 7;
switch (x) {
case 1:
    Printf("one");
    break;
default:
    Printf("other");
    break;
}
`
	buf, err := runSrc(t, src, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"other"}, buf.Prints)
}

func TestAssignmentToFileVariableErrors(t *testing.T) {
	src := `
int x;
x = 5;
`
	_, err := runSrc(t, src, []byte{1, 2, 3, 4})
	require.Error(t, err)
	var target *interp.AssignmentToFileVariableError
	require.ErrorAs(t, err, &target)
}

func TestDivisionByZero(t *testing.T) {
	src := `
local int x;
local int y;
y = x / 0;
`
	_, err := runSrc(t, src, nil)
	require.Error(t, err)
	var target *interp.DivisionByZeroError
	require.ErrorAs(t, err, &target)
}

func TestYieldAbortSurfacesTemplateAborted(t *testing.T) {
	fset := token.NewFileSet()
	chunk, err := parser.ParseChunk(fset, "t.bt", []byte(`
local int total;
local int i;
for (i = 0; i < 100000; i = i + 1) {
    total = total + 1;
}
`))
	require.NoError(t, err)

	buf := host.NewBuffer(nil)
	wantErr := errors.New("cancelled by embedder")
	calls := 0
	buf.Yielder = func() error {
		calls++
		if calls > 1 {
			return wantErr
		}
		return nil
	}

	err = interp.Run(context.Background(), fset, nil, chunk, buf)
	require.Error(t, err)
	var target *interp.TemplateAbortedError
	require.ErrorAs(t, err, &target)
	require.ErrorIs(t, err, wantErr)
}
