package ddl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmptyListIsNothing(t *testing.T) {
	for name, parse := range map[string]func(string) (Value, error){
		"array":        ParseArray,
		"array single": ParseArraySingle,
		"value":        ParseValue,
	} {
		v, err := parse("[]")
		require.NoError(t, err, name)
		require.Equal(t, Nothing{}, v, name)
	}
}

func TestParseValueScalars(t *testing.T) {
	cases := []struct {
		in   string
		want Value
	}{
		{"42", Number(42)},
		{"-7", Number(-7)},
		{"-2147483648", Number(-2147483648)},
		{"#BigHill", Tag("BigHill")},
		{"point(3, -4)", Point{X: 3, Y: -4}},
		{`"abc123"`, String("abc123")},
		{`""`, String("")},
		{"TRUE", Bool(true)},
		{"FALSE", Bool(false)},
	}
	for _, tc := range cases {
		got, err := ParseValue(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseValueArray(t *testing.T) {
	got, err := ParseValue("[#a: 1, 2: #b, :, #c: point(1, 2)]")
	require.NoError(t, err)
	want := Array{
		{Key: "a", Value: Number(1)},
		{Key: "2", Value: Tag("b")},
		{Key: "", Value: Nothing{}},
		{Key: "c", Value: Point{X: 1, Y: 2}},
	}
	require.Equal(t, want, got)
}

func TestParseValueArraySingle(t *testing.T) {
	got, err := ParseValue(`[1, #b, "s", TRUE, [2], [#k: []]]`)
	require.NoError(t, err)
	require.Equal(t, ArraySingle{
		Number(1), Tag("b"), String("s"), Bool(true),
		ArraySingle{Number(2)},
		Array{{Key: "k", Value: Nothing{}}},
	}, got)
}

func TestParseValueArrayGrammarRejectsPlainList(t *testing.T) {
	_, err := ParseArray("[1, 2]")
	require.ErrorIs(t, err, ErrParse)

	v, err := ParseArraySingle("[1,\n  2]")
	require.NoError(t, err)
	require.Equal(t, ArraySingle{Number(1), Number(2)}, v)
}

func TestParseValueErrors(t *testing.T) {
	for _, in := range []string{`"has space"`, "2147483648", "[1, 2", "point(1 2)", "#", "true"} {
		_, err := ParseValue(in)
		require.ErrorIs(t, err, ErrParse, "input %q", in)
	}
}
