package version

import (
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  Version
		valid bool
	}{
		{name: "zero", raw: "0.0.0", want: New(0, 0, 0), valid: true},
		{name: "typical", raw: "0.29.1", want: New(0, 29, 1), valid: true},
		{name: "large", raw: "12.345.6789", want: New(12, 345, 6789), valid: true},
		{name: "v prefix", raw: "v1.2.3"},
		{name: "two segments", raw: "1.2"},
		{name: "four segments", raw: "1.2.3.4"},
		{name: "leading zero", raw: "01.2.3"},
		{name: "prerelease", raw: "1.2.3-rc.1"},
		{name: "build metadata", raw: "1.2.3+build"},
		{name: "empty", raw: ""},
		{name: "words", raw: "bob"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.raw)
			if !tt.valid {
				require.Error(t, err)
				var parseErr *ParseError
				require.True(t, errors.As(err, &parseErr), "expected ParseError, got %T", err)
				assert.Equal(t, tt.raw, parseErr.Input)
				assert.Contains(t, err.Error(), tt.raw)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, raw := range []string{"0.0.0", "0.28.0", "0.29.1", "1.0.0", "3.14.159", "18446744073709551615.0.1"} {
		v, err := Parse(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, raw, v.String())
	}
}

func TestCompare(t *testing.T) {
	ordered := []Version{
		New(0, 9, 9),
		New(0, 28, 0),
		New(0, 29, 0),
		New(0, 29, 1),
		New(0, 29, 10),
		New(1, 0, 0),
	}
	for i := range ordered {
		for j := range ordered {
			got := ordered[i].Compare(ordered[j])
			switch {
			case i < j:
				assert.Equal(t, -1, got, "%s vs %s", ordered[i], ordered[j])
				assert.True(t, ordered[i].Less(ordered[j]))
			case i > j:
				assert.Equal(t, 1, got, "%s vs %s", ordered[i], ordered[j])
			default:
				assert.Equal(t, 0, got)
				assert.False(t, ordered[i].Less(ordered[j]))
			}
		}
	}

	shuffled := []Version{ordered[3], ordered[5], ordered[0], ordered[4], ordered[1], ordered[2]}
	sort.Slice(shuffled, func(i, j int) bool { return shuffled[i].Less(shuffled[j]) })
	assert.Equal(t, ordered, shuffled)
}

func TestTrimTag(t *testing.T) {
	v, err := TrimTag("compactc-v0.29.1", "compactc-v")
	require.NoError(t, err)
	assert.Equal(t, New(0, 29, 1), v)

	_, err = TrimTag("v0.29.1", "compactc-v")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "v0.29.1")

	_, err = TrimTag("compactc-vnext", "compactc-v")
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "next", parseErr.Input)
}

func TestMustParsePanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() { MustParse("nope") })
	assert.Equal(t, New(1, 2, 3), MustParse("1.2.3"))
}
