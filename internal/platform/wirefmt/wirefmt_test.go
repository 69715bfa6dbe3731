package wirefmt

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimeDecodesEveryWireShape(t *testing.T) {
	want := time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)
	cases := map[string]string{
		"epoch millis":   `1748649600000`,
		"epoch string":   `"1748649600000"`,
		"rfc3339":        `"2025-05-31T00:00:00Z"`,
		"legacy date":    `"2025-05-31"`,
		"space datetime": `"2025-05-31 00:00:00"`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			var v Time
			require.NoError(t, json.Unmarshal([]byte(raw), &v))
			require.True(t, v.Valid)
			require.True(t, v.T.Equal(want), "got %s", v.T)
		})
	}
}

func TestTimeToleratesGarbage(t *testing.T) {
	for _, raw := range []string{`null`, `""`, `"soon"`, `{}`, `-5`} {
		var v Time
		require.NoError(t, json.Unmarshal([]byte(raw), &v), raw)
		require.False(t, v.Valid, raw)
	}

	fallback := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	var v Time
	require.Equal(t, fallback, v.Or(fallback))
}

func TestTimeCanonicalRoundTrip(t *testing.T) {
	var v Time
	require.NoError(t, json.Unmarshal([]byte(`1748649600000`), &v))

	out, err := json.Marshal(v)
	require.NoError(t, err)
	require.Equal(t, `"2025-05-31T00:00:00Z"`, string(out))

	var again Time
	require.NoError(t, json.Unmarshal(out, &again))
	require.Equal(t, v, again)
}

func TestBoolCoercions(t *testing.T) {
	cases := map[string]struct {
		raw   string
		value bool
		valid bool
	}{
		"true":        {`true`, true, true},
		"false":       {`false`, false, true},
		"one":         {`1`, true, true},
		"zero":        {`0`, false, true},
		"one string":  {`"1"`, true, true},
		"zero string": {`"0"`, false, true},
		"null":        {`null`, false, false},
		"garbage":     {`"yes"`, false, false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var v Bool
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &v))
			require.Equal(t, tc.valid, v.Valid)
			require.Equal(t, tc.value, v.B)
		})
	}
}

func TestFloatAndIntCoercions(t *testing.T) {
	var f Float
	require.NoError(t, json.Unmarshal([]byte(`"1450.50"`), &f))
	require.True(t, f.Valid)
	require.InDelta(t, 1450.50, f.F, 1e-9)

	var i Int
	require.NoError(t, json.Unmarshal([]byte(`"42"`), &i))
	require.True(t, i.Valid)
	require.Equal(t, int64(42), i.N)

	// Floats on integer fields truncate rather than fail.
	require.NoError(t, json.Unmarshal([]byte(`7.9`), &i))
	require.Equal(t, int64(7), i.N)

	var unset Int
	require.NoError(t, json.Unmarshal([]byte(`"n/a"`), &unset))
	require.False(t, unset.Valid)
	require.Equal(t, int64(5), unset.Or(5))
}

func TestFirstString(t *testing.T) {
	require.Equal(t, "b", FirstString("", "  ", "b", "c"))
	require.Equal(t, "", FirstString("", "   "))
}
