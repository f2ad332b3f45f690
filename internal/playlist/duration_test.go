// SPDX-License-Identifier: MIT

package playlist

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		in   Seconds
		want *string
	}{
		{name: "absent", in: NoSeconds, want: nil},
		{name: "zero is not absent", in: SecondsOf(0), want: strPtr("0:00")},
		{name: "two minutes five", in: SecondsOf(125), want: strPtr("2:05")},
		{name: "ninety five", in: SecondsOf(95), want: strPtr("1:35")},
		{name: "under a minute", in: SecondsOf(9), want: strPtr("0:09")},
		{name: "minutes unpadded past an hour", in: SecondsOf(3725), want: strPtr("62:05")},
		{name: "negative floors", in: SecondsOf(-5), want: strPtr("-1:55")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.in))
		})
	}
}

func TestSeconds_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		raw     string
		want    Seconds
		wantErr bool
	}{
		{raw: `null`, want: NoSeconds},
		{raw: `0`, want: SecondsOf(0)},
		{raw: `95`, want: SecondsOf(95)},
		{raw: `95.0`, want: SecondsOf(95)},
		{raw: `95.7`, want: SecondsOf(95)},
		{raw: `"abc"`, wantErr: true},
		{raw: `true`, wantErr: true},
		{raw: `-3.5`, want: SecondsOf(-4)},
		{raw: `1e20`, wantErr: true},
		{raw: `99999999999999999999`, wantErr: true},
		{raw: `9.3e18`, wantErr: true},
		{raw: `-9.3e18`, wantErr: true},
		{raw: `9223372036854775807`, want: SecondsOf(math.MaxInt64)},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var s Seconds
			err := json.Unmarshal([]byte(tt.raw), &s)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, s)
		})
	}
}

func TestSeconds_AbsentFieldStaysUnset(t *testing.T) {
	var e RawEntry
	require.NoError(t, json.Unmarshal([]byte(`{"title":"x"}`), &e))
	assert.False(t, e.Duration.IsSet())

	require.NoError(t, json.Unmarshal([]byte(`{"duration":0}`), &e))
	n, ok := e.Duration.Get()
	assert.True(t, ok)
	assert.Equal(t, int64(0), n)
}

func TestSeconds_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(NoSeconds)
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	b, err = json.Marshal(SecondsOf(0))
	require.NoError(t, err)
	assert.Equal(t, "0", string(b))
}

func strPtr(s string) *string { return &s }
