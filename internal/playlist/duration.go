// SPDX-License-Identifier: MIT

package playlist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Seconds is a duration in whole seconds that keeps "absent" distinct from zero.
// The zero value is absent.
type Seconds struct {
	value int64
	set   bool
}

// NoSeconds is the absent duration.
var NoSeconds = Seconds{}

// SecondsOf returns a present duration of n seconds.
func SecondsOf(n int64) Seconds {
	return Seconds{value: n, set: true}
}

// Get returns the seconds and whether the duration is present.
func (s Seconds) Get() (int64, bool) {
	return s.value, s.set
}

// IsSet reports whether the duration is present. A present zero is set.
func (s Seconds) IsSet() bool {
	return s.set
}

// UnmarshalJSON accepts null, integers and integral floats ("95.0").
// Fractional values are floored to whole seconds.
func (s *Seconds) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = NoSeconds
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("duration: %w", err)
	}
	if n, err := num.Int64(); err == nil {
		*s = SecondsOf(n)
		return nil
	}
	f, err := num.Float64()
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("duration: invalid number %q", num.String())
	}
	f = math.Floor(f)
	// float64(math.MaxInt64) rounds up to 2^63, which is already out of range.
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return fmt.Errorf("duration: invalid number %q", num.String())
	}
	*s = SecondsOf(int64(f))
	return nil
}

// MarshalJSON writes null for an absent duration and the integer otherwise.
func (s Seconds) MarshalJSON() ([]byte, error) {
	if !s.set {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, s.value, 10), nil
}

// FormatDuration renders s as "M:SS" with unpadded minutes.
// It returns nil when s is absent; a present zero renders as "0:00".
func FormatDuration(s Seconds) *string {
	secs, ok := s.Get()
	if !ok {
		return nil
	}
	minutes, remainder := floorDivMod(secs, 60)
	out := fmt.Sprintf("%d:%02d", minutes, remainder)
	return &out
}

// floorDivMod rounds toward negative infinity so the remainder is always in [0, d).
func floorDivMod(n, d int64) (int64, int64) {
	q, r := n/d, n%d
	if r < 0 {
		q--
		r += d
	}
	return q, r
}
