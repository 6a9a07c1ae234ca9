package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Duration
		wantErr bool
	}{
		{name: "string", in: `"1.5s"`, want: 1500 * time.Millisecond},
		{name: "nanoseconds", in: `3000000000`, want: 3 * time.Second},
		{name: "bad string", in: `"soon"`, wantErr: true},
		{name: "bool", in: `true`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.in), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration)
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Duration{Duration: 300 * time.Millisecond})
	require.NoError(t, err)
	assert.Equal(t, `"300ms"`, string(b))
}

func TestAgo(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "", Ago(time.Time{}, now))
	assert.Equal(t, "just now", Ago(now.Add(-10*time.Second), now))
	assert.Equal(t, "5m ago", Ago(now.Add(-5*time.Minute), now))
	assert.Equal(t, "3h ago", Ago(now.Add(-3*time.Hour), now))
	assert.Equal(t, "2d ago", Ago(now.Add(-49*time.Hour), now))
	assert.Equal(t, "Jan 1, 2025", Ago(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), now))
}

func TestClock(t *testing.T) {
	assert.Equal(t, "30:00", Clock(30*time.Minute))
	assert.Equal(t, "01:05", Clock(65*time.Second))
	assert.Equal(t, "00:00", Clock(-time.Second))
	assert.Equal(t, "120:00", Clock(2*time.Hour))
}
