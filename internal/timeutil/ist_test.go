package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{"plain date is midnight IST", "2025-04-30", time.Date(2025, 4, 30, 0, 0, 0, 0, IST), false},
		{"rfc3339 utc", "2025-04-29T18:30:00Z", time.Date(2025, 4, 30, 0, 0, 0, 0, IST), false},
		{"rfc3339 offset", "2025-04-30T10:00:00+05:30", time.Date(2025, 4, 30, 10, 0, 0, 0, IST), false},
		{"garbage", "30/04/2025", time.Time{}, true},
		{"empty", "", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s want %s", got, tt.want)
		})
	}
}

func TestStartOfDay(t *testing.T) {
	in := time.Date(2025, 4, 29, 20, 15, 0, 0, time.UTC) // 01:45 next day in IST
	got := StartOfDay(in)

	assert.Equal(t, 30, got.Day())
	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, IST.String(), got.Location().String())
}

func TestFormatIST(t *testing.T) {
	in := time.Date(2025, 4, 29, 20, 15, 0, 0, time.UTC)
	assert.Equal(t, "30-Apr-2025", FormatIST(in, "02-Jan-2006"))
}
