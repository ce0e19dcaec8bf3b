package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "hours and minutes", input: "18:00", want: "18:00"},
		{name: "postgres time with seconds", input: "07:30:00", want: "07:30"},
		{name: "garbage", input: "18h", wantErr: true},
		{name: "out of range", input: "25:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("18:30").AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("19:15"), got)

	_, err = TimeString("23:30").AddMinutes(30)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("18:00").IsBefore("19:00"))
	assert.False(t, TimeString("19:00").IsBefore("19:00"))
	assert.True(t, TimeString("20:00").IsAfter("19:59"))
}

func TestTimeString_OnDate(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	got := TimeString("18:00").OnDate(date, loc)

	assert.Equal(t, time.Date(2025, 6, 1, 18, 0, 0, 0, loc), got)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("20:00:00")))
	assert.Equal(t, TimeString("20:00"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 9, 15, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("09:15"), ts)

	assert.Error(t, ts.Scan(42))
}
