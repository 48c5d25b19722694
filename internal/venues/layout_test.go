package venues

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRowLabels(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		want    []string
		wantErr bool
	}{
		{name: "alphabetic", start: "A", end: "D", want: []string{"A", "B", "C", "D"}},
		{name: "numeric", start: "8", end: "11", want: []string{"8", "9", "10", "11"}},
		{name: "single row", start: "K", end: "K", want: []string{"K"}},
		{name: "reversed", start: "D", end: "A", wantErr: true},
		{name: "mixed formats", start: "1", end: "C", wantErr: true},
		{name: "multi letter", start: "AA", end: "AC", wantErr: true},
		{name: "empty", start: "", end: "C", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GenerateRowLabels(tt.start, tt.end)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidLayout)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLayout(t *testing.T) {
	theater := &Theater{
		RowStart:          "A",
		RowEnd:            "C",
		SeatsPerRow:       4,
		PremiumRows:       "B, C",
		PremiumMultiplier: 1.5,
	}

	seats, err := Layout(theater)
	require.NoError(t, err)
	require.Len(t, seats, 12)

	assert.Equal(t, SeatDefinition{SeatID: "A-1", RowLabel: "A", SeatNumber: 1, Tier: TierStandard, PriceMultiplier: 1}, seats[0])
	assert.Equal(t, "C-4", seats[11].SeatID)
	assert.Equal(t, TierPremium, seats[4].Tier)
	assert.InDelta(t, 1.5, seats[4].PriceMultiplier, 1e-9)
}

func TestLayoutRejectsEmptyRows(t *testing.T) {
	_, err := Layout(&Theater{RowStart: "A", RowEnd: "B", SeatsPerRow: 0})
	assert.ErrorIs(t, err, ErrInvalidLayout)
}
