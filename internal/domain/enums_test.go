package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeChoice(t *testing.T) {
	tests := []struct {
		in   string
		want TimeChoice
	}{
		{"short", TimeShort},
		{"5min", TimeShort},
		{" Medium ", TimeMedium},
		{"30min", TimeMedium},
		{"open", TimeOpen},
		{"any", TimeOpen},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimeChoice(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseTimeChoice("forever")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseEnergyChoice(t *testing.T) {
	tests := []struct {
		in   string
		want EnergyChoice
	}{
		{"low", EnergyLow},
		{"tired", EnergyLow},
		{"neutral", EnergyMedium},
		{"HIGH", EnergyHigh},
		{"focused", EnergyHigh},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEnergyChoice(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseEnergyChoice("")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDescriptors(t *testing.T) {
	assert.Equal(t, "just a few minutes", TimeShort.Descriptor())
	assert.Equal(t, "about half an hour", TimeMedium.Descriptor())
	assert.Equal(t, "as long as it takes", TimeOpen.Descriptor())

	assert.Equal(t, "low energy, feeling tired", EnergyLow.Descriptor())
	assert.Equal(t, "somewhere in between", EnergyMedium.Descriptor())
	assert.Equal(t, "energized and ready to dive in", EnergyHigh.Descriptor())
}
