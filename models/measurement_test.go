package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestMeasurementValidate(t *testing.T) {
	tests := []struct {
		name        string
		measurement Measurement
		wantErr     bool
	}{
		{
			name: "valid full record",
			measurement: Measurement{
				Label: "Initial Measurements",
				Chest: dec("96.50"), Waist: dec("78.00"), Hips: dec("100.25"),
				Shoulder: dec("42.00"), Sleeve: dec("61.50"), Length: dec("110.00"),
				Inseam: dec("81.00"), Neck: dec("38.50"),
			},
		},
		{
			name:        "valid sparse record",
			measurement: Measurement{Label: "Sleeve fitting", Sleeve: dec("60.75")},
		},
		{
			name:        "empty record is valid",
			measurement: Measurement{Label: "Notes only"},
		},
		{
			name:        "zero value rejected",
			measurement: Measurement{Label: "Bad", Waist: dec("0")},
			wantErr:     true,
		},
		{
			name:        "negative value rejected",
			measurement: Measurement{Label: "Bad", Chest: dec("-96.50")},
			wantErr:     true,
		},
		{
			name:        "more than two decimal places rejected",
			measurement: Measurement{Label: "Bad", Hips: dec("100.255")},
			wantErr:     true,
		},
		{
			name:        "one bad field among good ones rejected",
			measurement: Measurement{Label: "Bad", Chest: dec("96.50"), Neck: dec("-1.00")},
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.measurement.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMeasurementCustomFields(t *testing.T) {
	m := Measurement{
		Label: "Initial Measurements",
		CustomMeasurements: map[string]string{
			"wrist":      "17.5",
			"ankle":      "23.0",
			"knee_width": "38.0",
		},
	}

	assert.NoError(t, m.Validate())
	assert.Len(t, m.CustomMeasurements, 3)
	assert.Equal(t, "17.5", m.CustomMeasurements["wrist"])

	// Keys are unique by construction; re-assigning replaces, not duplicates
	m.CustomMeasurements["wrist"] = "18.0"
	assert.Len(t, m.CustomMeasurements, 3)
}
