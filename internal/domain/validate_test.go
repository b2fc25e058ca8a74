package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    int
		wantErr bool
	}{
		{"zero", 0, 0, false},
		{"positive int", 42, 42, false},
		{"int64", int64(7), 7, false},
		{"uint8", uint8(3), 3, false},
		{"negative", -1, 0, true},
		{"bool true", true, 0, true},
		{"bool false", false, 0, true},
		{"float", 1.0, 0, true},
		{"string", "1", 0, true},
		{"nil", nil, 0, true},
		{"uint64 overflow", uint64(math.MaxUint64), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateIdentifier("id", tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsInvalidIdentifier(err))
				assert.False(t, IsInvalidAmount(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    float64
		wantErr bool
	}{
		{"zero int", 0, 0, false},
		{"int", 3, 3, false},
		{"float", 2.5, 2.5, false},
		{"float32", float32(0.5), 0.5, false},
		{"negative float", -0.01, 0, true},
		{"negative int", -3, 0, true},
		{"bool", true, 0, true},
		{"string", "2.5", 0, true},
		{"nil", nil, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateAmount("price", tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsInvalidAmount(err))
				assert.False(t, IsInvalidIdentifier(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	_, err := ValidateIdentifier("supplier_id", -4)
	require.Error(t, err)
	assert.Equal(t, "Invalid supplier_id: -4", err.Error())

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "supplier_id", ve.Field)
	assert.Equal(t, -4, ve.Value)

	custom := IdentifierError("id", 3, "Customer id does not exist: %d", 3)
	assert.Equal(t, "Customer id does not exist: 3", custom.Error())
	assert.True(t, IsInvalidIdentifier(custom))
}
