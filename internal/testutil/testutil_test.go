package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/matamazon/internal/ledger"
)

func TestWriteFile(t *testing.T) {
	path := WriteFile(t, t.TempDir(), "nested/file.txt", "hello")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestAcmeLedger(t *testing.T) {
	s := AcmeLedger(t)

	p, ok := s.Product(10)
	require.True(t, ok)
	assert.Equal(t, 3, p.Quantity)

	outcome, err := s.PlaceOrder(7, 10, 2)
	require.NoError(t, err)
	assert.Equal(t, ledger.OrderAccepted, outcome)
}
