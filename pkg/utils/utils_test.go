package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, "tillpoint")

	token, tokenID, err := m.GenerateAccessToken(7, "Admin", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, tokenID)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.CashierID)
	assert.Equal(t, "Admin", claims.CashierName)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, tokenID, claims.ID)
}

func TestJWTRejectsForeignSecret(t *testing.T) {
	token, _, err := NewJWTManager("a", time.Hour, "x").GenerateAccessToken(1, "A", "cashier")
	require.NoError(t, err)

	_, err = NewJWTManager("b", time.Hour, "x").ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTExpired(t *testing.T) {
	m := NewJWTManager("secret", -time.Minute, "x")
	token, _, err := m.GenerateAccessToken(1, "A", "cashier")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestPINHash(t *testing.T) {
	hash, err := HashPIN("1234")
	require.NoError(t, err)
	assert.True(t, CheckPIN("1234", hash))
	assert.False(t, CheckPIN("4321", hash))
}

func TestExportFileName(t *testing.T) {
	assert.Equal(t, "pos-backup-2026-10-16.json", ExportFileName("", "2026-10-16", "json"))
	assert.Equal(t, "shop-2026-10-16.xlsx", ExportFileName(" shop ", "2026-10-16", "xlsx"))
	assert.Equal(t, "#000042", ReceiptNumber(42))
}
