package enum

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestoreCutoff(t *testing.T) {
	now := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, now.Add(-24*time.Hour), RestoreOneDay.Cutoff(now))
	assert.Equal(t, now.Add(-72*time.Hour), RestoreThreeDays.Cutoff(now))
	assert.Equal(t, now.Add(-7*24*time.Hour), RestoreOneWeek.Cutoff(now))
	assert.Equal(t, time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC), RestoreOneMonth.Cutoff(now))
	assert.Equal(t, int64(0), RestoreAll.Cutoff(now).Unix())
}

func TestParseRestorePeriod(t *testing.T) {
	p, err := ParseRestorePeriod("3-days")
	require.NoError(t, err)
	assert.Equal(t, RestoreThreeDays, p)

	_, err = ParseRestorePeriod("2-days")
	assert.Error(t, err)
}

func TestPaymentMethodJSON(t *testing.T) {
	var p PaymentMethod
	require.NoError(t, json.Unmarshal([]byte(`"card"`), &p))
	assert.Equal(t, PaymentCard, p)

	out, err := json.Marshal(PaymentSplit)
	require.NoError(t, err)
	assert.Equal(t, `"split"`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`"cheque"`), &p))

	require.NoError(t, json.Unmarshal([]byte(`2`), &p))
	assert.Equal(t, PaymentSplit, p)
	assert.Error(t, json.Unmarshal([]byte(`9`), &p))
	assert.Equal(t, PaymentSplit, p)
	assert.False(t, PaymentMethod(9).IsValid())
}

func TestDiscountTypeParse(t *testing.T) {
	d, err := ParseDiscountType("amount")
	require.NoError(t, err)
	assert.Equal(t, DiscountAmount, d)

	d, err = ParseDiscountType("")
	require.NoError(t, err)
	assert.Equal(t, DiscountNone, d)

	_, err = ParseDiscountType("bogo")
	assert.Error(t, err)
}

func TestCashierRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseCashierRole("admin"))
	assert.Equal(t, RoleCashier, ParseCashierRole("manager"))
	assert.Equal(t, "admin", RoleAdmin.String())
}
