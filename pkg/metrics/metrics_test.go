package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilRecorderIsSafe(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.SaleCommitted(10)
		r.SaleFailed("validation")
		r.ReceiptPrinted()
		r.Restored("1-day")
	})
}

func TestHandlerExposesCounters(t *testing.T) {
	r := NewRecorder()
	r.SaleCommitted(14.96)
	r.SaleFailed("insufficient_stock")
	r.ReceiptPrinted()

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "pos_sales_committed_total 1")
	assert.Contains(t, string(body), `pos_sale_commit_failures_total{kind="insufficient_stock"} 1`)
	assert.Contains(t, string(body), "pos_receipts_printed_total 1")
}
