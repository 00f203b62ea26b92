package queries

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The reports must only count consultations that actually happened: a booking
// that reached COMPLETED and whose payment landed as PAID. These pins keep a
// future rewrite of the SQL from widening that rule.
func TestReportQueriesCountOnlyCompletedPaidBookings(t *testing.T) {
	t.Run("Income Report", func(t *testing.T) {
		assert.Contains(t, GetIncomeReport, "p.status = 'PAID'")
		assert.Contains(t, GetIncomeReport, "b.status = 'COMPLETED'")
	})

	t.Run("Patient Report", func(t *testing.T) {
		assert.Contains(t, GetPatientReport, "b.status = 'COMPLETED'")
		assert.Contains(t, GetPatientReport, "p.status = 'PAID'")
		assert.True(t, strings.Contains(GetPatientReport, "EXISTS"), "the paid payment must gate the booking join")
	})

	t.Run("Order Income Report", func(t *testing.T) {
		assert.Contains(t, GetOrderIncomeReport, "op.status = 'PAID'")
	})
}
