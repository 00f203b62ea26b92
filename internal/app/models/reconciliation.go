package models

// ReconciliationResult is the outcome of mapping a gateway notification onto
// local statuses. Unchanged fields are left empty so appliers can skip them.
type ReconciliationResult struct {
	PaymentStatus PaymentStatus
	BookingStatus BookingStatus
	OrderStatus   OrderStatus
	// SettleBooking marks transitions that should stamp paid_at.
	Settled bool
	// RestoreStock marks marketplace cancellations that must return reserved
	// quantities to inventory.
	RestoreStock bool
}

// IncomeReportRow aggregates settled payment income for one day.
type IncomeReportRow struct {
	Date          string  `json:"date"`
	BookingCount  int     `json:"booking_count"`
	GrossIncome   float64 `json:"gross_income"`
	AdminFees     float64 `json:"admin_fees"`
	NetIncome     float64 `json:"net_income"`
	OrderCount    int     `json:"order_count"`
	OrderIncome   float64 `json:"order_income"`
	TotalIncome   float64 `json:"total_income"`
	TotalPayments int     `json:"total_payments"`
}

// PatientReportRow aggregates consultations per doctor over a window. Only
// COMPLETED bookings with a PAID payment are counted.
type PatientReportRow struct {
	DoctorID          string `json:"doctor_id"`
	DoctorName        string `json:"doctor_name"`
	CompletedBookings int    `json:"completed_bookings"`
	UniquePatients    int    `json:"unique_patients"`
}
