package requests

type ReportRangeRequest struct {
	StartDate string `json:"start_date" validate:"required,calendar_date"`
	EndDate   string `json:"end_date" validate:"required,calendar_date"`
}
