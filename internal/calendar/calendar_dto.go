package calendar

type DeclareNonWorkingDayRequest struct {
	Date   string `json:"date" binding:"required"`
	Reason string `json:"reason"`
}

type NonWorkingDayResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Reason    string `json:"reason,omitempty"`
	CreatedBy string `json:"created_by"`
}

type WorkingDaysResponse struct {
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	WorkingDays int    `json:"working_days"`
}

type DayInfoResponse struct {
	Date        string `json:"date"`
	DayOff      bool   `json:"day_off"`
	HolidayName string `json:"holiday_name,omitempty"`
}
