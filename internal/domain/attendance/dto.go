package attendance

import "time"

type DayResponse struct {
	Date           string   `json:"date"`
	Status         string   `json:"status"`
	FirstClockInAt *string  `json:"first_clock_in_at,omitempty"`
	LastClockOutAt *string  `json:"last_clock_out_at,omitempty"`
	MinutesWorked  *float64 `json:"minutes_worked,omitempty"`
	ProjectID      *string  `json:"project_id,omitempty"`
	Source         string   `json:"source"`
}

// ToDayResponse maps a daily attendance row to its wire representation.
func ToDayResponse(d DailyAttendance) DayResponse {
	resp := DayResponse{
		Date:          d.AttendanceDate.Format("2006-01-02"),
		Status:        string(d.Status),
		MinutesWorked: d.MinutesWorked,
		ProjectID:     d.ProjectID,
		Source:        string(d.Source),
	}
	if d.FirstClockInAt != nil {
		in := d.FirstClockInAt.Format(time.RFC3339)
		resp.FirstClockInAt = &in
	}
	if d.LastClockOutAt != nil {
		out := d.LastClockOutAt.Format(time.RFC3339)
		resp.LastClockOutAt = &out
	}
	return resp
}
