package dashboard

// ========== COMBINED DASHBOARD ==========

// DashboardResponse is the combined response for the admin dashboard endpoint
type DashboardResponse struct {
	Cards            CardsResponse         `json:"cards"`
	RevenueByDate    []RevenuePoint        `json:"revenue_by_date"`
	BookingsByStatus []StatusCountResponse `json:"bookings_by_status"`
	BookingsByMonth  []MonthPoint          `json:"bookings_by_month"`
	Month            string                `json:"month"` // Format: "YYYY-MM"
	FetchedAt        string                `json:"fetched_at"`

	// Stale is set when the data comes from the previous snapshot.
	Stale bool `json:"-"`
}

// ========== METRIC CARDS ==========

// CardsResponse contains the headline counts shown above the charts
type CardsResponse struct {
	TotalBookings    int    `json:"total_bookings"`
	Scheduled        int    `json:"scheduled"`
	InProgress       int    `json:"in_progress"`
	Completed        int    `json:"completed"`
	Cancelled        int    `json:"cancelled"`
	Unknown          int    `json:"unknown"`
	CompletedRevenue string `json:"completed_revenue"`
	UpcomingBookings int    `json:"upcoming_bookings"` // active, dated today or later
	TotalWorkers     int    `json:"total_workers"`
}

// ========== REVENUE BY DATE (line chart) ==========

// RevenuePoint is the completed revenue for one appointment date
type RevenuePoint struct {
	Date     string `json:"date"` // Format: "YYYY-MM-DD"
	Revenue  string `json:"revenue"`
	Bookings int    `json:"bookings"`
}

// ========== BOOKINGS BY STATUS (pie chart) ==========

type StatusCountResponse struct {
	Status  string  `json:"status"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// ========== BOOKINGS BY MONTH (bar chart) ==========

// MonthPoint counts bookings per appointment month
type MonthPoint struct {
	Month     string `json:"month"` // Format: "YYYY-MM"
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
	Cancelled int    `json:"cancelled"`
	Revenue   string `json:"revenue"`
}
