package dto

type BookingListDTO struct {
	ID          uint     `json:"id"`
	Reference   string   `json:"reference"`
	Date        string   `json:"date"`
	StartTime   string   `json:"start_time"`
	Status      string   `json:"status"`
	ClientName  string   `json:"client_name"`
	Services    []string `json:"services"`
	DurationMin int      `json:"duration_min"`
}
