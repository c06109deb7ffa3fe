package dto

type BarberEarningsDTO struct {
	BarberID   uint    `json:"barber_id"`
	BarberName string  `json:"barber_name"`
	Margin     int     `json:"margin"`
	Gross      float64 `json:"gross"`
	BarberCut  float64 `json:"barber_cut"`
	ShopCut    float64 `json:"shop_cut"`
	Bookings   int     `json:"bookings"`
}

type EarningsReportDTO struct {
	StartDate          string              `json:"start_date"`
	EndDate            string              `json:"end_date"`
	EarningsTotal      float64             `json:"earnings_total"`
	EarningsAfterSplit float64             `json:"earnings_after_split"`
	Barbers            []BarberEarningsDTO `json:"barbers"`
}
