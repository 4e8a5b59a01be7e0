package entity

import "time"

// Vehicle is a leasable car listed by a dealer.
type Vehicle struct {
	ID           string    `json:"id"`
	DealerID     string    `json:"dealer_id"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	PricePerDay  int64     `json:"price_per_day"` // minor currency units
	Transmission string    `json:"transmission"`  // manual, automatic
	Fuel         string    `json:"fuel"`          // petrol, diesel, hybrid, electric
	Seats        int       `json:"seats"`
	City         string    `json:"city"`
	PhotoURLs    []string  `json:"photo_urls"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
