package models

import (
	"strconv"
	"time"
)

// Vehicle statuses
const (
	VehicleStatusInStock            = "in_stock"
	VehicleStatusSold               = "sold"
	VehicleStatusReceivedFromClient = "received_from_client"
)

// Vehicle represents a car in the inventory
type Vehicle struct {
	ID           int64     `json:"id" db:"id"`
	Manufacturer string    `json:"manufacturer" db:"manufacturer"`
	Name         string    `json:"name" db:"name"`
	Year         int       `json:"year" db:"year"`
	Status       string    `json:"status" db:"status"`
	BuyPrice     float64   `json:"buyPrice" db:"buy_price"`
	SalePrice    float64   `json:"salePrice" db:"sale_price"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// DisplayName is used in synthesized deal titles
func (v Vehicle) DisplayName() string {
	if v.Year > 0 {
		return v.Manufacturer + " " + v.Name + " " + strconv.Itoa(v.Year)
	}
	return v.Manufacturer + " " + v.Name
}

// Customer represents a dealership customer with a running account balance
type Customer struct {
	ID      int64   `json:"id" db:"id"`
	Name    string  `json:"name" db:"name"`
	Phone   string  `json:"phone,omitempty" db:"phone"`
	Balance float64 `json:"balance" db:"balance"`
}
