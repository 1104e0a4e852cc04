package models

import "time"

type MenuItem struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Price       float64   `json:"price" gorm:"not null"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image_url"`
	Available   bool      `json:"available" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Promotion is display-only: the discount is advertised on the ordering
// surfaces but never folded into order totals at checkout.
type Promotion struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Title           string    `json:"title" gorm:"not null"`
	Description     string    `json:"description"`
	DiscountPercent int       `json:"discount_percent" gorm:"not null;default:0"`
	ImageURL        string    `json:"image_url"`
	Active          bool      `json:"active" gorm:"default:true"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// DiningTable is a physical table with a printable QR code that opens the
// ordering page pre-bound to the table.
type DiningTable struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	TableNumber string    `json:"table_number" gorm:"uniqueIndex;not null"`
	Seats       int       `json:"seats" gorm:"default:2"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
