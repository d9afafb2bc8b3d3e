package models

import "time"

// Paper is an uploaded past-year question paper available as reference material.
type Paper struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Subject   string    `gorm:"size:128;not null" json:"subject"`
	Year      int       `gorm:"not null" json:"year"`
	FileName  string    `gorm:"size:255;not null" json:"file_name"`
	FileURL   string    `gorm:"size:512;not null" json:"file_url"`
	CreatedAt time.Time `json:"created_at"`
}
