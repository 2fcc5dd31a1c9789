package booking

import (
	"time"
)

// Booking represents a customer ride request. The same struct is persisted
// by both storage backends, so it carries gorm and bson tags side by side.
type Booking struct {
	// ID is the human-readable booking number, e.g. "MSC000042".
	ID string `gorm:"primaryKey;type:varchar(9)" bson:"_id" json:"id"`

	Name  string `gorm:"type:varchar(255);not null" bson:"name" json:"name"`
	Phone string `gorm:"type:varchar(20);not null" bson:"phone" json:"phone"`
	Email string `gorm:"type:varchar(255);not null;index" bson:"email" json:"email"`

	Passengers     int    `gorm:"not null" bson:"passengers" json:"passengers"`
	PickupLocation string `gorm:"type:text;not null" bson:"pickup_location" json:"pickupLocation"`
	DropLocation   string `gorm:"type:text;not null" bson:"drop_location" json:"dropLocation"`

	// StartDate is YYYY-MM-DD, StartTime is HH:MM as submitted by the client.
	StartDate string `gorm:"type:varchar(10);not null" bson:"start_date" json:"startDate"`
	StartTime string `gorm:"type:varchar(10);not null" bson:"start_time" json:"startTime"`

	Status    BookingStatus `gorm:"type:varchar(20);not null;index" bson:"status" json:"status"`
	CreatedAt time.Time     `gorm:"autoCreateTime" bson:"created_at" json:"created_at"`
	UpdatedAt time.Time     `gorm:"autoUpdateTime" bson:"updated_at" json:"updated_at"`
}

func (Booking) TableName() string {
	return "bookings"
}
