package admin

import (
	"time"
)

// Admin is a dashboard account. Exactly one default account is seeded at
// startup when the store holds none.
type Admin struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"id"`
	Email        string    `gorm:"type:varchar(255);not null;unique" bson:"email" json:"email"`
	PasswordHash string    `gorm:"column:password;type:varchar(255);not null" bson:"password" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" bson:"created_at" json:"created_at"`
}

func (Admin) TableName() string {
	return "admins"
}
