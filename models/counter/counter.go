package counter

// BookingSeqName keys the booking id sequence in the counters store.
const BookingSeqName = "bookingSeq"

// Counter holds a named persistent sequence. Seq is only ever moved upward,
// either by an atomic increment or by a set-to-at-least seed.
type Counter struct {
	Name string `gorm:"primaryKey;type:varchar(64)" bson:"_id" json:"name"`
	Seq  int64  `gorm:"not null" bson:"seq" json:"seq"`
}

func (Counter) TableName() string {
	return "counters"
}
