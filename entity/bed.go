package entity

type BedStatus string

const (
	BedVacant   BedStatus = "vacant"
	BedOccupied BedStatus = "occupied"
)

// Bed is a ward bed. Name holds the ward or unit.
type Bed struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	BedNumber string    `json:"bed_number"`
	Status    BedStatus `json:"status"`
}

func (b Bed) IsOccupied() bool {
	return b.Status == BedOccupied
}
