package domain

import "time"

// Location is a physical facility owned by one administrator.
// Its courts live and die with it.
type Location struct {
	ID          int64
	Name        string
	ComplexName string
	ImageURL    *string
	AdminMobile string
	Courts      []*Court

	CreatedAt time.Time
}

// Court is a bookable unit inside a location
type Court struct {
	ID         int64
	Name       string
	LocationID int64
}

// IsOwnedBy returns true if the location is administered by mobile
func (l *Location) IsOwnedBy(mobile string) bool {
	return l.AdminMobile == mobile
}

// CourtByID returns the court with the given id or nil
func (l *Location) CourtByID(id int64) *Court {
	for _, c := range l.Courts {
		if c.ID == id {
			return c
		}
	}
	return nil
}
