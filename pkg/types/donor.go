package types

import "time"

type Donor struct {
	ID           string     `db:"id" json:"id"`
	Name         string     `db:"name" json:"name" validate:"required"`
	BloodGroup   BloodGroup `db:"blood_group" json:"bloodGroup" validate:"required,bloodgroup"`
	City         string     `db:"city" json:"city" validate:"required"`
	Phone        string     `db:"phone" json:"phone" validate:"required"`
	Email        *string    `db:"email" json:"email,omitempty" validate:"omitempty,email"`
	Age          *int       `db:"age" json:"age,omitempty" validate:"omitempty,min=18,max=65"`
	Latitude     *float64   `db:"latitude" json:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude    *float64   `db:"longitude" json:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
	IsAvailable  bool       `db:"is_available" json:"isAvailable"`
	LastDonation *time.Time `db:"last_donation" json:"lastDonation,omitempty"`
	Rating       *float64   `db:"rating" json:"rating,omitempty" validate:"omitempty,min=0,max=5"`
	ReviewCount  *int       `db:"review_count" json:"reviewCount,omitempty" validate:"omitempty,min=0"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updatedAt"`
}

// Coordinates reports the donor's location. A donor with only one of
// latitude/longitude set has no usable location.
func (d *Donor) Coordinates() (lat, lon float64, ok bool) {
	if d.Latitude == nil || d.Longitude == nil {
		return 0, 0, false
	}
	return *d.Latitude, *d.Longitude, true
}

func (d *Donor) HasCoordinates() bool {
	_, _, ok := d.Coordinates()
	return ok
}

// Clone returns a deep copy so callers can't mutate stored records.
func (d *Donor) Clone() *Donor {
	out := *d
	out.Email = clonePtr(d.Email)
	out.Age = clonePtr(d.Age)
	out.Latitude = clonePtr(d.Latitude)
	out.Longitude = clonePtr(d.Longitude)
	out.LastDonation = clonePtr(d.LastDonation)
	out.Rating = clonePtr(d.Rating)
	out.ReviewCount = clonePtr(d.ReviewCount)
	return &out
}

// DonorFilter is an exact-match attribute filter. Nil fields are unconstrained.
type DonorFilter struct {
	BloodGroup *BloodGroup
	City       *string
}

func (f DonorFilter) Matches(d *Donor) bool {
	if f.BloodGroup != nil && d.BloodGroup != *f.BloodGroup {
		return false
	}
	if f.City != nil && d.City != *f.City {
		return false
	}
	return true
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
