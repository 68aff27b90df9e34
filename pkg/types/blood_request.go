package types

import "time"

type RequestUrgency string

const (
	RequestUrgencyCritical RequestUrgency = "Critical"
	RequestUrgencyHigh     RequestUrgency = "High"
	RequestUrgencyModerate RequestUrgency = "Moderate"
	RequestUrgencyLow      RequestUrgency = "Low"
)

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "Pending"
	RequestStatusAccepted  RequestStatus = "Accepted"
	RequestStatusCompleted RequestStatus = "Completed"
	RequestStatusCancelled RequestStatus = "Cancelled"
)

var AllRequestStatuses = []RequestStatus{
	RequestStatusPending,
	RequestStatusAccepted,
	RequestStatusCompleted,
	RequestStatusCancelled,
}

func (s RequestStatus) Valid() bool {
	for _, v := range AllRequestStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsUrgent reports whether a request should surface on the urgent list.
func (r *BloodRequest) IsUrgent() bool {
	if r.Status != RequestStatusPending {
		return false
	}
	return r.Urgency == RequestUrgencyCritical || r.Urgency == RequestUrgencyHigh
}

type BloodRequest struct {
	ID               string         `db:"id" json:"id"`
	RequesterName    string         `db:"requester_name" json:"requesterName" validate:"required"`
	RequesterPhone   string         `db:"requester_phone" json:"requesterPhone" validate:"required"`
	RequesterEmail   *string        `db:"requester_email" json:"requesterEmail,omitempty" validate:"omitempty,email"`
	BloodGroup       BloodGroup     `db:"blood_group" json:"bloodGroup" validate:"required,bloodgroup"`
	Quantity         int            `db:"quantity" json:"quantity" validate:"min=1"`
	Latitude         *float64       `db:"latitude" json:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude        *float64       `db:"longitude" json:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
	HospitalName     *string        `db:"hospital_name" json:"hospitalName,omitempty"`
	HospitalAddress  *string        `db:"hospital_address" json:"hospitalAddress,omitempty"`
	City             string         `db:"city" json:"city" validate:"required"`
	Urgency          RequestUrgency `db:"urgency" json:"urgency" validate:"oneof=Critical High Moderate Low"`
	MedicalCondition *string        `db:"medical_condition" json:"medicalCondition,omitempty"`
	Status           RequestStatus  `db:"status" json:"status" validate:"oneof=Pending Accepted Completed Cancelled"`
	Rating           *float64       `db:"rating" json:"rating,omitempty" validate:"omitempty,min=0,max=5"`
	Feedback         *string        `db:"feedback" json:"feedback,omitempty"`
	CreatedAt        time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updatedAt"`
}

func (r *BloodRequest) Coordinates() (lat, lon float64, ok bool) {
	if r.Latitude == nil || r.Longitude == nil {
		return 0, 0, false
	}
	return *r.Latitude, *r.Longitude, true
}

func (r *BloodRequest) Clone() *BloodRequest {
	out := *r
	out.RequesterEmail = clonePtr(r.RequesterEmail)
	out.Latitude = clonePtr(r.Latitude)
	out.Longitude = clonePtr(r.Longitude)
	out.HospitalName = clonePtr(r.HospitalName)
	out.HospitalAddress = clonePtr(r.HospitalAddress)
	out.MedicalCondition = clonePtr(r.MedicalCondition)
	out.Rating = clonePtr(r.Rating)
	out.Feedback = clonePtr(r.Feedback)
	return &out
}

// ApplyDefaults fills the fields a new request may omit.
func (r *BloodRequest) ApplyDefaults() {
	if r.Urgency == "" {
		r.Urgency = RequestUrgencyModerate
	}
	if r.Status == "" {
		r.Status = RequestStatusPending
	}
}
