package domain

import (
	"time"
)

type Coordinates struct {
	Lat float64 `db:"lat" json:"lat"`
	Lng float64 `db:"lng" json:"lng"`
}

// Actor is the already-authenticated identity every core operation runs as.
// Transport builds it from trusted headers; the core never reads ambient state.
type Actor struct {
	ID   string
	Role Role
}

type User struct {
	ID             string    `db:"id"`
	Name           string    `db:"name"`
	Email          string    `db:"email"`
	Phone          string    `db:"phone"`
	Address        string    `db:"address"`
	Lat            *float64  `db:"lat"`
	Lng            *float64  `db:"lng"`
	Role           Role      `db:"role"`
	BusinessName   *string   `db:"business_name"`
	TaxID          *string   `db:"tax_id"`
	Rating         float64   `db:"rating"`
	TotalDonations int       `db:"total_donations"`
	CreatedAt      time.Time `db:"created_at"`
}

// Location returns the user's home coordinates, or nil when the address never
// resolved.
func (u *User) Location() *Coordinates {
	if u.Lat == nil || u.Lng == nil {
		return nil
	}
	return &Coordinates{Lat: *u.Lat, Lng: *u.Lng}
}

type Publication struct {
	ID             string            `db:"id"`
	DonorID        string            `db:"donor_id"`
	DonorName      string            `db:"donor_name"`
	DonorBusiness  *string           `db:"donor_business"`
	FoodName       string            `db:"food_name"`
	Quantity       float64           `db:"quantity"`
	Unit           string            `db:"unit"`
	Condition      FoodCondition     `db:"condition"`
	ExpirationDate *time.Time        `db:"expiration_date"`
	LocationText   string            `db:"location_text"`
	Lat            *float64          `db:"lat"`
	Lng            *float64          `db:"lng"`
	PhotoURL       *string           `db:"photo_url"`
	Description    *string           `db:"description"`
	Status         PublicationStatus `db:"status"`
	CreatedAt      time.Time         `db:"created_at"`
}

func (p *Publication) Coordinates() *Coordinates {
	if p.Lat == nil || p.Lng == nil {
		return nil
	}
	return &Coordinates{Lat: *p.Lat, Lng: *p.Lng}
}

type PickupRequest struct {
	ID            string        `db:"id"`
	PublicationID string        `db:"publication_id"`
	BeneficiaryID string        `db:"beneficiary_id"`
	DonorID       string        `db:"donor_id"`
	PickupDate    string        `db:"pickup_date"`
	PickupTime    string        `db:"pickup_time"`
	Notes         *string       `db:"notes"`
	Status        RequestStatus `db:"status"`
	CreatedAt     time.Time     `db:"created_at"`
}

type Rating struct {
	ID            string    `db:"id"`
	DonorID       string    `db:"donor_id"`
	BeneficiaryID string    `db:"beneficiary_id"`
	Stars         int       `db:"stars"`
	Comment       *string   `db:"comment"`
	CreatedAt     time.Time `db:"created_at"`
}

// SearchResult is a publication annotated with the distance from the search
// origin. DistanceKm stays nil when either side lacks coordinates.
type SearchResult struct {
	Publication Publication
	DistanceKm  *float64
}

type Stats struct {
	ActivePublications int `db:"active_publications"`
	CompletedDonations int `db:"completed_donations"`
	PendingRequests    int `db:"pending_requests"`
	RegisteredUsers    int `db:"registered_users"`
}
