package http

import (
	"time"

	"github.com/comida-compartida/donation-service/internal/domain"
)

type registerRequest struct {
	Name         string  `json:"name" validate:"required,min=2,max=100"`
	Email        string  `json:"email" validate:"required,email,max=255"`
	Phone        string  `json:"phone" validate:"omitempty,max=30"`
	Address      string  `json:"address" validate:"omitempty,max=255"`
	Role         string  `json:"role" validate:"required,oneof=donor beneficiary administrator"`
	BusinessName *string `json:"business_name" validate:"omitempty,max=100"`
	TaxID        *string `json:"tax_id" validate:"omitempty,max=50"`
}

type setRoleRequest struct {
	UserID string `json:"user_id" validate:"required,entity_id,min=1,max=100"`
	Role   string `json:"role" validate:"required,oneof=donor beneficiary administrator"`
}

type publishRequest struct {
	FoodName       string  `json:"food_name" validate:"required,min=1,max=255"`
	Quantity       float64 `json:"quantity" validate:"required,gt=0"`
	Unit           string  `json:"unit" validate:"required,min=1,max=20"`
	Condition      string  `json:"condition" validate:"required,oneof=new opened used"`
	ExpirationDate *string `json:"expiration_date" validate:"omitempty,datetime=2006-01-02"`
	Location       string  `json:"location" validate:"required,min=1,max=255"`
	PhotoURL       *string `json:"photo_url" validate:"omitempty,url"`
	Description    *string `json:"description" validate:"omitempty,max=1000"`
}

type requestPickupRequest struct {
	PublicationID string  `json:"publication_id" validate:"required,entity_id,min=1,max=100"`
	PickupDate    string  `json:"pickup_date" validate:"required,datetime=2006-01-02"`
	PickupTime    string  `json:"pickup_time" validate:"required,datetime=15:04"`
	Notes         *string `json:"notes" validate:"omitempty,max=500"`
}

type advanceRequest struct {
	TargetStatus string `json:"target_status" validate:"required,oneof=pending en_route delivered"`
}

type rateRequest struct {
	DonorID string  `json:"donor_id" validate:"required,entity_id,min=1,max=100"`
	Stars   int     `json:"stars" validate:"required,min=1,max=5"`
	Comment *string `json:"comment" validate:"omitempty,max=500"`
}

type userResponse struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	Email          string              `json:"email"`
	Phone          string              `json:"phone,omitempty"`
	Address        string              `json:"address,omitempty"`
	Coordinates    *domain.Coordinates `json:"coordinates,omitempty"`
	Role           string              `json:"role"`
	BusinessName   *string             `json:"business_name,omitempty"`
	TaxID          *string             `json:"tax_id,omitempty"`
	Rating         float64             `json:"rating"`
	TotalDonations int                 `json:"total_donations"`
	CreatedAt      time.Time           `json:"created_at"`
}

type publicationResponse struct {
	ID             string              `json:"id"`
	DonorID        string              `json:"donor_id"`
	DonorName      string              `json:"donor_name"`
	DonorBusiness  *string             `json:"donor_business,omitempty"`
	FoodName       string              `json:"food_name"`
	Quantity       float64             `json:"quantity"`
	Unit           string              `json:"unit"`
	Condition      string              `json:"condition"`
	ExpirationDate *time.Time          `json:"expiration_date,omitempty"`
	Location       string              `json:"location"`
	Coordinates    *domain.Coordinates `json:"coordinates,omitempty"`
	PhotoURL       *string             `json:"photo_url,omitempty"`
	Description    *string             `json:"description,omitempty"`
	Status         string              `json:"status"`
	CreatedAt      time.Time           `json:"created_at"`
	DistanceKm     *float64            `json:"distance_km,omitempty"`
}

type pickupRequestResponse struct {
	ID            string    `json:"id"`
	PublicationID string    `json:"publication_id"`
	BeneficiaryID string    `json:"beneficiary_id"`
	DonorID       string    `json:"donor_id"`
	PickupDate    string    `json:"pickup_date"`
	PickupTime    string    `json:"pickup_time"`
	Notes         *string   `json:"notes,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type ratingResponse struct {
	ID            string    `json:"id"`
	DonorID       string    `json:"donor_id"`
	BeneficiaryID string    `json:"beneficiary_id"`
	Stars         int       `json:"stars"`
	Comment       *string   `json:"comment,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func toUserResponse(u *domain.User) *userResponse {
	return &userResponse{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Phone:          u.Phone,
		Address:        u.Address,
		Coordinates:    u.Location(),
		Role:           string(u.Role),
		BusinessName:   u.BusinessName,
		TaxID:          u.TaxID,
		Rating:         u.Rating,
		TotalDonations: u.TotalDonations,
		CreatedAt:      u.CreatedAt,
	}
}

func toPublicationResponse(p *domain.Publication, distanceKm *float64) *publicationResponse {
	return &publicationResponse{
		ID:             p.ID,
		DonorID:        p.DonorID,
		DonorName:      p.DonorName,
		DonorBusiness:  p.DonorBusiness,
		FoodName:       p.FoodName,
		Quantity:       p.Quantity,
		Unit:           p.Unit,
		Condition:      string(p.Condition),
		ExpirationDate: p.ExpirationDate,
		Location:       p.LocationText,
		Coordinates:    p.Coordinates(),
		PhotoURL:       p.PhotoURL,
		Description:    p.Description,
		Status:         string(p.Status),
		CreatedAt:      p.CreatedAt,
		DistanceKm:     distanceKm,
	}
}

func toPickupRequestResponse(r *domain.PickupRequest) *pickupRequestResponse {
	return &pickupRequestResponse{
		ID:            r.ID,
		PublicationID: r.PublicationID,
		BeneficiaryID: r.BeneficiaryID,
		DonorID:       r.DonorID,
		PickupDate:    r.PickupDate,
		PickupTime:    r.PickupTime,
		Notes:         r.Notes,
		Status:        string(r.Status),
		CreatedAt:     r.CreatedAt,
	}
}

func toRatingResponse(r *domain.Rating) *ratingResponse {
	return &ratingResponse{
		ID:            r.ID,
		DonorID:       r.DonorID,
		BeneficiaryID: r.BeneficiaryID,
		Stars:         r.Stars,
		Comment:       r.Comment,
		CreatedAt:     r.CreatedAt,
	}
}
