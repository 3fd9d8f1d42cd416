package models

import (
	"time"

	"github.com/google/uuid"
)

// Phase is the derived lifecycle phase of a hackathon relative to the
// current instant.
type Phase string

const (
	PhaseUpcoming Phase = "upcoming"
	PhaseOngoing  Phase = "ongoing"
	PhasePast     Phase = "past"
)

type Hackathon struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Summary     string    `json:"summary,omitempty"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`

	// Status is never read from storage. It is overwritten on every
	// classification pass; an inbound value only ever seeds the derivation.
	Status Phase `json:"status"`

	BannerImageURL       string    `json:"banner_image_url,omitempty"`
	OrganizationImageURL string    `json:"organization_image_url,omitempty"`
	PrizeMoney           float64   `json:"prize_money,omitempty"`
	Offerings            []string  `json:"offerings,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}
