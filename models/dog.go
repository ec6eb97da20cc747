package models

import "time"

// Dog belongs to exactly one client. Booking creation checks that the
// dog's owner matches the authenticated client; the link is not
// re-verified afterwards.
type Dog struct {
	ID        string    `bson:"id" json:"id"`
	OwnerID   string    `bson:"owner_id" json:"ownerId"`
	Name      string    `bson:"name" json:"name"`
	Breed     string    `bson:"breed,omitempty" json:"breed,omitempty"`
	Size      string    `bson:"size,omitempty" json:"size,omitempty"` // small | medium | large
	PhotoURL  string    `bson:"photo_url,omitempty" json:"photoUrl,omitempty"`
	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"` // leash quirks, medical notes
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// DogInput carries client-supplied dog fields for create/update.
type DogInput struct {
	Name  string `json:"name" binding:"required"`
	Breed string `json:"breed"`
	Size  string `json:"size"`
	Notes string `json:"notes"`
}
