package models

import "time"

// Walker is a provider: the service-performing actor who walks dogs.
type Walker struct {
	ID           string  `bson:"id" json:"id"`
	Email        string  `bson:"email" json:"email"`
	Name         string  `bson:"name" json:"name"`
	PasswordHash string  `bson:"password_hash" json:"-"`
	Bio          string  `bson:"bio,omitempty" json:"bio,omitempty"`
	HourlyRate   float64 `bson:"hourly_rate" json:"hourlyRate"` // fees are frozen from this at booking creation
	Verified     bool    `bson:"verified" json:"verified"`
	Suspended    bool    `bson:"suspended" json:"suspended"`
	FCMToken     string  `bson:"fcm_token,omitempty" json:"-"`

	// Rating aggregate, updated when a client rates a completed booking.
	RatingCount int     `bson:"rating_count" json:"ratingCount"`
	RatingAvg   float64 `bson:"rating_avg" json:"ratingAvg"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// WalkerRegistration carries the fields a new walker signs up with.
type WalkerRegistration struct {
	Email      string  `json:"email" binding:"required,email"`
	Name       string  `json:"name" binding:"required"`
	Password   string  `json:"password" binding:"required,min=8"`
	HourlyRate float64 `json:"hourlyRate" binding:"required,gt=0"`
	Bio        string  `json:"bio"`
}
