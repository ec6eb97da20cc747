package models

// ReminderPayload is the asynq task body for a scheduled walk reminder,
// enqueued when a walker accepts a booking.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
	ClientID  string `json:"clientId"`
	WalkerID  string `json:"walkerId"`
	DogName   string `json:"dogName"`
	Date      string `json:"date"`
	Title     string `json:"title"`
	Body      string `json:"body"`
}
