package models

// Event is stored in the "events" collection.
type Event struct {
	EventID     string `json:"eventId"`
	Name        string `json:"name"`
	Date        string `json:"date"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	OwnerID     string `json:"ownerId"`
	CreatedAt   string `json:"createdAt"`
}

// Guest is an invited attendee, stored in the "guests" collection.
type Guest struct {
	GuestID   string `json:"guestId"`
	EventID   string `json:"eventId"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	InvitedAt string `json:"invitedAt"`
}

// Table is a seating table, stored in the "tables" collection. Its id is
// deterministic (eventId:tableNumber) so creating the same table again is
// an update.
type Table struct {
	TableID     string   `json:"tableId"`
	EventID     string   `json:"eventId"`
	TableNumber string   `json:"tableNumber"`
	Capacity    int      `json:"capacity"`
	Guests      []string `json:"guests"`
}

type CreateEventRequest struct {
	Name        string `json:"name" validate:"required"`
	Date        string `json:"date" validate:"required"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

type CreateTableRequest struct {
	TableNumber string   `json:"tableNumber" validate:"required"`
	Capacity    int      `json:"capacity" validate:"required,min=1"`
	Guests      []string `json:"guests"`
}

type InviteGuestRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
}
