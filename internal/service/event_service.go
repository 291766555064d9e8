package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/celebra-app/celebra-backend/internal/models"
	"github.com/celebra-app/celebra-backend/internal/repository"
	"github.com/celebra-app/celebra-backend/pkg/document"
	"github.com/celebra-app/celebra-backend/pkg/utils"
)

type EventService struct {
	events      *repository.Repository[models.Event]
	guests      *repository.Repository[models.Guest]
	tables      *repository.Repository[models.Table]
	mailer      Mailer
	frontendURL string
}

func NewEventService(
	events *repository.Repository[models.Event],
	guests *repository.Repository[models.Guest],
	tables *repository.Repository[models.Table],
	mailer Mailer,
	frontendURL string,
) *EventService {
	return &EventService{
		events:      events,
		guests:      guests,
		tables:      tables,
		mailer:      mailer,
		frontendURL: frontendURL,
	}
}

func (s *EventService) CreateEvent(ownerID string, req models.CreateEventRequest) (*models.Event, error) {
	date, err := utils.ParseDatetime(req.Date)
	if err != nil {
		return nil, err
	}

	eventID := uuid.NewString()
	event := models.Event{
		EventID:     eventID,
		Name:        req.Name,
		Date:        utils.FormatDatetime(date),
		Location:    req.Location,
		Description: req.Description,
		OwnerID:     ownerID,
		CreatedAt:   utils.FormatDatetime(time.Now()),
	}

	if _, err := s.events.Create(event, eventID); err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *EventService) GetEvent(eventID string) (*models.Event, error) {
	event, err := s.events.Get(eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, errors.New("event not found")
	}
	return event, nil
}

func (s *EventService) GetUserEvents(userID string) ([]models.Event, error) {
	return s.events.Query(
		[]document.Filter{{Field: "ownerId", Operator: document.OpEqual, Value: userID}},
		"createdAt", true, 0,
	)
}

// CreateTable creates or updates a table. The table id is derived from the
// event and table number, so repeating a table number overwrites it.
func (s *EventService) CreateTable(eventID string, req models.CreateTableRequest) (*models.Table, error) {
	if _, err := s.GetEvent(eventID); err != nil {
		return nil, err
	}

	guests := req.Guests
	if guests == nil {
		guests = []string{}
	}

	tableID := fmt.Sprintf("%s:%s", eventID, req.TableNumber)
	table := models.Table{
		TableID:     tableID,
		EventID:     eventID,
		TableNumber: req.TableNumber,
		Capacity:    req.Capacity,
		Guests:      guests,
	}

	if _, err := s.tables.Create(table, tableID); err != nil {
		return nil, err
	}
	return &table, nil
}

func (s *EventService) GetTables(eventID string) ([]models.Table, error) {
	return s.tables.Query(
		[]document.Filter{{Field: "eventId", Operator: document.OpEqual, Value: eventID}},
		"tableNumber", false, 0,
	)
}

// InviteGuest records the invitation and sends the invitation email. The
// email failure surfaces; sending it is the point of the endpoint.
func (s *EventService) InviteGuest(eventID string, req models.InviteGuestRequest) (*models.Guest, error) {
	event, err := s.GetEvent(eventID)
	if err != nil {
		return nil, err
	}

	guestID := uuid.NewString()
	guest := models.Guest{
		GuestID:   guestID,
		EventID:   eventID,
		Email:     req.Email,
		Name:      req.Name,
		InvitedAt: utils.FormatDatetime(time.Now()),
	}

	if _, err := s.guests.Create(guest, guestID); err != nil {
		return nil, err
	}

	invitationLink := fmt.Sprintf("%s/events/%s/join?guest=%s", s.frontendURL, eventID, guestID)
	if err := s.mailer.SendInvitationEmail(req.Email, event.Name, invitationLink); err != nil {
		return nil, err
	}

	return &guest, nil
}

func (s *EventService) GetGuests(eventID string) ([]models.Guest, error) {
	return s.guests.Query(
		[]document.Filter{{Field: "eventId", Operator: document.OpEqual, Value: eventID}},
		"invitedAt", false, 0,
	)
}
