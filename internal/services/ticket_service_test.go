package services

import (
	"context"
	"errors"
	"testing"

	"helpdesk-app/internal/models"
	"helpdesk-app/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeTicketRepo struct {
	tickets map[primitive.ObjectID]*models.Ticket
	updated bson.M
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: map[primitive.ObjectID]*models.Ticket{}}
}

func (f *fakeTicketRepo) Create(ctx context.Context, ticket *models.Ticket) error {
	ticket.ID = primitive.NewObjectID()
	f.tickets[ticket.ID] = ticket
	return nil
}

func (f *fakeTicketRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ticket, error) {
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return ticket, nil
}

func (f *fakeTicketRepo) GetAll(ctx context.Context) ([]models.Ticket, error) {
	out := make([]models.Ticket, 0, len(f.tickets))
	for _, t := range f.tickets {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTicketRepo) GetByUserID(ctx context.Context, userID string) ([]models.Ticket, error) {
	out := []models.Ticket{}
	for _, t := range f.tickets {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTicketRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	if _, ok := f.tickets[id]; !ok {
		return models.ErrNotFound
	}
	f.updated = fields
	return nil
}

func (f *fakeTicketRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.tickets[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.tickets, id)
	return nil
}

func userSession(userID string) *utils.Session {
	return &utils.Session{UserID: userID, Role: models.RoleUser}
}

func secretarySession() *utils.Session {
	return &utils.Session{UserID: "secretary-1", Role: models.RoleSecretary}
}

func TestTicketCreate_StampsDefaults(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := NewTicketService(repo, newTestNotifier())

	ticket, err := svc.Create(context.Background(), userSession("user-1"), "Broken printer", "It jams")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ticket.Status != models.TicketInProgress {
		t.Errorf("status = %q, want %q", ticket.Status, models.TicketInProgress)
	}
	if ticket.Feedback != "" {
		t.Errorf("feedback = %q, want empty", ticket.Feedback)
	}
	if ticket.UserID != "user-1" {
		t.Errorf("userId = %q, want user-1", ticket.UserID)
	}
	if ticket.CreatedAt.IsZero() || ticket.LastUpdatedDate.IsZero() {
		t.Error("timestamps must be set")
	}
}

func TestTicketGet_Ownership(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := NewTicketService(repo, newTestNotifier())

	ticket, _ := svc.Create(context.Background(), userSession("user-1"), "Broken printer", "It jams")

	if _, err := svc.Get(context.Background(), userSession("user-2"), ticket.ID.Hex()); !errors.Is(err, models.ErrForbidden) {
		t.Errorf("other user: err = %v, want ErrForbidden", err)
	}
	if _, err := svc.Get(context.Background(), userSession("user-1"), ticket.ID.Hex()); err != nil {
		t.Errorf("owner: err = %v", err)
	}
	if _, err := svc.Get(context.Background(), secretarySession(), ticket.ID.Hex()); err != nil {
		t.Errorf("secretary: err = %v", err)
	}
}

func TestTicketGet_InvalidID(t *testing.T) {
	svc := NewTicketService(newFakeTicketRepo(), newTestNotifier())

	if _, err := svc.Get(context.Background(), secretarySession(), "not-a-hex-id"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestTicketGetForUser_DefaultsToCaller(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := NewTicketService(repo, newTestNotifier())

	svc.Create(context.Background(), userSession("user-1"), "A", "a")
	svc.Create(context.Background(), userSession("user-2"), "B", "b")

	tickets, err := svc.GetForUser(context.Background(), userSession("user-1"), "")
	if err != nil {
		t.Fatalf("GetForUser: %v", err)
	}
	if len(tickets) != 1 || tickets[0].UserID != "user-1" {
		t.Errorf("tickets = %+v, want only user-1's", tickets)
	}

	if _, err := svc.GetForUser(context.Background(), userSession("user-1"), "user-2"); !errors.Is(err, models.ErrForbidden) {
		t.Errorf("cross-user listing: err = %v, want ErrForbidden", err)
	}
}

func TestTicketUpdate_InvalidStatus(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := NewTicketService(repo, newTestNotifier())

	ticket, _ := svc.Create(context.Background(), userSession("user-1"), "A", "a")

	err := svc.Update(context.Background(), ticket.ID.Hex(), map[string]interface{}{"status": "Closed"})
	var invalidStatus *models.InvalidStatusError
	if !errors.As(err, &invalidStatus) {
		t.Fatalf("err = %v, want InvalidStatusError", err)
	}
	if repo.updated != nil {
		t.Error("no fields must be written on invalid status")
	}
}

func TestTicketUpdate_FiltersAllowList(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := NewTicketService(repo, newTestNotifier())

	ticket, _ := svc.Create(context.Background(), userSession("user-1"), "A", "a")

	err := svc.Update(context.Background(), ticket.ID.Hex(), map[string]interface{}{
		"status":   "Resolved",
		"feedback": "done",
		"userId":   "user-2",
		"_id":      "attack",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if _, ok := repo.updated["userId"]; ok {
		t.Error("userId must not pass the allow-list")
	}
	if _, ok := repo.updated["_id"]; ok {
		t.Error("_id must not pass the allow-list")
	}
	if repo.updated["status"] != "Resolved" || repo.updated["feedback"] != "done" {
		t.Errorf("updated = %v", repo.updated)
	}
	if _, ok := repo.updated["lastUpdatedDate"]; !ok {
		t.Error("lastUpdatedDate must be stamped")
	}
}

func TestTicketUpdate_NoValidFields(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := NewTicketService(repo, newTestNotifier())

	ticket, _ := svc.Create(context.Background(), userSession("user-1"), "A", "a")

	err := svc.Update(context.Background(), ticket.ID.Hex(), map[string]interface{}{"ticketId": ticket.ID.Hex(), "bogus": 1})
	if !errors.Is(err, models.ErrNoValidFields) {
		t.Errorf("err = %v, want ErrNoValidFields", err)
	}
}

func TestTicketDelete_Ownership(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := NewTicketService(repo, newTestNotifier())

	ticket, _ := svc.Create(context.Background(), userSession("user-1"), "A", "a")

	if err := svc.Delete(context.Background(), userSession("user-2"), ticket.ID.Hex()); !errors.Is(err, models.ErrForbidden) {
		t.Errorf("other user: err = %v, want ErrForbidden", err)
	}
	if err := svc.Delete(context.Background(), userSession("user-1"), ticket.ID.Hex()); err != nil {
		t.Errorf("owner: err = %v", err)
	}
	if len(repo.tickets) != 0 {
		t.Error("ticket must be removed")
	}
}
