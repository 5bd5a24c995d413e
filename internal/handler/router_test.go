package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"helpdesk-app/internal/models"
	"helpdesk-app/internal/services"
	"helpdesk-app/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubSessionStore struct {
	sessions map[string]*utils.Session
}

func (s *stubSessionStore) Get(ctx context.Context, token string) (*utils.Session, error) {
	sess, ok := s.sessions[token]
	if !ok {
		return nil, utils.ErrNoSession
	}
	out := *sess
	return &out, nil
}

func (s *stubSessionStore) Create(ctx context.Context, userID, email string) (*utils.Session, error) {
	sess := &utils.Session{
		Token:     "tok-" + userID,
		UserID:    userID,
		Email:     email,
		ExpiresAt: time.Now().Add(utils.SessionTTL),
	}
	s.sessions[sess.Token] = sess
	return sess, nil
}

func (s *stubSessionStore) Destroy(ctx context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

type stubUserRepo struct {
	users map[string]*models.User
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	s.users[user.ID] = user
	return nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, userID string) (*models.User, error) {
	u, ok := s.users[userID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return u, nil
}

func (s *stubUserRepo) GetAll(ctx context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

func (s *stubUserRepo) UpdateFields(ctx context.Context, userID string, fields bson.M) error {
	if _, ok := s.users[userID]; !ok {
		return models.ErrNotFound
	}
	return nil
}

func (s *stubUserRepo) Delete(ctx context.Context, userID string) error {
	delete(s.users, userID)
	return nil
}

func (s *stubUserRepo) GetRole(ctx context.Context, userID string) (models.Role, error) {
	u, ok := s.users[userID]
	if !ok {
		return "", models.ErrNotFound
	}
	return u.Role, nil
}

type stubTicketRepo struct {
	tickets map[primitive.ObjectID]*models.Ticket
}

func (s *stubTicketRepo) Create(ctx context.Context, ticket *models.Ticket) error {
	ticket.ID = primitive.NewObjectID()
	s.tickets[ticket.ID] = ticket
	return nil
}

func (s *stubTicketRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ticket, error) {
	t, ok := s.tickets[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return t, nil
}

func (s *stubTicketRepo) GetAll(ctx context.Context) ([]models.Ticket, error) {
	out := make([]models.Ticket, 0, len(s.tickets))
	for _, t := range s.tickets {
		out = append(out, *t)
	}
	return out, nil
}

func (s *stubTicketRepo) GetByUserID(ctx context.Context, userID string) ([]models.Ticket, error) {
	out := []models.Ticket{}
	for _, t := range s.tickets {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (s *stubTicketRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	if _, ok := s.tickets[id]; !ok {
		return models.ErrNotFound
	}
	return nil
}

func (s *stubTicketRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(s.tickets, id)
	return nil
}

type stubAppointmentRepo struct{}

func (stubAppointmentRepo) Create(ctx context.Context, appointment *models.Appointment) error {
	appointment.ID = primitive.NewObjectID()
	return nil
}

func (stubAppointmentRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Appointment, error) {
	return nil, models.ErrNotFound
}

func (stubAppointmentRepo) GetAll(ctx context.Context) ([]models.Appointment, error) {
	return []models.Appointment{}, nil
}

func (stubAppointmentRepo) GetByUserID(ctx context.Context, userID string) ([]models.Appointment, error) {
	return []models.Appointment{}, nil
}

func (stubAppointmentRepo) CountByDateTime(ctx context.Context, date, timeSlot string) (int64, error) {
	return 0, nil
}

func (stubAppointmentRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	return nil
}

func (stubAppointmentRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return nil
}

type stubResourceRepo struct {
	resources map[primitive.ObjectID]*models.Resource
}

func (s *stubResourceRepo) Create(ctx context.Context, resource *models.Resource) error {
	resource.ID = primitive.NewObjectID()
	s.resources[resource.ID] = resource
	return nil
}

func (s *stubResourceRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Resource, error) {
	r, ok := s.resources[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return r, nil
}

func (s *stubResourceRepo) GetAll(ctx context.Context) ([]models.Resource, error) {
	out := make([]models.Resource, 0, len(s.resources))
	for _, r := range s.resources {
		out = append(out, *r)
	}
	return out, nil
}

func (s *stubResourceRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	return nil
}

func (s *stubResourceRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(s.resources, id)
	return nil
}

type stubBlobStore struct{}

func (stubBlobStore) Upload(ctx context.Context, reader io.Reader, size int64, contentType, filename string) (string, string, error) {
	return "resources/" + filename, "http://files.local/resources/" + filename, nil
}

func (stubBlobStore) Remove(ctx context.Context, objectKey string) error { return nil }

type stubCache struct{}

func (stubCache) Get(ctx context.Context, key string, dest interface{}) error {
	return utils.ErrCacheMiss
}

func (stubCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return nil
}

func (stubCache) Delete(ctx context.Context, key string) error { return nil }

type stubIdentity struct{}

func (stubIdentity) SignUp(ctx context.Context, email, password string) (string, error) {
	return "id-" + email, nil
}

func (stubIdentity) SignIn(ctx context.Context, email, password string) (*utils.IdentityUser, error) {
	return &utils.IdentityUser{ID: "id-" + email, Email: email, EmailVerified: true}, nil
}

func (stubIdentity) GetEmail(ctx context.Context, userID string) (string, error) {
	return userID + "@example.com", nil
}

func (stubIdentity) DeleteUser(ctx context.Context, userID string) error { return nil }

type stubMailer struct{}

func (stubMailer) Send(to, subject, body string) error { return nil }

type routerFixture struct {
	router     *gin.Engine
	ticketID   primitive.ObjectID
	resourceID primitive.ObjectID
}

// newTestRouter builds the full route table over stub stores with two known
// sessions: "user-token" (role user, user-1) and "secretary-token".
func newTestRouter() *routerFixture {
	gin.SetMode(gin.TestMode)

	users := &stubUserRepo{users: map[string]*models.User{
		"user-1": {ID: "user-1", Role: models.RoleUser},
		"sec-1":  {ID: "sec-1", Role: models.RoleSecretary},
	}}
	sessions := &stubSessionStore{sessions: map[string]*utils.Session{
		"user-token":      {Token: "user-token", UserID: "user-1", Email: "user@example.com"},
		"secretary-token": {Token: "secretary-token", UserID: "sec-1", Email: "sec@example.com"},
	}}

	ticketRepo := &stubTicketRepo{tickets: map[primitive.ObjectID]*models.Ticket{}}
	ticket := &models.Ticket{Title: "Printer", Description: "Jams", Status: models.TicketInProgress, UserID: "user-1"}
	ticketRepo.Create(context.Background(), ticket)

	resourceRepo := &stubResourceRepo{resources: map[primitive.ObjectID]*models.Resource{}}
	resource := &models.Resource{Title: "Campus map", Description: "PDF", Type: "document"}
	resourceRepo.Create(context.Background(), resource)

	identity := stubIdentity{}
	notifier := services.NewNotifier(stubMailer{}, identity)

	authHandler := NewAuthHandler(services.NewAuthService(users, identity), sessions)
	userHandler := NewUserHandler(services.NewUserService(users, identity))
	ticketHandler := NewTicketHandler(services.NewTicketService(ticketRepo, notifier))
	appointmentHandler := NewAppointmentHandler(services.NewAppointmentService(stubAppointmentRepo{}, notifier))
	resourceHandler := NewResourceHandler(services.NewResourceService(resourceRepo, stubBlobStore{}, stubCache{}))

	router := gin.New()
	router.Use(utils.SessionMiddleware(sessions, users))
	RegisterRoutes(router, authHandler, userHandler, ticketHandler, appointmentHandler, resourceHandler)

	return &routerFixture{router: router, ticketID: ticket.ID, resourceID: resource.ID}
}

func (f *routerFixture) do(method, path, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: token})
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestRoutes_ResourceReadsArePublic(t *testing.T) {
	f := newTestRouter()

	if w := f.do(http.MethodGet, "/get_all_resources", "", ""); w.Code != http.StatusOK {
		t.Errorf("GET /get_all_resources without session = %d, want 200", w.Code)
	}
	if w := f.do(http.MethodGet, "/get_resource?resourceId="+f.resourceID.Hex(), "", ""); w.Code != http.StatusOK {
		t.Errorf("GET /get_resource without session = %d, want 200", w.Code)
	}
}

func TestRoutes_RequireAuthentication(t *testing.T) {
	f := newTestRouter()

	cases := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodPost, "/create_ticket", `{"title":"t","description":"d"}`},
		{http.MethodGet, "/get_user_tickets", ""},
		{http.MethodGet, "/check_time_slot_availability?date=2099-01-01&time=09:00+AM", ""},
		{http.MethodPut, "/update_user", `{"userId":"user-1","firstName":"A"}`},
		{http.MethodPost, "/create_appointment", `{"title":"t","description":"d","appointmentDate":"2099-01-01","appointmentTime":"09:00 AM"}`},
	}
	for _, tc := range cases {
		w := f.do(tc.method, tc.path, tc.body, "")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without session = %d, want 401", tc.method, tc.path, w.Code)
		}
		var body map[string]string
		json.Unmarshal(w.Body.Bytes(), &body)
		if body["error"] != "Authentication required" {
			t.Errorf("%s %s error = %q", tc.method, tc.path, body["error"])
		}
	}
}

func TestRoutes_SecretaryGate(t *testing.T) {
	f := newTestRouter()

	cases := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodPut, "/update_ticket", `{"ticketId":"x","status":"Resolved"}`},
		{http.MethodGet, "/get_all_tickets", ""},
		{http.MethodGet, "/get_all_users", ""},
		{http.MethodDelete, "/delete_user?userId=user-1", ""},
		{http.MethodPost, "/create_resource", `{"title":"t","description":"d","type":"link"}`},
		{http.MethodDelete, "/delete_resource?resourceId=x", ""},
	}
	for _, tc := range cases {
		w := f.do(tc.method, tc.path, tc.body, "user-token")
		if w.Code != http.StatusForbidden {
			t.Errorf("%s %s as user = %d, want 403", tc.method, tc.path, w.Code)
		}
		var body map[string]string
		json.Unmarshal(w.Body.Bytes(), &body)
		if body["error"] != "Secretary permission required" {
			t.Errorf("%s %s error = %q", tc.method, tc.path, body["error"])
		}
	}
}

func TestRoutes_SecretaryAllowed(t *testing.T) {
	f := newTestRouter()

	if w := f.do(http.MethodGet, "/get_all_tickets", "", "secretary-token"); w.Code != http.StatusOK {
		t.Errorf("GET /get_all_tickets as secretary = %d, want 200", w.Code)
	}

	body := `{"ticketId":"` + f.ticketID.Hex() + `","status":"Resolved"}`
	if w := f.do(http.MethodPut, "/update_ticket", body, "secretary-token"); w.Code != http.StatusOK {
		t.Errorf("PUT /update_ticket as secretary = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
}

func TestRoutes_AuthenticatedUserAccess(t *testing.T) {
	f := newTestRouter()

	if w := f.do(http.MethodGet, "/get_user_tickets", "", "user-token"); w.Code != http.StatusOK {
		t.Errorf("GET /get_user_tickets as user = %d, want 200", w.Code)
	}
	if w := f.do(http.MethodGet, "/get_ticket?ticketId="+f.ticketID.Hex(), "", "user-token"); w.Code != http.StatusOK {
		t.Errorf("GET /get_ticket as owner = %d, want 200", w.Code)
	}
}

func TestRoutes_CheckAuth(t *testing.T) {
	f := newTestRouter()

	w := f.do(http.MethodGet, "/check_auth", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("GET /check_auth without session = %d, want 401", w.Code)
	}

	w = f.do(http.MethodGet, "/check_auth", "", "user-token")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /check_auth with session = %d, want 200", w.Code)
	}
	var body struct {
		IsAuthenticated bool   `json:"isAuthenticated"`
		UserID          string `json:"userId"`
		Role            string `json:"role"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.IsAuthenticated || body.UserID != "user-1" || body.Role != "user" {
		t.Errorf("check_auth body = %+v", body)
	}
}
