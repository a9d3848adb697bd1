package services

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"quickbite/entity"
	"quickbite/notifications"
	"quickbite/pkg/apperr"
	"quickbite/pkg/gateway"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Each pooled connection to a ":memory:" database gets its own empty
	// database, so transactions would not see the migrated tables. The
	// services also read through the pool while a transaction holds write
	// locks, which shared-cache memory DBs reject. A WAL-mode file in the
	// test's temp dir supports both.
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", filepath.Join(t.TempDir(), "test.db"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = db.AutoMigrate(
		&entity.User{},
		&entity.Address{},
		&entity.Restaurant{},
		&entity.MenuItem{},
		&entity.Cart{},
		&entity.CartItem{},
		&entity.Order{},
		&entity.OrderItem{},
		&entity.Payment{},
		&entity.Review{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// testFixtures bundles the rows most service tests need.
type testFixtures struct {
	db   *gorm.DB
	user *entity.User
	rest *entity.Restaurant
	addr *entity.Address
}

// recordingSender captures outgoing mail so tests can assert on
// notification side effects without SMTP.
type recordingSender struct {
	mu   sync.Mutex
	sent []sentMail
}

type sentMail struct {
	To      string
	Subject string
}

func (r *recordingSender) Send(to, subject, text, html string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sentMail{To: to, Subject: subject})
	return nil
}

func (r *recordingSender) countSubject(substr string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.sent {
		if strings.Contains(m.Subject, substr) {
			n++
		}
	}
	return n
}

// fakeGateway is a scripted Gateway. Zero value verifies every signature
// equal to "valid" and answers with whatever the fields hold.
type fakeGateway struct {
	mu sync.Mutex

	intentStatus string
	lastMetadata map[string]string
	createCalls  int
	refundCalls  int
	verifyEvent  *gateway.Event
}

func (f *fakeGateway) CreateIntent(amount int64, currency string, metadata map[string]string) (*gateway.Intent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	f.lastMetadata = metadata
	return &gateway.Intent{
		ID:           fmt.Sprintf("pi_test_%d", f.createCalls),
		ClientSecret: "cs_test_secret",
		Status:       "requires_payment_method",
		Amount:       amount,
		Currency:     currency,
		Metadata:     metadata,
	}, nil
}

func (f *fakeGateway) VerifySignature(payload []byte, signature string) (*gateway.Event, error) {
	if signature != "valid" {
		return nil, apperr.InvalidSignature("webhook signature verification failed")
	}
	return f.verifyEvent, nil
}

func (f *fakeGateway) RetrieveIntent(id string) (*gateway.Intent, error) {
	status := f.intentStatus
	if status == "" {
		status = gateway.IntentSucceeded
	}
	return &gateway.Intent{ID: id, Status: status, Amount: 5000, Currency: "inr"}, nil
}

func (f *fakeGateway) CreateRefund(intentID string) (*gateway.Refund, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refundCalls++
	return &gateway.Refund{ID: "re_test_1", Amount: 5000, Currency: "inr"}, nil
}

func newTestNotify(sender *recordingSender) *notifications.Service {
	return notifications.NewService(sender, zap.NewNop())
}

// seedUser inserts a user directly; password hashing is exercised by the
// auth tests, not by fixtures.
func seedUser(t *testing.T, db *gorm.DB, email, role string) *entity.User {
	t.Helper()
	u := &entity.User{Email: email, Password: "x", Name: "Test User", Role: role}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedAddress(t *testing.T, db *gorm.DB, userID uint) *entity.Address {
	t.Helper()
	a := &entity.Address{UserID: userID, Label: "Home", Street: "1 Test St", City: "Pune", Country: "IN", ZipCode: "411001"}
	if err := db.Create(a).Error; err != nil {
		t.Fatalf("seed address: %v", err)
	}
	return a
}

// seedRestaurant creates an open restaurant with an owner and two menu
// items priced 25000 and 12000 minor units.
func seedRestaurant(t *testing.T, db *gorm.DB, name string) *entity.Restaurant {
	t.Helper()
	owner := seedUser(t, db, name+"-owner@example.com", entity.RoleRestaurantOwner)
	r := &entity.Restaurant{
		Name:         name,
		CuisineTypes: "indian",
		IsOpen:       true,
		OwnerID:      owner.ID,
		Menu: []entity.MenuItem{
			{Name: "Butter Chicken", Price: 25000, Category: "mains"},
			{Name: "Garlic Naan", Price: 12000, Category: "breads"},
		},
	}
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("seed restaurant: %v", err)
	}
	return r
}
