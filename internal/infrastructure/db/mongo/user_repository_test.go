package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/innsight/hotel-admin/internal/core/domain"
)

func TestSearchFilter_Empty(t *testing.T) {
	if f := searchFilter(""); len(f) != 0 {
		t.Fatalf("expected empty filter, got %v", f)
	}
}

func TestSearchFilter_EscapesAndIgnoresCase(t *testing.T) {
	f := searchFilter("a+b@hotel.test")

	or, ok := f["$or"].(bson.A)
	if !ok || len(or) != 2 {
		t.Fatalf("expected $or over two fields, got %v", f)
	}
	email := or[0].(bson.M)["email"].(primitive.Regex)
	if email.Pattern != `a\+b@hotel\.test` {
		t.Fatalf("pattern not escaped: %s", email.Pattern)
	}
	if email.Options != "i" {
		t.Fatalf("expected case-insensitive match, got %q", email.Options)
	}
	if _, ok := or[1].(bson.M)["name"]; !ok {
		t.Fatalf("expected name clause, got %v", or[1])
	}
}

func TestMongoUser_ToDomain(t *testing.T) {
	oid := primitive.NewObjectID()
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))

	u := (&mongoUser{ID: oid, Email: "a@hotel.test", Role: "ADMIN", PasswordHash: "h", CreatedAt: created}).toDomain()
	if u.ID != oid.Hex() || u.Role != domain.RoleAdmin || u.PasswordHash != "h" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if u.CreatedAt.Location() != time.UTC {
		t.Fatalf("expected UTC timestamp, got %v", u.CreatedAt.Location())
	}
}

func TestUserRepository_MalformedIDIsNotFound(t *testing.T) {
	r := &UserRepository{}
	ctx := context.Background()

	if _, err := r.FindByID(ctx, "not-hex"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if err := r.Update(ctx, "not-hex", domain.UserPatch{}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if err := r.Delete(ctx, "not-hex"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
