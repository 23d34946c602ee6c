// internal/app/store/sessions/store.go
package sessions

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Revocation reasons.
const (
	RevokedByLogout = "logout"
	RevokedByAdmin  = "admin"
	RevokedExpired  = "expired"
)

// Session is the server-side record behind a session cookie. Records are
// written by the login/registration system; this service only verifies,
// revokes, and sweeps them.
type Session struct {
	ID        string     `bson:"_id"`
	UserID    string     `bson:"user_id"`
	CreatedAt time.Time  `bson:"created_at"`
	ExpiresAt time.Time  `bson:"expires_at"`
	RevokedAt *time.Time `bson:"revoked_at,omitempty"`
	Reason    string     `bson:"revoke_reason,omitempty"`

	// Context
	IP        string `bson:"ip,omitempty"`
	UserAgent string `bson:"user_agent,omitempty"`
}

// Store manages server-side session records.
type Store struct {
	c *mongo.Collection
}

// New creates a new sessions Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("sessions")}
}

// EnsureIndexes creates necessary indexes for efficient querying.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		// Verification is a point lookup on _id; the extra indexes serve
		// the sweeper and per-user revocation.
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("idx_sessions_expiry"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_sessions_user"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Verify reports whether the session record is live: present, not revoked,
// and not expired. An unknown ID is (false, nil), not an error; only
// infrastructure failures surface as errors.
func (s *Store) Verify(ctx context.Context, sessionID string) (bool, error) {
	var sess Session
	err := s.c.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&sess)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if sess.RevokedAt != nil {
		return false, nil
	}
	if !sess.ExpiresAt.IsZero() && time.Now().UTC().After(sess.ExpiresAt) {
		return false, nil
	}
	return true, nil
}

// Revoke marks a session dead with the given reason. Idempotent: revoking
// an already-revoked or unknown session is not an error.
func (s *Store) Revoke(ctx context.Context, sessionID, reason string) error {
	now := time.Now().UTC()
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": sessionID, "revoked_at": nil},
		bson.M{"$set": bson.M{
			"revoked_at":    now,
			"revoke_reason": reason,
		}},
	)
	return err
}

// RevokeAllForUser kills every live session for a user (admin action,
// password change, etc.). Returns the number of sessions revoked.
func (s *Store) RevokeAllForUser(ctx context.Context, userID, reason string) (int64, error) {
	now := time.Now().UTC()
	res, err := s.c.UpdateMany(ctx,
		bson.M{"user_id": userID, "revoked_at": nil},
		bson.M{"$set": bson.M{
			"revoked_at":    now,
			"revoke_reason": reason,
		}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// SweepExpired deletes records whose expiry is older than the retention
// cutoff. Called by the background sweeper; keeps the collection from
// growing without bound.
func (s *Store) SweepExpired(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retention)
	res, err := s.c.DeleteMany(ctx, bson.M{
		"expires_at": bson.M{"$lt": cutoff},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
