package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/orgsite/cms-backend/internal/core/domain"
)

const adminCollection = "admins"

// Index names referenced when translating duplicate-key errors.
const (
	idxUniqueEmail      = "uniq_email"
	idxSingleSuperadmin = "uniq_superadmin_role"
)

// AdminRepository persists admin accounts in MongoDB. The single-superadmin
// invariant lives here as a partial unique index, not as application code:
// concurrent superadmin inserts race past any count check, the index does not.
type AdminRepository struct {
	coll *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{coll: db.Collection(adminCollection)}
}

type adminDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	RefreshToken string             `bson:"refresh_token,omitempty"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

func (d *adminDoc) toDomain() *domain.Admin {
	return &domain.Admin{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         domain.Role(d.Role),
		RefreshToken: d.RefreshToken,
		CreatedAt:    unixToTime(d.CreatedAt),
		UpdatedAt:    unixToTime(d.UpdatedAt),
	}
}

// EnsureIndexes creates the indexes the repository's guarantees rest on:
// a unique index on email and a unique index on role restricted to
// superadmin documents.
func (r *AdminRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(idxUniqueEmail),
		},
		{
			Keys: bson.D{{Key: "role", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName(idxSingleSuperadmin).
				SetPartialFilterExpression(bson.M{"role": string(domain.RoleSuperadmin)}),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *AdminRepository) Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error) {
	now := time.Now().UTC()
	doc := adminDoc{
		Email:        admin.Email,
		PasswordHash: admin.PasswordHash,
		Role:         string(admin.Role),
		CreatedAt:    now.Unix(),
		UpdatedAt:    now.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if strings.Contains(err.Error(), idxSingleSuperadmin) {
				return nil, domain.ErrSuperadminExists
			}
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert admin: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert admin: unexpected inserted id type %T", res.InsertedID)
	}
	doc.ID = oid
	return doc.toDomain(), nil
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	var doc adminDoc
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, fmt.Errorf("find admin by email: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AdminRepository) FindByID(ctx context.Context, id string) (*domain.Admin, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAdminNotFound
	}

	var doc adminDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, fmt.Errorf("find admin by id: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AdminRepository) List(ctx context.Context) ([]*domain.Admin, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Admin
	for cur.Next(ctx) {
		var doc adminDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode admin: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *AdminRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAdminNotFound
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"password_hash": passwordHash,
		"updated_at":    time.Now().UTC().Unix(),
	}})
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAdminNotFound
	}
	return nil
}

// SetRefreshToken overwrites the single session slot; an empty token removes
// the field entirely.
func (r *AdminRepository) SetRefreshToken(ctx context.Context, id, token string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAdminNotFound
	}

	update := bson.M{"$set": bson.M{
		"refresh_token": token,
		"updated_at":    time.Now().UTC().Unix(),
	}}
	if token == "" {
		update = bson.M{
			"$unset": bson.M{"refresh_token": ""},
			"$set":   bson.M{"updated_at": time.Now().UTC().Unix()},
		}
	}

	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("set refresh token: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAdminNotFound
	}
	return nil
}

// Delete removes a non-superadmin record. The role filter makes the check
// and the delete a single document operation, so there is no window in which
// a concurrent promotion could slip a superadmin past it.
func (r *AdminRepository) Delete(ctx context.Context, id string) (*domain.Admin, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAdminNotFound
	}

	var doc adminDoc
	err = r.coll.FindOneAndDelete(ctx, bson.M{
		"_id":  oid,
		"role": bson.M{"$ne": string(domain.RoleSuperadmin)},
	}).Decode(&doc)
	if err == nil {
		return doc.toDomain(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("delete admin: %w", err)
	}

	// Distinguish "absent" from "present but superadmin".
	n, countErr := r.coll.CountDocuments(ctx, bson.M{"_id": oid})
	if countErr != nil {
		return nil, fmt.Errorf("delete admin: %w", countErr)
	}
	if n > 0 {
		return nil, domain.ErrSuperadminDelete
	}
	return nil, domain.ErrAdminNotFound
}

// TransferSuperadmin promotes targetID and removes the outgoing superadmin
// as one multi-document transaction. The delete runs first so the partial
// unique index never sees two superadmin documents, even transiently inside
// the transaction. Any failure aborts the whole transaction and both records
// keep their prior state.
func (r *AdminRepository) TransferSuperadmin(ctx context.Context, callerID, targetID string) (*domain.Admin, error) {
	callerOID, err := primitive.ObjectIDFromHex(callerID)
	if err != nil {
		return nil, domain.ErrAdminNotFound
	}
	targetOID, err := primitive.ObjectIDFromHex(targetID)
	if err != nil {
		return nil, domain.ErrAdminNotFound
	}

	sess, err := r.coll.Database().Client().StartSession()
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	result, err := sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := r.coll.DeleteOne(sc, bson.M{
			"_id":  callerOID,
			"role": string(domain.RoleSuperadmin),
		})
		if err != nil {
			return nil, err
		}
		if res.DeletedCount == 0 {
			return nil, domain.ErrAdminNotFound
		}

		var doc adminDoc
		err = r.coll.FindOneAndUpdate(sc,
			bson.M{"_id": targetOID},
			bson.M{"$set": bson.M{
				"role":       string(domain.RoleSuperadmin),
				"updated_at": time.Now().UTC().Unix(),
			}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&doc)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, domain.ErrAdminNotFound
			}
			return nil, err
		}
		return doc.toDomain(), nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("transfer superadmin: %w", err)
	}

	return result.(*domain.Admin), nil
}

func (r *AdminRepository) CountSuperadmins(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"role": string(domain.RoleSuperadmin)})
	if err != nil {
		return 0, fmt.Errorf("count superadmins: %w", err)
	}
	return n, nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
