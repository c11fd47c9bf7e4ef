package identity

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 11

type credential struct {
	UID          string    `bson:"_id"`
	Email        string    `bson:"email"`
	PasswordHash []byte    `bson:"passwordHash"`
	DisplayName  string    `bson:"displayName"`
	CreatedAt    time.Time `bson:"createdAt"`
}

// MongoProvider stores credentials in the "credentials" collection and
// signs HS256 session tokens.
type MongoProvider struct {
	creds  *mongo.Collection
	secret []byte
}

func NewMongoProvider(db *mongo.Database, secret string) *MongoProvider {
	return &MongoProvider{
		creds:  db.Collection("credentials"),
		secret: []byte(secret),
	}
}

func (p *MongoProvider) Register(ctx context.Context, email, password, displayName string) (string, error) {
	err := p.creds.FindOne(ctx, bson.M{"email": email}).Err()
	if err == nil {
		return "", ErrAlreadyExists
	}
	if err != mongo.ErrNoDocuments {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}

	cred := credential{
		UID:          uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		DisplayName:  displayName,
		CreatedAt:    time.Now(),
	}
	if _, err := p.creds.InsertOne(ctx, cred); err != nil {
		return "", err
	}
	return cred.UID, nil
}

func (p *MongoProvider) LookupByEmail(ctx context.Context, email string) (string, error) {
	var cred credential
	err := p.creds.FindOne(ctx, bson.M{"email": email}).Decode(&cred)
	if err == mongo.ErrNoDocuments {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return cred.UID, nil
}

func (p *MongoProvider) VerifyPassword(ctx context.Context, email, password string) (string, error) {
	var cred credential
	err := p.creds.FindOne(ctx, bson.M{"email": email}).Decode(&cred)
	if err == mongo.ErrNoDocuments {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}

	if bcrypt.CompareHashAndPassword(cred.PasswordHash, []byte(password)) != nil {
		return "", ErrInvalidCredential
	}
	return cred.UID, nil
}

func (p *MongoProvider) VerifyToken(ctx context.Context, token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidCredential
		}
		return p.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidCredential
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidCredential
	}
	uid, ok := claims["uid"].(string)
	if !ok || uid == "" {
		return "", ErrInvalidCredential
	}
	return uid, nil
}

func (p *MongoProvider) IssueToken(uid string) (string, error) {
	claims := jwt.MapClaims{
		"uid": uid,
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}

func (p *MongoProvider) UpdatePassword(ctx context.Context, uid, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}

	res, err := p.creds.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{"$set": bson.M{"passwordHash": hash}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
