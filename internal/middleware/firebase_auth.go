package middleware

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"
	"github.com/google/uuid"
)

// IDTokenVerifier is the part of *auth.Client used to check Firebase ID tokens.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseVerifier accepts Firebase ID tokens carrying an "account_id"
// custom claim, set when the account is linked to its Firebase user.
type FirebaseVerifier struct {
	client IDTokenVerifier
}

func NewFirebaseVerifier(client IDTokenVerifier) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (uuid.UUID, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return uuid.Nil, fmt.Errorf("verify ID token: %w", err)
	}

	raw, ok := token.Claims["account_id"].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("firebase user %s has no account_id claim", token.UID)
	}
	return uuid.Parse(raw)
}
