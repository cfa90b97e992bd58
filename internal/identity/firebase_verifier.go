package identity

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"fiberise-be/internal/config"
)

// FirebaseVerifier validates Firebase phone-auth ID tokens via the Admin SDK.
type FirebaseVerifier struct {
	client *auth.Client
}

func NewFirebaseVerifier(ctx context.Context, cfg config.FirebaseConfig) (*FirebaseVerifier, error) {
	opt, err := credentialOption(cfg)
	if err != nil {
		return nil, err
	}

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, err
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}

	return &FirebaseVerifier{client: client}, nil
}

// credentialOption resolves the three supported credential sources in the
// same precedence the deployment scripts use: file path, discrete fields,
// inline JSON.
func credentialOption(cfg config.FirebaseConfig) (option.ClientOption, error) {
	if cfg.CredentialsFile != "" {
		return option.WithCredentialsFile(cfg.CredentialsFile), nil
	}

	if cfg.ProjectID != "" && cfg.PrivateKey != "" && cfg.ClientEmail != "" {
		// Env vars carry the key with escaped newlines
		serviceAccount := map[string]string{
			"type":         "service_account",
			"project_id":   cfg.ProjectID,
			"private_key":  strings.ReplaceAll(cfg.PrivateKey, `\n`, "\n"),
			"client_email": cfg.ClientEmail,
		}
		raw, err := json.Marshal(serviceAccount)
		if err != nil {
			return nil, err
		}
		return option.WithCredentialsJSON(raw), nil
	}

	if cfg.CredentialsJSON != "" {
		return option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)), nil
	}

	return nil, errors.New("firebase credentials missing: set FIREBASE_SERVICE_ACCOUNT_PATH, FIREBASE_PROJECT_ID/FIREBASE_PRIVATE_KEY/FIREBASE_CLIENT_EMAIL, or FIREBASE_SERVICE_ACCOUNT")
}

func (v *FirebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (*Token, error) {
	decoded, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}

	phone, _ := decoded.Claims["phone_number"].(string)
	return &Token{
		UID:         decoded.UID,
		PhoneNumber: phone,
	}, nil
}
