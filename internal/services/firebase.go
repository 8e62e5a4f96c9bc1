package services

import (
	"context"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// InitFirebase initializes the Firebase Admin SDK and returns the auth
// client and the Firestore client backing all application collections
func InitFirebase(ctx context.Context, credPath string) (*auth.Client, *firestore.Client, error) {
	opt := option.WithCredentialsFile(credPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, nil, err
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, nil, err
	}

	fsClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, nil, err
	}

	return authClient, fsClient, nil
}
