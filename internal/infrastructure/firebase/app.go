// Package firebase adapts the Firebase Admin SDK to the store gateway and
// the authentication provider.
package firebase

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// NewApp initializes the Admin SDK. An empty credentials path falls back to
// Application Default Credentials.
func NewApp(ctx context.Context, credentialsFile, databaseURL, projectID string) (*firebase.App, error) {
	cfg := &firebase.Config{DatabaseURL: databaseURL, ProjectID: projectID}
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase init: %w", err)
	}
	return app, nil
}
