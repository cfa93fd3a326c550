package firebase

import (
	"context"
	"fmt"
	"strings"

	fb "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// Config identifies the Firebase project the console talks to.
type Config struct {
	ProjectID       string
	CredentialsFile string
	StorageBucket   string
}

// NewApp initialises a Firebase Admin app. Without a credentials file the
// application default credentials are used.
func NewApp(ctx context.Context, cfg Config) (*fb.App, error) {
	appCfg := &fb.Config{
		ProjectID:     strings.TrimSpace(cfg.ProjectID),
		StorageBucket: strings.TrimSpace(cfg.StorageBucket),
	}
	var opts []option.ClientOption
	if path := strings.TrimSpace(cfg.CredentialsFile); path != "" {
		opts = append(opts, option.WithCredentialsFile(path))
	}
	app, err := fb.NewApp(ctx, appCfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	return app, nil
}
