package google

import (
	"context"
	"fmt"

	"cloud.google.com/go/auth/credentials"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/driveactivity/v2"
	"google.golang.org/api/option"
)

type ClientConfig struct {
	CredentialsJSON    string
	ImpersonateSubject string
}

func clientOptions(cfg ClientConfig) ([]option.ClientOption, error) {
	creds, err := credentials.DetectDefault(&credentials.DetectOptions{
		CredentialsJSON: []byte(cfg.CredentialsJSON),
		Scopes: []string{
			drive.DriveMetadataReadonlyScope,
			driveactivity.DriveActivityReadonlyScope,
		},
		Subject: cfg.ImpersonateSubject,
	})
	if err != nil {
		return nil, fmt.Errorf("detect credentials: %w", err)
	}
	return []option.ClientOption{option.WithAuthCredentials(creds)}, nil
}

func NewDriveService(ctx context.Context, cfg ClientConfig) (*drive.Service, error) {
	opts, err := clientOptions(cfg)
	if err != nil {
		return nil, err
	}
	return drive.NewService(ctx, opts...)
}

func NewDriveActivityService(ctx context.Context, cfg ClientConfig) (*driveactivity.Service, error) {
	opts, err := clientOptions(cfg)
	if err != nil {
		return nil, err
	}
	return driveactivity.NewService(ctx, opts...)
}
