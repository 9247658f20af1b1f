package google

import (
	"context"
	"fmt"

	"github.com/foxseedlab/edittime/internal/activity"
	"github.com/foxseedlab/edittime/internal/config"
	"github.com/foxseedlab/edittime/internal/document"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (document.Source, error) {
		c := do.MustInvoke[*config.Config](i)
		svc, err := NewDriveService(context.Background(), clientConfig(c))
		if err != nil {
			return nil, fmt.Errorf("failed to create drive client: %w", err)
		}
		return NewDriveDocumentSource(svc, c.DriveOrderBy), nil
	})
	do.Provide(injector, func(i do.Injector) (activity.Source, error) {
		c := do.MustInvoke[*config.Config](i)
		svc, err := NewDriveActivityService(context.Background(), clientConfig(c))
		if err != nil {
			return nil, fmt.Errorf("failed to create drive activity client: %w", err)
		}
		return NewDriveActivitySource(svc), nil
	})
}

func clientConfig(c *config.Config) ClientConfig {
	return ClientConfig{
		CredentialsJSON:    c.GoogleCredentialsJSON,
		ImpersonateSubject: c.GoogleImpersonateSubject,
	}
}
