package report

import (
	"github.com/foxseedlab/edittime/internal/activity"
	"github.com/foxseedlab/edittime/internal/config"
	"github.com/foxseedlab/edittime/internal/discord"
	"github.com/foxseedlab/edittime/internal/document"
	"github.com/foxseedlab/edittime/internal/repository"
	"github.com/foxseedlab/edittime/internal/webhook"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Builder, error) {
		docs := do.MustInvoke[document.Source](i)
		records := do.MustInvoke[activity.Source](i)
		return NewBuilder(docs, records), nil
	})
	do.Provide(injector, func(i do.Injector) (*Publisher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		wh := do.MustInvoke[webhook.Sender](i)
		var dc discord.Client
		if cfg.DiscordEnabled() {
			dc = do.MustInvoke[discord.Client](i)
		}
		var repo repository.Repository
		if cfg.DatabaseURL != "" {
			repo = do.MustInvoke[repository.Repository](i)
		}
		return NewPublisher(cfg, dc, wh, repo), nil
	})
}
