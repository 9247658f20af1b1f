package report

import (
	"context"
	"time"
)

// BuildAndPublish bounds only the build with buildTimeout. Publishing gets a
// fresh deadline detached from ctx so that a report cut short by the build
// deadline still reaches the sinks.
func BuildAndPublish(ctx context.Context, b *Builder, p *Publisher, params Params, buildTimeout, publishTimeout time.Duration) (*Report, error) {
	buildCtx, cancelBuild := context.WithTimeout(ctx, buildTimeout)
	rep, err := b.Build(buildCtx, params)
	cancelBuild()
	if err != nil {
		return nil, err
	}

	publishCtx, cancelPublish := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancelPublish()
	return rep, p.Publish(publishCtx, rep)
}
