package network

import (
	"context"

	"github.com/dd0wney/cluso-genenet/pkg/biopart"
	"github.com/dd0wney/cluso-genenet/pkg/logging"
	"github.com/dd0wney/cluso-genenet/pkg/parallel"
)

// CompileAll compiles devices on a pool of workers and returns the models in
// input order. Parts are only read, so devices may share them.
func (c *Compiler) CompileAll(ctx context.Context, devices []*biopart.Device, workers int) ([]*Model, error) {
	timer := logging.StartTimer(c.logger, "models compiled",
		logging.Component("network"),
		logging.Int("workers", workers),
	)
	models, err := parallel.Map(ctx, workers, devices, func(_ context.Context, d *biopart.Device) (*Model, error) {
		return c.Compile(d), nil
	}, parallel.WithLogger(c.logger))
	if err != nil {
		timer.EndError(err, logging.Count(len(devices)))
		return models, err
	}
	timer.End(logging.Count(len(models)))
	return models, nil
}
