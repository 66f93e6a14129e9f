package retention

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/ngoyal/autofileversion/internal/config"
)

// Schedule registers pruning of all folders on the given cron expression and
// starts the scheduler. Callers stop it via the returned cron.Cron.
func (e *Engine) Schedule(spec string, folders []config.FolderConfig) (*cron.Cron, error) {
	c := cron.New()

	if _, err := c.AddFunc(spec, func() { e.ApplyAll(folders) }); err != nil {
		return nil, fmt.Errorf("invalid retention schedule %q: %w", spec, err)
	}

	c.Start()
	return c, nil
}
