package doctor

import (
	"context"

	"github.com/colonyops/tend/internal/core/config"
)

// ConfigCheck turns configuration warnings into check items.
type ConfigCheck struct {
	cfg        *config.Config
	configPath string
}

// NewConfigCheck creates a config check.
func NewConfigCheck(cfg *config.Config, configPath string) *ConfigCheck {
	return &ConfigCheck{cfg: cfg, configPath: configPath}
}

func (c *ConfigCheck) Name() string {
	return "Configuration"
}

func (c *ConfigCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	if err := c.cfg.ValidateDeep(c.configPath); err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:   "config",
			Status:  StatusFail,
			Detail:  err.Error(),
			Fixable: true,
			Fix:     "tend config validate",
		})
	} else {
		result.Items = append(result.Items, CheckItem{
			Label:  "config",
			Status: StatusPass,
			Detail: string(c.cfg.Storage.Backend) + " backend, profile " + c.cfg.Storage.Profile,
		})
	}

	for _, w := range c.cfg.Warnings() {
		label := w.Category
		if w.Item != "" {
			label += "." + w.Item
		}
		result.Items = append(result.Items, CheckItem{
			Label:  label,
			Status: StatusWarn,
			Detail: w.Message,
		})
	}

	return result
}
