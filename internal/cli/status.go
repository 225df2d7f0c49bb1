package cli

import (
	"fmt"

	"github.com/NikitaCOEUR/cmdsuggest/internal/status"
)

// Status displays the resolved configuration and its commands
func Status(configPath string) error {
	path, cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to collect status data: %w", err)
	}

	fmt.Println(status.Render(status.Collect(path, cfg)))
	return nil
}
