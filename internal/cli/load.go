package cli

import (
	"log/slog"

	"github.com/roach88/scenariocast/internal/config"
	"github.com/roach88/scenariocast/internal/fixture"
)

// loadFixtures reads a configuration file and builds every case fixture.
func loadFixtures(path string, logger *slog.Logger) ([]*fixture.CaseFixture, error) {
	src, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("configuration loaded", "path", path, "keys", len(src.Keys()))

	return fixture.NewRegistry(src, fixture.WithLogger(logger)).Fixtures()
}
