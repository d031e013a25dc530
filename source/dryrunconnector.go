package source

import (
	"workbenchpatchi/helpers"

	"os"

	humanize "github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
)

// dryRunConnector reads the real file but never touches the disk afterwards.
type dryRunConnector struct {
	path    string
	written string
}

func (drc *dryRunConnector) Path() string {
	return drc.path
}

func (drc *dryRunConnector) GetSourceText() (string, error) {
	data, err := os.ReadFile(drc.path)
	if err != nil {
		return "", helpers.WrapError(helpers.ErrIOFailure, "unable to read %s: %s", drc.path, err)
	}
	return string(data), nil
}

func (drc *dryRunConnector) Backup() (string, error) {
	log.Infof("Dry run: no backup of %s created", drc.path)
	return "", nil
}

func (drc *dryRunConnector) WriteTargetText(text string) error {
	drc.written = text
	log.Infof("Dry run: would write %s to %s", humanize.Bytes(uint64(len(text))), drc.path)
	return nil
}
