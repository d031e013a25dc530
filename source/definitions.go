package source

import (
	"workbenchpatchi/helpers"

	"os"
	"time"
)

const (
	FILE_CONNECTOR    = "FILE_CONNECTOR"
	DRY_RUN_CONNECTOR = "DRY_RUN_CONNECTOR"

	BACKUP_SUFFIX           = ".backup_"
	BACKUP_TIMESTAMP_FORMAT = "20060102_150405"
)

// SourceConnector owns the bundle on disk: it is read once, optionally
// backed up, and written once.
type SourceConnector interface {
	Path() string
	GetSourceText() (string, error)
	Backup() (string, error)
	WriteTargetText(string) error
}

func NewSourceConnector(source_connector_type string, file_path string) (SourceConnector, error) {
	info, err := os.Stat(file_path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, helpers.WrapError(helpers.ErrFileNotFound, "%s", file_path)
		}
		return nil, helpers.WrapError(helpers.ErrIOFailure, "unable to stat %s: %s", file_path, err)
	}
	if info.IsDir() {
		return nil, helpers.WrapError(helpers.ErrFileNotFound, "%s is a directory", file_path)
	}
	if source_connector_type == DRY_RUN_CONNECTOR {
		return (&dryRunConnector{path: file_path}), nil
	}
	return (&fileConnector{path: file_path, now: time.Now}), nil
}

func BackupPath(file_path string, at time.Time) string {
	return file_path + BACKUP_SUFFIX + at.Format(BACKUP_TIMESTAMP_FORMAT)
}
