package source

import (
	"workbenchpatchi/helpers"

	"io"
	"os"
	"time"

	humanize "github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
)

type fileConnector struct {
	path string
	now  func() time.Time
}

func (fc *fileConnector) Path() string {
	return fc.path
}

func (fc *fileConnector) GetSourceText() (string, error) {
	data, err := os.ReadFile(fc.path)
	if err != nil {
		return "", helpers.WrapError(helpers.ErrIOFailure, "unable to read %s: %s", fc.path, err)
	}
	log.Debugf("Read %s from %s", humanize.Bytes(uint64(len(data))), fc.path)
	return string(data), nil
}

// Backup copies the file next to itself, keeping its mode and modification time.
func (fc *fileConnector) Backup() (string, error) {
	backup_path := BackupPath(fc.path, fc.now())
	info, err := os.Stat(fc.path)
	if err != nil {
		return "", helpers.WrapError(helpers.ErrIOFailure, "unable to stat %s: %s", fc.path, err)
	}
	src_fh, err := os.Open(fc.path)
	if err != nil {
		return "", helpers.WrapError(helpers.ErrIOFailure, "unable to open %s for backup: %s", fc.path, err)
	}
	defer src_fh.Close()
	dst_fh, err := os.OpenFile(backup_path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return "", helpers.WrapError(helpers.ErrIOFailure, "unable to create backup %s: %s", backup_path, err)
	}
	_, err = io.Copy(dst_fh, src_fh)
	if close_err := dst_fh.Close(); err == nil {
		err = close_err
	}
	if err != nil {
		return "", helpers.WrapError(helpers.ErrIOFailure, "unable to write backup %s: %s", backup_path, err)
	}
	err = os.Chtimes(backup_path, info.ModTime(), info.ModTime())
	if err != nil {
		return "", helpers.WrapError(helpers.ErrIOFailure, "unable to set times on backup %s: %s", backup_path, err)
	}
	return backup_path, nil
}

func (fc *fileConnector) WriteTargetText(text string) error {
	info, err := os.Stat(fc.path)
	if err != nil {
		return helpers.WrapError(helpers.ErrIOFailure, "unable to stat %s: %s", fc.path, err)
	}
	err = os.WriteFile(fc.path, []byte(text), info.Mode().Perm())
	if err != nil {
		return helpers.WrapError(helpers.ErrIOFailure, "unable to write %s: %s", fc.path, err)
	}
	log.Debugf("Wrote %s to %s", humanize.Bytes(uint64(len(text))), fc.path)
	return nil
}
