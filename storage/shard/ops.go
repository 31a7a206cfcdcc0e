package shard

import (
	"os"
	"path/filepath"

	"github.com/meppu/eight/errs"
)

// Write stores content at the leaf file path, creating any missing
// intermediate directories first.
func Write(path, content string) error {
	dir := filepath.Dir(path)

	if ok, err := Exists(dir); err != nil {
		return err
	} else if !ok {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errs.New(errs.CreateDirFail)
		}
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errs.New(errs.FileWriteFail)
	}
	return nil
}

// Read returns the contents of the leaf file at path.
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errs.New(errs.FileReadFail)
	}
	return string(data), nil
}

// Delete removes the leaf file at path.
func Delete(path string) error {
	if err := os.Remove(path); err != nil {
		return errs.New(errs.FileRemoveFail)
	}
	return nil
}

// Exists reports whether path is present, without treating a missing
// path as an error.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errs.New(errs.CheckExistsFail)
}

// Flush recursively removes root, leaving it usable for subsequent writes.
func Flush(root string) error {
	if err := os.RemoveAll(root); err != nil {
		return errs.New(errs.DirRemoveFail)
	}
	return nil
}
