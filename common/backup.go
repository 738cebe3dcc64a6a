package common

import (
	"fmt"
	"os"
)

// WriteFileWithBackup replaces the file at path, keeping the previous content
// recoverable: an existing file is first renamed to path.bak, and restored
// when the write fails. A successful write leaves the .bak in place as a
// recovery point.
func WriteFileWithBackup(path string, data []byte) error {
	backedUp := false
	if _, err := os.Stat(path); err == nil {
		if err := os.Rename(path, path+".bak"); err != nil {
			return fmt.Errorf("cannot overwrite file %q: %w", path, err)
		}
		backedUp = true
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		if backedUp {
			if restoreErr := os.Rename(path+".bak", path); restoreErr != nil {
				return fmt.Errorf("cannot write file %q (backup not restored: %s): %w", path, restoreErr, err)
			}
		}
		return fmt.Errorf("cannot write file %q: %w", path, err)
	}
	return nil
}
