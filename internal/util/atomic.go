// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDirPerm is used for parent directories created by AtomicWriteFile.
const DefaultDirPerm os.FileMode = 0700

// RELIABILITY: Atomic write with fsync prevents data loss on crash
//
// AtomicWriteFile writes data next to path in a temporary file, syncs it,
// applies perm and renames it over path. Readers see either the old file or
// the complete new one. Missing parent directories are created with
// DefaultDirPerm.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	return AtomicWriteFileWithDir(path, data, perm, DefaultDirPerm)
}

// AtomicWriteFileWithDir is AtomicWriteFile with an explicit permission for
// created parent directories.
func AtomicWriteFileWithDir(path string, data []byte, filePerm, dirPerm os.FileMode) (err error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	dir := filepath.Dir(absPath)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	// The temp file must share the target's filesystem for rename to be atomic.
	f, err := os.CreateTemp(dir, "."+filepath.Base(absPath)+".tmp-")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()

	if _, err = f.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", tmp, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp, err)
	}
	if err = os.Chmod(tmp, filePerm); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", tmp, err)
	}
	if err = os.Rename(tmp, absPath); err != nil {
		return fmt.Errorf("failed to replace %s: %w", absPath, err)
	}
	return nil
}
