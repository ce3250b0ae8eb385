package lve

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// rename is swapped out by tests to simulate a failing filesystem.
var rename = os.Rename

type stagedFile struct {
	target    string
	data      []byte
	temp      string
	backup    string
	committed bool
}

// transaction replaces a set of files together. Each file is first written
// to a temp file beside its target; commit then moves existing targets aside
// and renames the temps into place in the order they were added.
type transaction struct {
	files []*stagedFile
}

func (tx *transaction) add(target string, data []byte) {
	tx.files = append(tx.files, &stagedFile{target: target, data: data})
}

func (tx *transaction) commit() error {
	for _, f := range tx.files {
		if err := f.stage(); err != nil {
			return errors.Join(err, tx.rollback())
		}
	}
	for _, f := range tx.files {
		if err := f.swap(); err != nil {
			return errors.Join(err, tx.rollback())
		}
	}
	for _, f := range tx.files {
		if f.backup != "" {
			os.Remove(f.backup)
		}
	}
	return nil
}

func (f *stagedFile) stage() error {
	dir := filepath.Dir(f.target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.target)+".*.tmp")
	if err != nil {
		return err
	}
	f.temp = tmp.Name()
	if _, err := tmp.Write(f.data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	return tmp.Close()
}

func (f *stagedFile) swap() error {
	if _, err := os.Lstat(f.target); err == nil {
		f.backup = f.temp + ".bak"
		if err := rename(f.target, f.backup); err != nil {
			f.backup = ""
			return err
		}
	}
	if err := rename(f.temp, f.target); err != nil {
		return err
	}
	f.temp = ""
	f.committed = true
	return nil
}

// rollback undoes every swap in reverse order and removes leftover temps.
func (tx *transaction) rollback() error {
	var errs []error
	for i := len(tx.files) - 1; i >= 0; i-- {
		f := tx.files[i]
		if f.committed {
			if err := os.Remove(f.target); err != nil && !os.IsNotExist(err) {
				errs = append(errs, err)
			}
		}
		if f.backup != "" {
			if err := os.Rename(f.backup, f.target); err != nil {
				errs = append(errs, fmt.Errorf("restore %s: %w", f.target, err))
			}
		}
		if f.temp != "" {
			os.Remove(f.temp)
		}
	}
	return errors.Join(errs...)
}
