// Package jsonfile persists the ledger snapshot as a single JSON document.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/carson-networks/budget-ledger/internal/storage"
)

const defaultFileMode os.FileMode = 0o644

// Store reads and writes the snapshot file at Path.
type Store struct {
	Path string
}

var _ storage.Store = (*Store)(nil)

// NewStore creates a Store for the file at path.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Load decodes the snapshot file. A missing file yields an empty snapshot.
func (s *Store) Load(ctx context.Context) (*storage.Snapshot, error) {
	content, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return storage.NewSnapshot(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.Path, err)
	}
	return Decode(content)
}

// Save encodes snap and replaces the snapshot file atomically.
func (s *Store) Save(ctx context.Context, snap *storage.Snapshot) error {
	content, err := Encode(snap)
	if err != nil {
		return err
	}
	return writeFileAtomic(s.Path, content)
}

// Decode parses a snapshot document, applying the defaults for missing fields.
func Decode(content []byte) (*storage.Snapshot, error) {
	var doc document
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}

	snap := storage.NewSnapshot()
	for i, rec := range doc.Accounts {
		account, err := rec.toStorage()
		if err != nil {
			return nil, fmt.Errorf("account #%d: %w", i, err)
		}
		snap.Accounts = append(snap.Accounts, account)
	}
	for i, rec := range doc.Transactions {
		transaction, err := rec.toStorage()
		if err != nil {
			return nil, fmt.Errorf("transaction #%d: %w", i, err)
		}
		snap.Transactions = append(snap.Transactions, transaction)
	}
	for key, value := range doc.Settings {
		snap.Settings[key] = value
	}
	return snap, nil
}

// Encode renders snap as an indented UTF-8 JSON document.
func Encode(snap *storage.Snapshot) ([]byte, error) {
	doc := document{
		Accounts:     make([]accountRecord, len(snap.Accounts)),
		Transactions: make([]transactionRecord, len(snap.Transactions)),
		Settings:     snap.Settings,
	}
	for i, account := range snap.Accounts {
		doc.Accounts[i] = accountToRecord(account)
	}
	for i, transaction := range snap.Transactions {
		doc.Transactions[i] = transactionToRecord(transaction)
	}
	if doc.Settings == nil {
		doc.Settings = map[string]string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// fileMode keeps the permissions of an existing file at path, or
// defaultFileMode for a new one.
func fileMode(path string) os.FileMode {
	if info, err := os.Stat(path); err == nil {
		return info.Mode().Perm()
	}
	return defaultFileMode
}

// writeFileAtomic writes content to a temp file next to path and renames it
// over path, so a failed write never leaves a truncated snapshot behind.
func writeFileAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".ledger-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, fileMode(path)); err != nil {
		return fmt.Errorf("setting temp file mode: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}

	success = true
	return nil
}
