package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"digital-presence/platform-backend/internal/wizard"
)

const wizardProgressKey = "wizardProgress"

// fileStore is a ProfileStore backed by a single profile snapshot on disk.
// Keys it does not understand are written back untouched.
type fileStore struct {
	path string
}

func newFileStore(path string) *fileStore {
	return &fileStore{path: path}
}

func (s *fileStore) read() (map[string]json.RawMessage, *wizard.BusinessProfile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("failed to parse profile %s: %w", s.path, err)
	}
	var profile wizard.BusinessProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, nil, fmt.Errorf("failed to parse profile %s: %w", s.path, err)
	}
	return raw, &profile, nil
}

// Load returns the snapshot regardless of its id.
func (s *fileStore) Load() (*wizard.BusinessProfile, error) {
	_, profile, err := s.read()
	return profile, err
}

func (s *fileStore) GetProfile(ctx context.Context, id wizard.ProfileID) (*wizard.BusinessProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	_, profile, err := s.read()
	if err != nil {
		return nil, err
	}
	if profile.ID != id {
		return nil, nil
	}
	return profile, nil
}

func (s *fileStore) UpdateCompletedActions(ctx context.Context, id wizard.ProfileID, actions []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, profile, err := s.read()
	if err != nil {
		return err
	}
	if profile.ID != id {
		return fmt.Errorf("profile %s not found in %s", id, s.path)
	}
	if v, ok := raw[wizardProgressKey]; ok && !objectOrNull(v) {
		return fmt.Errorf("%s: %s is not an object", s.path, wizardProgressKey)
	}

	progress := profile.WizardProgress
	progress.CompletedActions = actions
	encoded, err := json.Marshal(progress)
	if err != nil {
		return fmt.Errorf("failed to encode wizard progress: %w", err)
	}
	raw[wizardProgressKey] = encoded

	out, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	return writeFileAtomic(s.path, append(out, '\n'))
}

func objectOrNull(value json.RawMessage) bool {
	trimmed := bytes.TrimSpace(value)
	return bytes.HasPrefix(trimmed, []byte("{")) || bytes.Equal(trimmed, []byte("null"))
}

// writeFileAtomic replaces path via a temp file in the same directory.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write profile: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write profile: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace profile: %w", err)
	}
	return nil
}
