package saves

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/KirkDiggler/rpg-inventory/internal/errors"
	"github.com/KirkDiggler/rpg-inventory/internal/pkg/clock"
)

// FileExtension is appended to the name of every save file
const FileExtension = ".save"

type fileRepository struct {
	dir   string
	clock clock.Clock
}

// FileConfig contains configuration for the file repository
type FileConfig struct {
	Dir   string
	Clock clock.Clock
}

// Validate validates the FileConfig
func (cfg *FileConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Dir", cfg.Dir, vb)
	return vb.Build()
}

// NewFile creates a repository storing each save as <dir>/<name>.save.
// The directory is created on first write.
func NewFile(cfg *FileConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &fileRepository{
		dir:   cfg.Dir,
		clock: c,
	}, nil
}

func (r *fileRepository) path(name string) string {
	return filepath.Join(r.dir, name+FileExtension)
}

// Store writes to a temp file in the same directory and renames it over the
// target, so readers never observe a partial save.
func (r *fileRepository) Store(ctx context.Context, input StoreInput) (*StoreOutput, error) {
	if err := validateStore(input); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(r.dir, 0o750); err != nil {
		return nil, errors.Wrapf(err, "failed to create save directory %s", r.dir)
	}

	tmp, err := os.CreateTemp(r.dir, input.Name+".*.tmp")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create temp file for save %s", input.Name)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(input.Data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return nil, errors.Wrapf(err, "failed to write save %s", input.Name)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return nil, errors.Wrapf(err, "failed to sync save %s", input.Name)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return nil, errors.Wrapf(err, "failed to close save %s", input.Name)
	}

	now := r.clock.Now()
	if err := os.Chtimes(tmpName, now, now); err != nil {
		_ = os.Remove(tmpName)
		return nil, errors.Wrapf(err, "failed to stamp save %s", input.Name)
	}

	path := r.path(input.Name)
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return nil, errors.Wrapf(err, "failed to move save %s into place", input.Name)
	}

	slog.DebugContext(ctx, "stored save file",
		"name", input.Name,
		"path", path,
		"bytes", len(input.Data))

	return &StoreOutput{SavedAt: now}, nil
}

func (r *fileRepository) Load(ctx context.Context, input LoadInput) (*LoadOutput, error) {
	if err := ValidateName(input.Name); err != nil {
		return nil, err
	}

	path := r.path(input.Name)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound(input.Name)
		}
		return nil, errors.Wrapf(err, "failed to stat save %s", input.Name)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound(input.Name)
		}
		return nil, errors.Wrapf(err, "failed to read save %s", input.Name)
	}

	slog.DebugContext(ctx, "loaded save file",
		"name", input.Name,
		"bytes", len(data))

	return &LoadOutput{
		Name:    input.Name,
		Data:    data,
		SavedAt: info.ModTime().UTC(),
	}, nil
}

func (r *fileRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := ValidateName(input.Name); err != nil {
		return nil, err
	}

	if err := os.Remove(r.path(input.Name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound(input.Name)
		}
		return nil, errors.Wrapf(err, "failed to delete save %s", input.Name)
	}

	slog.DebugContext(ctx, "deleted save file", "name", input.Name)
	return &DeleteOutput{}, nil
}

func (r *fileRepository) List(_ context.Context, _ ListInput) (*ListOutput, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &ListOutput{Names: []string{}}, nil
		}
		return nil, errors.Wrapf(err, "failed to read save directory %s", r.dir)
	}

	names := []string{}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name, ok := strings.CutSuffix(entry.Name(), FileExtension)
		if !ok || ValidateName(name) != nil {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)

	return &ListOutput{Names: names}, nil
}

func (r *fileRepository) Close() error {
	return nil
}
