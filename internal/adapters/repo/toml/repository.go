package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/bnema/helm-threads-cli/internal/domain"
	"github.com/bnema/helm-threads-cli/internal/ports"
)

const (
	configName        = "config"
	configType        = "toml"
	threadsPathKey    = "threads.path"
	threadsFileMode   = 0o600
	threadsDirMode    = 0o700
	threadsConfigDir  = ".helm"
	threadsConfigFile = "threads.toml"
	tempFilePattern   = ".threads-*.toml.tmp"
)

// Repository persists thread records in a TOML file. It is the storage
// collaborator from the core's point of view: the core never imports it, it
// only sees the records it hands over.
type Repository struct {
	threadsPath string
	mu          *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.ThreadRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, threadsConfigDir, threadsConfigFile)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, threadsConfigDir))
	cfg.SetDefault(threadsPathKey, defaultPath)

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	threadsPath := cfg.GetString(threadsPathKey)
	if threadsPath == "" {
		return nil, errors.New("threads path is empty")
	}
	threadsPath, err = normalizeThreadsPath(threadsPath)
	if err != nil {
		return nil, err
	}

	return &Repository{threadsPath: threadsPath, mu: lockForPath(threadsPath)}, nil
}

func (r *Repository) Save(ctx context.Context, thread domain.Thread) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}
	file.applyDefaults()

	encoded := toSchema(thread)
	updated := false
	for i := range file.Threads {
		if file.Threads[i].ID == encoded.ID {
			file.Threads[i] = encoded
			updated = true
			break
		}
	}

	if !updated {
		file.Threads = append(file.Threads, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) GetByID(ctx context.Context, id domain.ThreadID) (domain.Thread, error) {
	if err := ctx.Err(); err != nil {
		return domain.Thread{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Thread{}, err
	}
	file.applyDefaults()

	for _, entry := range file.Threads {
		if entry.ID == string(id) {
			return fromSchema(entry)
		}
	}

	return domain.Thread{}, domain.ErrThreadNotFound
}

func (r *Repository) List(ctx context.Context) ([]domain.Thread, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}
	file.applyDefaults()

	threads := make([]domain.Thread, 0, len(file.Threads))
	for _, entry := range file.Threads {
		thread, err := fromSchema(entry)
		if err != nil {
			return nil, fmt.Errorf("thread %s: %w", entry.ID, err)
		}
		threads = append(threads, thread)
	}

	return threads, nil
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.threadsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, nil
		}
		return fileSchema{}, fmt.Errorf("read threads file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode threads file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func normalizeThreadsPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve threads path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.threadsPath), threadsDirMode); err != nil {
		return fmt.Errorf("create threads directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode threads file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.threadsPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp threads file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp threads file: %w", err)
	}

	if err := tempFile.Chmod(threadsFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp threads file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp threads file: %w", err)
	}

	if err := os.Rename(tempName, r.threadsPath); err != nil {
		return fmt.Errorf("replace threads file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(r.threadsPath, threadsFileMode); err != nil {
		return fmt.Errorf("chmod threads file: %w", err)
	}

	return nil
}

func toSchema(thread domain.Thread) threadSchema {
	done := make([]completedSchema, 0, len(thread.Done))
	for _, d := range thread.Done {
		done = append(done, completedSchema{
			Task:        d.Task,
			Test:        d.Test,
			CompletedAt: formatTime(d.CompletedAt),
		})
	}

	return threadSchema{
		ID:          string(thread.ID),
		Name:        thread.Name,
		Description: thread.Description,
		WorkingOn: workingOnSchema{
			Task:         thread.WorkingOn.Task,
			CriticalPath: thread.WorkingOn.CriticalPath,
			Bumps:        thread.WorkingOn.Bumps,
		},
		Todo:        thread.Todo,
		Upcoming:    thread.Upcoming,
		Done:        done,
		LastTouched: formatTime(thread.LastTouched),
		CreatedAt:   formatTime(thread.CreatedAt),
		Status:      string(thread.Status),
	}
}

func fromSchema(entry threadSchema) (domain.Thread, error) {
	lastTouched, err := parseTime("last_touched", entry.LastTouched)
	if err != nil {
		return domain.Thread{}, err
	}
	createdAt, err := parseTime("created_at", entry.CreatedAt)
	if err != nil {
		return domain.Thread{}, err
	}
	if lastTouched.Before(createdAt) {
		return domain.Thread{}, fmt.Errorf("last_touched %q precedes created_at %q: %w", entry.LastTouched, entry.CreatedAt, domain.ErrInvalidTimestamp)
	}

	status := domain.ThreadStatus(entry.Status)
	if !status.Valid() {
		return domain.Thread{}, fmt.Errorf("status %q: %w", entry.Status, domain.ErrInvalidStatus)
	}

	var done []domain.CompletedTask
	for _, d := range entry.Done {
		completedAt := time.Time{}
		if d.CompletedAt != "" {
			completedAt, err = parseTime("completed_at", d.CompletedAt)
			if err != nil {
				return domain.Thread{}, err
			}
		}
		done = append(done, domain.CompletedTask{Task: d.Task, Test: d.Test, CompletedAt: completedAt})
	}

	return domain.Thread{
		ID:          domain.ThreadID(entry.ID),
		Name:        entry.Name,
		Description: entry.Description,
		WorkingOn: domain.WorkingOn{
			Task:         entry.WorkingOn.Task,
			CriticalPath: entry.WorkingOn.CriticalPath,
			Bumps:        entry.WorkingOn.Bumps,
		},
		Todo:        entry.Todo,
		Upcoming:    entry.Upcoming,
		Done:        done,
		LastTouched: lastTouched,
		CreatedAt:   createdAt,
		Status:      status,
	}, nil
}

// parseTime rejects malformed stamps instead of zeroing them: a record with a
// broken last_touched would otherwise sail through and misclassify downstream.
func parseTime(field, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("%s is empty: %w", field, domain.ErrInvalidTimestamp)
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s %q: %w", field, raw, domain.ErrInvalidTimestamp)
	}

	return parsed, nil
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(time.RFC3339)
}
