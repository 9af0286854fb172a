// Package wheelconfig loads wheel definitions from YAML files and seeds them
// into storage at startup.
package wheelconfig

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/osse101/LuckyWheel_Go/internal/domain"
	"github.com/osse101/LuckyWheel_Go/internal/logger"
)

// PrizeEntry is a prize as written in a file. Fields left out of a host file
// fall back to the default entry with the same id.
type PrizeEntry struct {
	ID     string   `yaml:"id" validate:"required,max=64"`
	Label  string   `yaml:"label"`
	Weight *float64 `yaml:"weight"`
	Stock  *int     `yaml:"stock"`
	Color  string   `yaml:"color"`
}

// File is one wheel definition on disk.
type File struct {
	Code        string       `yaml:"code" validate:"required,max=32,alphanum"`
	Title       string       `yaml:"title" validate:"max=200"`
	HostName    string       `yaml:"host_name" validate:"max=100"`
	Paused      bool         `yaml:"paused"`
	StartTime   *time.Time   `yaml:"start_time"`
	EndTime     *time.Time   `yaml:"end_time"`
	UseDefaults bool         `yaml:"use_defaults"`
	Prizes      []PrizeEntry `yaml:"prizes" validate:"dive"`
}

// Defaults is the shared prize structure in default.yaml.
type Defaults struct {
	Prizes []PrizeEntry `yaml:"prizes" validate:"dive"`
}

// Loader reads wheel files from a directory.
type Loader struct {
	dir      string
	validate *validator.Validate
}

// NewLoader creates a loader for dir.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir, validate: validator.New()}
}

// LoadAll parses every wheel file in the directory, applying defaults where a
// file asks for them. Results are sorted by code.
func (l *Loader) LoadAll() ([]*domain.Wheel, error) {
	defaults, err := l.loadDefaults()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgReadDir, err)
	}

	var wheels []*domain.Wheel
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == DefaultsFile || !isYAML(name) {
			continue
		}
		w, err := l.LoadFile(filepath.Join(l.dir, name), defaults)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", ErrMsgParseFile, name, err)
		}
		wheels = append(wheels, w)
	}
	sort.Slice(wheels, func(i, j int) bool { return wheels[i].Code < wheels[j].Code })
	return wheels, nil
}

// LoadFile parses one wheel file.
func (l *Loader) LoadFile(path string, defaults []PrizeEntry) (*domain.Wheel, error) {
	var f File
	if err := readYAML(path, &f); err != nil {
		return nil, err
	}
	if err := l.validate.Struct(f); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	prizes := f.Prizes
	if f.UseDefaults {
		prizes = MergePrizes(defaults, f.Prizes)
	}

	w := &domain.Wheel{
		Code:      domain.NormalizeWheelCode(f.Code),
		Title:     f.Title,
		HostName:  f.HostName,
		Paused:    f.Paused,
		StartTime: f.StartTime,
		EndTime:   f.EndTime,
		Prizes:    make([]domain.Prize, 0, len(prizes)),
	}
	for _, p := range prizes {
		prize := p.toPrize()
		if err := l.validate.Struct(prize); err != nil {
			return nil, fmt.Errorf("%w: prize %s: %v", domain.ErrInvalidInput, p.ID, err)
		}
		w.Prizes = append(w.Prizes, prize)
	}
	return w, nil
}

func (l *Loader) loadDefaults() ([]PrizeEntry, error) {
	var d Defaults
	err := readYAML(filepath.Join(l.dir, DefaultsFile), &d)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", ErrMsgParseFile, DefaultsFile, err)
	}
	if err := l.validate.Struct(d); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return d.Prizes, nil
}

// MergePrizes lays overrides over the default structure by id. Default order
// is kept; prizes that exist only in overrides are appended in their own order.
func MergePrizes(defaults, overrides []PrizeEntry) []PrizeEntry {
	byID := make(map[string]PrizeEntry, len(overrides))
	for _, o := range overrides {
		byID[o.ID] = o
	}

	out := make([]PrizeEntry, 0, len(defaults)+len(overrides))
	seen := make(map[string]bool, len(defaults))
	for _, d := range defaults {
		seen[d.ID] = true
		o, ok := byID[d.ID]
		if !ok {
			out = append(out, d)
			continue
		}
		out = append(out, d.overlay(o))
	}
	for _, o := range overrides {
		if !seen[o.ID] {
			out = append(out, o)
		}
	}
	return out
}

func (p PrizeEntry) overlay(o PrizeEntry) PrizeEntry {
	if o.Label != "" {
		p.Label = o.Label
	}
	if o.Weight != nil {
		p.Weight = o.Weight
	}
	if o.Stock != nil {
		p.Stock = o.Stock
	}
	if o.Color != "" {
		p.Color = o.Color
	}
	return p
}

// toPrize fills unset fields: weight defaults to 0 and stock to unlimited.
func (p PrizeEntry) toPrize() domain.Prize {
	prize := domain.Prize{
		ID:    p.ID,
		Label: p.Label,
		Stock: domain.UnlimitedStock,
		Color: p.Color,
	}
	if prize.Label == "" {
		prize.Label = p.ID
	}
	if p.Weight != nil {
		prize.Weight = *p.Weight
	}
	if p.Stock != nil {
		prize.Stock = *p.Stock
	}
	return prize
}

func readYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// Upserter is the part of the wheel service that seeding needs.
type Upserter interface {
	Upsert(ctx context.Context, w *domain.Wheel) (*domain.Wheel, error)
}

// Seed loads every file and stores it. A wheel that fails validation aborts
// seeding so a typo never silently drops a wheel.
func Seed(ctx context.Context, loader *Loader, svc Upserter) (int, error) {
	wheels, err := loader.LoadAll()
	if err != nil {
		return 0, err
	}
	for _, w := range wheels {
		if _, err := svc.Upsert(ctx, w); err != nil {
			return 0, fmt.Errorf("%s %s: %w", ErrMsgSeedWheel, w.Code, err)
		}
	}
	logger.FromContext(ctx).Info(LogMsgWheelsSeeded, "count", len(wheels), "dir", loader.dir)
	return len(wheels), nil
}
