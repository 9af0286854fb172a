package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/osse101/LuckyWheel_Go/internal/prizepool"
	"github.com/osse101/LuckyWheel_Go/internal/validation"
	"github.com/osse101/LuckyWheel_Go/internal/wheel"
	"github.com/osse101/LuckyWheel_Go/internal/wheelconfig"
)

func checkWheelsCommand() Command {
	return command{
		name:  "check-wheels",
		usage: "Validate wheel definitions offline [dir]",
		run: func(_ context.Context, args []string) error {
			dir := "configs/wheels"
			if len(args) > 0 {
				dir = args[0]
			}
			PrintHeader("Checking wheel definitions in " + dir)

			n, err := checkWheels(dir)
			if err != nil {
				return err
			}
			PrintSuccess("%d wheel(s) valid", n)
			return nil
		},
	}
}

func checkWheels(dir string) (int, error) {
	if err := checkSchemas(dir); err != nil {
		return 0, err
	}

	wheels, err := wheelconfig.NewLoader(dir).LoadAll()
	if err != nil {
		return 0, err
	}
	for _, w := range wheels {
		if err := wheel.Validate(w); err != nil {
			return 0, fmt.Errorf("%s: %w", w.Code, err)
		}
		pool, err := prizepool.FromWheel(w)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", w.Code, err)
		}
		PrintInfo("%s: %d prize(s)", w.Code, pool.Len())
		if pool.OutOfStock() {
			PrintWarning("%s: every prize is out of stock", w.Code)
		}
	}
	return len(wheels), nil
}

// checkSchemas validates every YAML file in dir against its JSON schema, so
// typos such as a misspelt key are reported instead of silently ignored.
func checkSchemas(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	v := validation.NewSchemaValidator()
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		schema := validation.WheelSchemaPath
		if e.Name() == wheelconfig.DefaultsFile {
			schema = validation.DefaultsSchemaPath
		}
		if err := v.ValidateFile(filepath.Join(dir, e.Name()), schema); err != nil {
			return fmt.Errorf("%s: %w", e.Name(), err)
		}
	}
	return nil
}
