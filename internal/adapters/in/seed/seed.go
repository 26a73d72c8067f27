// Package seed loads warehouse datasets from YAML and stores them through
// SeedWarehouseCommand. A demo dataset is embedded in the binary.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/logger"
)

//go:embed fixtures.yaml
var demoFixtures []byte

type fixtures struct {
	Boxes   []boxFixture    `yaml:"boxes"`
	Pallets []palletFixture `yaml:"pallets"`
}

type boxFixture struct {
	Key        string       `yaml:"key"`
	Width      uint32       `yaml:"width"`
	Height     uint32       `yaml:"height"`
	Depth      uint32       `yaml:"depth"`
	Weight     uint32       `yaml:"weight"`
	Production *fixtureDate `yaml:"production"`
	Expire     *fixtureDate `yaml:"expire"`
}

type palletFixture struct {
	Key    string   `yaml:"key"`
	Width  uint32   `yaml:"width"`
	Height uint32   `yaml:"height"`
	Depth  uint32   `yaml:"depth"`
	Boxes  []string `yaml:"boxes"`
}

// fixtureDate reads an ISO date from its literal text so YAML timestamp resolution
// never gets involved.
type fixtureDate struct {
	kernel.Date
}

func (d *fixtureDate) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: date must be a scalar", node.Line)
	}
	parsed, err := kernel.ParseDate(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	d.Date = parsed
	return nil
}

func (d *fixtureDate) date() *kernel.Date {
	if d == nil {
		return nil
	}
	value := d.Date
	return &value
}

// Parse decodes a YAML dataset. Unknown fields are rejected.
func Parse(r io.Reader) (commands.SeedDataset, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var f fixtures
	if err := decoder.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return commands.SeedDataset{}, fmt.Errorf("decode seed fixtures: %w", err)
	}

	dataset := commands.SeedDataset{
		Boxes:   make([]commands.SeedBox, 0, len(f.Boxes)),
		Pallets: make([]commands.SeedPallet, 0, len(f.Pallets)),
	}
	for _, b := range f.Boxes {
		dataset.Boxes = append(dataset.Boxes, commands.SeedBox{
			Key:            b.Key,
			Width:          b.Width,
			Height:         b.Height,
			Depth:          b.Depth,
			Weight:         b.Weight,
			ProductionDate: b.Production.date(),
			ExpireDate:     b.Expire.date(),
		})
	}
	for _, p := range f.Pallets {
		dataset.Pallets = append(dataset.Pallets, commands.SeedPallet{
			Key:     p.Key,
			Width:   p.Width,
			Height:  p.Height,
			Depth:   p.Depth,
			BoxKeys: p.Boxes,
		})
	}

	return dataset, nil
}

// Demo returns the embedded demo dataset.
func Demo() (commands.SeedDataset, error) {
	return Parse(bytes.NewReader(demoFixtures))
}

// Handler stores a dataset; SeedWarehouseCommandHandler satisfies it.
type Handler interface {
	Handle(ctx context.Context, cmd commands.SeedWarehouseCommand) (commands.SeedResult, error)
}

// Seeder validates a dataset and stores it in one transaction.
type Seeder struct {
	handler Handler
	log     *logger.Logger
}

// NewSeeder creates a Seeder.
func NewSeeder(handler Handler, log *logger.Logger) Seeder {
	return Seeder{handler: handler, log: log}
}

// Seed stores dataset. On error nothing has been stored.
func (s Seeder) Seed(ctx context.Context, dataset commands.SeedDataset) (commands.SeedResult, error) {
	cmd, err := commands.NewSeedWarehouseCommand(dataset)
	if err != nil {
		return commands.SeedResult{}, fmt.Errorf("invalid seed dataset: %w", err)
	}

	result, err := s.handler.Handle(ctx, cmd)
	if err != nil {
		s.log.Error("seeding failed, transaction rolled back", "error", err)
		return commands.SeedResult{}, err
	}

	s.log.Info("warehouse seeded",
		"boxes", len(result.BoxIDs),
		"pallets", len(result.PalletIDs),
	)
	return result, nil
}
