package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"bloodlink/internal/utils"
	"bloodlink/pkg/types"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

//go:embed donors.yaml
var defaultDonors []byte

type donorFile struct {
	Donors []donorSeed `yaml:"donors"`
}

type donorSeed struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	BloodGroup string   `yaml:"bloodGroup"`
	City       string   `yaml:"city"`
	Phone      string   `yaml:"phone"`
	Email      string   `yaml:"email"`
	Age        int      `yaml:"age"`
	Latitude   *float64 `yaml:"latitude"`
	Longitude  *float64 `yaml:"longitude"`
	Available  *bool    `yaml:"available"`
}

func (s donorSeed) donor() *types.Donor {
	d := &types.Donor{
		ID:          s.ID,
		Name:        s.Name,
		BloodGroup:  types.BloodGroup(s.BloodGroup),
		City:        s.City,
		Phone:       s.Phone,
		Latitude:    s.Latitude,
		Longitude:   s.Longitude,
		IsAvailable: s.Available == nil || *s.Available,
	}
	if s.Email != "" {
		d.Email = utils.Ptr(s.Email)
	}
	if s.Age != 0 {
		d.Age = utils.Ptr(s.Age)
	}
	return d
}

// LoadDonors parses a donor seed file. An empty path loads the built-in demo set.
func LoadDonors(path string) ([]*types.Donor, error) {
	data := defaultDonors
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
		data = b
	}

	var file donorFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	donors := make([]*types.Donor, 0, len(file.Donors))
	for i, s := range file.Donors {
		if s.ID == "" {
			return nil, fmt.Errorf("seed donor %d (%s): id is required", i, s.Name)
		}
		d := s.donor()
		if err := types.Validate(d); err != nil {
			return nil, fmt.Errorf("seed donor %s: %w", s.ID, err)
		}
		donors = append(donors, d)
	}

	return donors, nil
}

type DonorSeeder interface {
	Donor(ctx context.Context, donorID string) (*types.Donor, error)
	Insert(ctx context.Context, donor *types.Donor) (*types.Donor, error)
}

// SeedDonors inserts every donor whose ID is not stored yet and returns how
// many were added. Existing donors are left alone.
func SeedDonors(ctx context.Context, store DonorSeeder, donors []*types.Donor, logger logrus.FieldLogger) (int, error) {
	added := 0
	for _, d := range donors {
		_, err := store.Donor(ctx, d.ID)
		if err == nil {
			logger.WithField("donor_id", d.ID).Debug("donor already seeded")
			continue
		}
		if !errors.Is(err, types.ErrDonorNotFound) {
			return added, fmt.Errorf("check donor %s: %w", d.ID, err)
		}

		if _, err := store.Insert(ctx, d.Clone()); err != nil {
			return added, fmt.Errorf("seed donor %s: %w", d.ID, err)
		}
		added++
	}

	return added, nil
}
