package generator

import (
	"context"
	"fmt"
	"math"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rs/zerolog"

	"apgen/internal/logger"
	"apgen/internal/ratelimit"
	"apgen/pkg/models"
	"apgen/pkg/services"
)

const (
	maxSpecializations   = 3
	preferredProbability = 0.2
)

// VendorGenerator produces vendor records.
type VendorGenerator struct {
	rt           *Runtime
	faker        *gofakeit.Faker
	descriptions services.DescriptionService
	limiter      *ratelimit.Limiter
	ids          *idSource
	log          zerolog.Logger
}

// NewVendorGenerator creates a vendor generator.
func NewVendorGenerator(rt *Runtime, faker *gofakeit.Faker, descriptions services.DescriptionService) *VendorGenerator {
	return &VendorGenerator{
		rt:           rt,
		faker:        faker,
		descriptions: descriptions,
		limiter:      rt.newLimiter(),
		ids:          newIDSource(rt.Rand, "V", 7),
		log:          logger.WithComponent("vendor-generator"),
	}
}

// Generate produces vendors.total_count vendors.
func (g *VendorGenerator) Generate(ctx context.Context) ([]models.Vendor, error) {
	const op = "GenerateVendors"

	total := g.rt.Settings.Vendors.TotalCount
	g.log.Info().Int("count", total).Msg("Generating vendors")

	tracker := g.rt.startStage(StageVendors, total)
	defer tracker.Finish()

	vendors := make([]models.Vendor, 0, total)
	for i := 0; i < total; i++ {
		if err := step(ctx, g.limiter); err != nil {
			return nil, NewGenerationError(op, err, fmt.Sprintf("vendor %d of %d", i+1, total))
		}

		vendor, err := g.generateOne()
		if err != nil {
			return nil, NewGenerationError(op, err, fmt.Sprintf("vendor %d of %d", i+1, total))
		}
		vendors = append(vendors, vendor)

		g.rt.Recorder.EntityGenerated(StageVendors)
		_ = tracker.Add(1)
	}

	g.log.Debug().Int("generated", len(vendors)).Msg("Vendors generated")
	return vendors, nil
}

func (g *VendorGenerator) generateOne() (models.Vendor, error) {
	settings := g.rt.Settings
	rng := g.rt.Rand

	id, err := g.ids.Next()
	if err != nil {
		return models.Vendor{}, err
	}

	description, err := g.descriptions.Description(settings.Vendors.DescriptionCategory)
	if err != nil {
		return models.Vendor{}, err
	}

	categories := settings.Items.Categories
	specializationCount := intBetween(rng, 1, min(maxSpecializations, len(categories)))

	return models.Vendor{
		VendorID:        id,
		Name:            g.faker.Company(),
		Description:     description,
		Address:         g.faker.Address().Address,
		TaxID:           g.faker.SSN(),
		PaymentTerms:    choice(rng, settings.Vendors.PaymentTerms),
		Regions:         g.assignRegions(),
		Specializations: sample(rng, categories, specializationCount),
		Rating:          math.Round(uniform(rng, 1, 5)*10) / 10,
		IsPreferred:     chance(rng, preferredProbability),
		Contact: models.Contact{
			Name:  g.faker.Name(),
			Email: g.faker.Email(),
			Phone: g.faker.Phone(),
		},
	}, nil
}

// assignRegions picks one region with the configured single-region
// probability, otherwise between two and all regions.
func (g *VendorGenerator) assignRegions() []string {
	rng := g.rt.Rand
	names := g.rt.Settings.RegionNames()

	if len(names) == 1 || chance(rng, g.rt.Settings.Vendors.AllowedRegionsDistribution.SingleRegion) {
		return []string{choice(rng, names)}
	}
	return sample(rng, names, intBetween(rng, 2, len(names)))
}
