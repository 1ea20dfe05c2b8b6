package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Golden-Bit/myrent-SDK/internal/application/pricing"
	derr "github.com/Golden-Bit/myrent-SDK/internal/domain/errors"
	"github.com/Golden-Bit/myrent-SDK/internal/domain/models"
)

const (
	defaultCurrency = "EUR"
	defaultVATPct   = 22
)

type document struct {
	Currency      string                       `json:"currency"`
	VATPercentage *float64                     `json:"vat_percentage"`
	Groups        []models.VehicleCatalogEntry `json:"groups"`
}

// Catalog is the static vehicle catalog loaded once at startup. It is
// read-only after Load and safe for concurrent use.
type Catalog struct {
	currency string
	vatPct   float64
	groups   []models.VehicleCatalogEntry
	rules    pricing.Rules
}

func Load(path string, rules pricing.Rules) (*Catalog, error) {
	const op = "catalog.Load"

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	c, err := Parse(f, rules)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func Parse(r io.Reader, rules pricing.Rules) (*Catalog, error) {
	const op = "catalog.Parse"

	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}

	for i, g := range doc.Groups {
		if strings.TrimSpace(g.InternationalCode) == "" {
			return nil, fmt.Errorf("%s: group %d has no international_code", op, i)
		}
	}

	c := &Catalog{
		currency: doc.Currency,
		vatPct:   defaultVATPct,
		groups:   doc.Groups,
		rules:    rules,
	}
	if c.currency == "" {
		c.currency = defaultCurrency
	}
	if doc.VATPercentage != nil {
		c.vatPct = *doc.VATPercentage
	}

	return c, nil
}

func (c *Catalog) Currency() string { return c.currency }

func (c *Catalog) VATPct() float64 { return c.vatPct }

// Vehicles returns the groups in file order, filtered by location when one is
// given. The location match ignores case.
func (c *Catalog) Vehicles(location string) []models.VehicleCatalogEntry {
	loc := strings.ToUpper(strings.TrimSpace(location))

	out := make([]models.VehicleCatalogEntry, 0, len(c.groups))
	for _, g := range c.groups {
		if loc != "" && !servesLocationFold(g, loc) {
			continue
		}
		out = append(out, g)
	}
	return out
}

func (c *Catalog) Vehicle(id string) (models.VehicleCatalogEntry, error) {
	for _, g := range c.groups {
		if string(g.ID) == id {
			return g, nil
		}
	}
	return models.VehicleCatalogEntry{}, fmt.Errorf("%w: id %q", derr.ErrVehicleNotFound, id)
}

// Damages returns the damage points recorded for a plate or VIN. The first
// group that knows the plate wins.
func (c *Catalog) Damages(plateOrVIN string) []models.DamagePoint {
	for _, g := range c.groups {
		points, ok := g.Damages[plateOrVIN]
		if !ok {
			continue
		}
		out := make([]models.DamagePoint, 0, len(points))
		for _, p := range points {
			if p.Description == "" {
				p.Description = "N/A"
			}
			out = append(out, p)
		}
		return out
	}
	return []models.DamagePoint{}
}

func servesLocationFold(g models.VehicleCatalogEntry, upperLoc string) bool {
	for _, l := range g.Locations {
		if strings.ToUpper(l) == upperLoc {
			return true
		}
	}
	return false
}
