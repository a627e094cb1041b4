/*
catalog.go - Lookups, validation, and administrative mutations

PURPOSE:
  Read-side helpers the engine uses (Lookup, Normalize, PrimaryGarment)
  and the write-side operations an administrative surface applies
  (add/update/delete occupation, garment, synonym, price).

MUTATION DISCIPLINE:
  All mutators operate in place on a *Catalog the caller owns. The
  expected pattern is copy-on-write:

    next := current.Clone()
    if err := next.AddSynonym("MOZO", "MESERO DE SALA"); err != nil { ... }
    store.Save(ctx, next)
    active.Store(next) // atomic swap; in-flight batches keep their snapshot

ERROR CATEGORIES:
  Mutations report sentinel errors (ErrOccupationNotFound, ...). Engine
  read paths never error: a failed Lookup degrades to zero price and a
  warning downstream.

SEE ALSO:
  - types.go: The data model these operate on
  - engine package: The read-side consumer
*/
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrOccupationExists is returned when adding a name already in the catalog.
	ErrOccupationExists = errors.New("occupation already exists")

	// ErrOccupationNotFound is returned when a referenced occupation doesn't exist.
	ErrOccupationNotFound = errors.New("occupation not found")

	// ErrGarmentExists is returned when adding a garment type the occupation already has.
	ErrGarmentExists = errors.New("garment already exists")

	// ErrGarmentNotFound is returned when a referenced garment doesn't exist.
	ErrGarmentNotFound = errors.New("garment not found")

	// ErrSynonymExists is returned when adding a synonym the occupation already has.
	ErrSynonymExists = errors.New("synonym already exists")

	// ErrInvalid is returned by Validate for malformed occupations or garments.
	ErrInvalid = errors.New("invalid catalog entry")
)

// =============================================================================
// READ SIDE - Lookups used by the engine
// =============================================================================

// Lookup finds an occupation by canonical name or synonym,
// case-insensitively. Returns the match and whether one was found.
func (c *Catalog) Lookup(name string) (*Occupation, bool) {
	needle := strings.ToUpper(strings.TrimSpace(name))
	if needle == "" {
		return nil, false
	}
	for i := range c.Occupations {
		occ := &c.Occupations[i]
		if strings.ToUpper(occ.Name) == needle {
			return occ, true
		}
		for _, syn := range occ.Synonyms {
			if strings.ToUpper(strings.TrimSpace(syn)) == needle {
				return occ, true
			}
		}
	}
	return nil, false
}

// Normalize maps a raw job title to its canonical occupation name.
// Unknown titles come back uppercased and trimmed, unchanged otherwise.
func (c *Catalog) Normalize(raw string) string {
	if occ, ok := c.Lookup(raw); ok {
		return occ.Name
	}
	return strings.ToUpper(strings.TrimSpace(raw))
}

// Garment finds a garment spec on an occupation by type, case-insensitively.
func (o *Occupation) Garment(garmentType string) (*GarmentSpec, bool) {
	needle := strings.ToUpper(strings.TrimSpace(garmentType))
	for i := range o.Garments {
		if strings.ToUpper(o.Garments[i].GarmentType) == needle {
			return &o.Garments[i], true
		}
	}
	return nil, false
}

// Primary returns the occupation's designated primary garment, if any.
func (o *Occupation) Primary() (*GarmentSpec, bool) {
	for i := range o.Garments {
		if o.Garments[i].IsPrimary {
			return &o.Garments[i], true
		}
	}
	return nil, false
}

// PrimaryGarment resolves an occupation and returns its primary garment.
func (c *Catalog) PrimaryGarment(occupation string) (*GarmentSpec, bool) {
	occ, ok := c.Lookup(occupation)
	if !ok {
		return nil, false
	}
	return occ.Primary()
}

// =============================================================================
// WRITE SIDE - Administrative mutations
// =============================================================================

// AddOccupation appends a new occupation. The name is canonicalized to
// uppercase before insertion.
func (c *Catalog) AddOccupation(occ Occupation) error {
	occ.Name = strings.ToUpper(strings.TrimSpace(occ.Name))
	if _, exists := c.findByName(occ.Name); exists {
		return fmt.Errorf("%w: %s", ErrOccupationExists, occ.Name)
	}
	c.Occupations = append(c.Occupations, occ)
	return nil
}

// UpdateOccupation replaces an existing occupation wholesale, matched by name.
func (c *Catalog) UpdateOccupation(occ Occupation) error {
	occ.Name = strings.ToUpper(strings.TrimSpace(occ.Name))
	i, exists := c.findByName(occ.Name)
	if !exists {
		return fmt.Errorf("%w: %s", ErrOccupationNotFound, occ.Name)
	}
	c.Occupations[i] = occ
	return nil
}

// DeleteOccupation removes an occupation. Its garments are owned by the
// occupation record, so the delete cascades to them.
func (c *Catalog) DeleteOccupation(name string) error {
	i, exists := c.findByName(strings.ToUpper(strings.TrimSpace(name)))
	if !exists {
		return fmt.Errorf("%w: %s", ErrOccupationNotFound, name)
	}
	c.Occupations = append(c.Occupations[:i], c.Occupations[i+1:]...)
	return nil
}

// AddGarment appends a garment spec to an occupation.
func (c *Catalog) AddGarment(occupation string, spec GarmentSpec) error {
	occ, ok := c.Lookup(occupation)
	if !ok {
		return fmt.Errorf("%w: %s", ErrOccupationNotFound, occupation)
	}
	spec.GarmentType = strings.ToUpper(strings.TrimSpace(spec.GarmentType))
	if _, exists := occ.Garment(spec.GarmentType); exists {
		return fmt.Errorf("%w: %s on %s", ErrGarmentExists, spec.GarmentType, occ.Name)
	}
	occ.Garments = append(occ.Garments, spec)
	return nil
}

// UpdateGarment replaces a garment spec on an occupation, matched by type.
func (c *Catalog) UpdateGarment(occupation string, spec GarmentSpec) error {
	occ, ok := c.Lookup(occupation)
	if !ok {
		return fmt.Errorf("%w: %s", ErrOccupationNotFound, occupation)
	}
	spec.GarmentType = strings.ToUpper(strings.TrimSpace(spec.GarmentType))
	for i := range occ.Garments {
		if strings.ToUpper(occ.Garments[i].GarmentType) == spec.GarmentType {
			occ.Garments[i] = spec
			return nil
		}
	}
	return fmt.Errorf("%w: %s on %s", ErrGarmentNotFound, spec.GarmentType, occ.Name)
}

// DeleteGarment removes a garment spec from an occupation.
func (c *Catalog) DeleteGarment(occupation, garmentType string) error {
	occ, ok := c.Lookup(occupation)
	if !ok {
		return fmt.Errorf("%w: %s", ErrOccupationNotFound, occupation)
	}
	needle := strings.ToUpper(strings.TrimSpace(garmentType))
	for i := range occ.Garments {
		if strings.ToUpper(occ.Garments[i].GarmentType) == needle {
			occ.Garments = append(occ.Garments[:i], occ.Garments[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s on %s", ErrGarmentNotFound, garmentType, occ.Name)
}

// AddSynonym attaches a synonym to an occupation, uppercased. A synonym
// belongs to exactly one occupation, so the candidate must not already
// resolve anywhere in the catalog, name or synonym alike.
func (c *Catalog) AddSynonym(occupation, synonym string) error {
	occ, ok := c.Lookup(occupation)
	if !ok {
		return fmt.Errorf("%w: %s", ErrOccupationNotFound, occupation)
	}
	syn := strings.ToUpper(strings.TrimSpace(synonym))
	if owner, taken := c.Lookup(syn); taken {
		return fmt.Errorf("%w: %s already resolves to %s", ErrSynonymExists, syn, owner.Name)
	}
	occ.Synonyms = append(occ.Synonyms, syn)
	return nil
}

// RemoveSynonym detaches a synonym from an occupation.
func (c *Catalog) RemoveSynonym(occupation, synonym string) error {
	occ, ok := c.Lookup(occupation)
	if !ok {
		return fmt.Errorf("%w: %s", ErrOccupationNotFound, occupation)
	}
	syn := strings.ToUpper(strings.TrimSpace(synonym))
	for i, existing := range occ.Synonyms {
		if strings.ToUpper(existing) == syn {
			occ.Synonyms = append(occ.Synonyms[:i], occ.Synonyms[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: synonym %s not on %s", ErrOccupationNotFound, syn, occ.Name)
}

// SetPrice writes one price cell on an occupation's garment.
func (c *Catalog) SetPrice(occupation, garmentType string, size SizeBucket, loc LocationBucket, price string) error {
	occ, ok := c.Lookup(occupation)
	if !ok {
		return fmt.Errorf("%w: %s", ErrOccupationNotFound, occupation)
	}
	spec, ok := occ.Garment(garmentType)
	if !ok {
		return fmt.Errorf("%w: %s on %s", ErrGarmentNotFound, garmentType, occ.Name)
	}
	d, err := parsePrice(price)
	if err != nil {
		return err
	}
	if spec.Prices == nil {
		spec.Prices = make(PriceMatrix)
	}
	spec.Prices.Set(size, loc, d)
	return nil
}

func (c *Catalog) findByName(upper string) (int, bool) {
	for i := range c.Occupations {
		if strings.ToUpper(c.Occupations[i].Name) == upper {
			return i, true
		}
	}
	return 0, false
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidateOccupation reports every problem with an occupation record.
// An empty slice means valid.
func ValidateOccupation(occ Occupation) []error {
	var errs []error
	if strings.TrimSpace(occ.Name) == "" {
		errs = append(errs, fmt.Errorf("%w: occupation name is required", ErrInvalid))
	}
	if len(occ.Garments) == 0 {
		errs = append(errs, fmt.Errorf("%w: occupation %q has no garments", ErrInvalid, occ.Name))
	}
	primaries := 0
	for _, g := range occ.Garments {
		if g.IsPrimary {
			primaries++
		}
		errs = append(errs, ValidateGarment(g)...)
	}
	if primaries > 1 {
		errs = append(errs, fmt.Errorf("%w: occupation %q has %d primary garments", ErrInvalid, occ.Name, primaries))
	}
	return errs
}

// ValidateGarment reports every problem with a garment spec.
func ValidateGarment(g GarmentSpec) []error {
	var errs []error
	if strings.TrimSpace(g.GarmentType) == "" {
		errs = append(errs, fmt.Errorf("%w: garment type is required", ErrInvalid))
	}
	switch g.Class {
	case ClassUpper, ClassLower, ClassAccessory:
	default:
		errs = append(errs, fmt.Errorf("%w: garment %q has unknown class %q", ErrInvalid, g.GarmentType, g.Class))
	}
	for size, row := range g.Prices {
		for loc, price := range row {
			if price.IsNegative() {
				errs = append(errs, fmt.Errorf("%w: garment %q price %s/%s is negative", ErrInvalid, g.GarmentType, size, loc))
			}
		}
	}
	return errs
}

// Validate checks the whole catalog, including name and synonym
// uniqueness across occupations. Mutations go through AddSynonym, but
// wholesale document replacement can smuggle in collisions; this is
// the backstop.
func (c *Catalog) Validate() []error {
	var errs []error
	owners := make(map[string]string, len(c.Occupations))
	for _, occ := range c.Occupations {
		upper := strings.ToUpper(occ.Name)
		if _, dup := owners[upper]; dup {
			errs = append(errs, fmt.Errorf("%w: duplicate occupation name %q", ErrInvalid, occ.Name))
		} else {
			owners[upper] = occ.Name
		}
		errs = append(errs, ValidateOccupation(occ)...)
	}
	for _, occ := range c.Occupations {
		for _, syn := range occ.Synonyms {
			upper := strings.ToUpper(strings.TrimSpace(syn))
			owner, taken := owners[upper]
			switch {
			case !taken:
				owners[upper] = occ.Name
			case owner != occ.Name:
				errs = append(errs, fmt.Errorf("%w: synonym %q on %q already resolves to %q",
					ErrInvalid, syn, occ.Name, owner))
			}
		}
	}
	return errs
}
