/*
resolver.go - Occupation resolution, gender detection, prompt cache

PURPOSE:
  Maps a raw, possibly gendered job title ("ADMINISTRADOR(A)") to a
  canonical catalog occupation. Straight names and synonyms resolve via
  the catalog; gendered titles resolve by inspecting which garments the
  employee actually requested (a CAMISA quantity indicates the male
  variant, a BLUSA quantity the female one), falling back to an optional
  prompt callback and finally to the male variant with a warning.

CACHING:
  Prompt answers are cached per (employee name, raw title) so rendering
  several documents for the same person asks once. The cache is owned by
  the Resolver instance, guarded by a mutex for parallel batches, and
  cleared at the start of each batch run.

FAILURE SEMANTICS:
  Resolve never errors. Unknown titles come back uppercased and
  unchanged; downstream pricing degrades to zero with a warning.

SEE ALSO:
  - catalog/catalog.go: Name and synonym lookup
  - engine.go: Batch lifecycle (cache reset)
*/
package engine

import (
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/warp/uniform-engine/catalog"
)

// =============================================================================
// GENDER RESOLUTION TABLES
// =============================================================================

// Gender values exchanged with the prompt callback.
const (
	GenderMale   = "HOMBRE"
	GenderFemale = "MUJER"
)

// GenderPrompt asks a human to disambiguate a gendered job title.
// It must return GenderMale or GenderFemale.
type GenderPrompt func(employeeName, rawOccupation, maleOption, femaleOption string) string

// genderedMarkers flag a job title as ambiguous between variants.
var genderedMarkers = []string{
	"(A)", "(O/A)", "(A/O)", "(O)", "(HOMBRE/MUJER)", "(MUJER/HOMBRE)",
}

// genderedPatterns maps each gendered raw pattern to its male and
// female canonical occupations. Ordered, evaluated top to bottom;
// spaced and unspaced spellings are separate rows on purpose.
var genderedPatterns = []struct {
	Pattern string
	Male    string
	Female  string
}{
	{"ADMINISTRADOR(A)", "STAFF ADMINISTRATIVO (HOMBRE)", "STAFF ADMINISTRATIVO (MUJER)"},
	{"ADMINISTRADOR (A)", "STAFF ADMINISTRATIVO (HOMBRE)", "STAFF ADMINISTRATIVO (MUJER)"},
	{"CAJERO(A)", "CAJA (HOMBRE)", "CAJA (MUJER)"},
	{"CAJERO (A)", "CAJA (HOMBRE)", "CAJA (MUJER)"},
	{"ANFITRION(A)", "ANFITRIONAJE (HOMBRE)", "ANFITRIONAJE (MUJER)"},
	{"ANFITRION (A)", "ANFITRIONAJE (HOMBRE)", "ANFITRIONAJE (MUJER)"},
	{"MOZO(A)", "MOZO", "MOZA"},
	{"MOZO (A)", "MOZO", "MOZA"},
}

// Garment indicators used to detect gender from requested quantities.
var (
	maleIndicators   = []string{"CAMISA", "SACO_H", "SACO H"}
	femaleIndicators = []string{"BLUSA", "SACO_M", "SACO M"}
)

// =============================================================================
// RESOLVER
// =============================================================================

type genderKey struct {
	Employee string
	Raw      string
}

// Resolver maps raw job titles to canonical occupation names against
// one catalog snapshot. Safe for concurrent use.
type Resolver struct {
	catalog *catalog.Catalog
	prompt  GenderPrompt
	log     logrus.FieldLogger

	mu    sync.Mutex
	cache map[genderKey]string
}

func NewResolver(cat *catalog.Catalog, prompt GenderPrompt, log logrus.FieldLogger) *Resolver {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Resolver{
		catalog: cat,
		prompt:  prompt,
		log:     log,
		cache:   make(map[genderKey]string),
	}
}

// ResetCache drops cached prompt answers. Called at the start of each
// batch run so a new workbook re-asks.
func (r *Resolver) ResetCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[genderKey]string)
}

// Resolve maps a raw job title to a canonical occupation name.
//
// Order: exact name, then synonym, then the gendered-pattern table with
// garment-based gender detection, then the prompt callback (cached per
// employee and title), then the male variant with a warning. Titles
// matching nothing come back uppercased and trimmed - callers treat
// that as "occupation unknown", which prices at zero downstream.
func (r *Resolver) Resolve(employeeName, rawOccupation string, quantities map[string]string, trail *warnTrail) string {
	raw := strings.ToUpper(strings.TrimSpace(rawOccupation))
	if raw == "" {
		def := r.catalog.DefaultOccupation
		trail.warnf(logrus.Fields{"employee": employeeName},
			"row has no occupation, using default %q", def)
		return r.catalog.Normalize(def)
	}

	if occ, ok := r.catalog.Lookup(raw); ok {
		return occ.Name
	}

	if isGenderedTitle(raw) {
		if resolved, ok := r.resolveGendered(employeeName, raw, quantities, trail); ok {
			// The gender-specific name may itself be a synonym.
			return r.catalog.Normalize(resolved)
		}
	}

	trail.warnf(logrus.Fields{"employee": employeeName, "occupation": raw},
		"unresolved occupation %q, consider adding a synonym", raw)
	return raw
}

func isGenderedTitle(upper string) bool {
	for _, marker := range genderedMarkers {
		if strings.Contains(upper, marker) {
			return true
		}
	}
	return false
}

func (r *Resolver) resolveGendered(employeeName, raw string, quantities map[string]string, trail *warnTrail) (string, bool) {
	for _, p := range genderedPatterns {
		if !strings.Contains(raw, p.Pattern) {
			continue
		}

		switch DetectGender(quantities) {
		case GenderMale:
			r.log.WithFields(logrus.Fields{"employee": employeeName, "occupation": raw}).
				Infof("gendered title resolved to %s by garment quantities", p.Male)
			return p.Male, true
		case GenderFemale:
			r.log.WithFields(logrus.Fields{"employee": employeeName, "occupation": raw}).
				Infof("gendered title resolved to %s by garment quantities", p.Female)
			return p.Female, true
		}

		if r.prompt != nil {
			if answer := r.promptCached(employeeName, raw, p.Male, p.Female); answer == GenderFemale {
				return p.Female, true
			}
			return p.Male, true
		}

		trail.warnf(logrus.Fields{"employee": employeeName, "occupation": raw},
			"gender undetermined for %q, defaulting to %s", raw, p.Male)
		return p.Male, true
	}
	return "", false
}

func (r *Resolver) promptCached(employeeName, raw, maleOption, femaleOption string) string {
	key := genderKey{Employee: employeeName, Raw: raw}

	r.mu.Lock()
	answer, hit := r.cache[key]
	r.mu.Unlock()
	if hit {
		return answer
	}

	answer = r.prompt(employeeName, raw, maleOption, femaleOption)
	if answer != GenderFemale {
		answer = GenderMale
	}

	r.mu.Lock()
	r.cache[key] = answer
	r.mu.Unlock()
	return answer
}

// DetectGender scans requested quantities for gender-indicating
// garment columns. Returns GenderMale or GenderFemale when exactly one
// side has a positive quantity, "" when both or neither do.
func DetectGender(quantities map[string]string) string {
	var hasMale, hasFemale bool
	for columnID, raw := range quantities {
		if _, ok, _ := parseQuantity(raw); !ok {
			continue
		}
		upper := strings.ToUpper(columnID)
		if containsAny(upper, maleIndicators) {
			hasMale = true
		} else if containsAny(upper, femaleIndicators) {
			hasFemale = true
		}
	}
	switch {
	case hasMale && !hasFemale:
		return GenderMale
	case hasFemale && !hasMale:
		return GenderFemale
	default:
		return ""
	}
}

func containsAny(s string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
