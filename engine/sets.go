/*
sets.go - Sets (juegos) calculation

PURPOSE:
  Authorization documents state how many complete uniform sets an
  employee receives. The count follows the occupation's designated
  primary garment: its quantity when requested, otherwise the
  statistical mode of the other requested quantities, highest value
  winning ties.
*/
package engine

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/warp/uniform-engine/catalog"
)

// Sets derives the uniform-sets count for one employee.
//
// The primary garment's quantity wins outright when positive. When the
// primary is absent or zero, the count falls back to the mode of the
// remaining positive quantities; on a frequency tie the highest tied
// quantity wins. No primary configured, or nothing requested, counts
// zero.
func Sets(cat *catalog.Catalog, occupation string, garments []ResolvedGarment, log logrus.FieldLogger) int {
	if log == nil {
		log = logrus.StandardLogger()
	}

	primary, ok := cat.PrimaryGarment(occupation)
	if !ok {
		log.WithField("occupation", occupation).Warn("no primary garment configured, sets is 0")
		return 0
	}
	primaryType := strings.ToUpper(strings.TrimSpace(primary.GarmentType))

	for _, g := range garments {
		if strings.ToUpper(g.Type) == primaryType && g.Quantity > 0 {
			return g.Quantity
		}
	}

	var others []int
	for _, g := range garments {
		if strings.ToUpper(g.Type) != primaryType && g.Quantity > 0 {
			others = append(others, g.Quantity)
		}
	}
	if len(others) == 0 {
		return 0
	}
	return modeHighest(others)
}

// modeHighest returns the most frequent value; among equally frequent
// values, the highest.
func modeHighest(values []int) int {
	counts := make(map[int]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	best, bestCount := 0, 0
	for v, count := range counts {
		if count > bestCount || (count == bestCount && v > best) {
			best, bestCount = v, count
		}
	}
	return best
}
