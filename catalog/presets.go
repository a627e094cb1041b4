/*
presets.go - The shipped default occupation table

PURPOSE:
  A freshly installed system needs a workable catalog before any
  administrator has touched it. This is the restaurant chain's standard
  table: one occupation per service aisle, gendered variants where the
  garments differ between them, and list prices for the three pricing
  regions.

PRICE COLUMNS:
  Each garment carries a 3x3 matrix. The prices helper takes nine
  values in a fixed order:

    prices(smlOther, xlOther, xxlOther,
           smlTarapoto, xlTarapoto, xxlTarapoto,
           smlSanIsidro, xlSanIsidro, xxlSanIsidro)

  A zero cell means "no charge at this location", which is valid and
  distinct from the garment not being offered at all.

SEE ALSO:
  - types.go: GarmentSpec and Occupation
  - store/jsonfile: Where administrators' edits end up
*/
package catalog

import "github.com/shopspring/decimal"

func prices(cells ...float64) PriceMatrix {
	m := make(PriceMatrix, len(SizeBuckets))
	for li, loc := range LocationBuckets {
		for si, size := range SizeBuckets {
			idx := li*3 + si
			if idx < len(cells) && cells[idx] != 0 {
				m.Set(size, loc, decimal.NewFromFloat(cells[idx]))
			}
		}
	}
	return m
}

func upper(garmentType, display string, primary bool, p PriceMatrix) GarmentSpec {
	return GarmentSpec{
		GarmentType: garmentType,
		DisplayName: display,
		Class:       ClassUpper,
		IsPrimary:   primary,
		HasSizes:    true,
		Prices:      p,
	}
}

func lower(garmentType, display string, p PriceMatrix) GarmentSpec {
	return GarmentSpec{
		GarmentType: garmentType,
		DisplayName: display,
		Class:       ClassLower,
		HasSizes:    true,
		Prices:      p,
	}
}

func accessory(garmentType, display string, qty int, p PriceMatrix) GarmentSpec {
	return GarmentSpec{
		GarmentType:     garmentType,
		DisplayName:     display,
		Class:           ClassAccessory,
		DefaultQuantity: qty,
		Prices:          p,
	}
}

// DefaultCatalog returns the shipped occupation table. Callers own the
// returned value and may mutate it freely.
func DefaultCatalog() *Catalog {
	return &Catalog{
		DefaultOccupation: "MOZO",
		DefaultLocation:   "OTHER",
		Occupations: []Occupation{
			{
				Name:        "MOZO",
				DisplayName: "Mozo",
				Synonyms:    []string{"MESERO", "AZAFATO", "MOZO (EVENTUAL)"},
				Active:      true,
				Garments: []GarmentSpec{
					upper("CAMISA", "Camisa", true, prices(18.50, 20.00, 21.50, 19.50, 21.00, 22.50, 24.00, 26.00, 28.00)),
					upper("MANDILON", "Mandilón", false, prices(18.00, 18.00, 19.00, 19.00, 19.00, 20.00, 22.00, 22.00, 23.00)),
					upper("ANDARIN", "Andarín", false, prices(15.00, 16.00, 17.00, 15.50, 16.50, 17.50, 18.00, 19.00, 20.00)),
				},
			},
			{
				Name:        "MOZA",
				DisplayName: "Moza",
				Synonyms:    []string{"MESERA", "AZAFATA"},
				Active:      true,
				Garments: []GarmentSpec{
					upper("BLUSA", "Blusa", true, prices(17.50, 19.00, 20.50, 18.50, 20.00, 21.50, 23.00, 25.00, 27.00)),
					upper("MANDILON", "Mandilón", false, prices(18.00, 18.00, 19.00, 19.00, 19.00, 20.00, 22.00, 22.00, 23.00)),
					upper("ANDARIN", "Andarín", false, prices(15.00, 16.00, 17.00, 15.50, 16.50, 17.50, 18.00, 19.00, 20.00)),
				},
			},
			{
				Name:        "DELIVERY",
				DisplayName: "Delivery",
				Synonyms:    []string{"MOTORIZADO", "REPARTIDOR"},
				Active:      true,
				Garments: []GarmentSpec{
					upper("POLO", "Polo", true, prices(12.00, 13.00, 14.00, 12.50, 13.50, 14.50, 14.00, 15.00, 16.00)),
					upper("CASACA", "Casaca", false, prices(45.00, 48.00, 51.00, 47.00, 50.00, 53.00, 52.00, 55.00, 58.00)),
					accessory("GORRA", "Gorra", 1, prices(8.00, 8.00, 8.00, 8.50, 8.50, 8.50, 9.00, 9.00, 9.00)),
				},
			},
			{
				Name:        "PACKER",
				DisplayName: "Packer",
				Synonyms:    []string{"EMPACADOR"},
				Active:      true,
				Garments: []GarmentSpec{
					upper("POLO", "Polo", true, prices(12.00, 13.00, 14.00, 12.50, 13.50, 14.50, 14.00, 15.00, 16.00)),
					accessory("GORRA", "Gorra", 1, prices(8.00, 8.00, 8.00, 8.50, 8.50, 8.50, 9.00, 9.00, 9.00)),
				},
			},
			{
				Name:        "BARMAN",
				DisplayName: "Barman",
				Synonyms:    []string{"BARTENDER", "BAR"},
				Active:      true,
				Garments: []GarmentSpec{
					upper("CAMISA", "Camisa", true, prices(18.50, 20.00, 21.50, 19.50, 21.00, 22.50, 24.00, 26.00, 28.00)),
					upper("BLUSA", "Blusa", false, prices(17.50, 19.00, 20.50, 18.50, 20.00, 21.50, 23.00, 25.00, 27.00)),
					upper("POLO", "Polo", false, prices(12.00, 13.00, 14.00, 12.50, 13.50, 14.50, 14.00, 15.00, 16.00)),
					upper("PECHERA", "Pechera", false, prices(16.00, 16.00, 17.00, 16.50, 16.50, 17.50, 19.00, 19.00, 20.00)),
				},
			},
			{
				Name:        "CAJA (HOMBRE)",
				DisplayName: "Caja (Hombre)",
				Synonyms:    []string{"CAJERO"},
				Active:      true,
				Garments: []GarmentSpec{
					upper("CAMISA", "Camisa", true, prices(18.50, 20.00, 21.50, 19.50, 21.00, 22.50, 24.00, 26.00, 28.00)),
					upper("SACO", "Saco", false, prices(85.00, 90.00, 95.00, 88.00, 93.00, 98.00, 98.00, 104.00, 110.00)),
				},
			},
			{
				Name:        "CAJA (MUJER)",
				DisplayName: "Caja (Mujer)",
				Synonyms:    []string{"CAJERA"},
				Active:      true,
				Garments: []GarmentSpec{
					upper("BLUSA", "Blusa", true, prices(17.50, 19.00, 20.50, 18.50, 20.00, 21.50, 23.00, 25.00, 27.00)),
					upper("SACO", "Saco", false, prices(85.00, 90.00, 95.00, 88.00, 93.00, 98.00, 98.00, 104.00, 110.00)),
				},
			},
			{
				Name:        "SEGURIDAD",
				DisplayName: "Seguridad",
				Synonyms:    []string{"VIGILANTE", "AGENTE DE SEGURIDAD"},
				Active:      true,
				Garments: []GarmentSpec{
					upper("CAMISA", "Camisa", true, prices(18.50, 20.00, 21.50, 19.50, 21.00, 22.50, 24.00, 26.00, 28.00)),
					upper("BLUSA", "Blusa", false, prices(17.50, 19.00, 20.50, 18.50, 20.00, 21.50, 23.00, 25.00, 27.00)),
					upper("SACO", "Saco", false, prices(85.00, 90.00, 95.00, 88.00, 93.00, 98.00, 98.00, 104.00, 110.00)),
				},
			},
			{
				Name:        "ANFITRIONAJE (HOMBRE)",
				DisplayName: "Anfitrionaje (Hombre)",
				Synonyms:    []string{"ANFITRION"},
				Active:      true,
				Garments: []GarmentSpec{
					upper("CAMISA", "Camisa", true, prices(18.50, 20.00, 21.50, 19.50, 21.00, 22.50, 24.00, 26.00, 28.00)),
					upper("CASACA", "Casaca", false, prices(45.00, 48.00, 51.00, 47.00, 50.00, 53.00, 52.00, 55.00, 58.00)),
				},
			},
			{
				Name:        "ANFITRIONAJE (MUJER)",
				DisplayName: "Anfitrionaje (Mujer)",
				Synonyms:    []string{"ANFITRIONA"},
				Active:      true,
				Garments: []GarmentSpec{
					upper("BLUSA", "Blusa", true, prices(17.50, 19.00, 20.50, 18.50, 20.00, 21.50, 23.00, 25.00, 27.00)),
					upper("CASACA", "Casaca", false, prices(45.00, 48.00, 51.00, 47.00, 50.00, 53.00, 52.00, 55.00, 58.00)),
				},
			},
			{
				Name:        "PRODUCCION",
				DisplayName: "Producción",
				Synonyms:    []string{"PRODUCCIÓN / COCINA", "PRODUCCION / COCINA", "COCINA", "COCINERO", "CHEF"},
				Active:      true,
				Garments: []GarmentSpec{
					upper("CHAQUETA", "Chaqueta", true, prices(32.00, 34.00, 36.00, 33.00, 35.00, 37.00, 38.00, 40.00, 42.00)),
					upper("POLO", "Polo", false, prices(12.00, 13.00, 14.00, 12.50, 13.50, 14.50, 14.00, 15.00, 16.00)),
					lower("PANTALON", "Pantalón", prices(28.00, 30.00, 32.00, 29.00, 31.00, 33.00, 33.00, 35.00, 37.00)),
					upper("PECHERA", "Pechera", false, prices(16.00, 16.00, 17.00, 16.50, 16.50, 17.50, 19.00, 19.00, 20.00)),
					upper("GARIBALDI", "Garibaldi", false, prices(14.00, 15.00, 16.00, 14.50, 15.50, 16.50, 17.00, 18.00, 19.00)),
				},
			},
			{
				Name:        "STAFF ADMINISTRATIVO (HOMBRE)",
				DisplayName: "Staff Administrativo (Hombre)",
				Synonyms:    []string{"ADMINISTRADOR (HOMBRE)", "ADMINISTRADOR (H)", "STAFF ADMINISTRATIVO (H)"},
				Active:      true,
				Garments: []GarmentSpec{
					upper("CAMISA", "Camisa", true, prices(18.50, 20.00, 21.50, 19.50, 21.00, 22.50, 24.00, 26.00, 28.00)),
					upper("SACO", "Saco", false, prices(85.00, 90.00, 95.00, 88.00, 93.00, 98.00, 98.00, 104.00, 110.00)),
					lower("PANTALON", "Pantalón", prices(28.00, 30.00, 32.00, 29.00, 31.00, 33.00, 33.00, 35.00, 37.00)),
					accessory("CORBATA", "Corbata", 2, prices(10.00, 10.00, 10.00, 10.00, 10.00, 10.00, 12.00, 12.00, 12.00)),
				},
			},
			{
				Name:        "STAFF ADMINISTRATIVO (MUJER)",
				DisplayName: "Staff Administrativo (Mujer)",
				Synonyms:    []string{"ADMINISTRADORA", "ADMINISTRADOR (MUJER)", "ADMINISTRADOR (M)"},
				Active:      true,
				Garments: []GarmentSpec{
					upper("BLUSA", "Blusa", true, prices(17.50, 19.00, 20.50, 18.50, 20.00, 21.50, 23.00, 25.00, 27.00)),
					upper("SACO", "Saco", false, prices(85.00, 90.00, 95.00, 88.00, 93.00, 98.00, 98.00, 104.00, 110.00)),
					lower("PANTALON", "Pantalón", prices(28.00, 30.00, 32.00, 29.00, 31.00, 33.00, 33.00, 35.00, 37.00)),
				},
			},
			{
				Name:        "CORREDOR",
				DisplayName: "Corredor",
				Synonyms:    []string{"RUNNER"},
				Active:      true,
				Garments: []GarmentSpec{
					upper("POLO", "Polo", true, prices(12.00, 13.00, 14.00, 12.50, 13.50, 14.50, 14.00, 15.00, 16.00)),
					accessory("GORRA", "Gorra", 1, prices(8.00, 8.00, 8.00, 8.50, 8.50, 8.50, 9.00, 9.00, 9.00)),
				},
			},
		},
	}
}
