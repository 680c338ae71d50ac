package profile

import "fmt"

// Region is one of Ghana's administrative regions, stored by canonical name.
type Region string

const (
	RegionAhafo        Region = "Ahafo"
	RegionAshanti      Region = "Ashanti"
	RegionBono         Region = "Bono"
	RegionBonoEast     Region = "Bono East"
	RegionCentral      Region = "Central"
	RegionEastern      Region = "Eastern"
	RegionGreaterAccra Region = "Greater Accra"
	RegionNorthEast    Region = "North East"
	RegionNorthern     Region = "Northern"
	RegionOti          Region = "Oti"
	RegionSavannah     Region = "Savannah"
	RegionUpperEast    Region = "Upper East"
	RegionUpperWest    Region = "Upper West"
	RegionVolta        Region = "Volta"
	RegionWestern      Region = "Western"
	RegionWesternNorth Region = "Western North"
)

var regions = []Region{
	RegionAhafo,
	RegionAshanti,
	RegionBono,
	RegionBonoEast,
	RegionCentral,
	RegionEastern,
	RegionGreaterAccra,
	RegionNorthEast,
	RegionNorthern,
	RegionOti,
	RegionSavannah,
	RegionUpperEast,
	RegionUpperWest,
	RegionVolta,
	RegionWestern,
	RegionWesternNorth,
}

func Regions() []Region {
	out := make([]Region, len(regions))
	copy(out, regions)
	return out
}

// ParseRegion accepts canonical names only; "ashanti" is not "Ashanti".
func ParseRegion(s string) (Region, error) {
	for _, r := range regions {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown region %q", s)
}
