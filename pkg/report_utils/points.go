package reportutils

import "math"

var basePoints = map[string]float64{
	"Plastic":   30,
	"Organic":   20,
	"Sewage":    40,
	"Hazardous": 50,
}

var quantityModifier = map[string]float64{
	"Small":  1,
	"Medium": 1.5,
	"Large":  2,
}

const (
	defaultBasePoints = 10
	defaultModifier   = 1
)

// AssignPoints scores a report by waste type and quantity. Unknown types and
// quantities fall back to the defaults.
func AssignPoints(wasteType string, quantity string) int {

	base, ok := basePoints[wasteType]
	if !ok {
		base = defaultBasePoints
	}
	modifier, ok := quantityModifier[quantity]
	if !ok {
		modifier = defaultModifier
	}

	return int(math.Round(base * modifier))

}
