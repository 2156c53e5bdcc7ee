package scene

import (
	"math"
	"math/rand/v2"
)

// GalaxyPoint is one particle of the spiral backdrop with an RGB color in
// [0, 1].
type GalaxyPoint struct {
	Position Vec3       `json:"position"`
	Color    [3]float64 `json:"color"`
}

const (
	galaxyRadius    = 100
	galaxyThickness = 4
	galaxyTurns     = 3
)

// Galaxy generates a spiral-arm backdrop: arms arms of perArm points each,
// winding outward to a fixed radius with a little vertical jitter. Colors
// fade from warm at the core to blue at the rim. The same seed yields the
// same galaxy.
func Galaxy(arms, perArm int, seed uint64) []GalaxyPoint {
	if arms <= 0 || perArm <= 0 {
		return nil
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	points := make([]GalaxyPoint, 0, arms*perArm)
	for arm := 0; arm < arms; arm++ {
		offset := float64(arm) * 2 * math.Pi / float64(arms)
		for i := 0; i < perArm; i++ {
			t := float64(i) / float64(perArm)
			angle := t*2*math.Pi*galaxyTurns + offset
			radius := t * galaxyRadius
			intensity := 1 - radius/galaxyRadius

			points = append(points, GalaxyPoint{
				Position: Vec3{
					X: math.Cos(angle) * radius,
					Y: (rng.Float64() - 0.5) * galaxyThickness,
					Z: math.Sin(angle) * radius,
				},
				Color: [3]float64{intensity, intensity * 0.8, intensity*0.4 + 0.6},
			})
		}
	}
	return points
}
