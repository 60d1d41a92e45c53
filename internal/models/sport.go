package models

type Sport string

const (
	SportFootball      Sport = "football"
	SportBasketball    Sport = "basketball"
	SportVolleyball    Sport = "volleyball"
	SportHandball      Sport = "handball"
	SportTennis        Sport = "tennis"
	SportPadel         Sport = "padel"
	SportCycling       Sport = "cycling"
	SportRunning       Sport = "running"
	SportSkateboarding Sport = "skateboarding"
	SportCamping       Sport = "camping"
	SportFitness       Sport = "fitness"
	SportSwimming      Sport = "swimming"
)

var allSports = map[Sport]struct{}{
	SportFootball:      {},
	SportBasketball:    {},
	SportVolleyball:    {},
	SportHandball:      {},
	SportTennis:        {},
	SportPadel:         {},
	SportCycling:       {},
	SportRunning:       {},
	SportSkateboarding: {},
	SportCamping:       {},
	SportFitness:       {},
	SportSwimming:      {},
}

func (s Sport) Valid() bool {
	_, ok := allSports[s]
	return ok
}
