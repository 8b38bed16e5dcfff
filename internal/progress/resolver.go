// Package progress classifies a route's stops against the latest
// reported bus location. There is no persisted trip state: every call
// reclassifies from scratch, so the result always reflects the ledger
// as of the query.
package progress

import "shuttle_tracker/internal/models"

// State of a stop relative to the bus's reported position.
type State string

const (
	StateCurrent  State = "current"
	StatePassed   State = "passed"
	StateUpcoming State = "upcoming"
)

// fallbackPassedStops is how many leading stops are marked passed when
// a bus is reporting but its currentStop matches no stop name. This is
// a placeholder heuristic inherited from the fleet office's convention,
// not measured progress.
const fallbackPassedStops = 3

// AnnotatedStop is a stop plus its derived state.
type AnnotatedStop struct {
	models.Stop
	State State `json:"state"`
}

// Annotate classifies stops as current, passed or upcoming.
//
// With no location every stop is upcoming. Otherwise the stop whose
// name exactly equals the reported currentStop is current, everything
// with a lower sequence is passed, and the rest are upcoming. If no
// stop name matches, the first fallbackPassedStops stops are marked
// passed and the rest upcoming.
func Annotate(stops []models.Stop, loc *models.BusLocation) []AnnotatedStop {
	annotated := make([]AnnotatedStop, len(stops))
	for i, stop := range stops {
		annotated[i] = AnnotatedStop{Stop: stop, State: StateUpcoming}
	}
	if loc == nil {
		return annotated
	}

	currentIdx := -1
	for i, stop := range stops {
		if stop.Name == loc.CurrentStop {
			currentIdx = i
			break
		}
	}

	if currentIdx == -1 {
		for i := 0; i < len(annotated) && i < fallbackPassedStops; i++ {
			annotated[i].State = StatePassed
		}
		return annotated
	}

	annotated[currentIdx].State = StateCurrent
	for i := range annotated {
		if annotated[i].Sequence < stops[currentIdx].Sequence {
			annotated[i].State = StatePassed
		}
	}
	return annotated
}
