package progress

import (
	"fmt"
	"testing"

	"shuttle_tracker/internal/models"
)

func makeStops(n int) []models.Stop {
	stops := make([]models.Stop, n)
	for i := range stops {
		stops[i] = models.Stop{
			RouteID:  "1",
			Name:     fmt.Sprintf("STOP %d", i+1),
			Sequence: i + 1,
		}
	}
	return stops
}

func TestAnnotateNoLocation(t *testing.T) {
	stops := makeStops(5)
	annotated := Annotate(stops, nil)
	if len(annotated) != 5 {
		t.Fatalf("expected 5 annotated stops, got %d", len(annotated))
	}
	for _, s := range annotated {
		if s.State != StateUpcoming {
			t.Errorf("stop %q: expected upcoming with no location, got %s", s.Name, s.State)
		}
	}
}

func TestAnnotateExactMatch(t *testing.T) {
	stops := makeStops(22)
	loc := &models.BusLocation{RouteID: "1", CurrentStop: stops[4].Name}

	annotated := Annotate(stops, loc)
	for i, s := range annotated {
		var want State
		switch {
		case i < 4:
			want = StatePassed
		case i == 4:
			want = StateCurrent
		default:
			want = StateUpcoming
		}
		if s.State != want {
			t.Errorf("stop %d (%s): expected %s, got %s", i+1, s.Name, want, s.State)
		}
	}
}

func TestAnnotateFirstStopCurrent(t *testing.T) {
	stops := makeStops(4)
	loc := &models.BusLocation{CurrentStop: stops[0].Name}

	annotated := Annotate(stops, loc)
	if annotated[0].State != StateCurrent {
		t.Errorf("first stop: expected current, got %s", annotated[0].State)
	}
	for _, s := range annotated[1:] {
		if s.State != StateUpcoming {
			t.Errorf("stop %q: expected upcoming, got %s", s.Name, s.State)
		}
	}
}

func TestAnnotateFallback(t *testing.T) {
	stops := makeStops(6)
	loc := &models.BusLocation{CurrentStop: "NOT A REAL STOP"}

	annotated := Annotate(stops, loc)
	for i, s := range annotated {
		want := StateUpcoming
		if i < fallbackPassedStops {
			want = StatePassed
		}
		if s.State != want {
			t.Errorf("stop %d: expected %s, got %s", i+1, want, s.State)
		}
	}
}

func TestAnnotateFallbackShortRoute(t *testing.T) {
	// Fewer stops than the fallback window must not panic.
	stops := makeStops(2)
	loc := &models.BusLocation{CurrentStop: "NOWHERE"}

	annotated := Annotate(stops, loc)
	for _, s := range annotated {
		if s.State != StatePassed {
			t.Errorf("stop %q: expected passed, got %s", s.Name, s.State)
		}
	}
}

func TestAnnotateEmpty(t *testing.T) {
	annotated := Annotate(nil, &models.BusLocation{CurrentStop: "X"})
	if len(annotated) != 0 {
		t.Fatalf("expected empty result, got %d", len(annotated))
	}
}
