package roomscoring

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Scorer rates a candidate room for a guest; higher is better.
// Implementations must be deterministic for the same inputs.
type Scorer interface {
	Score(room *domain.Room, prefs domain.AssignmentPreferences, now time.Time) float64
}

// WeightedScorer sums configured weights of the criteria a room satisfies
type WeightedScorer struct {
	FloorMatch        float64
	ElevatorProximity float64
	CleanFreshness    float64
	FreshnessWindow   time.Duration
}

// Score implements Scorer
func (s WeightedScorer) Score(room *domain.Room, prefs domain.AssignmentPreferences, now time.Time) float64 {
	var score float64

	if prefs.PreferredFloor != nil && room.Floor == *prefs.PreferredFloor {
		score += s.FloorMatch
	}

	if prefs.NearElevator && room.NearElevator {
		score += s.ElevatorProximity
	}

	if room.LastCleanedAt != nil && s.FreshnessWindow > 0 {
		age := now.Sub(*room.LastCleanedAt)
		if age >= 0 && age <= s.FreshnessWindow {
			score += s.CleanFreshness
		}
	}

	return score
}

// ConstantScorer gives every room the same score, so selection falls back to room number order
type ConstantScorer struct{}

// Score implements Scorer
func (ConstantScorer) Score(*domain.Room, domain.AssignmentPreferences, time.Time) float64 {
	return 0
}

// Rank orders candidates best first: highest score, ties by lowest room number
func Rank(scorer Scorer, rooms []*domain.Room, prefs domain.AssignmentPreferences, now time.Time) []*domain.Room {
	type scored struct {
		room  *domain.Room
		score float64
	}

	items := make([]scored, len(rooms))
	for i, room := range rooms {
		items[i] = scored{room: room, score: scorer.Score(room, prefs, now)}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].score != items[j].score {
			return items[i].score > items[j].score
		}
		return LessRoomNumber(items[i].room.Number, items[j].room.Number)
	})

	ranked := make([]*domain.Room, len(items))
	for i, item := range items {
		ranked[i] = item.room
	}
	return ranked
}

// Best highest ranked room, nil when rooms is empty
func Best(scorer Scorer, rooms []*domain.Room, prefs domain.AssignmentPreferences, now time.Time) *domain.Room {
	ranked := Rank(scorer, rooms, prefs, now)
	if len(ranked) == 0 {
		return nil
	}
	return ranked[0]
}

// LessRoomNumber numeric-aware order of room numbers: "9" < "10" < "101"; equal lengths compare lexically
func LessRoomNumber(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}
