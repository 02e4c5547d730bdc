// Package season holds the static season catalog: events, their scoring
// profiles, and the stage progression requirements.
package season

// Curve selects the position-to-points formula for an event.
type Curve int

const (
	// CurveStandard is the default formula spanning positions 1..40.
	CurveStandard Curve = iota
	// CurveElimination is the linear 45..10 curve spanning positions 1..20.
	CurveElimination
)

// Category buckets event types for trigger and narrative matching.
type Category string

const (
	CategoryCriterium Category = "criterium"
	CategoryTimeTrial Category = "time trial"
	CategoryTrack     Category = "track"
	CategoryClimbing  Category = "climbing"
	CategoryGravel    Category = "gravel"
	CategoryRoad      Category = "road"
)

// Profile declares how an event's results are scored and compared, replacing
// scattered special-casing on event ids.
type Profile struct {
	Curve Curve
	// TimeMeaningful is false for formats where elapsed time carries no
	// ordering signal (elimination; fixed-duration distance challenges).
	// Time-margin awards and time-gap rivalry detection are suppressed.
	TimeMeaningful bool
	// DistanceProximity switches rivalry detection to distance gaps for
	// fixed-duration events where every finisher records the same time.
	DistanceProximity bool
	// SkipRivalry disables rivalry detection entirely (elimination formats,
	// where neither time nor distance separates finishers meaningfully).
	SkipRivalry bool
	// MaxScored caps the scored field size. Positions beyond it score zero.
	MaxScored int
}

// Event is one entry in the static season catalog.
type Event struct {
	Number     int
	Name       string
	Type       string
	Category   Category
	MaxPoints  int
	DistanceKm float64
	ClimbingM  float64
	Profile    Profile
}

// StageKind discriminates the three stage requirement shapes.
type StageKind int

const (
	// StageFixed accepts exactly one designated event.
	StageFixed StageKind = iota
	// StageChoice accepts any event from a set, each usable once.
	StageChoice
	// StageTour accepts the next event in an ordered sequence.
	StageTour
)

// Stage is one slot in the progression sequence.
type Stage struct {
	Index   int
	Kind    StageKind
	EventID int   // StageFixed
	Choices []int // StageChoice
	Tour    []int // StageTour, in required order
}

// FinalStage is the terminal, absorbing stage index.
const FinalStage = 9

// specialThreshold separates regular season events from special/off-season
// events, which validate for any rider but never advance progression.
const specialThreshold = 100

var standard = Profile{Curve: CurveStandard, TimeMeaningful: true, MaxScored: 40}

var events = map[int]Event{
	1:  {1, "Coast and Roast Crit", "criterium", CategoryCriterium, 65, 14.9, 123, standard},
	2:  {2, "Island Classic", "road race", CategoryRoad, 95, 30.5, 156, standard},
	3:  {3, "The Forest Velodrome Elimination", "track elimination", CategoryTrack, 50, 8.0, 0, Profile{Curve: CurveElimination, SkipRivalry: true, MaxScored: 20}},
	4:  {4, "Coastal Loop Time Challenge", "time trial", CategoryTimeTrial, 50, 0, 0, Profile{Curve: CurveStandard, DistanceProximity: true, MaxScored: 40}},
	5:  {5, "North Lake Points Race", "points race", CategoryTrack, 80, 8.0, 0, standard},
	6:  {6, "Easy Hill Climb", "hill climb", CategoryClimbing, 50, 5.7, 127, standard},
	7:  {7, "Flat Eight Criterium", "criterium", CategoryCriterium, 70, 16.9, 202, standard},
	8:  {8, "The Grand Gilbert Fondo", "gran fondo", CategoryRoad, 185, 92.3, 1054, standard},
	9:  {9, "Base Camp Classic", "hill climb", CategoryClimbing, 85, 18.0, 339, standard},
	10: {10, "Beach and Pine TT", "time trial", CategoryTimeTrial, 70, 17.1, 180, standard},
	11: {11, "South Lake Points Race", "points race", CategoryTrack, 60, 8.0, 0, standard},
	12: {12, "Unbound - Little Egypt", "gravel race", CategoryGravel, 145, 38.0, 493, standard},
	13: {13, "Local Tour Stage 1", "stage race", CategoryRoad, 120, 35.2, 174, standard},
	14: {14, "Local Tour Stage 2", "stage race", CategoryRoad, 95, 27.3, 169, standard},
	15: {15, "Local Tour Stage 3", "stage race", CategoryRoad, 135, 28.1, 471, standard},

	// Special events: career aggregates only, no stage progression.
	101: {101, "Singapore Criterium", "criterium", CategoryCriterium, 60, 14.9, 0, standard},
	102: {102, "The Leveller", "points race", CategoryTrack, 40, 8.0, 0, standard},
}

var stages = map[int]Stage{
	1: {Index: 1, Kind: StageFixed, EventID: 1},
	2: {Index: 2, Kind: StageFixed, EventID: 2},
	3: {Index: 3, Kind: StageChoice, Choices: choicePool()},
	4: {Index: 4, Kind: StageFixed, EventID: 3},
	5: {Index: 5, Kind: StageFixed, EventID: 4},
	6: {Index: 6, Kind: StageChoice, Choices: choicePool()},
	7: {Index: 7, Kind: StageFixed, EventID: 5},
	8: {Index: 8, Kind: StageChoice, Choices: choicePool()},
	9: {Index: 9, Kind: StageTour, Tour: []int{13, 14, 15}},
}

func choicePool() []int { return []int{6, 7, 8, 9, 10, 11, 12} }

// Lookup returns the catalog entry for an event number.
func Lookup(eventNumber int) (Event, bool) {
	ev, ok := events[eventNumber]
	return ev, ok
}

// Requirement returns the stage requirement for a stage index.
func Requirement(stageIndex int) (Stage, bool) {
	st, ok := stages[stageIndex]
	return st, ok
}

// IsSpecial reports whether an event id belongs to the special/off-season
// range.
func IsSpecial(eventNumber int) bool {
	return eventNumber > specialThreshold
}

// TourEvents returns the ordered tour sequence of the final stage.
func TourEvents() []int {
	return stages[FinalStage].Tour
}

// FinalTourEvent returns the last event of the tour sequence.
func FinalTourEvent() int {
	tour := TourEvents()
	return tour[len(tour)-1]
}

// ChoicePool returns the optional events available to choice stages.
func ChoicePool() []int { return choicePool() }

// NextFixedEvent maps a stage index to its required event, or 0 for choice
// and tour stages.
func NextFixedEvent(stageIndex int) int {
	st, ok := stages[stageIndex]
	if !ok || st.Kind != StageFixed {
		return 0
	}
	return st.EventID
}
