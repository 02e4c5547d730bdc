// Package narrative selects career-story moments and assembles post-race
// recaps from the rider's season state.
package narrative

// Tier buckets a finishing position for story matching and recap templates.
type Tier string

const (
	TierWin     Tier = "win"
	TierPodium  Tier = "podium"
	TierTop10   Tier = "top10"
	TierMidpack Tier = "midpack"
	TierBack    Tier = "back"
)

// TierFor maps a 1-based finishing position to its performance tier.
func TierFor(position int) Tier {
	switch {
	case position == 1:
		return TierWin
	case position <= 3:
		return TierPodium
	case position <= 10:
		return TierTop10
	case position <= 20:
		return TierMidpack
	default:
		return TierBack
	}
}

// Category groups stories by the slice of career life they describe.
type Category string

const (
	CategorySeasonOpening Category = "seasonOpening"
	CategoryEarlyCareer   Category = "earlyCareer"
	CategoryMidSeason     Category = "midSeason"
	CategoryLateSeason    Category = "lateSeason"
	CategoryEquipment     Category = "equipment"
	CategoryLifestyle     Category = "lifestyle"
	CategoryMotivation    Category = "motivation"
	CategoryBreakthrough  Category = "breakthrough"
	CategorySetback       Category = "setback"
	CategoryRivalry       Category = "rivalry"
	CategoryLocalColor    Category = "localColor"
	CategoryWeather       Category = "weather"
	CategoryTravel        Category = "travel"
	CategoryPersonality   Category = "personality"
	CategoryTourPrep      Category = "tourPrep"
	CategorySpecial       Category = "specialEvents"
)

// Claim marks a factual assertion a story text makes about the rider's
// record. Claims are validated against the context before selection so a
// story never contradicts the career it narrates.
type Claim int

const (
	// ClaimWinStreak asserts at least two consecutive wins.
	ClaimWinStreak Claim = iota
	// ClaimMultipleWins asserts more than one career win.
	ClaimMultipleWins
	// ClaimPastWin references an earlier victory.
	ClaimPastWin
	// ClaimMultiplePodiums asserts more than one podium.
	ClaimMultiplePodiums
	// ClaimMultiSeason references previous seasons. Always rejected in a
	// single-season career.
	ClaimMultiSeason
	// ClaimVeteran asserts substantial racing experience.
	ClaimVeteran
	// ClaimFrontRunner asserts habitual top-10 finishing.
	ClaimFrontRunner
	// ClaimRivalHistory references an established rival.
	ClaimRivalHistory
)

// Condition gates a story on the race and season state. Zero-value fields
// are unset and match anything.
type Condition struct {
	RaceNumbers        []int  // event numbers the story fits
	Tiers              []Tier // performance tiers; empty with AnyTier false = any
	AnyTier            bool   // explicit wildcard, scores lower than a tier match
	MinImprovement     int    // places better than predicted
	ConsecutiveGood    int    // top-10 streak length
	ConsecutivePodiums int
	MinPoints          int
	WinCounts          []int // exact career win totals
	PodiumCounts       []int
	StageCounts        []int // stages completed
	RecentPositions    []int // most recent finishing position
	FirstWin           bool
	WorseResult        bool // noticeably below prediction
	OnStreak           bool // two or more consecutive wins
	MinRaces           int
	TraitMin           map[string]int
	NeedsRivals        bool
}

// Story is one reusable narrative moment. Text may carry {placeholders}
// substituted at recap time. Once used by a rider it is never shown again.
type Story struct {
	ID       string
	Category Category
	Text     string
	Weight   float64
	When     Condition
	Claims   []Claim
}

var catalog = []Story{
	// Season opening: only ever shown for the first race.
	{ID: "opening_hometown", Category: CategorySeasonOpening, Weight: 0.9,
		When: Condition{RaceNumbers: []int{1}},
		Text: "Six months ago you were riding local club loops, wondering if you had what it takes to race for real. Now you're lined up at {eventName}, number pinned on, heart hammering with equal parts excitement and terror. The riders around you look fast. You've trained for this, pictured this, but standing in the pre-race churn the reality hits differently than the fantasy."},
	{ID: "opening_leap", Category: CategorySeasonOpening, Weight: 0.9,
		When: Condition{RaceNumbers: []int{1}},
		Text: "The decision to race didn't come gradually. It came all at once, late one night scrolling results and realizing you'd been making excuses for too long. You registered for {eventName} before you could change your mind. Your bike isn't the newest and your kit doesn't match, but the training miles are in your legs."},
	{ID: "opening_proving_ground", Category: CategorySeasonOpening, Weight: 0.7,
		When: Condition{RaceNumbers: []int{1}},
		Text: "You've been the fastest in your friend group for years, winning unofficial sprints and crushing group-ride climbs. But that isn't real racing. {eventName} is where you find out whether local dominance translates into actual competitive ability."},

	// Early career: events 2-5.
	{ID: "early_bike_struggles", Category: CategoryEarlyCareer, Weight: 0.7,
		When: Condition{RaceNumbers: []int{2, 3, 4}, Tiers: []Tier{TierMidpack, TierBack}},
		Text: "Your bike isn't the problem. You keep telling yourself that as another rider on a carbon race machine floats past. It's not the equipment, it's the legs. At least that's what you're choosing to believe as your aluminium frame rattles over the rough stuff."},
	{ID: "early_routine", Category: CategoryEarlyCareer, Weight: 0.6,
		When: Condition{RaceNumbers: []int{2, 3}, AnyTier: true},
		Text: "You're still figuring out a pre-race routine. Coffee or no coffee? Eat two hours out or three? Around you, riders move through practised warm-ups while you check your tire pressure for the third time."},
	{ID: "early_first_good_result", Category: CategoryEarlyCareer, Weight: 0.8,
		When: Condition{RaceNumbers: []int{3, 4, 5}, Tiers: []Tier{TierPodium, TierTop10}, MinImprovement: 5, MinRaces: 2},
		Text: "Something clicked in that last race. Maybe it was positioning, maybe fitness, maybe luck. Whatever it was, you finished higher than you dared hope, and suddenly this whole racing thing feels possible."},
	{ID: "early_positioning", Category: CategoryEarlyCareer, Weight: 0.7,
		When: Condition{RaceNumbers: []int{3, 4, 5}, Tiers: []Tier{TierTop10, TierPodium}, MinRaces: 2},
		Text: "You're starting to understand that where you sit in the pack matters almost as much as how strong your legs are. Last race you burned matches fighting for position. This time you're deliberate about where you place yourself before the key moments."},
	{ID: "early_imposter", Category: CategoryEarlyCareer, Weight: 0.5,
		When: Condition{RaceNumbers: []int{2, 3, 4, 5}, AnyTier: true},
		Text: "Every race you half expect someone to tap you on the shoulder and tell you that you don't belong here. The feeling never quite goes away, even when the results say otherwise."},

	// Mid season: events 6-10.
	{ID: "mid_confidence", Category: CategoryMidSeason, Weight: 0.7,
		When: Condition{RaceNumbers: []int{6, 7, 8}, Tiers: []Tier{TierTop10, TierPodium}, ConsecutiveGood: 2},
		Text: "The pack dynamics are starting to make sense. You can read moves before they happen, find the right wheels, anticipate attacks. What felt like chaos a few races ago now has patterns. You're not surviving in the peloton anymore, you're racing with intent."},
	{ID: "mid_race_craft", Category: CategoryMidSeason, Weight: 0.7,
		When: Condition{RaceNumbers: []int{7, 8, 9, 10}, Tiers: []Tier{TierTop10, TierPodium, TierWin}},
		Text: "You're developing race craft, the subtle skills that separate experienced racers from strong riders. How to shelter from wind without being obvious. When to close gaps and when to let them go. It's an education you can only get by racing."},
	{ID: "mid_consistency", Category: CategoryMidSeason, Weight: 0.7,
		When: Condition{RaceNumbers: []int{8, 9, 10}, Tiers: []Tier{TierTop10, TierPodium}, ConsecutiveGood: 3},
		Text: "You're building a reputation for consistency. Not the flashiest rider, not the strongest on any given day, but always there, always competitive, always in the points. That reliability matters more than occasional brilliance."},
	{ID: "mid_financial_reality", Category: CategoryMidSeason, Weight: 0.6,
		When: Condition{RaceNumbers: []int{6, 7, 8}, Tiers: []Tier{TierMidpack, TierBack}},
		Text: "Racing isn't cheap, and the costs add up faster than you budgeted: entry fees, equipment, travel, the endless small expenses. You've started packing your own race-day meals and hunting every discount going."},
	{ID: "mid_breakaways", Category: CategoryMidSeason, Weight: 0.7,
		When: Condition{RaceNumbers: []int{8, 9, 10}, Tiers: []Tier{TierWin, TierPodium, TierTop10}},
		Text: "You've started making it into breakaways. Not just covering moves, but initiating them. The calculated risk of going off the front, the shaky cooperation with strangers, the arithmetic of whether a break will stick. It's a different dimension of racing."},

	// Late season: events 11+.
	{ID: "late_fatigue", Category: CategoryLateSeason, Weight: 0.6,
		When: Condition{RaceNumbers: []int{11, 12, 13}, AnyTier: true},
		Text: "The season is taking its toll. You feel it in how your legs answer hard efforts, in the extra time recovery takes, in the mental weight of showing up race after race. This is where consistency matters most, when everyone is tired and it would be easy to mail one in."},
	{ID: "late_final_push", Category: CategoryLateSeason, Weight: 0.8,
		When: Condition{RaceNumbers: []int{13, 14, 15}, AnyTier: true},
		Text: "Everything comes down to these final races. Points accumulated over months, form built through countless training hours, lessons learned in a dozen race situations. The standings are still fluid and every place gained or lost carries weight."},
	{ID: "late_fitness_peak", Category: CategoryLateSeason, Weight: 0.8,
		When: Condition{RaceNumbers: []int{13, 14, 15}, Tiers: []Tier{TierWin, TierPodium}},
		Text: "All the training, all the racing, all the recovery: it's culminating now. You feel the best you've felt all season, that rare confluence of fitness and freshness that defines peak form. These final races come at exactly the right moment."},
	{ID: "late_reflection", Category: CategoryLateSeason, Weight: 0.7,
		When: Condition{RaceNumbers: []int{13, 14}, Tiers: []Tier{TierWin, TierPodium, TierTop10}},
		Text: "Looking back at where you started this season, the progress is undeniable. The rider who toed the line at the opener, nervous and uncertain, barely resembles who you are now. You've learned to race, learned to suffer, learned what you're capable of."},

	// Equipment.
	{ID: "equip_tire_choice", Category: CategoryEquipment, Weight: 0.4,
		When: Condition{RaceNumbers: []int{3, 4, 5, 6}, AnyTier: true},
		Text: "You spent an embarrassing amount of time researching tires for this race. Compound, pressure, tubeless or tubes. Your friends think you're overthinking it, but if the right rubber saves five watts or buys cornering confidence, that's worth the rabbit hole."},
	{ID: "equip_new_wheels", Category: CategoryEquipment, Weight: 0.5,
		When: Condition{RaceNumbers: []int{3, 4, 5}, Tiers: []Tier{TierTop10, TierPodium, TierWin}},
		Text: "After weeks of comparing prices you finally pulled the trigger: new wheels. Not the carbon dream set, but a solid upgrade that cost a serious chunk of the budget. Whether they actually make you faster remains to be seen. Psychologically, they already have."},
	{ID: "equip_dialed", Category: CategoryEquipment, Weight: 0.4,
		When: Condition{RaceNumbers: []int{7, 8, 9}, AnyTier: true},
		Text: "You've stopped worrying about equipment. The bike is maintained, the kit is comfortable, the gear works. The mental space that used to be occupied by equipment anxiety is now spent on actual racing. The setup is dialed and the excuses are gone."},

	// Lifestyle.
	{ID: "life_morning_alarm", Category: CategoryLifestyle, Weight: 0.4,
		When: Condition{RaceNumbers: []int{2, 3, 4, 5, 6}, AnyTier: true},
		Text: "The alarm goes off at 5:30 and for three full seconds you debate whether racing is really worth this. Then you remember why you started: the speed, the challenge, the person you're becoming. You roll out of bed and start the coffee."},
	{ID: "life_sleep_priority", Category: CategoryLifestyle, Weight: 0.4,
		When: Condition{RaceNumbers: []int{6, 7, 8, 9}, AnyTier: true},
		Text: "Sleep has become non-negotiable. Eight hours minimum, nine when possible. Friends joke about your grandmother bedtime, but the difference on race day is undeniable."},
	{ID: "life_social_cost", Category: CategoryLifestyle, Weight: 0.3,
		When: Condition{RaceNumbers: []int{5, 6, 7}, AnyTier: true},
		Text: "Your friends have stopped inviting you to late nights out. They know you'll either decline for an early ride or leave by nine, counting sleep hours. Racing has quietly rearranged your whole social life."},

	// Motivation.
	{ID: "motiv_pure_love", Category: CategoryMotivation, Weight: 0.5,
		When: Condition{RaceNumbers: []int{4, 5, 6, 7, 8}, AnyTier: true},
		Text: "Strip away the tactics, the tech and the data, and what's left is simple: you love riding bikes fast. The wind, the burn in your legs, the sensation of pushing right up against your limit. This is what you're here for."},
	{ID: "motiv_doubters", Category: CategoryMotivation, Weight: 0.5,
		When: Condition{RaceNumbers: []int{6, 7, 8, 9}, Tiers: []Tier{TierWin, TierPodium, TierTop10}},
		Text: "Not everyone believed you could do this. Some laughed at the ambition, said racing was for younger athletes, called it a waste of time. Part of you races to prove them wrong. The bigger part races to prove something to yourself."},
	{ID: "motiv_mentor", Category: CategoryMotivation, Weight: 0.5,
		When: Condition{RaceNumbers: []int{6, 7, 8, 9}, AnyTier: true},
		Text: "An experienced racer took you aside recently: most people never find out what they're capable of because they quit before finding out. The words stuck. Today is about not quitting."},

	// Breakthrough.
	{ID: "break_first_win", Category: CategoryBreakthrough, Weight: 1.0,
		When: Condition{Tiers: []Tier{TierWin}, FirstWin: true},
		Text: "You won. Actually won. Not placed well, not exceeded expectations, but crossed the line first with everyone else behind you. Euphoria mixed with disbelief mixed with validation of every early alarm and hard session and sacrifice."},
	{ID: "break_podium_streak", Category: CategoryBreakthrough, Weight: 0.9,
		When:   Condition{Tiers: []Tier{TierPodium}, ConsecutivePodiums: 3},
		Claims: []Claim{ClaimMultiplePodiums},
		Text:   "Three races, three podiums. This isn't luck anymore; it's form, consistency, the accumulation of everything you've worked toward. Riders are starting to recognize you at sign-in, and not casually."},
	{ID: "break_tactical_win", Category: CategoryBreakthrough, Weight: 0.8,
		When:   Condition{RaceNumbers: []int{7, 8, 9, 10}, Tiers: []Tier{TierWin}, MinRaces: 2},
		Claims: []Claim{ClaimPastWin},
		Text:   "Your last win wasn't about being strongest, it was about being smartest. Energy conserved while others wasted it, position perfect for the finale, effort timed to the second. That's the kind of racing that wins seasons."},
	{ID: "break_mental", Category: CategoryBreakthrough, Weight: 0.8,
		When: Condition{RaceNumbers: []int{5, 6, 7, 8}, Tiers: []Tier{TierWin, TierPodium, TierTop10}, MinImprovement: 5, MinRaces: 2},
		Text: "Your last race taught you something crucial: the mind quits before the body does. When you pushed past the voice saying this is too hard, there was a whole extra gear underneath. True limits sit further out than you thought."},
	{ID: "break_consistent_excellence", Category: CategoryBreakthrough, Weight: 0.9,
		When:   Condition{RaceNumbers: []int{9, 10, 11}, Tiers: []Tier{TierTop10, TierPodium}, ConsecutiveGood: 6},
		Claims: []Claim{ClaimFrontRunner},
		Text:   "You haven't finished outside the top ten in six races. That kind of consistency is rare. You're not having good days anymore; you've reached a plateau of consistent excellence."},

	// Setback.
	{ID: "set_bad_day", Category: CategorySetback, Weight: 0.7,
		When: Condition{Tiers: []Tier{TierBack}, WorseResult: true},
		Text: "Some days the legs just aren't there. No explanation, no warning, only the mid-race realization that you're off form and nothing can be done about it. You fought through to the finish, but it was ugly."},
	{ID: "set_tactical_error", Category: CategorySetback, Weight: 0.6,
		When: Condition{Tiers: []Tier{TierMidpack, TierBack}, WorseResult: true},
		Text: "You made a tactical mistake today: attacked too early, chased the wrong move, sat too far back for the finale. The legs were there but the brain made the wrong call. The hardest lessons come from races you should have had."},
	{ID: "set_learning", Category: CategorySetback, Weight: 0.7,
		When: Condition{Tiers: []Tier{TierBack}, WorseResult: true},
		Text: "Today hurt, physically and otherwise. But you're choosing to treat it as tuition paid. Every failure teaches something if you're willing to learn. Tomorrow you'll be smarter."},
	{ID: "set_wrong_position", Category: CategorySetback, Weight: 0.6,
		When: Condition{Tiers: []Tier{TierMidpack, TierBack}, WorseResult: true},
		Text: "You were in the wrong spot when the race split. Too far back to respond, boxed in when you needed to move. By the time you fought forward the damage was done. Positioning errors are expensive lessons."},

	// Rivalry: all gated on an established rival.
	{ID: "rival_emergence", Category: CategoryRivalry, Weight: 0.7,
		When:   Condition{RaceNumbers: []int{8, 9, 10}, Tiers: []Tier{TierTop10, TierPodium}, NeedsRivals: true},
		Claims: []Claim{ClaimRivalHistory},
		Text:   "There's a rider you keep seeing in results, racing a similar schedule on a similar trajectory. You've barely made eye contact, but you track their finishes obsessively. When they beat you it stings more than it should."},
	{ID: "rival_revenge", Category: CategoryRivalry, Weight: 0.6,
		When:   Condition{RaceNumbers: []int{6, 7, 8, 9}, AnyTier: true, MinRaces: 2, NeedsRivals: true},
		Claims: []Claim{ClaimRivalHistory},
		Text:   "A rider who beat you soundly last time out is here again. You've replayed that race, worked out what went wrong, planned today differently. Revenge might be petty, but it's motivating."},
	{ID: "rival_respect", Category: CategoryRivalry, Weight: 0.5,
		When:   Condition{RaceNumbers: []int{7, 8, 9, 10}, AnyTier: true, NeedsRivals: true},
		Claims: []Claim{ClaimRivalHistory},
		Text:   "You've raced the same core group all season and a mutual respect has grown. You know their strengths, they know yours. In the pack you acknowledge each other with nods: competitors, but fellow travellers too."},

	// Local color: venue texture keyed to specific events.
	{ID: "color_coast_and_roast", Category: CategoryLocalColor, Weight: 0.5,
		When: Condition{RaceNumbers: []int{1, 7}, AnyTier: true},
		Text: "The local crit scene has a reputation: fast, technical, unforgiving of positioning mistakes. The corners come rapid-fire and one hesitation costs twenty places. Locals dominate here because they know exactly where to brake and where to carry speed."},
	{ID: "color_velodrome", Category: CategoryLocalColor, Weight: 0.6,
		When: Condition{RaceNumbers: []int{3}, AnyTier: true},
		Text: "Track racing is a different animal: nowhere to hide, nowhere to rest, raw speed and tactical awareness. The elimination format is particularly cruel. Every lap someone goes home, and the pressure never lets up."},
	{ID: "color_race_of_truth", Category: CategoryLocalColor, Weight: 0.6,
		When: Condition{RaceNumbers: []int{4, 10}, AnyTier: true},
		Text: "Time trials are the race of truth: you, the bike and the clock. No tactics to hide behind, no wheels to follow. Every watt matters and every second of aero discipline counts."},
	{ID: "color_gravel", Category: CategoryLocalColor, Weight: 0.7,
		When: Condition{RaceNumbers: []int{12}, AnyTier: true},
		Text: "{eventName} isn't a typical race. The gravel sectors are rough and unpredictable, the distance long enough to expose any crack in fitness or pacing, and the whole event carries a wild, adventurous energy that standard road racing doesn't."},
	{ID: "color_hill_climb", Category: CategoryLocalColor, Weight: 0.6,
		When: Condition{RaceNumbers: []int{6, 9}, AnyTier: true},
		Text: "Hill climbs are elegantly simple and brutally hard. The road goes up, and either you have the legs or you don't. No hiding, no tactics. You versus gravity in its purest form."},

	// Weather.
	{ID: "weather_wind", Category: CategoryWeather, Weight: 0.4,
		When: Condition{RaceNumbers: []int{3, 4, 5, 6, 7, 8}, AnyTier: true},
		Text: "The wind is howling today: crosswinds that will split the field, headwinds that punish anyone working too early. Wind racing demands echelon positioning and tactical patience. Get it wrong and you're gapped before you know what happened."},
	{ID: "weather_heat", Category: CategoryWeather, Weight: 0.4,
		When: Condition{RaceNumbers: []int{5, 6, 7, 8, 9}, AnyTier: true},
		Text: "The heat is brutal, the kind that makes every effort feel double and drains you before the flag even drops. Hydration becomes as important as position. Some riders wilt in this; today you find out which kind you are."},
	{ID: "weather_perfect", Category: CategoryWeather, Weight: 0.3,
		When: Condition{RaceNumbers: []int{4, 5, 6, 7, 8}, AnyTier: true},
		Text: "Today's conditions are perfect: temperature in the sweet spot, barely a breath of wind, dry roads. These are the days pure form decides, with no weather excuses available. Either you're fast today or you're not."},

	// Travel.
	{ID: "travel_long_drive", Category: CategoryTravel, Weight: 0.3,
		When: Condition{RaceNumbers: []int{4, 5, 6, 7, 8}, AnyTier: true},
		Text: "The drive out was longer than expected, leaving before dawn to make the start. You tried to rest in the car but pre-race nerves made that impossible. Now you're here, travel-tired but committed to making the trip worth it."},
	{ID: "travel_local", Category: CategoryTravel, Weight: 0.3,
		When: Condition{RaceNumbers: []int{1, 2, 7}, AnyTier: true},
		Text: "Today's race is close to home, on roads you train on every week. Sleeping in your own bed, riding to the start, knowing every pothole on the course. Home advantage is real, even at this level."},

	// Personality-driven: gated on strong traits.
	{ID: "pers_confident_swagger", Category: CategoryPersonality, Weight: 0.8,
		When: Condition{MinRaces: 3, TraitMin: map[string]int{"confidence": 70}},
		Text: "You've been carrying yourself differently lately. The self-doubt that used to creep in before races has been replaced by a calm certainty. You know what you're capable of now, and it shows in how you race."},
	{ID: "pers_confident_expectation", Category: CategoryPersonality, Weight: 0.8,
		When: Condition{Tiers: []Tier{TierPodium, TierWin}, TraitMin: map[string]int{"confidence": 70}},
		Text: "There's a mental shift happening. Where you once hoped to compete, you now expect to win. That adjustment is subtle but powerful. It changes every tactical decision and every moment the race gets hard."},
	{ID: "pers_humble_grounded", Category: CategoryPersonality, Weight: 0.8,
		When: Condition{Tiers: []Tier{TierPodium, TierWin}, TraitMin: map[string]int{"humility": 70}},
		Text: "Success hasn't changed you. After each good result you're quick to credit the competition, to acknowledge luck and timing. It isn't false modesty. You genuinely respect how thin the margins are."},
	{ID: "pers_aggressive_edge", Category: CategoryPersonality, Weight: 0.9,
		When:   Condition{MinRaces: 3, TraitMin: map[string]int{"aggression": 70}, NeedsRivals: true},
		Claims: []Claim{ClaimRivalHistory},
		Text:   "Your rivals are learning the pattern: you don't back down. Where others play it safe, you attack. Racing isn't just about winning for you, it's about proving something every time you pin on a number."},
	{ID: "pers_professional_system", Category: CategoryPersonality, Weight: 0.8,
		When: Condition{MinRaces: 4, TraitMin: map[string]int{"professionalism": 70}},
		Text: "You've built a systematic approach: data analysis, structured training, careful recovery, tactical planning. Nothing left to chance. The romantic notion of racing on pure passion has given way to calculated professionalism."},
	{ID: "pers_showman_flair", Category: CategoryPersonality, Weight: 0.8,
		When: Condition{MinRaces: 4, TraitMin: map[string]int{"showmanship": 70}},
		Text: "Racing is theater and you've embraced the role. Bold moves, memorable moments, a willingness to make the race exciting even when it costs a better result. Some riders disappear into the peloton. You make sure people remember your name."},
	{ID: "pers_resilient_bounce", Category: CategoryPersonality, Weight: 0.9,
		When: Condition{MinRaces: 4, TraitMin: map[string]int{"resilience": 70}},
		Text: "Setbacks don't stick to you anymore. Bad race? Learn and move on. Tough result? Work out what broke and fix it. Champions aren't made on good days; they're made by how they handle the bad ones."},
	{ID: "pers_balanced", Category: CategoryPersonality, Weight: 0.7,
		When: Condition{Tiers: []Tier{TierPodium, TierWin}, TraitMin: map[string]int{"confidence": 65, "humility": 65}},
		Text: "You've found an unusual balance: confident in your abilities but humble about your place in the sport. You back yourself without disrespecting the competition. The self-belief needed to win, with the groundedness that keeps you improving."},

	// Tour prep: the three stage-race events.
	{ID: "tour_first_stage", Category: CategoryTourPrep, Weight: 0.9,
		When: Condition{RaceNumbers: []int{13}, AnyTier: true},
		Text: "The tour is different from anything you've raced. Three stages over three days means racing on tired legs, managing recovery between efforts, and thinking in terms of the overall classification rather than today's line. Winning stage one means nothing if you crack on stage three."},
	{ID: "tour_stage_two", Category: CategoryTourPrep, Weight: 0.9,
		When: Condition{RaceNumbers: []int{14}, AnyTier: true},
		Text: "Yesterday's stage is still in your legs. The warm-up felt heavier than usual, heart rate climbing faster than it should. This is what stage racing demands: performing when you're not fresh, digging deep on legs that already raced."},
	{ID: "tour_queen_stage", Category: CategoryTourPrep, Weight: 0.9,
		When: Condition{RaceNumbers: []int{15}, AnyTier: true},
		Text: "The queen stage. Two days of racing in your legs and the hardest day still ahead. This is where the tour is decided: leads defended or lost, the overall crystallizing into its final form. Accumulated fatigue, climbing, and GC pressure, all at once."},

	// Special events: invitationals outside the season ladder.
	{ID: "special_invitational", Category: CategorySpecial, Weight: 0.9,
		When: Condition{RaceNumbers: []int{101}, AnyTier: true},
		Text: "{eventName} sits outside the season calendar entirely: an invitational under floodlights, a showcase rather than a points grab. Nothing here moves your season, which is strangely liberating. You can race on instinct for once."},
	{ID: "special_leveller", Category: CategorySpecial, Weight: 0.9,
		When: Condition{RaceNumbers: []int{102}, AnyTier: true},
		Text: "{eventName} has a reputation as the great equalizer. The format flattens the usual hierarchies, and half the field will finish somewhere nobody predicted. Ratings mean little tonight. Showing up and surviving is its own achievement."},
}

// Catalog returns the built-in story set.
func Catalog() []Story {
	out := make([]Story, len(catalog))
	copy(out, catalog)
	return out
}
