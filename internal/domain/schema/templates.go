package schema

// Base sport templates. Keys are stable identifiers; labels are what
// organizers (and their spreadsheets) call the drill.

func footballTemplate() Template {
	return Template{
		ID:    "football",
		Sport: "Football",
		Name:  "Football Combine",
		Drills: []DrillDefinition{
			{Key: "40m_dash", Label: "40-Yard Dash", Unit: "sec", Active: true, LowerIsBetter: true, Category: "speed", MinValue: floatPtr(3.0), MaxValue: floatPtr(15.0), DefaultWeight: 0.3},
			{Key: "vertical_jump", Label: "Vertical Jump", Unit: "in", Active: true, Category: "power", MinValue: floatPtr(0.0), MaxValue: floatPtr(50.0), DefaultWeight: 0.2},
			{Key: "catching", Label: "Catching", Unit: "pts", Active: true, Category: "skills", MinValue: floatPtr(0.0), MaxValue: floatPtr(100.0), DefaultWeight: 0.15},
			{Key: "throwing", Label: "Throwing", Unit: "pts", Active: true, Category: "skills", MinValue: floatPtr(0.0), MaxValue: floatPtr(100.0), DefaultWeight: 0.15},
			{Key: "agility", Label: "Agility", Unit: "pts", Active: true, Category: "agility", MinValue: floatPtr(0.0), MaxValue: floatPtr(100.0), DefaultWeight: 0.2},
		},
	}
}

func basketballTemplate() Template {
	return Template{
		ID:    "basketball",
		Sport: "Basketball",
		Name:  "Basketball Combine",
		Drills: []DrillDefinition{
			{Key: "lane_agility", Label: "Lane Agility", Unit: "sec", Active: true, LowerIsBetter: true, Category: "agility", MinValue: floatPtr(8.0), MaxValue: floatPtr(20.0), DefaultWeight: 0.15},
			{Key: "vertical_jump", Label: "Vertical Jump", Unit: "in", Active: true, Category: "power", MinValue: floatPtr(0.0), MaxValue: floatPtr(50.0), DefaultWeight: 0.2},
			{Key: "free_throws", Label: "Free Throw %", Unit: "%", Active: true, Category: "shooting", MinValue: floatPtr(0.0), MaxValue: floatPtr(100.0), DefaultWeight: 0.2},
			{Key: "three_point", Label: "3-Point Shooting %", Unit: "%", Active: true, Category: "shooting", MinValue: floatPtr(0.0), MaxValue: floatPtr(100.0), DefaultWeight: 0.2},
			{Key: "dribbling", Label: "Ball Handling", Unit: "pts", Active: true, Category: "skills", MinValue: floatPtr(0.0), MaxValue: floatPtr(100.0), DefaultWeight: 0.15},
			{Key: "defensive_slide", Label: "Defensive Slides", Unit: "sec", Active: true, LowerIsBetter: true, Category: "defense", MinValue: floatPtr(8.0), MaxValue: floatPtr(20.0), DefaultWeight: 0.1},
		},
	}
}

func soccerTemplate() Template {
	return Template{
		ID:    "soccer",
		Sport: "Soccer",
		Name:  "Soccer Combine",
		Drills: []DrillDefinition{
			{Key: "sprint_speed", Label: "20m Sprint", Unit: "sec", Active: true, LowerIsBetter: true, Category: "speed", DefaultWeight: 0.15},
			{Key: "ball_control", Label: "Ball Control", Unit: "pts", Active: true, Category: "technical", DefaultWeight: 0.25},
			{Key: "passing_accuracy", Label: "Passing Accuracy", Unit: "pts", Active: true, Category: "technical", DefaultWeight: 0.25},
			{Key: "shooting_power", Label: "Shooting Power", Unit: "mph", Active: true, Category: "technical", DefaultWeight: 0.15},
			{Key: "agility_cones", Label: "Agility (Cones)", Unit: "sec", Active: true, LowerIsBetter: true, Category: "agility", DefaultWeight: 0.1},
			{Key: "endurance", Label: "Endurance (Beep Test)", Unit: "level", Active: true, Category: "fitness", DefaultWeight: 0.1},
		},
	}
}

func trackTemplate() Template {
	return Template{
		ID:    "track",
		Sport: "Track & Field",
		Name:  "Track Meet",
		Drills: []DrillDefinition{
			{Key: "sprint_100", Label: "100m Sprint", Unit: "sec", Active: true, LowerIsBetter: true, Category: "speed", DefaultWeight: 0.25},
			{Key: "sprint_400", Label: "400m Sprint", Unit: "sec", Active: true, LowerIsBetter: true, Category: "speed", DefaultWeight: 0.2},
			{Key: "long_jump", Label: "Long Jump", Unit: "m", Active: true, Category: "power", DefaultWeight: 0.2},
			{Key: "shot_put", Label: "Shot Put", Unit: "m", Active: true, Category: "power", DefaultWeight: 0.15},
			{Key: "mile_time", Label: "Mile Time", Unit: "sec", Active: true, LowerIsBetter: true, Category: "endurance", DefaultWeight: 0.2},
		},
	}
}

// BaseTemplates returns the built-in sport templates keyed by ID.
func BaseTemplates() map[string]Template {
	return map[string]Template{
		"football":   footballTemplate(),
		"basketball": basketballTemplate(),
		"soccer":     soccerTemplate(),
		"track":      trackTemplate(),
	}
}
