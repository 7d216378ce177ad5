package collect

// Payload shapes for the FPL API. Expected-stat fields arrive as strings
// and are parsed into values downstream.

type Bootstrap struct {
	GameSeason   string        `json:"game_season"`
	Events       []Event       `json:"events"`
	Elements     []Element     `json:"elements"`
	Teams        []Team        `json:"teams"`
	ElementTypes []ElementType `json:"element_types"`
}

type Event struct {
	ID        int  `json:"id"`
	IsCurrent bool `json:"is_current"`
	Finished  bool `json:"finished"`
}

type Element struct {
	ID                       int    `json:"id"`
	WebName                  string `json:"web_name"`
	Team                     int    `json:"team"`
	ElementType              int    `json:"element_type"`
	NowCost                  int    `json:"now_cost"`
	SelectedByPercent        string `json:"selected_by_percent"`
	Form                     string `json:"form"`
	Status                   string `json:"status"`
	GoalsScored              int    `json:"goals_scored"`
	Assists                  int    `json:"assists"`
	ExpectedAssists          string `json:"expected_assists"`
	ExpectedGoals            string `json:"expected_goals"`
	ExpectedGoalInvolvements string `json:"expected_goal_involvements"`
	ExpectedGoalsConceded    string `json:"expected_goals_conceded"`
}

type Team struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
}

type ElementType struct {
	ID                int    `json:"id"`
	SingularNameShort string `json:"singular_name_short"`
}

type Fixture struct {
	ID       int  `json:"id"`
	Event    *int `json:"event"`
	Finished bool `json:"finished"`
	TeamH    int  `json:"team_h"`
	TeamA    int  `json:"team_a"`
}

type ElementSummary struct {
	History []HistoryEntry `json:"history"`
}

type HistoryEntry struct {
	Round            int    `json:"round"`
	Minutes          int    `json:"minutes"`
	GoalsScored      int    `json:"goals_scored"`
	Assists          int    `json:"assists"`
	Saves            int    `json:"saves"`
	GoalsConceded    int    `json:"goals_conceded"`
	CleanSheets      int    `json:"clean_sheets"`
	OwnGoals         int    `json:"own_goals"`
	PenaltiesMissed  int    `json:"penalties_missed"`
	PenaltiesSaved   int    `json:"penalties_saved"`
	YellowCards      int    `json:"yellow_cards"`
	RedCards         int    `json:"red_cards"`
	Starts           int    `json:"starts"`
	TotalPoints      int    `json:"total_points"`
	Bps              int    `json:"bps"`
	Bonus            int    `json:"bonus"`
	WasHome          bool   `json:"was_home"`
	TeamHScore       *int   `json:"team_h_score"`
	TeamAScore       *int   `json:"team_a_score"`
	OpponentTeam     int    `json:"opponent_team"`
	Influence        string `json:"influence"`
	Creativity       string `json:"creativity"`
	Threat           string `json:"threat"`
	ICTIndex         string `json:"ict_index"`
	TransfersIn      int    `json:"transfers_in"`
	TransfersOut     int    `json:"transfers_out"`
}
