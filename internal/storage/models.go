package storage

// Chore is one repeatable task. DailyPoints is the fixed award per
// completion; TodayPoints tracks same-day accrual only (never reduced by
// spending); TotalPoints is the spendable balance.
type Chore struct {
	ID          int64
	Name        string
	Icon        string
	DailyPoints int
	TodayPoints int
	TotalPoints int
	Position    int
}

// Reward is one catalog item. Purchased only ever increases.
type Reward struct {
	ID        int64
	Name      string
	Icon      string
	Cost      int
	Purchased int
	Position  int
}

// DailyRecord is an archived per-calendar-day point total. Date is the day
// key in YYYY-MM-DD form, so lexicographic order matches chronological
// order; there is at most one record per day.
type DailyRecord struct {
	Date        string `yaml:"date"`
	TotalPoints int    `yaml:"totalPoints"`
}
