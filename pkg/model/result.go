package model

// ProgressPoint is one (time, fraction seated) sample of a boarding run.
type ProgressPoint struct {
	Time           float64 `csv:"time_s"`
	FractionSeated float64 `csv:"fraction_seated"`
}

// SeatingEvent records when a passenger reached their seat.
type SeatingEvent struct {
	PassengerID int     `csv:"passenger"`
	Row         int     `csv:"row"`
	Seat        string  `csv:"seat"`
	SeatedAt    float64 `csv:"seated_at_s"`
}

// RunResult is the immutable summary of one (strategy, seed) boarding run.
type RunResult struct {
	Strategy  string
	Seed      int64
	TotalTime float64 // seconds, max seating timestamp
	Series    []ProgressPoint
	Events    []SeatingEvent
}

// StrategyAggregate holds cross-seed statistics for one boarding strategy.
type StrategyAggregate struct {
	Strategy   string
	Runs       int
	MeanTotal  float64 // seconds
	VarTotal   float64
	MeanSeries []ProgressPoint // resampled on a common grid, averaged over seeds
	Results    []RunResult
}

// ComparisonRow is one line of the normalized strategy comparison table.
type ComparisonRow struct {
	Strategy           string  `csv:"strategy"`
	MeanDiscrete       float64 `csv:"mean_discrete_s"`
	StdDiscrete        float64 `csv:"std_discrete_s"`
	ODEPredicted       float64 `csv:"ode_predicted_s"`
	RelativeEfficiency float64 `csv:"relative_efficiency"`
}

// DisembarkResult is the immutable summary of one (strategy, seed) exit run.
type DisembarkResult struct {
	Strategy string
	Seed     int64
	MeanExit float64 // seconds, mean over passengers
	LastExit float64
}

// HeatmapCell is one seat of the normalized boarding-order grid, in [0, 1)
// from first to last aboard. Consumed by external plotting.
type HeatmapCell struct {
	Row   int     `csv:"row"`
	Seat  string  `csv:"seat"`
	Order float64 `csv:"order"`
}
