package race

// Result is the terminal artifact of a completed race, handed to
// breeding/ranking collaborators. Standings carry final entrant copies in
// finish order; unranked entrants follow by descending position.
type Result struct {
	CourseID      string    `json:"course_id"`
	EndReason     EndReason `json:"end_reason"`
	TotalTicks    uint64    `json:"total_ticks"`
	CompletedTime float64   `json:"completed_time"` // seconds of simulated time

	WinnerID  string         `json:"winner_id,omitempty"`
	Standings []EntrantState `json:"standings"`

	AverageFinishTime float64 `json:"average_finish_time"`
	FastestEntrant    string  `json:"fastest_entrant,omitempty"` // highest top speed
	LongestDistance   float64 `json:"longest_distance"`

	Metrics Metrics `json:"metrics"`
}

// newResult assembles the final result from the last snapshot and the
// arbiter's bookkeeping.
func newResult(cfg *Config, snap *Snapshot, a *arbiter) Result {
	res := Result{
		CourseID:      cfg.CourseID,
		EndReason:     a.endReason,
		TotalTicks:    snap.Tick,
		CompletedTime: float64(snap.Tick) * cfg.dt(),
		WinnerID:      snap.WinnerID,
		Metrics:       a.metrics,
	}

	order := snap.Leaderboard()
	res.Standings = make([]EntrantState, 0, len(order))
	for _, id := range order {
		e, ok := snap.Entrant(id)
		if !ok {
			continue
		}
		res.Standings = append(res.Standings, e)
	}

	var finishSum float64
	finished := 0
	topSpeed := -1.0
	for _, e := range res.Standings {
		if e.Status == StatusFinished {
			finishSum += e.RaceTime
			finished++
		}
		if e.TopSpeed > topSpeed {
			topSpeed = e.TopSpeed
			res.FastestEntrant = e.ID
		}
		if e.Position > res.LongestDistance {
			res.LongestDistance = e.Position
		}
	}
	if finished > 0 {
		res.AverageFinishTime = finishSum / float64(finished)
	}

	return res
}
