package engine

// Stats accumulates per-game roll and landing tallies. Values feed the
// snapshot's statistics panel next to the analytic dice figures.
type Stats struct {
	RollCount    int
	RollSum      int
	DoublesCount int
	TotalCounts  [13]int // index = roll total, 2-12 used
	LastRolls    []int   // most recent first, capped
	VisitCounts  [40]int

	AuctionsHeld  int
	TradesSettled int
}

const lastRollsCap = 12

func newStats() Stats {
	return Stats{LastRolls: make([]int, 0, lastRollsCap)}
}

func (s *Stats) recordRoll(total int, isDouble bool) {
	s.RollCount++
	s.RollSum += total
	if isDouble {
		s.DoublesCount++
	}
	if total >= 0 && total < len(s.TotalCounts) {
		s.TotalCounts[total]++
	}

	s.LastRolls = append(s.LastRolls, 0)
	copy(s.LastRolls[1:], s.LastRolls)
	s.LastRolls[0] = total
	if len(s.LastRolls) > lastRollsCap {
		s.LastRolls = s.LastRolls[:lastRollsCap]
	}
}

func (s *Stats) recordVisit(pos int) {
	if pos >= 0 && pos < len(s.VisitCounts) {
		s.VisitCounts[pos]++
	}
}

// Mean is the running average roll total.
func (s *Stats) Mean() float64 {
	if s.RollCount == 0 {
		return 0
	}
	return float64(s.RollSum) / float64(s.RollCount)
}

// Stats exposes a copy of the tallies.
func (g *Game) Stats() Stats {
	out := g.stats
	out.LastRolls = append([]int(nil), g.stats.LastRolls...)
	return out
}
