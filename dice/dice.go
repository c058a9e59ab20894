package dice

import "math/rand"

// Kind selects the face distribution a pair of dice rolls under.
type Kind int

const (
	Regular Kind = iota // uniform 1-6
	Stable              // three 3-faces and three 4-faces
	Volatile            // three 1-faces and three 6-faces
)

func (k Kind) String() string {
	switch k {
	case Stable:
		return "Stable Dice (3s & 4s)"
	case Volatile:
		return "Volatile Dice (1s & 6s)"
	default:
		return "Regular Dice"
	}
}

// faceWeights maps face value to the number of die faces showing it.
func (k Kind) faceWeights() map[int]int {
	switch k {
	case Stable:
		return map[int]int{3: 3, 4: 3}
	case Volatile:
		return map[int]int{1: 3, 6: 3}
	default:
		return map[int]int{1: 1, 2: 1, 3: 1, 4: 1, 5: 1, 6: 1}
	}
}

// Next cycles to the following kind.
func (k Kind) Next() Kind {
	switch k {
	case Regular:
		return Stable
	case Stable:
		return Volatile
	default:
		return Regular
	}
}

// Pair is a two-die roller with a selectable distribution.
type Pair struct {
	Kind Kind
	Die1 int
	Die2 int
}

func (p *Pair) rollDie(rng *rand.Rand) int {
	switch p.Kind {
	case Stable:
		return 3 + rng.Intn(2)
	case Volatile:
		if rng.Intn(2) == 0 {
			return 1
		}
		return 6
	default:
		return 1 + rng.Intn(6)
	}
}

// Roll rolls both dice and reports the total and whether they match.
func (p *Pair) Roll(rng *rand.Rand) (total int, isDouble bool) {
	p.Die1 = p.rollDie(rng)
	p.Die2 = p.rollDie(rng)
	return p.Die1 + p.Die2, p.Die1 == p.Die2
}

// TotalDistribution enumerates the exact joint distribution of the two-die
// total. Analytic, never sampled.
func TotalDistribution(k Kind) map[int]float64 {
	weights := k.faceWeights()
	sum := 0
	for _, w := range weights {
		sum += w
	}
	outcomes := float64(sum * sum)

	dist := make(map[int]float64)
	for a, wa := range weights {
		for b, wb := range weights {
			dist[a+b] += float64(wa*wb) / outcomes
		}
	}
	return dist
}

// ExpectedTotal is the mean of the two-die total.
func ExpectedTotal(k Kind) float64 {
	mean := 0.0
	for total, p := range TotalDistribution(k) {
		mean += float64(total) * p
	}
	return mean
}

// Variance is the variance of the two-die total.
func Variance(k Kind) float64 {
	dist := TotalDistribution(k)
	mean := ExpectedTotal(k)
	v := 0.0
	for total, p := range dist {
		d := float64(total) - mean
		v += d * d * p
	}
	return v
}

// DoublesProbability is the chance both dice show the same face.
func DoublesProbability(k Kind) float64 {
	weights := k.faceWeights()
	sum := 0
	for _, w := range weights {
		sum += w
	}
	p := 0.0
	for _, w := range weights {
		f := float64(w) / float64(sum)
		p += f * f
	}
	return p
}
