package board

// SpaceKind is the closed set of board space types.
type SpaceKind int

const (
	KindGo SpaceKind = iota
	KindProperty
	KindTrainStation
	KindUtility
	KindChest
	KindChance
	KindJail
	KindGoToJail
	KindFreeParking
	KindTax
)

func (k SpaceKind) String() string {
	switch k {
	case KindGo:
		return "go"
	case KindProperty:
		return "property"
	case KindTrainStation:
		return "train_station"
	case KindUtility:
		return "utility"
	case KindChest:
		return "chest"
	case KindChance:
		return "chance"
	case KindJail:
		return "jail"
	case KindGoToJail:
		return "go_to_jail"
	case KindFreeParking:
		return "free_parking"
	case KindTax:
		return "tax"
	}
	return "unknown"
}

// Ownable reports whether spaces of this kind carry a Property.
func (k SpaceKind) Ownable() bool {
	return k == KindProperty || k == KindTrainStation || k == KindUtility
}

// Group is a property color group. Stations and utilities get their own
// pseudo-groups so set counting stays uniform.
type Group string

const (
	GroupNone    Group = ""
	GroupBrown   Group = "brown"
	GroupSkyBlue Group = "sky_blue"
	GroupPink    Group = "pink"
	GroupOrange  Group = "orange"
	GroupRed     Group = "red"
	GroupYellow  Group = "yellow"
	GroupGreen   Group = "green"
	GroupBlue    Group = "blue"
	GroupStation Group = "station"
	GroupUtility Group = "utility"
)

// Space is one board cell. Immutable after construction apart from the
// Property state it points at.
type Space struct {
	Position int
	Name     string
	Kind     SpaceKind
	Tax      int       // KindTax only
	Prop     *Property // ownable kinds only
}

const (
	// Size is the number of spaces on the cyclic board.
	Size = 40
	// JailPosition is where jailed tokens sit.
	JailPosition = 10
)

type spaceDef struct {
	name     string
	kind     SpaceKind
	price    int
	group    Group
	baseRent int
	tax      int
}

// The reference board. Positions are the slice indices.
var spaceDefs = [Size]spaceDef{
	{name: "GO", kind: KindGo},
	{name: "STC", kind: KindProperty, price: 60, group: GroupBrown, baseRent: 4},
	{name: "Item Chest", kind: KindChest},
	{name: "Fairview Mall", kind: KindProperty, price: 60, group: GroupBrown, baseRent: 2},
	{name: "Income Tax", kind: KindTax, tax: 200},
	{name: "York University", kind: KindTrainStation, price: 200, group: GroupStation},
	{name: "Little Italy", kind: KindProperty, price: 100, group: GroupSkyBlue, baseRent: 6},
	{name: "Chance", kind: KindChance},
	{name: "Chinatown", kind: KindProperty, price: 100, group: GroupSkyBlue, baseRent: 6},
	{name: "Greektown", kind: KindProperty, price: 120, group: GroupSkyBlue, baseRent: 8},
	{name: "Jail", kind: KindJail},
	{name: "Harvey's", kind: KindProperty, price: 140, group: GroupPink, baseRent: 10},
	{name: "407 ETR", kind: KindUtility, price: 150, group: GroupUtility},
	{name: "Frankie Tomatto's", kind: KindProperty, price: 140, group: GroupPink, baseRent: 10},
	{name: "Distillery District", kind: KindProperty, price: 160, group: GroupPink, baseRent: 12},
	{name: "University of Toronto", kind: KindTrainStation, price: 200, group: GroupStation},
	{name: "Marineland", kind: KindProperty, price: 220, group: GroupRed, baseRent: 18},
	{name: "Item Chest", kind: KindChest},
	{name: "Scarborough", kind: KindProperty, price: 180, group: GroupOrange, baseRent: 14},
	{name: "Markham", kind: KindProperty, price: 200, group: GroupOrange, baseRent: 16},
	{name: "Free Parking", kind: KindFreeParking},
	{name: "Canada's Wonderland", kind: KindProperty, price: 220, group: GroupRed, baseRent: 18},
	{name: "Chance", kind: KindChance},
	{name: "Vaughan", kind: KindProperty, price: 180, group: GroupOrange, baseRent: 14},
	{name: "Calgary Stampede", kind: KindProperty, price: 240, group: GroupRed, baseRent: 20},
	{name: "TMU", kind: KindTrainStation, price: 200, group: GroupStation},
	{name: "Toronto Raptors", kind: KindProperty, price: 260, group: GroupYellow, baseRent: 22},
	{name: "Maple Leafs", kind: KindProperty, price: 260, group: GroupYellow, baseRent: 22},
	{name: "401", kind: KindUtility, price: 150, group: GroupUtility},
	{name: "Blue Jays", kind: KindProperty, price: 280, group: GroupYellow, baseRent: 24},
	{name: "Go To Jail", kind: KindGoToJail},
	{name: "Ripley's Aquarium", kind: KindProperty, price: 300, group: GroupGreen, baseRent: 26},
	{name: "Centre Island", kind: KindProperty, price: 300, group: GroupGreen, baseRent: 26},
	{name: "Item Chest", kind: KindChest},
	{name: "Ontario Science Centre", kind: KindProperty, price: 320, group: GroupGreen, baseRent: 28},
	{name: "University of Waterloo", kind: KindTrainStation, price: 200, group: GroupStation},
	{name: "Chance", kind: KindChance},
	{name: "CN Tower", kind: KindProperty, price: 350, group: GroupBlue, baseRent: 35},
	{name: "Luxury Tax", kind: KindTax, tax: 100},
	{name: "Rogers Centre", kind: KindProperty, price: 400, group: GroupBlue, baseRent: 50},
}

// rentTiers holds per-position rent lookups indexed by build level
// (0 bare, 1-4 houses, 5 hotel). Nil rows fall back to a stock-scaled
// multiple of the base rent. Station and utility rows exist in the data
// but are never consulted; their rent is formula-based.
var rentTiers = [Size][]int{
	nil, {2, 10, 30, 90, 160, 250}, nil,
	{4, 20, 60, 180, 320, 450}, nil, {25, 50, 100, 200},
	{6, 30, 90, 270, 400, 550}, nil, {6, 30, 90, 270, 400, 550},
	{8, 40, 100, 300, 450, 600}, nil, {10, 50, 150, 450, 625, 750},
	{4, 10}, {10, 50, 150, 450, 625, 750}, {12, 60, 180, 500, 700, 900},
	{25, 50, 100, 200}, {14, 70, 200, 550, 750, 950}, nil,
	{14, 70, 200, 550, 750, 950}, {16, 80, 220, 600, 800, 1000}, nil,
	{18, 90, 250, 700, 875, 1050}, nil, {18, 90, 250, 700, 875, 1050},
	{20, 100, 300, 750, 925, 1100}, {25, 50, 100, 200},
	{22, 110, 330, 800, 975, 1150}, {22, 110, 330, 800, 975, 1150},
	{4, 10}, {24, 120, 360, 850, 1025}, nil,
	{26, 130, 390, 900, 1100, 1275}, {26, 130, 390, 900, 1100, 1275},
	nil, {28, 150, 450, 1000, 1200, 1400}, {25, 50, 100, 200}, nil,
	{35, 175, 500, 1100, 1300, 1500}, nil,
	{50, 200, 600, 1400, 1700, 2000},
}

// Board is the fixed cyclic sequence of spaces plus the ledger of every
// ownable property on it.
type Board struct {
	spaces     [Size]*Space
	properties []*Property
}

// New builds the reference board with all properties at baseline state.
func New() *Board {
	b := &Board{}
	for i, def := range spaceDefs {
		sp := &Space{
			Position: i,
			Name:     def.name,
			Kind:     def.kind,
			Tax:      def.tax,
		}
		if def.kind.Ownable() {
			sp.Prop = &Property{
				Position:   i,
				Name:       def.name,
				Kind:       def.kind,
				Group:      def.group,
				Price:      def.price,
				BaseRent:   def.baseRent,
				OwnerSeat:  NoOwner,
				StockValue: def.price,
			}
			b.properties = append(b.properties, sp.Prop)
		}
		b.spaces[i] = sp
	}
	return b
}

// Space returns the space at position pos (callers pass 0..Size-1).
func (b *Board) Space(pos int) *Space {
	return b.spaces[pos]
}

// Properties lists every ownable property in board order.
func (b *Board) Properties() []*Property {
	return b.properties
}

// PropertyAt returns the property on pos, or nil for non-ownable spaces.
func (b *Board) PropertyAt(pos int) *Property {
	return b.spaces[pos].Prop
}

// OwnedCountInGroup counts properties of the group held by seat.
func (b *Board) OwnedCountInGroup(seat int, g Group) int {
	n := 0
	for _, p := range b.properties {
		if p.Group == g && p.OwnerSeat == seat {
			n++
		}
	}
	return n
}

// GroupProperties lists the properties of one color group.
func (b *Board) GroupProperties(g Group) []*Property {
	var props []*Property
	for _, p := range b.properties {
		if p.Group == g {
			props = append(props, p)
		}
	}
	return props
}

// OwnsFullGroup reports whether seat holds every property of p's group.
func (b *Board) OwnsFullGroup(seat int, p *Property) bool {
	if p.Kind != KindProperty {
		return false
	}
	group := b.GroupProperties(p.Group)
	if len(group) == 0 {
		return false
	}
	for _, sibling := range group {
		if sibling.OwnerSeat != seat {
			return false
		}
	}
	return true
}

// GroupHasMortgage reports whether any property of p's group is mortgaged.
// A mortgaged sibling freezes building on the whole set.
func (b *Board) GroupHasMortgage(p *Property) bool {
	for _, sibling := range b.GroupProperties(p.Group) {
		if sibling.Mortgaged {
			return true
		}
	}
	return false
}

// MinGroupBuildLevel is the lowest build level across p's group.
func (b *Board) MinGroupBuildLevel(p *Property) int {
	min := -1
	for _, sibling := range b.GroupProperties(p.Group) {
		level := sibling.BuildLevel()
		if min < 0 || level < min {
			min = level
		}
	}
	if min < 0 {
		return 0
	}
	return min
}

// Reset returns every property to its baseline state for a fresh game.
func (b *Board) Reset() {
	for _, p := range b.properties {
		p.OwnerSeat = NoOwner
		p.Houses = 0
		p.Hotel = false
		p.Mortgaged = false
		p.StockValue = p.Price
	}
}
