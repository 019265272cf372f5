package poker

// straightLen is the number of consecutive values that make a straight.
const straightLen = 5

// Evaluate returns the value of the best five-card hand that can be made
// from exactly seven distinct cards. Any other input fails with
// ErrInvalidHand.
func Evaluate(cards []Card) (HandValue, error) {
	h, err := NewHand(cards)
	if err != nil {
		return HandValue{}, err
	}
	return h.Evaluate(), nil
}

// CompareHands evaluates both hands and returns -1 if a loses to b, 0 on a
// split and 1 if a wins.
func CompareHands(a, b []Card) (int, error) {
	va, err := Evaluate(a)
	if err != nil {
		return 0, err
	}
	vb, err := Evaluate(b)
	if err != nil {
		return 0, err
	}
	return va.Compare(vb), nil
}

// Evaluate classifies the hand. Categories are tested strongest first and
// the first match wins.
func (h Hand) Evaluate() HandValue {
	s := newHandStats(&h)

	if v, ok := s.straightFlush(); ok {
		return v
	}
	if v, ok := s.fourOfAKind(); ok {
		return v
	}
	if v, ok := s.fullHouse(); ok {
		return v
	}
	if v, ok := s.flush(); ok {
		return v
	}
	if v, ok := s.straight(); ok {
		return v
	}
	if v, ok := s.threeOfAKind(); ok {
		return v
	}
	if v, ok := s.pairs(); ok {
		return v
	}
	return s.highCard()
}

// handStats holds the views of a sorted hand the detectors work from.
type handStats struct {
	cards *[HandSize]Card

	counts [NumValues]uint8

	// distinct values, descending
	distinct  [HandSize]Value
	nDistinct int

	// values per suit, descending
	suited  [NumSuits][HandSize]Value
	nSuited [NumSuits]int
}

func newHandStats(h *Hand) *handStats {
	s := &handStats{cards: &h.cards}
	for i, card := range h.cards {
		s.counts[card.value]++
		if i == 0 || h.cards[i-1].value != card.value {
			s.distinct[s.nDistinct] = card.value
			s.nDistinct++
		}
		s.suited[card.suit][s.nSuited[card.suit]] = card.value
		s.nSuited[card.suit]++
	}
	return s
}

// highestStraight scans values, distinct and descending, for the highest
// run of five. The wheel (A-5-4-3-2) counts as Five high.
func highestStraight(values []Value) (Value, bool) {
	if len(values) < straightLen-1 {
		return 0, false
	}

	high, run := values[0], 1
	for i := 1; i < len(values); i++ {
		prev, ok := values[i-1].Predecessor()
		if ok && values[i] == prev {
			run++
			if run == straightLen {
				return high, true
			}
			continue
		}
		high, run = values[i], 1
	}

	// The last run reaches Two; an Ace completes it as the wheel.
	if values[0] == Ace && high == Five && run == straightLen-1 {
		return Five, true
	}
	return 0, false
}

func (s *handStats) straightFlush() (HandValue, bool) {
	for suit := range s.suited {
		n := s.nSuited[suit]
		if n < straightLen {
			continue
		}
		if high, ok := highestStraight(s.suited[suit][:n]); ok {
			return NewStraightFlush(high), true
		}
	}
	return HandValue{}, false
}

// firstOtherValue returns the highest card value not in skip.
func (s *handStats) firstOtherValue(skip ...Value) Value {
	for _, card := range s.cards {
		if !contains(skip, card.value) {
			return card.value
		}
	}
	return 0
}

// otherValues fills out with the highest distinct values not in skip.
func (s *handStats) otherValues(out []Value, skip ...Value) {
	n := 0
	for _, v := range s.distinct[:s.nDistinct] {
		if n == len(out) {
			return
		}
		if contains(skip, v) {
			continue
		}
		out[n] = v
		n++
	}
}

// valueWithCount returns the highest value seen at least min times,
// excluding skip.
func (s *handStats) valueWithCount(min uint8, skip ...Value) (Value, bool) {
	for _, v := range s.distinct[:s.nDistinct] {
		if s.counts[v] >= min && !contains(skip, v) {
			return v, true
		}
	}
	return 0, false
}

func (s *handStats) fourOfAKind() (HandValue, bool) {
	quad, ok := s.valueWithCount(4)
	if !ok {
		return HandValue{}, false
	}
	return NewFourOfAKind(quad, s.firstOtherValue(quad)), true
}

func (s *handStats) fullHouse() (HandValue, bool) {
	trips, ok := s.valueWithCount(3)
	if !ok {
		return HandValue{}, false
	}
	pair, ok := s.valueWithCount(2, trips)
	if !ok {
		return HandValue{}, false
	}
	return NewFullHouse(trips, pair), true
}

func (s *handStats) flush() (HandValue, bool) {
	for suit := range s.suited {
		if s.nSuited[suit] < straightLen {
			continue
		}
		var top [5]Value
		copy(top[:], s.suited[suit][:straightLen])
		return NewFlush(top), true
	}
	return HandValue{}, false
}

func (s *handStats) straight() (HandValue, bool) {
	high, ok := highestStraight(s.distinct[:s.nDistinct])
	if !ok {
		return HandValue{}, false
	}
	return NewStraight(high), true
}

func (s *handStats) threeOfAKind() (HandValue, bool) {
	trips, ok := s.valueWithCount(3)
	if !ok {
		return HandValue{}, false
	}
	var kickers [2]Value
	s.otherValues(kickers[:], trips)
	return NewThreeOfAKind(trips, kickers), true
}

func (s *handStats) pairs() (HandValue, bool) {
	high, ok := s.valueWithCount(2)
	if !ok {
		return HandValue{}, false
	}

	if low, ok := s.valueWithCount(2, high); ok {
		// A third pair can only play as the kicker.
		return NewTwoPair([2]Value{high, low}, s.firstOtherValue(high, low)), true
	}

	var kickers [3]Value
	s.otherValues(kickers[:], high)
	return NewPair(high, kickers), true
}

func (s *handStats) highCard() HandValue {
	var top [5]Value
	copy(top[:], s.distinct[:straightLen])
	return NewHighCard(top)
}
