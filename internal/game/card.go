package game

import "tagdeck-go/internal/tags"

// Card is one slot of a hand: either a RecordCard or a DeleteCard.
type Card interface {
	isCard()
}

// RecordCard is a card backed by a tag record.
type RecordCard struct {
	Record tags.Record
}

// DeleteCard is the sentinel card worth nothing.
type DeleteCard struct{}

func (RecordCard) isCard() {}
func (DeleteCard) isCard() {}

var ratingScores = map[int]int{
	1: 1,
	2: 5,
	3: 15,
	4: 50,
	5: 200,
}

// ScoreFor returns the points a record of the given rating is worth.
// Ratings outside 1..5 are worth nothing.
func ScoreFor(rating int) int {
	return ratingScores[rating]
}

// Value returns the points for picking card.
func Value(card Card) int {
	if rc, ok := card.(RecordCard); ok {
		return ScoreFor(rc.Record.Rating)
	}
	return 0
}
