package scoring

import "github.com/m-mizutani/ghpulse/pkg/domain/types"

type labelSet int

const (
	noLabels labelSet = iota
	bugLabels
	featureLabels
)

// Weights is the coefficient table of one score family. A zero coefficient disables the signal.
type Weights struct {
	labels     labelSet
	LabelMatch float64

	Reactions     map[types.Reaction]float64
	OtherReaction float64
	ReactionCap   float64

	PerComment float64
	CommentCap float64

	PerMonthOpen float64
	AgeCap       float64

	PerIdleDay float64
	IdleCap    float64

	NoMaintainerResponse float64

	PerCommentPerWeek float64
	VelocityCap       float64

	PerDistinctAuthor float64
	DistinctAuthorCap float64

	SentimentMax int

	// DraftFactor multiplies the total of draft pull requests when not zero.
	DraftFactor     float64
	ConflictPenalty float64
}

var BugWeights = Weights{
	labels:     bugLabels,
	LabelMatch: 15,
	Reactions: map[types.Reaction]float64{
		types.ReactionThumbsDown: 2,
		types.ReactionConfused:   2,
		types.ReactionThumbsUp:   1,
		types.ReactionEyes:       1,
	},
	OtherReaction: 0.5,
	ReactionCap:   30,
	PerComment:    1,
	CommentCap:    10,
	PerMonthOpen:  1,
	AgeCap:        5,
	SentimentMax:  10,
}

var StaleWeights = Weights{
	PerIdleDay:           1,
	IdleCap:              45,
	NoMaintainerResponse: 15,
	DraftFactor:          0.5,
	ConflictPenalty:      10,
}

var CommunityWeights = Weights{
	labels:     featureLabels,
	LabelMatch: 10,
	Reactions: map[types.Reaction]float64{
		types.ReactionThumbsUp: 2,
		types.ReactionHeart:    1.5,
		types.ReactionRocket:   1.5,
		types.ReactionHooray:   1,
		types.ReactionEyes:     1,
	},
	OtherReaction:     0.5,
	ReactionCap:       30,
	PerCommentPerWeek: 2,
	VelocityCap:       15,
	PerDistinctAuthor: 2,
	DistinctAuthorCap: 15,
	SentimentMax:      10,
}

func WeightsFor(family types.ScoreFamily) Weights {
	switch family {
	case types.ScoreFamilyStale:
		return StaleWeights
	case types.ScoreFamilyCommunity:
		return CommunityWeights
	default:
		return BugWeights
	}
}
