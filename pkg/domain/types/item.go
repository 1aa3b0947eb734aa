package types

type ItemKind string

const (
	ItemKindIssue       ItemKind = "issue"
	ItemKindPullRequest ItemKind = "pull_request"
)

type ItemState string

const (
	ItemStateOpen   ItemState = "open"
	ItemStateClosed ItemState = "closed"
	ItemStateMerged ItemState = "merged"

	// ItemStateAll is only used as a list filter.
	ItemStateAll ItemState = "all"
)

type Reaction string

const (
	ReactionThumbsUp   Reaction = "thumbs_up"
	ReactionThumbsDown Reaction = "thumbs_down"
	ReactionLaugh      Reaction = "laugh"
	ReactionHooray     Reaction = "hooray"
	ReactionConfused   Reaction = "confused"
	ReactionHeart      Reaction = "heart"
	ReactionRocket     Reaction = "rocket"
	ReactionEyes       Reaction = "eyes"
)

var AllReactions = []Reaction{
	ReactionThumbsUp,
	ReactionThumbsDown,
	ReactionLaugh,
	ReactionHooray,
	ReactionConfused,
	ReactionHeart,
	ReactionRocket,
	ReactionEyes,
}
