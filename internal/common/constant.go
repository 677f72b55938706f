package common

// SetAction is the discriminator for set-membership mutations on a card's
// memberIds/labelIds fields.
type SetAction string

const (
	SetActionAdd    SetAction = "ADD"
	SetActionRemove SetAction = "REMOVE"
)
