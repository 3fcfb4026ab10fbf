package follows

// ListEdgesQuery contains query params for listing one side of a user's
// follow graph.
type ListEdgesQuery struct {
	Direction string `query:"direction" json:"direction" validate:"required,oneof=following followers"`
}
