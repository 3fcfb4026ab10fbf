package booklists

// CreateBooklistPayload is the payload for creating a booklist from shelf
// items.
type CreateBooklistPayload struct {
	Name    string `json:"name"     mod:"trim" validate:"required,max=100"`
	BookIDs []int  `json:"book_ids" validate:"dive,gt=0"`
}

// SetVisibilityPayload is the payload for changing a booklist's visibility.
type SetVisibilityPayload struct {
	Visibility string `json:"visibility" validate:"required,oneof=private open"`
}

// DeleteBooklistsQuery names the booklists to delete.
type DeleteBooklistsQuery struct {
	IDs []int `query:"ids" json:"ids" validate:"required,min=1,unique,dive,gt=0"`
}

// ListBooklistsQuery contains query params for listing booklists.
type ListBooklistsQuery struct {
	OwnerID int `query:"owner_id" json:"owner_id" validate:"omitempty,gt=0"`
}
