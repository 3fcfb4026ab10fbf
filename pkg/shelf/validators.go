package shelf

// AddBookPayload is the payload for adding a catalog book to the shelf.
type AddBookPayload struct {
	ISBN           string `json:"isbn"            mod:"trim" validate:"required,max=20"`
	Title          string `json:"title"           mod:"trim" validate:"required,max=500"`
	Author         string `json:"author"          mod:"trim" validate:"max=500"`
	ItemCaption    string `json:"item_caption"    validate:"max=5000"`
	BooksGenreID   string `json:"books_genre_id"  mod:"trim" validate:"max=100"`
	LargeImageURL  string `json:"large_image_url" mod:"trim" validate:"max=1000"`
	MediumImageURL string `json:"medium_image_url" mod:"trim" validate:"max=1000"`
	SmallImageURL  string `json:"small_image_url" mod:"trim" validate:"max=1000"`
	PublisherName  string `json:"publisher_name"  mod:"trim" validate:"max=500"`
	SalesDate      string `json:"sales_date"      mod:"trim" validate:"max=100"`
	ItemURL        string `json:"item_url"        mod:"trim" validate:"max=1000"`
}

// BulkStatusPayload is the payload for moving several shelf items to one
// status at once.
type BulkStatusPayload struct {
	IDs    []int  `json:"ids"    validate:"required,min=1,unique,dive,gt=0"`
	Status string `json:"status" validate:"required,oneof=reading tsundoku"`
}

// SetMemoPayload is the payload for replacing a shelf item's memo.
type SetMemoPayload struct {
	Memo string `json:"memo" validate:"max=50000"`
}

// ListShelfQuery contains query params for listing the shelf.
type ListShelfQuery struct {
	Status string `query:"status" json:"status" validate:"omitempty,oneof=reading tsundoku"`
}

// RemoveBookQuery identifies the catalog id to remove from the shelf.
type RemoveBookQuery struct {
	ISBN string `query:"isbn" json:"isbn" mod:"trim" validate:"required,max=20"`
}
