package catalog

// Item is one catalog entry, normalized from the provider's search and
// ranking shapes.
type Item struct {
	ISBN           string `json:"isbn"`
	Title          string `json:"title"`
	Author         string `json:"author"`
	ItemCaption    string `json:"item_caption"`
	BooksGenreID   string `json:"books_genre_id"`
	LargeImageURL  string `json:"large_image_url"`
	MediumImageURL string `json:"medium_image_url"`
	SmallImageURL  string `json:"small_image_url"`
	PublisherName  string `json:"publisher_name"`
	SalesDate      string `json:"sales_date"`
	ItemURL        string `json:"item_url"`
}

// searchResponse mirrors the book-search endpoint's envelope: each hit is
// wrapped in an extra Item object.
type searchResponse struct {
	Count int `json:"count"`
	Items []struct {
		Item searchItem `json:"Item"`
	} `json:"Items"`
}

type searchItem struct {
	ISBN           string `json:"isbn"`
	Title          string `json:"title"`
	Author         string `json:"author"`
	ItemCaption    string `json:"itemCaption"`
	BooksGenreID   string `json:"booksGenreId"`
	LargeImageURL  string `json:"largeImageUrl"`
	MediumImageURL string `json:"mediumImageUrl"`
	SmallImageURL  string `json:"smallImageUrl"`
	PublisherName  string `json:"publisherName"`
	SalesDate      string `json:"salesDate"`
	ItemURL        string `json:"itemUrl"`
}

// rankingResponse mirrors the genre-ranking endpoint. Ranked entries use
// item-listing field names and carry their images as a list.
type rankingResponse struct {
	Items []struct {
		Item rankingItem `json:"Item"`
	} `json:"Items"`
}

type rankingItem struct {
	ItemName     string `json:"itemName"`
	ItemCaption  string `json:"itemCaption"`
	ItemCode     string `json:"itemCode"`
	ItemURL      string `json:"itemUrl"`
	GenreID      string `json:"genreId"`
	MediumImages []struct {
		ImageURL string `json:"imageUrl"`
	} `json:"mediumImageUrls"`
	SmallImages []struct {
		ImageURL string `json:"imageUrl"`
	} `json:"smallImageUrls"`
}
