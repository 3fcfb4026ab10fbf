package catalog

// SearchQuery contains query params for a catalog keyword search.
type SearchQuery struct {
	Keyword string `query:"keyword" json:"keyword" mod:"trim" validate:"required,max=200"`
}

// RankingQuery contains query params for a catalog genre ranking.
type RankingQuery struct {
	GenreID string `query:"genre_id" json:"genre_id" mod:"trim" validate:"required,max=50"`
}
