package catalog

import (
	"context"
	"net/url"
)

// Search runs a keyword search against the catalog.
func (c *Client) Search(ctx context.Context, keyword string) ([]Item, error) {
	params := url.Values{}
	params.Set("keyword", keyword)

	resp := searchResponse{}
	if err := c.get(ctx, searchPath, params, &resp); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(resp.Items))
	for _, wrapped := range resp.Items {
		hit := wrapped.Item
		items = append(items, Item{
			ISBN:           hit.ISBN,
			Title:          hit.Title,
			Author:         hit.Author,
			ItemCaption:    hit.ItemCaption,
			BooksGenreID:   hit.BooksGenreID,
			LargeImageURL:  hit.LargeImageURL,
			MediumImageURL: hit.MediumImageURL,
			SmallImageURL:  hit.SmallImageURL,
			PublisherName:  hit.PublisherName,
			SalesDate:      hit.SalesDate,
			ItemURL:        hit.ItemURL,
		})
	}

	return items, nil
}

// Ranking fetches the current ranking for a genre. Ranked entries carry less
// metadata than search hits; missing fields stay empty.
func (c *Client) Ranking(ctx context.Context, genreID string) ([]Item, error) {
	params := url.Values{}
	params.Set("genreId", genreID)

	resp := rankingResponse{}
	if err := c.get(ctx, rankingPath, params, &resp); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(resp.Items))
	for _, wrapped := range resp.Items {
		hit := wrapped.Item
		item := Item{
			Title:        hit.ItemName,
			ItemCaption:  hit.ItemCaption,
			BooksGenreID: hit.GenreID,
			ItemURL:      hit.ItemURL,
		}
		if len(hit.MediumImages) > 0 {
			item.MediumImageURL = hit.MediumImages[0].ImageURL
		}
		if len(hit.SmallImages) > 0 {
			item.SmallImageURL = hit.SmallImages[0].ImageURL
		}
		items = append(items, item)
	}

	return items, nil
}
