package catalog

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

type handler struct {
	client *Client
}

type itemsResponse struct {
	Items []Item `json:"items"`
}

// search proxies a keyword search. A failing upstream is logged and answered
// with an empty result set so the caller's page still renders.
func (h *handler) search(c echo.Context) error {
	ctx := c.Request().Context()

	params := SearchQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	items, err := h.client.Search(ctx, params.Keyword)
	if err != nil {
		h.client.log.Warn("catalog search failed", logger.Data{"keyword": params.Keyword, "error": err.Error()})
		items = []Item{}
	}

	return c.JSON(http.StatusOK, itemsResponse{items})
}

// ranking proxies a genre ranking, with the same empty-on-failure behavior
// as search.
func (h *handler) ranking(c echo.Context) error {
	ctx := c.Request().Context()

	params := RankingQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	items, err := h.client.Ranking(ctx, params.GenreID)
	if err != nil {
		h.client.log.Warn("catalog ranking failed", logger.Data{"genre_id": params.GenreID, "error": err.Error()})
		items = []Item{}
	}

	return c.JSON(http.StatusOK, itemsResponse{items})
}
