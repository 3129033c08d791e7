package backend

import "github.com/sstrand/romdeck/internal/domain"

// Request/response shapes for the device's game service API.

type searchRequest struct {
	Query  string `json:"query"`
	System string `json:"system"`
}

type launchRequest struct {
	Path string `json:"path"`
}

type systemDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type gameDTO struct {
	System systemDTO `json:"system"`
	Name   string    `json:"name"`
	Path   string    `json:"path"`
}

type searchResponse struct {
	Data     []gameDTO `json:"data"`
	Total    int       `json:"total"`
	PageSize int       `json:"pageSize"`
	Page     int       `json:"page"`
}

func mapSearchResponse(resp searchResponse) *domain.SearchResult {
	items := make([]domain.GameEntry, len(resp.Data))
	for i, g := range resp.Data {
		items[i] = domain.GameEntry{
			System: domain.SystemRef{ID: g.System.ID, Name: g.System.Name},
			Name:   g.Name,
			Path:   g.Path,
		}
	}
	return &domain.SearchResult{
		Items:    items,
		Total:    resp.Total,
		PageSize: resp.PageSize,
		Page:     resp.Page,
	}
}
