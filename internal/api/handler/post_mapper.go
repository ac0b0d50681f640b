package handler

import (
	"github.com/blog-system/blog-api/internal/core/domain"
	"github.com/blog-system/blog-api/internal/core/ports"
)

const dateLayout = "2006-01-02"

func toPostInput(req postRequest) ports.PostInput {
	return ports.PostInput{
		Title:   req.Title,
		Content: req.Content,
		Author:  req.Author,
	}
}

func toPostResponse(p *domain.Post) postResponse {
	return postResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Author:    p.Author,
		CreatedAt: p.CreatedAt.Format(dateLayout),
	}
}

// toPostListResponse never returns nil so empty results render as [].
func toPostListResponse(posts []*domain.Post) []postResponse {
	out := make([]postResponse, len(posts))
	for i, p := range posts {
		out[i] = toPostResponse(p)
	}
	return out
}
