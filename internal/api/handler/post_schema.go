package handler

// postRequest is the body of POST /api/posts and PUT /api/posts/{id}.
type postRequest struct {
	Title   string `json:"title"   validate:"notblank"`
	Content string `json:"content" validate:"notblank"`
	Author  string `json:"author"  validate:"notblank"`
}

type postResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	CreatedAt string `json:"createdAt" example:"2026-10-19"`
}
