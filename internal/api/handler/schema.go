package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses. It is rendered by the api package's error handler and declared
// here for the swagger annotations.
type errorResponse struct {
	Error string `json:"error"`
}
