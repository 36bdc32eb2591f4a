package transport

// ItemResponse is the public shape of an item. image_url is absolute.
type ItemResponse struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
}

// CreateItemRequest is the non-file part of the multipart upload.
type CreateItemRequest struct {
	Title string `form:"title" json:"title" validate:"required,min=1,max=100"`
}
