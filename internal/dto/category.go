package dto

type CategoryRequest struct {
	Title      string `json:"titulo"`
	Collection string `json:"coleccion"`
	ThumbSrc   string `json:"thumb_src"`
}

type CategoryResponse struct {
	ID         uint   `json:"id"`
	Title      string `json:"titulo"`
	Collection string `json:"coleccion"`
	ThumbSrc   string `json:"thumb_src"`
}
