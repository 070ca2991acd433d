package dto

type ReviewRequest struct {
	Name    string `json:"nombre"`
	Rating  int    `json:"rating"`
	Comment string `json:"comentario"`
	Avatar  string `json:"avatar"`
}

type ReviewResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"nombre"`
	Rating  int    `json:"rating"`
	Comment string `json:"comentario"`
	Avatar  string `json:"avatar"`
}
