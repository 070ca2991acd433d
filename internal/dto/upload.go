package dto

type UploadResponse struct {
	ImageURL string `json:"imageUrl"`
}
