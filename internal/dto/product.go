package dto

type ProductRequest struct {
	Name        string   `json:"nombre"`
	Price       float64  `json:"precio"`
	Image       string   `json:"imagen"`
	Description string   `json:"descripcion"`
	Stock       int      `json:"stock"`
	Images      []string `json:"imagenes"`
	Sizes       []string `json:"tamanos"`
	Features    []string `json:"caracteristicas"`
	Categories  []uint   `json:"categorias"`
}

type ProductResponse struct {
	ID          uint               `json:"id"`
	Name        string             `json:"nombre"`
	Price       float64            `json:"precio"`
	Image       string             `json:"imagen"`
	Description string             `json:"descripcion"`
	Stock       int                `json:"stock"`
	Images      []string           `json:"imagenes"`
	Sizes       []string           `json:"tamanos"`
	Features    []string           `json:"caracteristicas"`
	Categories  []CategoryResponse `json:"categorias"`
}
