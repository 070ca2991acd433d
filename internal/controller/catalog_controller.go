package controller

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"tienda-api/internal/dto"
	"tienda-api/internal/service"
	"tienda-api/pkg/errs"
	"tienda-api/pkg/response"
)

type CatalogController struct {
	service service.CatalogService
}

func CreateCatalogController(e *echo.Echo, service service.CatalogService) {
	c := CatalogController{
		service: service,
	}

	e.GET("/productos", c.GetProducts)
	e.POST("/productos", c.AddProduct)
	e.GET("/categorias", c.GetCategories)
	e.POST("/categorias", c.AddCategory)
	e.GET("/productos/:id/resenas", c.GetReviews)
	e.POST("/productos/:id/resenas", c.AddReview)
	e.POST("/upload", c.Upload)
}

func (c *CatalogController) GetProducts(e echo.Context) error {
	data, err := c.service.GetProducts(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return e.JSON(http.StatusOK, data)
}

func (c *CatalogController) AddProduct(e echo.Context) error {
	payload := dto.ProductRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Error().Err(err).Str("component", "AddProduct").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	resp, err := c.service.AddProduct(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return e.JSON(http.StatusOK, resp)
}

func (c *CatalogController) GetCategories(e echo.Context) error {
	data, err := c.service.GetCategories(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return e.JSON(http.StatusOK, data)
}

func (c *CatalogController) AddCategory(e echo.Context) error {
	payload := dto.CategoryRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Error().Err(err).Str("component", "AddCategory").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	resp, err := c.service.AddCategory(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return e.JSON(http.StatusOK, resp)
}

func (c *CatalogController) GetReviews(e echo.Context) error {
	productID, err := parseID(e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	data, err := c.service.GetReviews(e.Request().Context(), productID)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return e.JSON(http.StatusOK, data)
}

func (c *CatalogController) AddReview(e echo.Context) error {
	productID, err := parseID(e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	payload := dto.ReviewRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Error().Err(err).Str("component", "AddReview").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	resp, err := c.service.AddReview(e.Request().Context(), productID, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return e.JSON(http.StatusOK, resp)
}

func (c *CatalogController) Upload(e echo.Context) error {
	file, err := e.FormFile("imagen")
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrNoFileUploaded, nil)
	}

	src, err := file.Open()
	if err != nil {
		log.Error().Err(err).Str("component", "Upload").Msg("")
		return response.WriteErrorResponse(e, errs.ErrInternalServer, nil)
	}
	defer src.Close()

	resp, err := c.service.SaveUpload(file.Filename, src)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return e.JSON(http.StatusOK, resp)
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
