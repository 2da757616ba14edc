package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/arnelectric/storefront-backend/internal/adapters/repository"
	"github.com/arnelectric/storefront-backend/internal/models"
	"github.com/arnelectric/storefront-backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductHandler struct {
	Repo repository.ProductRepository
}

func NewProductHandler(repo repository.ProductRepository) *ProductHandler {
	return &ProductHandler{Repo: repo}
}

// ListProducts is the public catalog endpoint; ?category= filters it.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	category := c.Query("category")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	products, err := h.Repo.ListProducts(ctx, category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to fetch products"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Products fetched successfully", gin.H{"products": products}))
}

func (h *ProductHandler) GetProductByID(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	product, err := h.Repo.GetProductByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Product not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to fetch product"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Product fetched successfully", gin.H{"product": product}))
}

func (h *ProductHandler) ListCategories(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	categories, err := h.Repo.ListCategories(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to fetch categories"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Categories fetched successfully", gin.H{"categories": categories}))
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request body"))
		return
	}

	if err := models.Validate(product); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(err.Error()))
		return
	}

	product.ID = uuid.NewString()
	product.IsActive = true
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	created, err := h.Repo.CreateProduct(ctx, product)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to create product"))
		return
	}

	c.JSON(http.StatusCreated, utils.SuccessResponse("Product created successfully", gin.H{"product": created}))
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var input models.UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.Repo.UpdateProduct(ctx, c.Param("id"), input); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Product not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to update product"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Product updated successfully", nil))
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.Repo.DeleteProduct(ctx, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Product not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to delete product"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Product deleted successfully", nil))
}
