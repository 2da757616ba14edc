package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/arnelectric/storefront-backend/internal/adapters/repository"
	"github.com/arnelectric/storefront-backend/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const productTTL = 5 * time.Minute

// CachedProductRepository wraps a ProductRepository with a Redis
// read-through cache. Writes invalidate eagerly so the admin panel sees
// its own edits immediately.
type CachedProductRepository struct {
	Inner  repository.ProductRepository
	Client *redis.Client
}

func NewCachedProductRepository(inner repository.ProductRepository, client *redis.Client) repository.ProductRepository {
	if client == nil {
		return inner
	}
	return &CachedProductRepository{Inner: inner, Client: client}
}

func (c *CachedProductRepository) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	key := productListKey(category)
	if raw, err := c.Client.Get(ctx, key).Result(); err == nil {
		var products []models.Product
		if json.Unmarshal([]byte(raw), &products) == nil {
			return products, nil
		}
	}

	products, err := c.Inner.ListProducts(ctx, category)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, products)
	return products, nil
}

func (c *CachedProductRepository) GetProductByID(ctx context.Context, productID string) (models.Product, error) {
	key := productKey(productID)
	if raw, err := c.Client.Get(ctx, key).Result(); err == nil {
		var product models.Product
		if json.Unmarshal([]byte(raw), &product) == nil {
			return product, nil
		}
	}

	product, err := c.Inner.GetProductByID(ctx, productID)
	if err != nil {
		return models.Product{}, err
	}
	c.store(ctx, key, product)
	return product, nil
}

func (c *CachedProductRepository) ListCategories(ctx context.Context) ([]string, error) {
	if raw, err := c.Client.Get(ctx, categoriesKey).Result(); err == nil {
		var categories []string
		if json.Unmarshal([]byte(raw), &categories) == nil {
			return categories, nil
		}
	}

	categories, err := c.Inner.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, categoriesKey, categories)
	return categories, nil
}

func (c *CachedProductRepository) CreateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	created, err := c.Inner.CreateProduct(ctx, product)
	if err != nil {
		return models.Product{}, err
	}
	c.invalidate(ctx, created.ID, created.Category)
	return created, nil
}

func (c *CachedProductRepository) UpdateProduct(ctx context.Context, productID string, input models.UpdateProductInput) error {
	if err := c.Inner.UpdateProduct(ctx, productID, input); err != nil {
		return err
	}
	c.invalidateAll(ctx, productID)
	return nil
}

func (c *CachedProductRepository) DeleteProduct(ctx context.Context, productID string) error {
	if err := c.Inner.DeleteProduct(ctx, productID); err != nil {
		return err
	}
	c.invalidateAll(ctx, productID)
	return nil
}

func (c *CachedProductRepository) store(ctx context.Context, key string, v interface{}) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.Client.Set(ctx, key, raw, productTTL).Err(); err != nil {
		logrus.Warnf("product cache write failed for %s: %v", key, err)
	}
}

func (c *CachedProductRepository) invalidate(ctx context.Context, productID, category string) {
	keys := []string{productKey(productID), productListKey(""), productListKey(category), categoriesKey}
	if err := c.Client.Del(ctx, keys...).Err(); err != nil {
		logrus.Warnf("product cache invalidation failed: %v", err)
	}
}

// invalidateAll clears every list key since the product's category may
// have changed in the update.
func (c *CachedProductRepository) invalidateAll(ctx context.Context, productID string) {
	keys, err := c.Client.Keys(ctx, "products:list:*").Result()
	if err != nil {
		keys = nil
	}
	keys = append(keys, productKey(productID), categoriesKey)
	if err := c.Client.Del(ctx, keys...).Err(); err != nil {
		logrus.Warnf("product cache invalidation failed: %v", err)
	}
}
