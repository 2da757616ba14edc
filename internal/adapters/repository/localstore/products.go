package localstore

import (
	"context"
	"sort"
	"time"

	"github.com/arnelectric/storefront-backend/internal/adapters/repository"
	"github.com/arnelectric/storefront-backend/internal/models"
)

const adminProductsFile = "adminProducts.json"

type ProductStore struct {
	store *Store
}

func NewProductStore(s *Store) repository.ProductRepository {
	return &ProductStore{store: s}
}

func (r *ProductStore) loadAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.store.load(adminProductsFile, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductStore) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	all, err := r.loadAll()
	if err != nil {
		return nil, err
	}

	var products []models.Product
	for _, p := range all {
		if !p.IsActive {
			continue
		}
		if category != "" && category != "all" && p.Category != category {
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

func (r *ProductStore) GetProductByID(ctx context.Context, productID string) (models.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	all, err := r.loadAll()
	if err != nil {
		return models.Product{}, err
	}
	for _, p := range all {
		if p.ID == productID {
			return p, nil
		}
	}
	return models.Product{}, repository.ErrRecordNotFound
}

func (r *ProductStore) ListCategories(ctx context.Context) ([]string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	all, err := r.loadAll()
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var categories []string
	for _, p := range all {
		if p.IsActive && p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

func (r *ProductStore) CreateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	all, err := r.loadAll()
	if err != nil {
		return models.Product{}, err
	}

	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()
	all = append(all, product)

	if err := r.store.save(adminProductsFile, all); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

func (r *ProductStore) UpdateProduct(ctx context.Context, productID string, input models.UpdateProductInput) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	all, err := r.loadAll()
	if err != nil {
		return err
	}

	for i := range all {
		if all[i].ID != productID {
			continue
		}
		all[i].Name = input.Name
		all[i].Description = input.Description
		all[i].Category = input.Category
		all[i].Price = input.Price
		all[i].OriginalPrice = input.OriginalPrice
		all[i].Discount = input.Discount
		all[i].ImageURL = input.ImageURL
		all[i].Features = input.Features
		all[i].Specifications = input.Specifications
		all[i].IsActive = input.IsActive
		all[i].UpdatedAt = time.Now()
		return r.store.save(adminProductsFile, all)
	}
	return repository.ErrRecordNotFound
}

func (r *ProductStore) DeleteProduct(ctx context.Context, productID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	all, err := r.loadAll()
	if err != nil {
		return err
	}

	for i := range all {
		if all[i].ID == productID {
			all = append(all[:i], all[i+1:]...)
			return r.store.save(adminProductsFile, all)
		}
	}
	return repository.ErrRecordNotFound
}
