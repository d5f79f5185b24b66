package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arzan03/storefront/internal/models"
	"github.com/arzan03/storefront/internal/storage"
	"github.com/arzan03/storefront/internal/store"
)

// ProductService manages the catalog and product images.
type ProductService struct {
	products     store.ProductStore
	reviews      store.ReviewStore
	images       storage.ImageStore
	maxImageSize int64
	log          *zap.Logger
}

func NewProductService(stores store.Stores, images storage.ImageStore, maxImageSize int64, log *zap.Logger) *ProductService {
	return &ProductService{
		products:     stores.Products,
		reviews:      stores.Reviews,
		images:       images,
		maxImageSize: maxImageSize,
		log:          log,
	}
}

// Create stores a new product owned by creatorID, with the placeholder image if none is set.
func (s *ProductService) Create(ctx context.Context, product *models.Product, creatorID string) error {
	if creator, err := parseID(creatorID, "user"); err == nil {
		product.User = creator
	}
	if product.Image == "" {
		product.Image = models.DefaultProductImage
	}
	if err := s.products.Create(ctx, product); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// List returns the products matching filter.
func (s *ProductService) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	return s.products.List(ctx, filter)
}

func (s *ProductService) find(ctx context.Context, id string) (*models.Product, error) {
	objID, err := parseID(id, "product")
	if err != nil {
		return nil, err
	}
	product, err := s.products.FindByID(ctx, objID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, newError(ErrNotFound, "Product not found")
	}
	return product, err
}

// Get returns the product together with its reviews.
func (s *ProductService) Get(ctx context.Context, id string) (*models.ProductWithReviews, error) {
	product, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviews.ListByProduct(ctx, product.ID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return &models.ProductWithReviews{Product: *product, Reviews: reviews}, nil
}

// Update applies the set fields of update to the product.
func (s *ProductService) Update(ctx context.Context, id string, update models.ProductUpdate) (*models.Product, error) {
	objID, err := parseID(id, "product")
	if err != nil {
		return nil, err
	}
	product, err := s.products.Update(ctx, objID, update)
	if errors.Is(err, store.ErrNotFound) {
		return nil, newError(ErrNotFound, "Product not found")
	}
	return product, err
}

// Delete removes the product, then its reviews.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	objID, err := parseID(id, "product")
	if err != nil {
		return err
	}

	if err := s.products.Delete(ctx, objID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return newError(ErrNotFound, "Product not found")
		}
		return fmt.Errorf("delete product: %w", err)
	}

	n, err := s.reviews.DeleteByProduct(ctx, objID)
	if err != nil {
		return fmt.Errorf("delete reviews of product %s: %w", id, err)
	}
	s.log.Debug("Cascaded product deletion", zap.String("product_id", id), zap.Int64("reviews", n))
	return nil
}

// UploadImage validates an uploaded image, stores it and points the product
// at it. It returns the stored file name and its public URL.
func (s *ProductService) UploadImage(ctx context.Context, id string, file *multipart.FileHeader) (string, string, error) {
	if file == nil {
		return "", "", newError(ErrInvalidInput, "No files were uploaded.")
	}
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image") {
		return "", "", newError(ErrInvalidInput, "The file must be an image.")
	}
	if file.Size > s.maxImageSize {
		return "", "", newError(ErrInvalidInput,
			fmt.Sprintf("The image must be less than %s.", humanize.IBytes(uint64(s.maxImageSize))))
	}

	product, err := s.find(ctx, id)
	if err != nil {
		return "", "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	// The client filename only contributes its extension.
	name := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	url, err := s.images.Save(ctx, name, contentType, src, file.Size)
	if err != nil {
		return "", "", fmt.Errorf("store image: %w", err)
	}

	if err := s.products.SetImage(ctx, product.ID, url); err != nil {
		return "", "", fmt.Errorf("set product image: %w", err)
	}
	return name, url, nil
}
