package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/arzan03/storefront/internal/models"
	"github.com/arzan03/storefront/internal/store"
	"github.com/arzan03/storefront/internal/utils"
)

type ReviewInput struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Title   string `json:"title" validate:"required,min=3,max=50"`
	Comment string `json:"comment" validate:"required,min=3,max=2000"`
}

// ReviewService keeps each product's rating aggregate in step with its
// reviews: every write is followed by a reconcile of the parent product.
type ReviewService struct {
	reviews  store.ReviewStore
	products store.ProductStore
	users    store.UserStore
	log      *zap.Logger
}

func NewReviewService(stores store.Stores, log *zap.Logger) *ReviewService {
	return &ReviewService{
		reviews:  stores.Reviews,
		products: stores.Products,
		users:    stores.Users,
		log:      log,
	}
}

// Create adds userID's review of productID. A user reviews a product at most once.
func (s *ReviewService) Create(ctx context.Context, userID, productID string, in ReviewInput) (*models.Review, error) {
	user, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}
	product, err := parseID(productID, "product")
	if err != nil {
		return nil, err
	}

	if _, err := s.products.FindByID(ctx, product); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, newError(ErrNotFound, "Product not found")
		}
		return nil, fmt.Errorf("lookup product: %w", err)
	}

	review := models.Review{
		Rating:  in.Rating,
		Title:   in.Title,
		Comment: in.Comment,
		User:    user,
		Product: product,
	}
	if err := s.reviews.Create(ctx, &review); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, newError(ErrConflict, "You have already reviewed this product")
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.reconcile(ctx, product)
	return &review, nil
}

// ListByProduct returns the populated reviews of a product.
func (s *ReviewService) ListByProduct(ctx context.Context, productID string) ([]models.ReviewView, error) {
	product, err := parseID(productID, "product")
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.ListByProduct(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return s.populate(ctx, reviews)
}

// Get returns one populated review.
func (s *ReviewService) Get(ctx context.Context, id string) (*models.ReviewView, error) {
	review, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := s.populate(ctx, []models.Review{*review})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Update edits a review and reconciles its product's rating.
func (s *ReviewService) Update(ctx context.Context, id string, update models.ReviewUpdate) (*models.Review, error) {
	objID, err := parseID(id, "review")
	if err != nil {
		return nil, err
	}
	review, err := s.reviews.Update(ctx, objID, update)
	if errors.Is(err, store.ErrNotFound) {
		return nil, newError(ErrNotFound, "Review not found")
	}
	if err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}

	s.reconcile(ctx, review.Product)
	return review, nil
}

// Delete removes a review and reconciles its product's rating.
func (s *ReviewService) Delete(ctx context.Context, id string) error {
	objID, err := parseID(id, "review")
	if err != nil {
		return err
	}
	review, err := s.reviews.Delete(ctx, objID)
	if errors.Is(err, store.ErrNotFound) {
		return newError(ErrNotFound, "Review not found")
	}
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	s.reconcile(ctx, review.Product)
	return nil
}

// Owner returns the id of the user who wrote the review.
func (s *ReviewService) Owner(ctx context.Context, id string) (string, error) {
	review, err := s.find(ctx, id)
	if err != nil {
		return "", err
	}
	return review.User.Hex(), nil
}

func (s *ReviewService) find(ctx context.Context, id string) (*models.Review, error) {
	objID, err := parseID(id, "review")
	if err != nil {
		return nil, err
	}
	review, err := s.reviews.FindByID(ctx, objID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, newError(ErrNotFound, "Review not found")
	}
	return review, err
}

// reconcile recomputes the product's averageRating and numOfReviews. A
// failure leaves the aggregate stale and is only logged, the review write
// itself has already been committed.
func (s *ReviewService) reconcile(ctx context.Context, productID primitive.ObjectID) {
	summary, err := s.reviews.Summarize(ctx, productID)
	if err != nil {
		s.log.Error("Failed to summarize ratings", zap.String("product_id", productID.Hex()), zap.Error(err))
		return
	}
	err = s.products.SetRating(ctx, productID, summary)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		s.log.Error("Failed to update product rating", zap.String("product_id", productID.Hex()), zap.Error(err))
	}
}

// populate resolves the user and product names of each review, looking up
// every distinct reference once and in parallel.
func (s *ReviewService) populate(ctx context.Context, reviews []models.Review) ([]models.ReviewView, error) {
	users := map[primitive.ObjectID]string{}
	products := map[primitive.ObjectID]string{}
	for _, r := range reviews {
		users[r.User] = ""
		products[r.Product] = ""
	}

	type ref struct {
		id      primitive.ObjectID
		product bool
	}
	var refs []ref
	var tasks []utils.Task[string]
	for id := range users {
		refs = append(refs, ref{id: id})
		tasks = append(tasks, s.userName(ctx, id))
	}
	for id := range products {
		refs = append(refs, ref{id: id, product: true})
		tasks = append(tasks, s.productName(ctx, id))
	}

	names, errs := utils.RunParallel(tasks)
	if err := utils.FirstError(errs); err != nil {
		return nil, fmt.Errorf("populate reviews: %w", err)
	}
	for i, r := range refs {
		if r.product {
			products[r.id] = names[i]
		} else {
			users[r.id] = names[i]
		}
	}

	views := make([]models.ReviewView, 0, len(reviews))
	for _, r := range reviews {
		views = append(views, models.ReviewView{
			ID:        r.ID,
			Rating:    r.Rating,
			Title:     r.Title,
			Comment:   r.Comment,
			User:      models.NamedRef{ID: r.User, Name: users[r.User]},
			Product:   models.NamedRef{ID: r.Product, Name: products[r.Product]},
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		})
	}
	return views, nil
}

// Missing references resolve to an empty name.
func (s *ReviewService) userName(ctx context.Context, id primitive.ObjectID) utils.Task[string] {
	return func() (string, error) {
		user, err := s.users.FindByID(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return "", nil
		}
		if err != nil {
			return "", err
		}
		return user.Name, nil
	}
}

func (s *ReviewService) productName(ctx context.Context, id primitive.ObjectID) utils.Task[string] {
	return func() (string, error) {
		product, err := s.products.FindByID(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return "", nil
		}
		if err != nil {
			return "", err
		}
		return product.Name, nil
	}
}
