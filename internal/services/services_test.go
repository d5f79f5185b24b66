package services

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arzan03/storefront/internal/models"
	"github.com/arzan03/storefront/internal/store"
)

type recordingImages struct {
	saved map[string][]byte
}

func (r *recordingImages) Save(_ context.Context, name, _ string, src io.Reader, _ int64) (string, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}
	r.saved[name] = data
	return "/uploads/" + name, nil
}

type fixture struct {
	stores   store.Stores
	auth     *AuthService
	users    *UserService
	products *ProductService
	reviews  *ReviewService
	orders   *OrderService
	images   *recordingImages
}

func newFixture() *fixture {
	stores := store.NewMemory()
	images := &recordingImages{saved: map[string][]byte{}}
	log := zap.NewNop()
	return &fixture{
		stores:   stores,
		auth:     NewAuthService(stores.Users, NewTokenService("secret", time.Hour)),
		users:    NewUserService(stores.Users),
		products: NewProductService(stores, images, 1<<20, log),
		reviews:  NewReviewService(stores, log),
		orders:   NewOrderService(stores),
		images:   images,
	}
}

func (f *fixture) product(t *testing.T, name string, price float64) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, Price: price, Category: "office", Company: "ikea", Colors: []string{"red"}, Inventory: 10}
	require.NoError(t, f.products.Create(context.Background(), p, ""))
	return p
}

func ptr[T any](v T) *T { return &v }

func TestAuth_FirstAccountIsAdmin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.auth.Register(ctx, "Ada", "ada@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, first.User.Role)
	assert.NotEmpty(t, first.Token)

	second, err := f.auth.Register(ctx, "Bob", "bob@example.com", "secret2")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, second.User.Role)
}

func TestAuth_DuplicateEmail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.auth.Register(ctx, "Ada", "ada@example.com", "secret1")
	require.NoError(t, err)
	_, err = f.auth.Register(ctx, "Ada again", "ada@example.com", "secret1")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAuth_LoginDoesNotDistinguishFailures(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.auth.Register(ctx, "Ada", "ada@example.com", "secret1")
	require.NoError(t, err)

	_, errUnknown := f.auth.Login(ctx, "nobody@example.com", "secret1")
	_, errWrong := f.auth.Login(ctx, "ada@example.com", "wrong")
	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrong, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())

	_, err = f.auth.Login(ctx, "", "secret1")
	assert.ErrorIs(t, err, ErrInvalidInput)

	session, err := f.auth.Login(ctx, "ada@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", session.User.Name)
}

func TestUsers_UpdatePassword(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	session, err := f.auth.Register(ctx, "Ada", "ada@example.com", "old-pass")
	require.NoError(t, err)
	id := session.User.UserID

	assert.ErrorIs(t, f.users.UpdatePassword(ctx, id, "", "new-pass"), ErrInvalidInput)
	assert.ErrorIs(t, f.users.UpdatePassword(ctx, id, "wrong", "new-pass"), ErrInvalidInput)
	require.NoError(t, f.users.UpdatePassword(ctx, id, "old-pass", "new-pass"))

	_, err = f.auth.Login(ctx, "ada@example.com", "old-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.auth.Login(ctx, "ada@example.com", "new-pass")
	assert.NoError(t, err)
}

func TestUsers_GetRejectsMalformedID(t *testing.T) {
	f := newFixture()
	_, err := f.users.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReviews_RatingReconciledOnWriteAndDelete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.product(t, "chair", 20)
	alice, err := f.auth.Register(ctx, "Alice", "alice@example.com", "pw1234")
	require.NoError(t, err)
	bob, err := f.auth.Register(ctx, "Bob", "bob@example.com", "pw1234")
	require.NoError(t, err)

	r1, err := f.reviews.Create(ctx, alice.User.UserID, p.ID.Hex(), ReviewInput{Rating: 5, Title: "great", Comment: "love it"})
	require.NoError(t, err)
	_, err = f.reviews.Create(ctx, bob.User.UserID, p.ID.Hex(), ReviewInput{Rating: 2, Title: "meh", Comment: "wobbly"})
	require.NoError(t, err)

	got, err := f.products.Get(ctx, p.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 3.5, got.AverageRating)
	assert.Equal(t, 2, got.NumOfReviews)
	assert.Len(t, got.Reviews, 2)

	_, err = f.reviews.Update(ctx, r1.ID.Hex(), models.ReviewUpdate{Rating: ptr(4)})
	require.NoError(t, err)
	got, err = f.products.Get(ctx, p.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 3.0, got.AverageRating)

	views, err := f.reviews.ListByProduct(ctx, p.ID.Hex())
	require.NoError(t, err)
	require.Len(t, views, 2)
	names := []string{views[0].User.Name, views[1].User.Name}
	assert.ElementsMatch(t, []string{"Alice", "Bob"}, names)
	assert.Equal(t, "chair", views[0].Product.Name)

	for _, v := range views {
		require.NoError(t, f.reviews.Delete(ctx, v.ID.Hex()))
	}
	got, err = f.products.Get(ctx, p.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.AverageRating)
	assert.Equal(t, 0, got.NumOfReviews)
}

func TestReviews_OnePerUserAndProduct(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.product(t, "chair", 20)
	alice, err := f.auth.Register(ctx, "Alice", "alice@example.com", "pw1234")
	require.NoError(t, err)

	in := ReviewInput{Rating: 5, Title: "great", Comment: "love it"}
	_, err = f.reviews.Create(ctx, alice.User.UserID, p.ID.Hex(), in)
	require.NoError(t, err)
	_, err = f.reviews.Create(ctx, alice.User.UserID, p.ID.Hex(), in)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestProducts_DeleteCascadesReviews(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.product(t, "chair", 20)
	alice, err := f.auth.Register(ctx, "Alice", "alice@example.com", "pw1234")
	require.NoError(t, err)
	_, err = f.reviews.Create(ctx, alice.User.UserID, p.ID.Hex(), ReviewInput{Rating: 5, Title: "great", Comment: "love it"})
	require.NoError(t, err)

	require.NoError(t, f.products.Delete(ctx, p.ID.Hex()))

	reviews, err := f.reviews.ListByProduct(ctx, p.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, reviews)

	assert.ErrorIs(t, f.products.Delete(ctx, p.ID.Hex()), ErrNotFound)
}

func fileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := writer.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(4 << 20)
	require.NoError(t, err)
	return form.File["image"][0]
}

func TestProducts_UploadImage(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.product(t, "chair", 20)

	_, _, err := f.products.UploadImage(ctx, p.ID.Hex(), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = f.products.UploadImage(ctx, p.ID.Hex(), fileHeader(t, "notes.txt", "text/plain", []byte("hi")))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = f.products.UploadImage(ctx, p.ID.Hex(), fileHeader(t, "big.png", "image/png", make([]byte, 1<<20+1)))
	assert.ErrorIs(t, err, ErrInvalidInput)

	name, url, err := f.products.UploadImage(ctx, p.ID.Hex(), fileHeader(t, "Chair #1?.PNG", "image/png", []byte("png")))
	require.NoError(t, err)
	assert.Regexp(t, `^[0-9a-f-]{36}\.png$`, name)
	assert.Equal(t, "/uploads/"+name, url)
	assert.Equal(t, []byte("png"), f.images.saved[name])

	got, err := f.products.Get(ctx, p.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, url, got.Image)
}

func TestOrders_Quote(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.product(t, "chair", 20)

	quote, err := f.orders.Quote(ctx, OrderInput{
		Items:       []OrderItemInput{{Product: p.ID.Hex(), Amount: 2}},
		Tax:         ptr(5.0),
		ShippingFee: ptr(10.0),
	})
	require.NoError(t, err)
	assert.Equal(t, 40.0, quote.Subtotal)
	assert.Equal(t, 55.0, quote.Total)
	require.Len(t, quote.Items, 1)
	assert.Equal(t, "chair", quote.Items[0].Name)

	orders, err := f.orders.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders, "a quote must not persist an order")
}

func TestOrders_QuoteDecimalPrecision(t *testing.T) {
	f := newFixture()
	p := f.product(t, "mug", 0.1)

	quote, err := f.orders.Quote(context.Background(), OrderInput{
		Items:       []OrderItemInput{{Product: p.ID.Hex(), Amount: 3}},
		Tax:         ptr(0.2),
		ShippingFee: ptr(0.0),
	})
	require.NoError(t, err)
	assert.Equal(t, 0.3, quote.Subtotal)
	assert.Equal(t, 0.5, quote.Total)
}

func TestOrders_QuoteRejectsBadInput(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.product(t, "chair", 20)

	cases := map[string]OrderInput{
		"no items":        {Tax: ptr(1.0), ShippingFee: ptr(1.0)},
		"empty items":     {Items: []OrderItemInput{}, Tax: ptr(1.0), ShippingFee: ptr(1.0)},
		"no tax":          {Items: []OrderItemInput{{Product: p.ID.Hex(), Amount: 1}}, ShippingFee: ptr(1.0)},
		"no shipping":     {Items: []OrderItemInput{{Product: p.ID.Hex(), Amount: 1}}, Tax: ptr(1.0)},
		"unknown product": {Items: []OrderItemInput{{Product: "64b000000000000000000001", Amount: 1}}, Tax: ptr(1.0), ShippingFee: ptr(1.0)},
		"malformed id":    {Items: []OrderItemInput{{Product: "x", Amount: 1}}, Tax: ptr(1.0), ShippingFee: ptr(1.0)},
		"zero amount":     {Items: []OrderItemInput{{Product: p.ID.Hex(), Amount: 0}}, Tax: ptr(1.0), ShippingFee: ptr(1.0)},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.orders.Quote(ctx, in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestOrders_CreatePayDelete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.product(t, "chair", 20)
	alice, err := f.auth.Register(ctx, "Alice", "alice@example.com", "pw1234")
	require.NoError(t, err)

	order, err := f.orders.Create(ctx, alice.User.UserID, OrderInput{
		Items:       []OrderItemInput{{Product: p.ID.Hex(), Amount: 2}},
		Tax:         ptr(5.0),
		ShippingFee: ptr(10.0),
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, 55.0, order.Total)
	assert.NotEmpty(t, order.ClientSecret)

	owner, err := f.orders.Owner(ctx, order.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, alice.User.UserID, owner)

	mine, err := f.orders.ListForUser(ctx, alice.User.UserID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	_, err = f.orders.Pay(ctx, order.ID.Hex(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	paid, err := f.orders.Pay(ctx, order.ID.Hex(), "pi_123")
	require.NoError(t, err)
	assert.Equal(t, models.OrderProcessing, paid.Status)
	assert.Equal(t, "pi_123", paid.PaymentIntentID)

	require.NoError(t, f.orders.Delete(ctx, order.ID.Hex()))
	_, err = f.orders.Get(ctx, order.ID.Hex())
	assert.ErrorIs(t, err, ErrNotFound)
}
