package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"purelife/internal/infra"
	"purelife/internal/models/db_models"
	"purelife/internal/models/request_models"
	"purelife/internal/testutil"
	"purelife/pkg/utils"
)

type fakeStorage struct {
	saved   []string
	deleted []string
	saveErr error
}

func (f *fakeStorage) SaveProductImage(_ context.Context, upload ImageUpload) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	ref := "/uploads/products/" + upload.Filename
	f.saved = append(f.saved, ref)
	return ref, nil
}

func (f *fakeStorage) DeleteProductImage(_ context.Context, ref string) error {
	f.deleted = append(f.deleted, ref)
	return nil
}

func (f *fakeStorage) Owns(ref string) bool { return true }

func newProductService(t *testing.T) (*testEnv, ProductServiceInterface, *fakeStorage) {
	env := newTestEnv(t)
	storage := &fakeStorage{}
	svc := NewProductService(infra.NewTransactionManager(env.db), env.products, env.plans, storage, ListingLimits{New: 2, Hot: 2})
	return env, svc, storage
}

func productForm(name string) request_models.ProductForm {
	stock := 10
	return request_models.ProductForm{
		ProductName:   name,
		Category:      "vitamins",
		Price:         "1000",
		StockQuantity: &stock,
		Description:   "daily support",
		ProductStatus: db_models.ProductStatusAvailable,
	}
}

func upload(name string) *ImageUpload {
	return &ImageUpload{Filename: name, Size: 4, Content: bytes.NewReader([]byte("data"))}
}

func TestProductService_Catalog(t *testing.T) {
	env, svc, _ := newProductService(t)
	ctx := context.Background()

	a := testutil.CreateProduct(t, env.db, "A", 100, 5, testutil.WithCategory("vitamins"), testutil.WithSales(1))
	b := testutil.CreateProduct(t, env.db, "B", 200, 5, testutil.WithCategory("minerals"), testutil.WithSales(9))
	c := testutil.CreateProduct(t, env.db, "C", 300, 5, testutil.WithCategory("vitamins"), testutil.WithSales(5), testutil.WithPromotion(250))
	testutil.CreateProduct(t, env.db, "Hidden", 300, 5, testutil.WithCategory("herbs"), testutil.WithStatus(db_models.ProductStatusUnavailable))
	testutil.CreateProduct(t, env.db, "Gone", 300, 5, testutil.WithCategory("herbs"), testutil.WithStatus(db_models.ProductStatusDeleted))

	all, err := svc.ListProducts(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []uint{a.ID, b.ID, c.ID}, []uint{all[0].ProductID, all[1].ProductID, all[2].ProductID})
	assert.True(t, all[2].ActualPrice.Equal(d("250")))

	vitamins, err := svc.ListProducts(ctx, "vitamins")
	require.NoError(t, err)
	assert.Len(t, vitamins, 2)

	categories, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"minerals", "vitamins"}, categories)

	hot, err := svc.ListHotProducts(ctx)
	require.NoError(t, err)
	require.Len(t, hot, 2)
	assert.Equal(t, b.ID, hot[0].ProductID)
	assert.Equal(t, c.ID, hot[1].ProductID)

	newest, err := svc.ListNewProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, newest, 2)

	admin, err := svc.ListAllForAdmin(ctx)
	require.NoError(t, err)
	assert.Len(t, admin, 4, "admins see unavailable products but not deleted ones")
}

func TestProductService_GetProduct(t *testing.T) {
	env, svc, _ := newProductService(t)
	ctx := context.Background()

	product := testutil.CreateProduct(t, env.db, "Fish Oil", 1000, 5)
	testutil.CreatePlan(t, env.db, product.ID, db_models.CycleQuarterly, 90, "0.85")
	testutil.CreatePlan(t, env.db, product.ID, db_models.CycleMonthly, 30, "0.9")

	resp, err := svc.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, resp.SubscriptionPlans, 2)
	assert.Equal(t, 30, resp.SubscriptionPlans[0].CycleDays)
	assert.True(t, resp.SubscriptionPlans[0].SubscriptionPrice.Equal(d("900")))

	deleted := testutil.CreateProduct(t, env.db, "Gone", 100, 1, testutil.WithStatus(db_models.ProductStatusDeleted))
	_, err = svc.GetProduct(ctx, deleted.ID)
	assert.ErrorIs(t, err, utils.ErrProductNotFound)

	_, err = svc.GetProduct(ctx, 9999)
	assert.ErrorIs(t, err, utils.ErrProductNotFound)
}

func TestProductService_CreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("with image and plans", func(t *testing.T) {
		_, svc, storage := newProductService(t)
		form := productForm("Probiotic")
		form.PromotionPrice = "800"
		form.SubscriptionPlans = `[{"cycleType":"monthly","cycleDays":30,"discountRate":0.9},{"cycleType":"biannual","cycleDays":180}]`

		resp, err := svc.CreateProduct(ctx, form, upload("p.png"))
		require.NoError(t, err)

		assert.Equal(t, "Probiotic", resp.ProductName)
		assert.True(t, resp.ActualPrice.Equal(d("800")))
		require.NotNil(t, resp.ImageURL)
		assert.Equal(t, "/uploads/products/p.png", *resp.ImageURL)
		assert.Equal(t, []string{"/uploads/products/p.png"}, storage.saved)
		require.Len(t, resp.SubscriptionPlans, 2)
		assert.False(t, resp.SubscriptionPlans[1].DiscountRate.Valid)
		assert.Zero(t, resp.SalesCount)
	})

	t.Run("zero promotion means none", func(t *testing.T) {
		_, svc, _ := newProductService(t)
		form := productForm("Zinc")
		form.PromotionPrice = "0"

		resp, err := svc.CreateProduct(ctx, form, nil)
		require.NoError(t, err)
		assert.False(t, resp.PromotionPrice.Valid)
		assert.True(t, resp.ActualPrice.Equal(d("1000")))
	})

	t.Run("invalid input", func(t *testing.T) {
		_, svc, storage := newProductService(t)
		cases := map[string]func(f *request_models.ProductForm){
			"non-positive price": func(f *request_models.ProductForm) { f.Price = "0" },
			"bad plans json":     func(f *request_models.ProductForm) { f.SubscriptionPlans = "{" },
			"bad cycle type":     func(f *request_models.ProductForm) { f.SubscriptionPlans = `[{"cycleType":"weekly","cycleDays":7}]` },
			"discount above one": func(f *request_models.ProductForm) {
				f.SubscriptionPlans = `[{"cycleType":"monthly","cycleDays":30,"discountRate":1.5}]`
			},
		}
		for name, mutate := range cases {
			t.Run(name, func(t *testing.T) {
				form := productForm("Bad")
				mutate(&form)
				_, err := svc.CreateProduct(ctx, form, upload("x.png"))
				assert.ErrorIs(t, err, utils.ErrValidation)
			})
		}
		assert.Empty(t, storage.saved, "nothing is stored for rejected input")
	})

	t.Run("storage failure", func(t *testing.T) {
		env, svc, storage := newProductService(t)
		storage.saveErr = utils.ErrInvalidFileType

		_, err := svc.CreateProduct(ctx, productForm("Broken"), upload("x.exe"))
		assert.ErrorIs(t, err, utils.ErrInvalidFileType)

		var count int64
		env.db.Model(&db_models.Product{}).Count(&count)
		assert.Zero(t, count)
	})
}

func TestProductService_UpdateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("new image replaces the old one", func(t *testing.T) {
		_, svc, storage := newProductService(t)
		created, err := svc.CreateProduct(ctx, productForm("Omega"), upload("old.png"))
		require.NoError(t, err)

		form := productForm("Omega 3")
		form.Price = "1100"
		updated, err := svc.UpdateProduct(ctx, created.ProductID, form, upload("new.png"))
		require.NoError(t, err)

		assert.Equal(t, "Omega 3", updated.ProductName)
		assert.True(t, updated.Price.Equal(d("1100")))
		assert.Equal(t, "/uploads/products/new.png", *updated.ImageURL)
		assert.Equal(t, []string{"/uploads/products/old.png"}, storage.deleted)
	})

	t.Run("plans are replaced only when sent", func(t *testing.T) {
		env, svc, storage := newProductService(t)
		product := testutil.CreateProduct(t, env.db, "Calcium", 500, 5)
		testutil.CreatePlan(t, env.db, product.ID, db_models.CycleMonthly, 30, "0.9")

		updated, err := svc.UpdateProduct(ctx, product.ID, productForm("Calcium"), nil)
		require.NoError(t, err)
		assert.Len(t, updated.SubscriptionPlans, 1)

		form := productForm("Calcium")
		form.SubscriptionPlans = `[{"cycleType":"quarterly","cycleDays":90,"discountRate":0.8},{"cycleType":"biannual","cycleDays":180,"discountRate":0.7}]`
		updated, err = svc.UpdateProduct(ctx, product.ID, form, nil)
		require.NoError(t, err)
		require.Len(t, updated.SubscriptionPlans, 2)
		assert.Equal(t, db_models.CycleQuarterly, updated.SubscriptionPlans[0].CycleType)

		form.SubscriptionPlans = `[]`
		updated, err = svc.UpdateProduct(ctx, product.ID, form, nil)
		require.NoError(t, err)
		assert.Empty(t, updated.SubscriptionPlans)
		assert.Empty(t, storage.deleted)
	})

	t.Run("sent plan ids are ignored", func(t *testing.T) {
		env, svc, _ := newProductService(t)
		product := testutil.CreateProduct(t, env.db, "Iron", 500, 5)
		existing := testutil.CreatePlan(t, env.db, product.ID, db_models.CycleMonthly, 30, "0.9")

		form := productForm("Iron")
		form.SubscriptionPlans = fmt.Sprintf(`[{"planId":%d,"cycleType":"monthly","cycleDays":30,"discountRate":0.85}]`, existing.ID)
		updated, err := svc.UpdateProduct(ctx, product.ID, form, nil)
		require.NoError(t, err)

		require.Len(t, updated.SubscriptionPlans, 1)
		assert.True(t, updated.SubscriptionPlans[0].SubscriptionPrice.Equal(d("425")))

		var stored int64
		require.NoError(t, env.db.Model(&db_models.SubscriptionPlan{}).Where("product_id = ?", product.ID).Count(&stored).Error)
		assert.Equal(t, int64(1), stored)
	})

	t.Run("deleted product", func(t *testing.T) {
		env, svc, _ := newProductService(t)
		product := testutil.CreateProduct(t, env.db, "Gone", 500, 5, testutil.WithStatus(db_models.ProductStatusDeleted))

		_, err := svc.UpdateProduct(ctx, product.ID, productForm("Back"), nil)
		assert.ErrorIs(t, err, utils.ErrProductNotFound)
	})
}

func TestProductService_StatusAndDelete(t *testing.T) {
	env, svc, _ := newProductService(t)
	ctx := context.Background()
	product := testutil.CreateProduct(t, env.db, "Lutein", 700, 5)

	require.NoError(t, svc.UpdateStatus(ctx, product.ID, db_models.ProductStatusUnavailable))
	stored, err := env.products.FindById(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, db_models.ProductStatusUnavailable, stored.Status)

	err = svc.UpdateStatus(ctx, product.ID, db_models.ProductStatusDeleted)
	assert.ErrorIs(t, err, utils.ErrInvalidStatus)
	err = svc.UpdateStatus(ctx, product.ID, "archived")
	assert.ErrorIs(t, err, utils.ErrValidation)

	require.NoError(t, svc.DeleteProduct(ctx, product.ID))
	stored, err = env.products.FindById(ctx, product.ID)
	require.NoError(t, err)
	require.NotNil(t, stored, "delete is a status change")
	assert.Equal(t, db_models.ProductStatusDeleted, stored.Status)

	err = svc.DeleteProduct(ctx, product.ID)
	assert.ErrorIs(t, err, utils.ErrProductNotFound)
}

func TestProductService_UploadImage(t *testing.T) {
	_, svc, storage := newProductService(t)

	resp, err := svc.UploadImage(context.Background(), *upload("label.png"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/products/label.png", resp.URL)
	assert.Equal(t, "label.png", resp.Filename)

	storage.saveErr = errors.New("disk full")
	_, err = svc.UploadImage(context.Background(), *upload("label.png"))
	assert.Error(t, err)
}
