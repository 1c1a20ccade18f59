package services

import (
	"context"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"purelife/internal/models/db_models"
	"purelife/internal/models/request_models"
	"purelife/internal/models/response_models"
	"purelife/internal/repositories"
	"purelife/pkg/logger"
	"purelife/pkg/utils"
)

type ProductServiceInterface interface {
	ListProducts(ctx context.Context, category string) ([]response_models.ProductResponse, error)
	GetProduct(ctx context.Context, id uint) (*response_models.ProductResponse, error)
	ListCategories(ctx context.Context) ([]string, error)
	ListNewProducts(ctx context.Context) ([]response_models.ProductResponse, error)
	ListHotProducts(ctx context.Context) ([]response_models.ProductResponse, error)

	ListAllForAdmin(ctx context.Context) ([]response_models.ProductResponse, error)
	CreateProduct(ctx context.Context, form request_models.ProductForm, image *ImageUpload) (*response_models.ProductResponse, error)
	UpdateProduct(ctx context.Context, id uint, form request_models.ProductForm, image *ImageUpload) (*response_models.ProductResponse, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	DeleteProduct(ctx context.Context, id uint) error
	UploadImage(ctx context.Context, image ImageUpload) (*response_models.UploadResponse, error)
}

type ListingLimits struct {
	New int
	Hot int
}

type ProductService struct {
	tx          TxRunner
	productRepo repositories.ProductRepository
	planRepo    repositories.IPlanRepository
	storage     FileStorage
	limits      ListingLimits
}

func NewProductService(
	tx TxRunner,
	productRepo repositories.ProductRepository,
	planRepo repositories.IPlanRepository,
	storage FileStorage,
	limits ListingLimits,
) ProductServiceInterface {
	return &ProductService{
		tx:          tx,
		productRepo: productRepo,
		planRepo:    planRepo,
		storage:     storage,
		limits:      limits,
	}
}

func (s *ProductService) ListProducts(ctx context.Context, category string) ([]response_models.ProductResponse, error) {
	products, err := s.productRepo.ListAvailable(ctx, strings.TrimSpace(category))
	if err != nil {
		return nil, utils.WrapDB(err)
	}
	return toProductResponses(products), nil
}

// GetProduct includes the product's plans; deleted products read as not found.
func (s *ProductService) GetProduct(ctx context.Context, id uint) (*response_models.ProductResponse, error) {
	product, err := s.findLive(ctx, id)
	if err != nil {
		return nil, err
	}

	plans, err := s.planRepo.GetPlansByProduct(ctx, id)
	if err != nil {
		return nil, utils.WrapDB(err)
	}
	product.SubscriptionPlans = plans

	resp := toProductResponse(product)
	return &resp, nil
}

func (s *ProductService) ListCategories(ctx context.Context) ([]string, error) {
	categories, err := s.productRepo.ListCategories(ctx)
	if err != nil {
		return nil, utils.WrapDB(err)
	}
	return lo.Uniq(lo.Compact(categories)), nil
}

func (s *ProductService) ListNewProducts(ctx context.Context) ([]response_models.ProductResponse, error) {
	products, err := s.productRepo.ListNewest(ctx, s.limits.New)
	if err != nil {
		return nil, utils.WrapDB(err)
	}
	return toProductResponses(products), nil
}

func (s *ProductService) ListHotProducts(ctx context.Context) ([]response_models.ProductResponse, error) {
	products, err := s.productRepo.ListBestSelling(ctx, s.limits.Hot)
	if err != nil {
		return nil, utils.WrapDB(err)
	}
	return toProductResponses(products), nil
}

func (s *ProductService) ListAllForAdmin(ctx context.Context) ([]response_models.ProductResponse, error) {
	products, err := s.productRepo.ListNotDeleted(ctx)
	if err != nil {
		return nil, utils.WrapDB(err)
	}
	return toProductResponses(products), nil
}

// CreateProduct stores the image first, then the product and its plans in
// one transaction. The image is removed again if the transaction fails.
func (s *ProductService) CreateProduct(ctx context.Context, form request_models.ProductForm, image *ImageUpload) (*response_models.ProductResponse, error) {
	fields, err := parseProductForm(form)
	if err != nil {
		return nil, err
	}

	product := &db_models.Product{}
	fields.apply(product)

	if image != nil {
		ref, err := s.storage.SaveProductImage(ctx, *image)
		if err != nil {
			return nil, err
		}
		product.ImageURL = &ref
	} else if fields.imageURL != "" {
		product.ImageURL = &fields.imageURL
	}

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.productRepo.Create(ctx, product); err != nil {
			return utils.WrapDB(err)
		}
		if fields.plansProvided {
			if err := s.planRepo.ReplacePlans(ctx, product.ID, fields.plans); err != nil {
				return utils.WrapDB(err)
			}
		}
		return nil
	})
	if err != nil {
		if image != nil && product.ImageURL != nil {
			s.discardImage(ctx, *product.ImageURL)
		}
		return nil, err
	}

	logger.WithComponent("product").Info("product created", "product_id", product.ID, "plans", len(fields.plans))
	return s.GetProduct(ctx, product.ID)
}

// UpdateProduct replaces every scalar field. A new file replaces the stored
// image, a bare imageUrl is adopted as is, and neither keeps the old one.
// Plans, when sent, replace all existing plans.
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, form request_models.ProductForm, image *ImageUpload) (*response_models.ProductResponse, error) {
	fields, err := parseProductForm(form)
	if err != nil {
		return nil, err
	}

	product, err := s.findLive(ctx, id)
	if err != nil {
		return nil, err
	}
	oldImage := product.ImageURL
	fields.apply(product)

	var newImage string
	switch {
	case image != nil:
		newImage, err = s.storage.SaveProductImage(ctx, *image)
		if err != nil {
			return nil, err
		}
		product.ImageURL = &newImage
	case fields.imageURL != "":
		product.ImageURL = &fields.imageURL
	}

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.productRepo.Save(ctx, product); err != nil {
			return utils.WrapDB(err)
		}
		if fields.plansProvided {
			if err := s.planRepo.ReplacePlans(ctx, product.ID, fields.plans); err != nil {
				return utils.WrapDB(err)
			}
		}
		return nil
	})
	if err != nil {
		if newImage != "" {
			s.discardImage(ctx, newImage)
		}
		return nil, err
	}

	if newImage != "" && oldImage != nil && *oldImage != "" {
		s.discardImage(ctx, *oldImage)
	}

	return s.GetProduct(ctx, product.ID)
}

func (s *ProductService) UpdateStatus(ctx context.Context, id uint, status string) error {
	if status != db_models.ProductStatusAvailable && status != db_models.ProductStatusUnavailable {
		return utils.ErrInvalidStatus.Withf("status: must be one of [available unavailable]")
	}
	if _, err := s.findLive(ctx, id); err != nil {
		return err
	}
	_, err := s.productRepo.UpdateStatus(ctx, id, status)
	return utils.WrapDB(err)
}

// DeleteProduct only flips the status so order history keeps its references.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	if _, err := s.findLive(ctx, id); err != nil {
		return err
	}
	_, err := s.productRepo.UpdateStatus(ctx, id, db_models.ProductStatusDeleted)
	if err != nil {
		return utils.WrapDB(err)
	}
	logger.WithComponent("product").Info("product deleted", "product_id", id)
	return nil
}

func (s *ProductService) UploadImage(ctx context.Context, image ImageUpload) (*response_models.UploadResponse, error) {
	ref, err := s.storage.SaveProductImage(ctx, image)
	if err != nil {
		return nil, err
	}
	return &response_models.UploadResponse{
		URL:      ref,
		Filename: ref[strings.LastIndex(ref, "/")+1:],
	}, nil
}

func (s *ProductService) findLive(ctx context.Context, id uint) (*db_models.Product, error) {
	product, err := s.productRepo.FindById(ctx, id)
	if err != nil {
		return nil, utils.WrapDB(err)
	}
	if product == nil || product.Status == db_models.ProductStatusDeleted {
		return nil, utils.ErrProductNotFound
	}
	return product, nil
}

func (s *ProductService) discardImage(ctx context.Context, ref string) {
	if err := s.storage.DeleteProductImage(ctx, ref); err != nil {
		logger.WithComponent("product").Warn("failed to delete image", "ref", ref, "error", err)
	}
}

type productFields struct {
	name          string
	category      string
	description   string
	price         decimal.Decimal
	promotion     decimal.NullDecimal
	stock         int
	status        string
	imageURL      string
	plans         []db_models.SubscriptionPlan
	plansProvided bool
}

func (f productFields) apply(p *db_models.Product) {
	p.Name = f.name
	p.Category = f.category
	p.Description = f.description
	p.Price = f.price
	p.PromotionPrice = f.promotion
	p.StockQuantity = f.stock
	p.Status = f.status
}

func parseProductForm(form request_models.ProductForm) (*productFields, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(form.Price))
	if err != nil || !price.IsPositive() {
		return nil, utils.NewValidationError("price: must be greater than 0")
	}

	fields := &productFields{
		name:        strings.TrimSpace(form.ProductName),
		category:    strings.TrimSpace(form.Category),
		description: form.Description,
		price:       price,
		status:      form.ProductStatus,
		imageURL:    strings.TrimSpace(form.ImageURL),
	}
	if form.StockQuantity != nil {
		fields.stock = *form.StockQuantity
	}
	if fields.stock < 0 {
		return nil, utils.NewValidationError("stockQuantity: must be greater than or equal to 0")
	}

	if raw := strings.TrimSpace(form.PromotionPrice); raw != "" {
		promo, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, utils.NewValidationError("promotionPrice: must be a number")
		}
		// zero or negative means "no promotion"
		if promo.IsPositive() {
			fields.promotion = decimal.NewNullDecimal(promo)
		}
	}

	plans, provided, err := form.Plans()
	if err != nil {
		return nil, utils.NewValidationError("subscriptionPlans: must be a JSON array")
	}
	fields.plansProvided = provided
	for i, p := range plans {
		plan, err := toPlanModel(p)
		if err != nil {
			return nil, utils.NewValidationError("subscriptionPlans[%d].%s", i, err.Error())
		}
		fields.plans = append(fields.plans, plan)
	}

	return fields, nil
}

type planError string

func (e planError) Error() string { return string(e) }

func toPlanModel(p request_models.PlanRequest) (db_models.SubscriptionPlan, error) {
	switch p.CycleType {
	case db_models.CycleMonthly, db_models.CycleQuarterly, db_models.CycleBiannual:
	default:
		return db_models.SubscriptionPlan{}, planError("cycleType: must be one of [monthly quarterly biannual]")
	}
	if p.CycleDays <= 0 {
		return db_models.SubscriptionPlan{}, planError("cycleDays: must be greater than 0")
	}

	plan := db_models.SubscriptionPlan{CycleType: p.CycleType, CycleDays: p.CycleDays}
	if p.DiscountRate != nil {
		rate := decimal.NewFromFloat(*p.DiscountRate)
		if !rate.IsPositive() || rate.GreaterThan(decimal.NewFromInt(1)) {
			return db_models.SubscriptionPlan{}, planError("discountRate: must be greater than 0 and at most 1")
		}
		plan.DiscountRate = decimal.NewNullDecimal(rate)
	}
	return plan, nil
}
