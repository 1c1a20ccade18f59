package services

import (
	"context"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"purelife/internal/models/db_models"
	"purelife/internal/models/request_models"
	"purelife/internal/models/response_models"
	"purelife/internal/repositories"
	"purelife/pkg/utils"
)

// TxRunner runs fn in a single database transaction.
type TxRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type CartServiceInterface interface {
	GetCartItems(ctx context.Context, memberID uint) ([]response_models.CartItemResponse, error)
	AddToCart(ctx context.Context, memberID uint, request request_models.AddToCartRequest) (*response_models.CartItemResponse, error)
	UpdateQuantity(ctx context.Context, memberID, cartID uint, quantity int) (*response_models.CartItemResponse, error)
	RemoveFromCart(ctx context.Context, memberID, cartID uint) error
	ClearCart(ctx context.Context, memberID uint) error
	GetCartTotal(ctx context.Context, memberID uint) (*response_models.CartTotalResponse, error)
}

// CartService checks stock on every mutation. Adds go through a single
// upsert so concurrent adds for the same line both land on it.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
	shipping    ShippingPolicy
}

func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository, shipping ShippingPolicy) CartServiceInterface {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		shipping:    shipping,
	}
}

func (s *CartService) GetCartItems(ctx context.Context, memberID uint) ([]response_models.CartItemResponse, error) {
	items, err := s.cartRepo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, utils.WrapDB(err)
	}
	return lo.Map(items, func(item db_models.CartItem, _ int) response_models.CartItemResponse {
		return toCartItemResponse(&item)
	}), nil
}

// AddToCart sums onto an existing line for the same product, then checks the
// combined quantity against current stock.
func (s *CartService) AddToCart(ctx context.Context, memberID uint, request request_models.AddToCartRequest) (*response_models.CartItemResponse, error) {
	quantity := request.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	product, err := s.productRepo.FindById(ctx, request.ProductID)
	if err != nil {
		return nil, utils.WrapDB(err)
	}
	if product == nil || product.Status == db_models.ProductStatusDeleted {
		return nil, utils.ErrProductNotFound
	}
	if product.Status != db_models.ProductStatusAvailable {
		return nil, utils.ErrProductUnavailable
	}

	item, err := s.cartRepo.FindByMemberAndProduct(ctx, memberID, product.ID)
	if err != nil {
		return nil, utils.WrapDB(err)
	}

	newQuantity := quantity
	if item != nil {
		newQuantity += item.Quantity
	}
	if newQuantity > product.StockQuantity {
		return nil, utils.ErrOutOfStock.Withf("Insufficient stock for %s, only %d left", product.Name, product.StockQuantity)
	}

	item, err = s.cartRepo.AddQuantity(ctx, memberID, product.ID, quantity)
	if err != nil {
		return nil, utils.WrapDB(err)
	}
	if item == nil {
		return nil, utils.ErrDatabaseError
	}
	// a concurrent add may have pushed the line past stock
	if item.Quantity > product.StockQuantity {
		if err := s.cartRepo.UpdateQuantity(ctx, item.ID, item.Quantity-quantity); err != nil {
			return nil, utils.WrapDB(err)
		}
		return nil, utils.ErrOutOfStock.Withf("Insufficient stock for %s, only %d left", product.Name, product.StockQuantity)
	}

	item.Product = product
	resp := toCartItemResponse(item)
	return &resp, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, memberID, cartID uint, quantity int) (*response_models.CartItemResponse, error) {
	item, err := s.ownedItem(ctx, memberID, cartID)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindById(ctx, item.ProductID)
	if err != nil {
		return nil, utils.WrapDB(err)
	}
	if product == nil {
		return nil, utils.ErrProductNotFound
	}
	if quantity > product.StockQuantity {
		return nil, utils.ErrOutOfStock.Withf("Insufficient stock for %s, only %d left", product.Name, product.StockQuantity)
	}

	if err := s.cartRepo.UpdateQuantity(ctx, item.ID, quantity); err != nil {
		return nil, utils.WrapDB(err)
	}
	item.Quantity = quantity
	item.Product = product

	resp := toCartItemResponse(item)
	return &resp, nil
}

func (s *CartService) RemoveFromCart(ctx context.Context, memberID, cartID uint) error {
	item, err := s.ownedItem(ctx, memberID, cartID)
	if err != nil {
		return err
	}
	return utils.WrapDB(s.cartRepo.Delete(ctx, item.ID))
}

func (s *CartService) ClearCart(ctx context.Context, memberID uint) error {
	return utils.WrapDB(s.cartRepo.DeleteByMember(ctx, memberID))
}

func (s *CartService) GetCartTotal(ctx context.Context, memberID uint) (*response_models.CartTotalResponse, error) {
	items, err := s.cartRepo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, utils.WrapDB(err)
	}

	total := CartTotal(items)
	fee := decimal.Zero
	if len(items) > 0 {
		fee = s.shipping.ShippingFee(total)
	}

	return &response_models.CartTotalResponse{
		ItemCount:   lo.SumBy(items, func(item db_models.CartItem) int { return item.Quantity }),
		TotalAmount: total,
		ShippingFee: fee,
		GrandTotal:  total.Add(fee),
	}, nil
}

func (s *CartService) ownedItem(ctx context.Context, memberID, cartID uint) (*db_models.CartItem, error) {
	item, err := s.cartRepo.FindById(ctx, cartID)
	if err != nil {
		return nil, utils.WrapDB(err)
	}
	if item == nil {
		return nil, utils.ErrCartItemNotFound
	}
	if item.MemberID != memberID {
		return nil, utils.ErrCartItemForbidden
	}
	return item, nil
}
