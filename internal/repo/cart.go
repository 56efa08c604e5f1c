package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Skotchmaster/cartshop/internal/models"
)

func (r *GormRepo) GetCart(ctx context.Context) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddToCart increments the row for productID by quantity, or creates it.
// created reports which of the two happened.
func (r *GormRepo) AddToCart(ctx context.Context, productID int64, quantity float64) (item *models.CartItem, created bool, err error) {
	item, created, err = r.upsertCartItem(ctx, productID, quantity)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// lost the insert race on idx_cart_items_product; the row exists now
		item, created, err = r.upsertCartItem(ctx, productID, quantity)
	}
	return item, created, err
}

func (r *GormRepo) upsertCartItem(ctx context.Context, productID int64, quantity float64) (*models.CartItem, bool, error) {
	var item models.CartItem
	created := false

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("product_id = ?", productID).
			Update("quantity", gorm.Expr("quantity + ?", quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return tx.Where("product_id = ?", productID).First(&item).Error
		}

		item = models.CartItem{ProductID: productID, Quantity: quantity}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &item, created, nil
}

// DeleteCartItem removes the row with the given id and returns it.
// gorm.ErrRecordNotFound is returned when there is no such row.
func (r *GormRepo) DeleteCartItem(ctx context.Context, id int64) (*models.CartItem, error) {
	var item models.CartItem

	if err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			return err
		}
		res := tx.Delete(&item)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return &item, nil
}
