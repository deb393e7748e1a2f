package memory

import (
	"encoding/json"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/client"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/coupon"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/integration"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/product"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/sale"
)

func cloneClient(v *client.Client) *client.Client {
	c := *v
	if v.Attributes != nil {
		c.Attributes = make(map[string]string, len(v.Attributes))
		for k, val := range v.Attributes {
			c.Attributes[k] = val
		}
	}
	return &c
}

func cloneProduct(v *product.Product) *product.Product {
	c := *v
	c.Ingredients = append([]product.Ingredient(nil), v.Ingredients...)
	return &c
}

func cloneSale(v *sale.Sale) *sale.Sale {
	c := *v
	c.Items = append([]sale.CartItem(nil), v.Items...)
	return &c
}

func cloneCoupon(v *coupon.Coupon) *coupon.Coupon {
	c := *v
	c.TargetCategories = append([]string(nil), v.TargetCategories...)
	return &c
}

func cloneIntegration(v *integration.Integration) *integration.Integration {
	c := *v
	c.Settings = append(json.RawMessage(nil), v.Settings...)
	return &c
}
