package public

import (
	"errors"

	"github.com/diancan-next/internal/http/response"
	"github.com/diancan-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var cartMutationErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, key: "error.invalid_quantity"},
	{target: service.ErrMenuItemNotFound, code: response.CodeBadRequest, key: "error.menu_item_not_found"},
	{target: service.ErrMenuItemUnavailable, code: response.CodeBadRequest, key: "error.menu_item_unavailable"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, key: "error.cart_item_not_found"},
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.not_found"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidOrderType, code: response.CodeBadRequest, key: "error.invalid_order_type"},
	{target: service.ErrTableRequired, code: response.CodeBadRequest, key: "error.table_required"},
	{target: service.ErrAddressRequired, code: response.CodeBadRequest, key: "error.address_required"},
	{target: service.ErrTableNotFound, code: response.CodeBadRequest, key: "error.table_not_found"},
	{target: service.ErrCartNotFound, code: response.CodeNotFound, key: "error.cart_not_found"},
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, key: "error.cart_empty"},
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.not_found"},
}

var reviewErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidRate, code: response.CodeBadRequest, key: "error.invalid_rate"},
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
	{target: service.ErrRestaurantNotFound, code: response.CodeBadRequest, key: "error.restaurant_not_found"},
	{target: service.ErrReviewNotFound, code: response.CodeNotFound, key: "error.review_not_found"},
	{target: service.ErrForbidden, code: response.CodeForbidden, key: "error.forbidden"},
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.not_found"},
}

var scanErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidQRData, code: response.CodeBadRequest, key: "error.invalid_qr"},
	{target: service.ErrTableNotFound, code: response.CodeNotFound, key: "error.table_not_found"},
	{target: service.ErrRestaurantNotFound, code: response.CodeNotFound, key: "error.restaurant_not_found"},
}

func respondCartMutationError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartMutationErrorRules, response.CodeInternal, "error.cart_update_failed")
}

func respondCheckoutError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(checkoutErrorRules, cartMutationErrorRules), response.CodeInternal, "error.order_create_failed")
}

func respondReviewError(c *gin.Context, err error) {
	respondWithMappedError(c, err, reviewErrorRules, response.CodeInternal, "error.review_save_failed")
}

func respondScanError(c *gin.Context, err error) {
	respondWithMappedError(c, err, scanErrorRules, response.CodeInternal, "error.scan_failed")
}
