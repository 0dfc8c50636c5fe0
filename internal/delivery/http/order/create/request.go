package create

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/streamworks/order_pipeline/internal/domain/models"
	internalErrors "github.com/streamworks/order_pipeline/internal/lib/errors"
)

var validate = validator.New()

type SubmitOrderRequest struct {
	OrderID string `json:"orderId" validate:"required"`
	Amount  int64  `json:"amount" validate:"gt=0"`
}

// validate maps structural violations onto the contract error wording before
// the request ever reaches the pipeline.
func (req *SubmitOrderRequest) validate() error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		for _, fieldErr := range vErrs {
			switch fieldErr.Field() {
			case "OrderID":
				return internalErrors.ErrOrderIDRequired
			case "Amount":
				return internalErrors.ErrAmountNotPositive
			}
		}
	}

	return err
}

func (req *SubmitOrderRequest) toDTO() models.Order {
	return models.Order{
		OrderID: req.OrderID,
		Amount:  req.Amount,
	}
}
