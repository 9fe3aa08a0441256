package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/domain/model"
	"app/internal/notice"
	repo "app/internal/repository"

	"github.com/go-playground/validator/v10"
)

// フォームのpayment_option値
const (
	PaymentOptionStripe = "S"
	PaymentOptionPaypal = "P"
)

// CheckoutUsecase は配送先フォームの検証と決済手段への振り分けを行います。
type CheckoutUsecase struct {
	tx       repo.TransactionManager
	validate *validator.Validate
}

func NewCheckoutUsecase(tx repo.TransactionManager) *CheckoutUsecase {
	return &CheckoutUsecase{
		tx:       tx,
		validate: validator.New(),
	}
}

type CheckoutInput struct {
	StreetAddress    string
	ApartmentAddress string
	Country          string
	Zip              string
	PaymentOption    string
}

type CheckoutOutput struct {
	//次に進む決済ゲートウェイ（stripe / paypal）
	Gateway string          `json:"gateway"`
	Notices []notice.Notice `json:"notices"`
}

// バリデーション用スキーマ
type checkoutForm struct {
	StreetAddress    string `validate:"required"`
	ApartmentAddress string `validate:"required"`
	Country          string `validate:"required,iso3166_1_alpha2"`
	Zip              string `validate:"required"`
}

// Submit はACTIVE注文に対してフォームを検証し、決済手段を決める。
// 検証失敗・不正な決済手段では注文には一切触らない。
func (u *CheckoutUsecase) Submit(ctx context.Context, userID int64, in CheckoutInput) (CheckoutOutput, error) {
	if userID <= 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var out CheckoutOutput
	msgs := &notice.Buffer{}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		_, err := r.Orders().FindActiveByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order does not exist")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if verr := u.validateForm(in); verr != nil {
			return verr
		}

		var gw string
		switch in.PaymentOption {
		case PaymentOptionStripe:
			gw = GatewayStripe
		case PaymentOptionPaypal:
			//フォームとしては受けるが、未対応の旨は決済層が明示的に返す
			gw = GatewayPaypal
		default:
			return NewHTTPError(http.StatusBadRequest, "invalid payment option selected")
		}

		//検証済み住所はユーザーに紐付けて保存する。
		//注文への紐付けは未実装のまま（既知のギャップ、フォーム検証だけが正）
		_, err = r.Addresses().Create(ctx, model.BillingAddress{
			UserID:           userID,
			StreetAddress:    strings.TrimSpace(in.StreetAddress),
			ApartmentAddress: strings.TrimSpace(in.ApartmentAddress),
			Country:          strings.ToUpper(strings.TrimSpace(in.Country)),
			Zip:              strings.TrimSpace(in.Zip),
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out.Gateway = gw
		out.Notices = msgs.List()
		return nil
	})

	if err != nil {
		return CheckoutOutput{}, err
	}
	return out, nil
}

// フィールド単位のエラーを集めてValidationErrorにまとめる
func (u *CheckoutUsecase) validateForm(in CheckoutInput) error {
	form := checkoutForm{
		StreetAddress:    strings.TrimSpace(in.StreetAddress),
		ApartmentAddress: strings.TrimSpace(in.ApartmentAddress),
		Country:          strings.TrimSpace(in.Country),
		Zip:              strings.TrimSpace(in.Zip),
	}

	err := u.validate.Struct(form)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return NewHTTPError(http.StatusInternalServerError, "validation failed")
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		switch fe.Field() {
		case "StreetAddress":
			fields["street_address"] = "this field is required"
		case "ApartmentAddress":
			fields["apartment_address"] = "this field is required"
		case "Country":
			if fe.Tag() == "required" {
				fields["country"] = "this field is required"
			} else {
				fields["country"] = "must be an ISO 3166-1 alpha-2 country code"
			}
		case "Zip":
			fields["zip"] = "this field is required"
		}
	}

	return NewValidationError(fields)
}
