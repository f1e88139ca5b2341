package validation

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"time"

	"storefront-service/models"

	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

// 每个字段的错误文案，和前端表单保持一致
var fieldMessages = map[string]string{
	"customer_name":    "Imię i nazwisko musi mieć co najmniej 2 znaki.",
	"customer_email":   "Nieprawidłowy adres email.",
	"customer_phone":   "Numer telefonu musi mieć co najmniej 9 cyfr.",
	"delivery_address": "Adres dostawy musi mieć co najmniej 5 znaków.",
	"delivery_date":    "Data dostawy nie może być wcześniejsza niż dzisiaj.",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// 字段错误按 json 标签名返回
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// 去掉首尾空白后再检查最小长度
	_ = v.RegisterValidation("trimmed_min", func(fl validator.FieldLevel) bool {
		min, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(strings.TrimSpace(fl.Field().String())) >= min
	})

	// 配送日期必须能解析，且不能早于今天
	_ = v.RegisterValidation("not_past_date", func(fl validator.FieldLevel) bool {
		d, err := time.Parse(dateLayout, fl.Field().String())
		if err != nil {
			return false
		}
		year, month, day := time.Now().Date()
		today := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		return !d.Before(today)
	})

	return v
}

// ValidateCustomerInfo 纯验证函数：返回字段名到错误文案的映射，
// 映射为空表示验证通过，不修改任何状态
func ValidateCustomerInfo(info models.CustomerInfo) map[string]string {
	err := validate.Struct(info)
	if err == nil {
		return nil
	}

	fieldErrors := make(map[string]string)
	var invalid validator.ValidationErrors
	if errors.As(err, &invalid) {
		for _, fe := range invalid {
			if msg, ok := fieldMessages[fe.Field()]; ok {
				fieldErrors[fe.Field()] = msg
			} else {
				fieldErrors[fe.Field()] = "Nieprawidłowa wartość."
			}
		}
	}
	return fieldErrors
}
