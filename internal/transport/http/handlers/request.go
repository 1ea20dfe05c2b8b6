package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Golden-Bit/myrent-SDK/internal/domain/coerce"
	"github.com/Golden-Bit/myrent-SDK/internal/domain/models"
)

const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	_ = v.RegisterValidation("isotime", func(fl validator.FieldLevel) bool {
		_, ok := coerce.ParseTime(fl.Field().String())
		return ok
	})
	return v
}

// flexInt takes a JSON integer or a numeric string.
type flexInt struct {
	value int
	set   bool
}

func (f *flexInt) UnmarshalJSON(data []byte) error {
	raw, err := decodeScalar(data)
	if err != nil {
		return err
	}
	if raw == nil {
		*f = flexInt{}
		return nil
	}
	n, ok := coerce.Int(raw)
	if !ok {
		return fmt.Errorf("expected an integer, got %s", data)
	}
	*f = flexInt{value: n, set: true}
	return nil
}

// flexString takes a JSON string or number and keeps its text.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	raw, err := decodeScalar(data)
	if err != nil {
		return err
	}
	switch raw.(type) {
	case nil:
		*f = ""
	case string, json.Number:
		*f = flexString(coerce.String(raw))
	default:
		return fmt.Errorf("expected a string or number, got %s", data)
	}
	return nil
}

func decodeScalar(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}

type quotationBody struct {
	DropOffLocation         string     `json:"dropOffLocation" validate:"required"`
	EndDate                 string     `json:"endDate" validate:"required,isotime"`
	PickupLocation          string     `json:"pickupLocation" validate:"required"`
	StartDate               string     `json:"startDate" validate:"required,isotime"`
	Age                     flexInt    `json:"age"`
	Channel                 string     `json:"channel" validate:"max=64"`
	ShowPics                bool       `json:"showPics"`
	ShowOptionalImage       bool       `json:"showOptionalImage"`
	ShowVehicleParameter    bool       `json:"showVehicleParameter"`
	ShowVehicleExtraImage   bool       `json:"showVehicleExtraImage"`
	AgreementCoupon         string     `json:"agreementCoupon"`
	DiscountValueWithoutVAT flexString `json:"discountValueWithoutVat"`
	MacroDescription        string     `json:"macroDescription"`
	ShowBookingDiscount     bool       `json:"showBookingDiscount"`
	IsYoungDriverAge        *bool      `json:"isYoungDriverAge"`
	IsSeniorDriverAge       *bool      `json:"isSeniorDriverAge"`
}

func (b quotationBody) toDomain() models.QuoteRequest {
	start, _ := coerce.ParseTime(b.StartDate)
	end, _ := coerce.ParseTime(b.EndDate)

	req := models.QuoteRequest{
		PickupLocation:          strings.TrimSpace(b.PickupLocation),
		DropOffLocation:         strings.TrimSpace(b.DropOffLocation),
		Start:                   start,
		End:                     end,
		Channel:                 strings.TrimSpace(b.Channel),
		AgreementCoupon:         b.AgreementCoupon,
		DiscountValueWithoutVAT: string(b.DiscountValueWithoutVAT),
		MacroDescription:        b.MacroDescription,
		ShowPics:                b.ShowPics,
		ShowOptionalImage:       b.ShowOptionalImage,
		ShowVehicleParameter:    b.ShowVehicleParameter,
		ShowVehicleExtraImage:   b.ShowVehicleExtraImage,
		ShowBookingDiscount:     b.ShowBookingDiscount,
		IsYoungDriverAge:        b.IsYoungDriverAge,
		IsSeniorDriverAge:       b.IsSeniorDriverAge,
	}
	if b.Age.set {
		age := b.Age.value
		req.Age = &age
	}
	return req
}

// bodyError is a rejected request body, with per-field messages when the
// validator produced them.
type bodyError struct {
	msg    string
	fields map[string]string
}

func (e *bodyError) Error() string { return e.msg }

func decodeJSONBody(r *http.Request, dest any) error {
	defer func() {
		_, _ = io.Copy(io.Discard, r.Body)
	}()

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := decoder.Decode(dest); err != nil {
		return &bodyError{msg: "invalid request body: " + err.Error()}
	}
	if err := validate.Struct(dest); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) *bodyError {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		fields := make(map[string]string, len(errs))
		for _, fieldErr := range errs {
			fields[fieldErr.Field()] = validationMessage(fieldErr)
		}
		return &bodyError{msg: "validation failed", fields: fields}
	}
	return &bodyError{msg: "validation failed: " + err.Error()}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "isotime":
		return "must be an ISO-8601 date-time"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	}
	return "is invalid"
}
