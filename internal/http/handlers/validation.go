package handlers

import (
	"math"
	"net/mail"
	"strconv"
	"strings"
)

const (
	msgProductIDRequired = "The product ID is required."
	msgProductIDInvalid  = "The product ID must be an integer."
	msgProductIDNotFound = "The specified product does not exist."
	msgQuantityRequired  = "The quantity is required."
	msgQuantityInvalid   = "The quantity must be an integer."
	msgQuantityMin       = "The quantity must be at least 1."
	msgEmailRequired     = "The email field is required."
	msgEmailInvalid      = "Please provide a valid email address."
	msgEmailNotFound     = "This email does not exist."
	msgPasswordRequired  = "The password field is required."
)

// ValidationErrors maps a request field to its failed rules.
type ValidationErrors map[string][]string

func (v ValidationErrors) add(field, message string) {
	v[field] = append(v[field], message)
}

// first returns the first message, preferring fields in the given order.
func (v ValidationErrors) first(order ...string) string {
	for _, field := range order {
		if msgs := v[field]; len(msgs) > 0 {
			return msgs[0]
		}
	}
	for _, msgs := range v {
		if len(msgs) > 0 {
			return msgs[0]
		}
	}
	return ""
}

type ValidationErrorResponse struct {
	Message string           `json:"message"`
	Errors  ValidationErrors `json:"errors"`
}

// integerField interprets a decoded JSON value as an integer. Numeric strings
// are accepted.
func integerField(v any) (n int, present, ok bool) {
	switch t := v.(type) {
	case nil:
		return 0, false, false
	case float64:
		if t != math.Trunc(t) || math.Abs(t) > math.MaxInt32 {
			return 0, true, false
		}
		return int(t), true, true
	case string:
		if strings.TrimSpace(t) == "" {
			return 0, false, false
		}
		i, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, true, false
		}
		return i, true, true
	default:
		return 0, true, false
	}
}

func validateQuantity(errs ValidationErrors, raw any) int {
	quantity, present, ok := integerField(raw)
	switch {
	case !present:
		errs.add("quantity", msgQuantityRequired)
	case !ok:
		errs.add("quantity", msgQuantityInvalid)
	case quantity < 1:
		errs.add("quantity", msgQuantityMin)
	}
	return quantity
}

func validateProductID(errs ValidationErrors, raw any) int {
	id, present, ok := integerField(raw)
	switch {
	case !present:
		errs.add("product_id", msgProductIDRequired)
	case !ok:
		errs.add("product_id", msgProductIDInvalid)
	}
	return id
}

func validateLogin(req LoginRequest) ValidationErrors {
	errs := ValidationErrors{}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		errs.add("email", msgEmailRequired)
	} else if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		errs.add("email", msgEmailInvalid)
	}
	if req.Password == "" {
		errs.add("password", msgPasswordRequired)
	}
	return errs
}
