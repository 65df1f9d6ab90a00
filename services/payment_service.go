package services

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

// PaymentService builds payment hand-off links for event fees. The
// client opens the URL in the OS browser and resumes on return; there is
// no webhook or callback verification.
type PaymentService struct {
	paypalBusiness string
	zelleRecipient string
}

func NewPaymentService(paypalBusiness, zelleRecipient string) *PaymentService {
	return &PaymentService{
		paypalBusiness: paypalBusiness,
		zelleRecipient: zelleRecipient,
	}
}

// PayPalLink builds a classic single-item PayPal payment URL.
func (s *PaymentService) PayPalLink(amount float64, itemName string) (string, error) {
	if s.paypalBusiness == "" {
		return "", errors.New("paypal business account not configured")
	}
	if amount <= 0 {
		return "", errors.New("amount must be positive")
	}

	params := url.Values{}
	params.Set("cmd", "_xclick")
	params.Set("business", s.paypalBusiness)
	params.Set("amount", strconv.FormatFloat(amount, 'f', 2, 64))
	params.Set("item_name", itemName)
	params.Set("currency_code", "USD")

	return "https://www.paypal.com/cgi-bin/webscr?" + params.Encode(), nil
}

// ZelleLink builds a Zelle deep link with a prefilled memo.
func (s *PaymentService) ZelleLink(amount float64, memo string) (string, error) {
	if s.zelleRecipient == "" {
		return "", errors.New("zelle recipient not configured")
	}
	if amount <= 0 {
		return "", errors.New("amount must be positive")
	}

	params := url.Values{}
	params.Set("recipient", s.zelleRecipient)
	params.Set("amount", strconv.FormatFloat(amount, 'f', 2, 64))
	if memo != "" {
		params.Set("memo", memo)
	}

	return fmt.Sprintf("https://enroll.zellepay.com/qr-codes?%s", params.Encode()), nil
}
