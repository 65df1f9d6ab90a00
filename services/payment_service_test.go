package services

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayPalLink(t *testing.T) {
	svc := NewPaymentService("treasurer@club.example", "")

	link, err := svc.PayPalLink(75, "Invitational entry")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "https://www.paypal.com/cgi-bin/webscr?"))

	u, err := url.Parse(link)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "_xclick", q.Get("cmd"))
	assert.Equal(t, "treasurer@club.example", q.Get("business"))
	assert.Equal(t, "75.00", q.Get("amount"))
	assert.Equal(t, "Invitational entry", q.Get("item_name"))
	assert.Equal(t, "USD", q.Get("currency_code"))
}

func TestPayPalLinkRequiresConfiguration(t *testing.T) {
	svc := NewPaymentService("", "club@zelle.example")

	_, err := svc.PayPalLink(75, "entry")
	assert.Error(t, err)
}

func TestZelleLink(t *testing.T) {
	svc := NewPaymentService("", "club@zelle.example")

	link, err := svc.ZelleLink(50.5, "entry fee")
	require.NoError(t, err)

	u, err := url.Parse(link)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "club@zelle.example", q.Get("recipient"))
	assert.Equal(t, "50.50", q.Get("amount"))
	assert.Equal(t, "entry fee", q.Get("memo"))
}

func TestPaymentLinksRejectNonPositiveAmount(t *testing.T) {
	svc := NewPaymentService("treasurer@club.example", "club@zelle.example")

	_, err := svc.PayPalLink(0, "entry")
	assert.Error(t, err)
	_, err = svc.ZelleLink(-5, "entry")
	assert.Error(t, err)
}
