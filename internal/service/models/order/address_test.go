package order

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clearmart/oms/order/internal/service/errs"
)

func validAddress() Address {
	return Address{
		Name:       "Dana Whitfield",
		Line1:      "12 Harbor Way",
		City:       "Portsmouth",
		Region:     "NH",
		PostalCode: "03801",
		Country:    "US",
	}
}

func TestAddressValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, validAddress().Validate())

	a := validAddress()
	a.Line2 = ""
	a.Phone = ""
	require.NoError(t, a.Validate(), "optional fields may be empty")
}

func TestAddressValidateNamesMissingFields(t *testing.T) {
	t.Parallel()

	a := validAddress()
	a.City = ""
	a.PostalCode = "   "

	err := a.Validate()
	require.Error(t, err)
	require.Equal(t, errs.CodeInvalidAddress, errs.CodeOf(err))
	require.Contains(t, err.Error(), "city")
	require.Contains(t, err.Error(), "postalCode")
}

func TestAddressIsZero(t *testing.T) {
	t.Parallel()

	require.True(t, Address{}.IsZero())
	require.False(t, validAddress().IsZero())
}
