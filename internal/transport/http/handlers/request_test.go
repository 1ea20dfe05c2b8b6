package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, raw string) (quotationBody, error) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(raw))
	var body quotationBody
	err := decodeJSONBody(req, &body)
	return body, err
}

func TestQuotationBodyToDomain(t *testing.T) {
	body, err := decodeBody(t, `{
		"pickupLocation": " FCO ",
		"dropOffLocation": "MXP",
		"startDate": "2025-10-12T10:00:00Z",
		"endDate": "2025-10-15T10:00",
		"age": "27",
		"channel": "WEB",
		"discountValueWithoutVat": 12.5,
		"agreementCoupon": "SUMMER",
		"showVehicleParameter": true,
		"isYoungDriverAge": false,
		"unknownKey": "ignored"
	}`)
	require.NoError(t, err)

	req := body.toDomain()
	assert.Equal(t, "FCO", req.PickupLocation)
	assert.Equal(t, "MXP", req.DropOffLocation)
	assert.Equal(t, time.Date(2025, 10, 12, 10, 0, 0, 0, time.UTC), req.Start)
	assert.Equal(t, time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC), req.End)
	require.NotNil(t, req.Age)
	assert.Equal(t, 27, *req.Age)
	assert.Equal(t, "12.5", req.DiscountValueWithoutVAT)
	assert.Equal(t, "SUMMER", req.AgreementCoupon)
	assert.True(t, req.ShowVehicleParameter)
	assert.False(t, req.ShowPics)
	require.NotNil(t, req.IsYoungDriverAge)
	assert.False(t, *req.IsYoungDriverAge)
	assert.Nil(t, req.IsSeniorDriverAge)
}

func TestQuotationBodyFlexibleFields(t *testing.T) {
	base := `"pickupLocation": "FCO", "dropOffLocation": "FCO", "startDate": "2025-10-12T10:00:00", "endDate": "2025-10-13T10:00:00"`

	cases := []struct {
		name     string
		extra    string
		wantAge  *int
		discount string
		wantErr  bool
	}{
		{name: "no age", extra: ``},
		{name: "null age", extra: `, "age": null`},
		{name: "int age", extra: `, "age": 40`, wantAge: intPtr(40)},
		{name: "string age", extra: `, "age": " 21 "`, wantAge: intPtr(21)},
		{name: "string discount", extra: `, "discountValueWithoutVat": "7"`, discount: "7"},
		{name: "bad age", extra: `, "age": "forty"`, wantErr: true},
		{name: "object discount", extra: `, "discountValueWithoutVat": {}`, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body, err := decodeBody(t, "{"+base+tc.extra+"}")
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			req := body.toDomain()
			assert.Equal(t, tc.wantAge, req.Age)
			assert.Equal(t, tc.discount, req.DiscountValueWithoutVAT)
		})
	}
}

func TestQuotationBodyValidation(t *testing.T) {
	_, err := decodeBody(t, `{"pickupLocation": "FCO", "startDate": "soon", "endDate": "2025-10-13T10:00:00"}`)
	require.Error(t, err)

	be, ok := err.(*bodyError)
	require.True(t, ok)
	assert.Equal(t, map[string]string{
		"dropOffLocation": "is required",
		"startDate":       "must be an ISO-8601 date-time",
	}, be.fields)
}

func intPtr(v int) *int { return &v }
