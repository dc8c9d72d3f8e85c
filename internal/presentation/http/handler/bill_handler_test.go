package handler

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindCreateBillRequest(t *testing.T, body string) (CreateBillRequest, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/api/v1/bills", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req CreateBillRequest
	err := c.ShouldBindJSON(&req)
	return req, err
}

func TestCreateBillRequestValidation(t *testing.T) {
	t.Run("rejects out-of-range fields with one error per field", func(t *testing.T) {
		body := `{
			"customer_name": "Jane Doe",
			"customer_email": "not-an-email",
			"tax_percentage": -50,
			"items": [{"description": "Work", "quantity": -5, "rate": -1}]
		}`
		_, err := bindCreateBillRequest(t, body)
		require.Error(t, err)

		fields := bindingFieldErrors(err)
		require.NotNil(t, fields)

		names := make([]string, 0, len(fields))
		for _, f := range fields {
			names = append(names, f.Field)
		}
		assert.Contains(t, names, "customer_email")
		assert.Contains(t, names, "tax_percentage")
		assert.Contains(t, names, "quantity")
		assert.Contains(t, names, "rate")
	})

	t.Run("rejects tax percentage above 100", func(t *testing.T) {
		_, err := bindCreateBillRequest(t, `{"customer_name": "Jane Doe", "tax_percentage": 101}`)
		require.Error(t, err)

		fields := bindingFieldErrors(err)
		require.Len(t, fields, 1)
		assert.Equal(t, "tax_percentage", fields[0].Field)
		assert.Equal(t, "Must be at most 100", fields[0].Message)
	})

	t.Run("missing customer name is reported as required", func(t *testing.T) {
		_, err := bindCreateBillRequest(t, `{"items": []}`)
		require.Error(t, err)

		fields := bindingFieldErrors(err)
		require.Len(t, fields, 1)
		assert.Equal(t, "customer_name", fields[0].Field)
		assert.Equal(t, "This field is required", fields[0].Message)
	})

	t.Run("accepts a valid payload", func(t *testing.T) {
		body := `{
			"customer_name": "Jane Doe",
			"customer_email": "jane@example.com",
			"tax_percentage": 18,
			"items": [{"description": "Work", "quantity": 3, "rate": 100}]
		}`
		req, err := bindCreateBillRequest(t, body)
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", req.CustomerName)
		require.Len(t, req.Items, 1)
		assert.Equal(t, 3.0, req.Items[0].Quantity)
	})

	t.Run("zero quantity counts as omitted", func(t *testing.T) {
		body := `{"customer_name": "Jane Doe", "items": [{"description": "Placeholder", "quantity": 0, "rate": 0}]}`
		_, err := bindCreateBillRequest(t, body)
		require.NoError(t, err)
	})

	t.Run("malformed JSON is not a field error", func(t *testing.T) {
		_, err := bindCreateBillRequest(t, `{"customer_name":`)
		require.Error(t, err)
		assert.Nil(t, bindingFieldErrors(err))
	})
}
