package utils

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsTWMobile(t *testing.T) {
	assert.True(t, IsTWMobile("0912345678"))
	assert.False(t, IsTWMobile("091234567"))
	assert.False(t, IsTWMobile("0812345678"))
	assert.False(t, IsTWMobile("09123456789"))
	assert.False(t, IsTWMobile("09-2345678"))
}

type signup struct {
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"required,tw_mobile"`
	Pass  string `json:"password" binding:"required,min=8"`
}

func TestFirstFieldError(t *testing.T) {
	require.NoError(t, RegisterValidators())

	tests := []struct {
		name string
		in   signup
		want string
	}{
		{"missing email", signup{Phone: "0912345678", Pass: "longenough"}, "email: is required"},
		{"bad email", signup{Email: "nope", Phone: "0912345678", Pass: "longenough"}, "email: must be a valid email address"},
		{"bad phone", signup{Email: "a@b.co", Phone: "12345", Pass: "longenough"}, "phone: must be a mobile number in 09xxxxxxxx format"},
		{"short password", signup{Email: "a@b.co", Phone: "0912345678", Pass: "short"}, "password: must be at least 8 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(&tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.want, FirstFieldError(err))
		})
	}

	assert.NoError(t, binding.Validator.ValidateStruct(&signup{Email: "a@b.co", Phone: "0912345678", Pass: "longenough"}))
	assert.Equal(t, "Invalid request format", FirstFieldError(assert.AnError))
}
