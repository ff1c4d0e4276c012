package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/deltasync/internal/models"
)

func TestValidateClientID(t *testing.T) {
	tests := []struct {
		name     string
		clientID string
		wantErr  bool
		errMsg   string
	}{
		{name: "valid - simple", clientID: "c1"},
		{name: "valid - uuid", clientID: "1b4e28ba-2fa1-11d2-883f-0016d3cca427"},
		{name: "valid - dotted", clientID: "web.session_42"},
		{name: "valid - max length", clientID: strings.Repeat("a", MaxClientIDLen)},
		{name: "invalid - empty", clientID: "", wantErr: true, errMsg: "cannot be empty"},
		{name: "invalid - too long", clientID: strings.Repeat("a", MaxClientIDLen+1), wantErr: true, errMsg: "must not exceed"},
		{name: "invalid - reserved", clientID: "server", wantErr: true, errMsg: "reserved"},
		{name: "invalid - colon", clientID: "c1:admin", wantErr: true, errMsg: "can only contain"},
		{name: "invalid - space", clientID: "c 1", wantErr: true, errMsg: "can only contain"},
		{name: "invalid - glob", clientID: "c*", wantErr: true, errMsg: "can only contain"},
		{name: "invalid - cyrillic", clientID: "клиент", wantErr: true, errMsg: "must not exceed|can only contain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateClientID(tt.clientID)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.Regexp(t, tt.errMsg, err.Error())
		})
	}
}

func TestValidateEntityType(t *testing.T) {
	for _, et := range models.EntityTypes {
		assert.NoError(t, ValidateEntityType(et), et)
	}

	for _, et := range []models.EntityType{"", "order", "USER"} {
		err := ValidateEntityType(et)
		assert.ErrorIs(t, err, ErrInvalid, et)
	}
}

func TestValidateEntityID(t *testing.T) {
	assert.NoError(t, ValidateEntityID(""))
	assert.NoError(t, ValidateEntityID("m-1"))
	assert.NoError(t, ValidateEntityID("n:42"))
	assert.ErrorIs(t, ValidateEntityID("a b"), ErrInvalid)
	assert.ErrorIs(t, ValidateEntityID(strings.Repeat("x", 129)), ErrInvalid)
}
