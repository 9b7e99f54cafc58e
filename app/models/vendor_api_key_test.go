package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVendorIssueAPIKey(t *testing.T) {
	v := &Vendor{Name: "Test Rentals"}

	key, err := v.IssueAPIKey()
	require.NoError(t, err)
	require.NotEmpty(t, key)

	assert.True(t, strings.HasPrefix(key, "es_"))
	assert.Equal(t, HashAPIKey(key), v.APIKeyHash)
	assert.NotContains(t, v.APIKeyHash, key[3:], "raw key material must not appear in the stored hash")
}

func TestIssueAPIKeyIsUnique(t *testing.T) {
	v := &Vendor{}

	k1, err := v.IssueAPIKey()
	require.NoError(t, err)
	k2, err := v.IssueAPIKey()
	require.NoError(t, err)

	assert.NotEqual(t, k1, k2)
}

func TestHashAPIKeyTrimsWhitespace(t *testing.T) {
	assert.Equal(t, HashAPIKey("es_abc"), HashAPIKey("  es_abc\n"))
}

func TestContactEventTypeValidation(t *testing.T) {
	for _, valid := range []string{ContactEventCall, ContactEventText, ContactEventEmail, ContactEventWebsite, ContactEventRequest} {
		assert.True(t, IsValidContactEventType(valid), valid)
	}
	assert.False(t, IsValidContactEventType("FAX"))
	assert.False(t, IsValidContactEventType("call"))
	assert.False(t, IsValidContactEventType(""))
}

func TestEquipmentTypeValidation(t *testing.T) {
	for _, valid := range EquipmentTypes {
		assert.True(t, IsValidEquipmentType(valid), valid)
	}
	assert.False(t, IsValidEquipmentType("TRACTOR"))
	assert.False(t, IsValidEquipmentType("ctl"))
}

func TestEffectiveCPCRate(t *testing.T) {
	assert.Equal(t, DefaultCPCRate, EffectiveCPCRate(nil))
	assert.Equal(t, 22.5, EffectiveCPCRate(&VendorBilling{CPCRate: 22.5}))
}
