package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/buyer-intel/internal/types"
)

func TestExtractBuyer(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		found    bool
	}{
		{"On behalf of", "Retired on behalf of Acme Corp", "Acme Corp", true},
		{"Retired for", "Credits retired for Globex Inc.", "Globex Inc", true},
		{"Beneficiary colon", "Beneficiary: Initech LLC; ref 42", "Initech LLC", true},
		{"In the name of", "Retirement in the name of Umbrella Co, batch 7", "Umbrella Co", true},
		{"For the benefit of", "for the benefit of Stark Industries. Q3", "Stark Industries", true},
		{"Retirement by", "Retirement by Wayne Enterprises", "Wayne Enterprises", true},
		{"Case insensitive", "RETIRED ON BEHALF OF Acme Corp", "Acme Corp", true},
		{"Capture stops at comma", "on behalf of Acme Corp, for compliance", "Acme Corp", true},
		{"Capture stops at period", "on behalf of Acme Corp. 2021 vintage", "Acme Corp", true},
		{"Precedence over later pattern", "Retired on behalf of Acme Corp, beneficiary: Other Co.", "Acme Corp", true},
		{"Encoding repaired in capture", "on behalf of Soci√©t√© G√©n√©rale", "Société Générale", true},
		{"No pattern", "Voluntary retirement for compliance purposes", "", false},
		{"Empty text", "", "", false},
		{"Sentinel text", "N/A", "", false},
		{"Sentinel capture falls through", "on behalf of none, beneficiary: Real Buyer", "Real Buyer", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, found := ExtractBuyer(tt.input)
			assert.Equal(t, tt.found, found, "should report whether a name was extracted")
			assert.Equal(t, tt.expected, result, "should extract the buyer name")
		})
	}
}

func TestIdentity(t *testing.T) {
	tests := []struct {
		name     string
		registry types.Registry
		record   types.RawRecord
		expected string
	}{
		{
			name:     "Verra phrase in details",
			registry: types.RegistryVerra,
			record: types.RawRecord{
				"retirement_beneficiary": "ref 1234",
				"retirement_details":     "Retired on behalf of Acme Corp",
			},
			expected: "Acme Corp",
		},
		{
			name:     "Verra phrase in beneficiary",
			registry: types.RegistryVerra,
			record: types.RawRecord{
				"retirement_beneficiary": "Beneficiary: Initech LLC",
			},
			expected: "Initech LLC",
		},
		{
			name:     "Verra fallback to raw beneficiary",
			registry: types.RegistryVerra,
			record: types.RawRecord{
				"retirement_beneficiary": "Globex Inc",
				"retirement_details":     "compliance retirement",
			},
			expected: "Globex Inc",
		},
		{
			name:     "Verra display-name fields",
			registry: types.RegistryVerra,
			record: types.RawRecord{
				"Retirement Beneficiary": "Globex Inc",
			},
			expected: "Globex Inc",
		},
		{
			name:     "CAR phrase in details",
			registry: types.RegistryCAR,
			record: types.RawRecord{
				"retirement_details": "retired for Umbrella Co",
				"account_holder":     "Broker LLC",
			},
			expected: "Umbrella Co",
		},
		{
			name:     "CAR fallback to account holder",
			registry: types.RegistryCAR,
			record: types.RawRecord{
				"retirement_details": "voluntary retirement",
				"account_holder":     "Broker LLC",
			},
			expected: "Broker LLC",
		},
		{
			name:     "No identity at all",
			registry: types.RegistryVerra,
			record: types.RawRecord{
				"retirement_details": "voluntary retirement",
			},
			expected: "",
		},
		{
			name:     "Sentinel fallback rejected",
			registry: types.RegistryCAR,
			record: types.RawRecord{
				"account_holder": "N/A",
			},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Identity(tt.record, ForRegistry(tt.registry))
			assert.Equal(t, tt.expected, result, "should derive the buyer identity")
		})
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Lowercases", "Acme Corp", "acme corp"},
		{"Trims", "  Acme Corp  ", "acme corp"},
		{"Already canonical", "acme corp", "acme corp"},
		{"Interior spaces kept", "Acme  Corp", "acme  corp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Key(tt.input), "should build the deduplication key")
		})
	}
}

func TestForRegistry(t *testing.T) {
	assert.Equal(t, types.RegistryVerra, ForRegistry(types.RegistryVerra).Registry())
	assert.Equal(t, types.RegistryCAR, ForRegistry(types.RegistryCAR).Registry())
	// Unknown identifiers degrade to the Verra shape.
	assert.Equal(t, types.RegistryVerra, ForRegistry(types.Registry("bogus")).Registry())
}
