package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecklistProgress(t *testing.T) {
	c := Checklist{
		"RG":   Doc(DocDelivered),
		"CPF":  Doc(DocPending),
		"CNH":  nil,
		"IPTU": Doc(DocDelivered),
	}
	delivered, total := c.Progress()
	assert.Equal(t, 2, delivered)
	assert.Equal(t, 3, total)
}

func TestLandlordPolicyRequires(t *testing.T) {
	assert.True(t, PolicyStrict.Requires(StatusActive))
	assert.True(t, PolicyStrict.Requires(StatusDemobilizing))
	assert.False(t, PolicyStrict.Requires(StatusProspecting))
	assert.True(t, PolicyLenient.Requires(StatusActive))
	assert.False(t, PolicyLenient.Requires(StatusDemobilizing))
	for _, s := range PropertyStatuses {
		assert.False(t, PolicyNone.Requires(s))
	}
	assert.False(t, LandlordPolicy("loose").Valid())
}
