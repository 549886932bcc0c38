package donations

import (
	"testing"

	"church-app/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanGatewayTransition(t *testing.T) {
	assert.True(t, CanGatewayTransition(StatusPending, StatusCompleted))
	assert.True(t, CanGatewayTransition(StatusPending, StatusFailed))

	assert.False(t, CanGatewayTransition(StatusPending, StatusCancelled))
	assert.False(t, CanGatewayTransition(StatusCompleted, StatusFailed))
	assert.False(t, CanGatewayTransition(StatusFailed, StatusCompleted))
	assert.False(t, CanGatewayTransition(StatusCancelled, StatusPending))
}

func TestGatewayComplete(t *testing.T) {
	d := Donation{ID: 1, Status: StatusPending}
	require.NoError(t, d.GatewayComplete("PAYER123"))
	assert.Equal(t, StatusCompleted, d.Status)
	require.NotNil(t, d.PayPalPayerID)
	assert.Equal(t, "PAYER123", *d.PayPalPayerID)

	// terminal states refuse further gateway transitions
	assert.Error(t, d.GatewayComplete("PAYER456"))
	assert.Error(t, d.GatewayFail())
}

func TestGatewayFail(t *testing.T) {
	d := Donation{ID: 2, Status: StatusPending}
	require.NoError(t, d.GatewayFail())
	assert.Equal(t, StatusFailed, d.Status)

	assert.Error(t, d.GatewayComplete("PAYER123"))
}

func TestAdminOverride(t *testing.T) {
	actor := &users.User{ID: 9, Role: users.RoleAdmin, Email: "admin@example.com"}

	d := Donation{ID: 3, Status: StatusCancelled}
	// no adjacency check: any enum member is reachable, including
	// reopening a cancelled donation
	require.NoError(t, AdminOverride(&d, StatusPending, actor))
	assert.Equal(t, StatusPending, d.Status)

	require.NoError(t, AdminOverride(&d, StatusCompleted, actor))
	assert.Equal(t, StatusCompleted, d.Status)
}

func TestAdminOverrideRejectsUnknownStatus(t *testing.T) {
	actor := &users.User{ID: 9, Role: users.RoleAdmin}

	d := Donation{ID: 4, Status: StatusPending}
	assert.Error(t, AdminOverride(&d, Status("BOGUS"), actor))
	assert.Equal(t, StatusPending, d.Status)
}

func TestValidStatus(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusCompleted, StatusFailed, StatusCancelled} {
		assert.True(t, ValidStatus(s))
	}
	assert.False(t, ValidStatus(Status("BOGUS")))
	assert.False(t, ValidStatus(Status("")))
	assert.False(t, ValidStatus(Status("pending")))
}
