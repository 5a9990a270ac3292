package reportutils

import (
	"context"
	"testing"

	"ecovoiceapi/pkg/schemas"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestAssignPoints(t *testing.T) {
	cases := []struct {
		wasteType string
		quantity  string
		want      int
	}{
		{"Plastic", "Small", 30},
		{"Plastic", "Medium", 45},
		{"Organic", "Large", 40},
		{"Sewage", "Medium", 60},
		{"Hazardous", "Large", 100},
		{"Glass", "Large", 20},
		{"Glass", "", 10},
		{"Hazardous", "Huge", 50},
	}
	for _, c := range cases {
		require.Equal(t, c.want, AssignPoints(c.wasteType, c.quantity), "%s/%s", c.wasteType, c.quantity)
	}
}

func TestNewAchievement(t *testing.T) {
	require.Equal(t, "Cleaned up: bottles by the river", NewAchievement(&schemas.Report{Description: " bottles by the river "}))
	require.Equal(t, "Cleaned up: Plastic waste", NewAchievement(&schemas.Report{Type: "Plastic"}))
}

func TestReportIdValidator(t *testing.T) {
	v := validator.New()
	require.NoError(t, v.RegisterValidation("reportid", ReportIdValidator))

	type req struct {
		ReportId string `validate:"required,reportid"`
	}
	require.NoError(t, v.Struct(&req{ReportId: bson.NewObjectID().Hex()}))
	require.Error(t, v.Struct(&req{ReportId: "not-an-id"}))
}

func TestLockReport(t *testing.T) {
	mr := miniredis.RunT(t)
	redisCli := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	ctx := context.Background()

	ok, err := LockReport(redisCli, ctx, "r1", "alice")
	require.NoError(t, err)
	require.True(t, ok)

	// same owner may refresh
	ok, err = LockReport(redisCli, ctx, "r1", "alice")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = LockReport(redisCli, ctx, "r1", "bob")
	require.NoError(t, err)
	require.False(t, ok)

	// only the owner can release
	released, err := UnlockReport(redisCli, "r1", "bob")
	require.NoError(t, err)
	require.False(t, released)

	released, err = UnlockReport(redisCli, "r1", "alice")
	require.NoError(t, err)
	require.True(t, released)

	ok, err = LockReport(redisCli, ctx, "r1", "bob")
	require.NoError(t, err)
	require.True(t, ok)
}
