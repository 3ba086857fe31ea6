package taxid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/taxid/pkg/taxid"
)

func TestValidateINNWithKPP(t *testing.T) {
	t.Parallel()

	t.Run("without kpp", func(t *testing.T) {
		t.Parallel()
		res := taxid.ValidateINNWithKPP("7707083893", nil)
		assert.True(t, res.IsValid)
		assert.False(t, res.Details.KPPError)
		assert.Equal(t, taxid.ValidateINN("7707083893"), res)
	})

	t.Run("falsy kpp is treated as absent", func(t *testing.T) {
		t.Parallel()
		for _, kpp := range []any{nil, "", 0} {
			assert.True(t, taxid.ValidateINNWithKPP("7707083893", kpp).IsValid)
		}
	})

	t.Run("valid kpp", func(t *testing.T) {
		t.Parallel()
		res := taxid.ValidateINNWithKPP("7707083893", "770701001")
		assert.True(t, res.IsValid)
		assert.Equal(t, taxid.None, res.ErrorCode)
	})

	t.Run("invalid kpp", func(t *testing.T) {
		t.Parallel()
		res := taxid.ValidateINNWithKPP("7707083893", "123")
		assert.False(t, res.IsValid)
		assert.Equal(t, taxid.InvalidPPCode, res.ErrorCode)
		assert.Equal(t, "KPP must contain 9 characters", res.ErrorMessage)
		assert.True(t, res.Details.KPPError)

		// INN details survive
		require.NotNil(t, res.Details.RegionCode)
		assert.Equal(t, 77, *res.Details.RegionCode)
		assert.Equal(t, taxid.Organization, res.Details.Type)
		assert.Equal(t, 10, res.Details.Length)
		assert.ErrorIs(t, res.Err(), taxid.ErrInvalidPPCode)
	})

	t.Run("whitespace kpp is supplied and fails", func(t *testing.T) {
		t.Parallel()
		res := taxid.ValidateINNWithKPP("7707083893", "   ")
		assert.Equal(t, taxid.InvalidPPCode, res.ErrorCode)
	})

	t.Run("invalid inn short-circuits", func(t *testing.T) {
		t.Parallel()
		res := taxid.ValidateINNWithKPP("123", "770701001")
		assert.Equal(t, taxid.InvalidLength, res.ErrorCode)
		assert.False(t, res.Details.KPPError)

		res = taxid.ValidateINNWithKPP("7707083894", "770701001")
		assert.Equal(t, taxid.InvalidChecksum, res.ErrorCode)

		res = taxid.ValidateINNWithKPP("7707083894", "bad")
		assert.Equal(t, taxid.InvalidChecksum, res.ErrorCode)
		assert.False(t, res.Details.KPPError)
	})

	t.Run("scenarios", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			inn, kpp string
			valid    bool
		}{
			{"7707083893", "770701001", true},
			{"7707083894", "770701001", false},
			{"7707083893", "123", false},
			{"123", "770701001", false},
		}
		for _, tt := range tests {
			assert.Equal(t, tt.valid, taxid.ValidateINNWithKPP(tt.inn, tt.kpp).IsValid, "%s/%s", tt.inn, tt.kpp)
		}
	})
}

func TestApplyKPP(t *testing.T) {
	t.Parallel()

	t.Run("keeps options of the inn check", func(t *testing.T) {
		t.Parallel()
		legacy := taxid.ValidateINNLegacy("0000000000")
		require.True(t, legacy.IsValid)

		res, kr := taxid.ApplyKPP(legacy, "770701001")
		assert.True(t, res.IsValid)
		assert.True(t, kr.IsValid)

		res, kr = taxid.ApplyKPP(legacy, "770700001")
		assert.False(t, res.IsValid)
		assert.Equal(t, taxid.InvalidPPCode, res.ErrorCode)
		assert.True(t, res.Details.KPPError)
		assert.Equal(t, taxid.KPPInvalidCauseCode, kr.Reason)
		assert.Nil(t, res.Details.RegionCode)
	})

	t.Run("skipped for invalid inn or absent kpp", func(t *testing.T) {
		t.Parallel()
		invalid := taxid.ValidateINN("7707083894")
		res, kr := taxid.ApplyKPP(invalid, "bad")
		assert.Equal(t, invalid, res)
		assert.Equal(t, taxid.KPPResult{}, kr)

		valid := taxid.ValidateINN("7707083893")
		res, kr = taxid.ApplyKPP(valid, "")
		assert.Equal(t, valid, res)
		assert.Equal(t, taxid.KPPResult{}, kr)
	})

	t.Run("matches ValidateINNWithKPP", func(t *testing.T) {
		t.Parallel()
		for _, kpp := range []any{nil, "770701001", "123", "7707ab001", "770700001"} {
			res, _ := taxid.ApplyKPP(taxid.ValidateINN("7707083893"), kpp)
			assert.Equal(t, taxid.ValidateINNWithKPP("7707083893", kpp), res, "kpp %v", kpp)
		}
	})
}

func TestCheckStructure(t *testing.T) {
	t.Parallel()

	t.Run("domestic", func(t *testing.T) {
		t.Parallel()
		res := taxid.CheckStructure("7707083893")
		assert.Equal(t, taxid.StructureResult{
			IsValid:      true,
			RegionCode:   77,
			RegionPrefix: "77",
			YYIndex:      7,
		}, res)
	})

	t.Run("foreign", func(t *testing.T) {
		t.Parallel()
		res := taxid.CheckStructure("9912345678")
		assert.True(t, res.IsValid)
		assert.True(t, res.IsForeign)
		assert.Equal(t, 99, res.RegionCode)
		assert.Equal(t, "99", res.RegionPrefix)
		assert.Equal(t, 12, res.YYIndex)
		assert.Equal(t, taxid.None, res.ErrorCode)
	})

	t.Run("unknown region", func(t *testing.T) {
		t.Parallel()
		res := taxid.CheckStructure("0012")
		assert.False(t, res.IsValid)
		assert.Equal(t, taxid.InvalidRegionCode, res.ErrorCode)
		assert.Equal(t, "00", res.RegionPrefix)
	})

	t.Run("every region 01-98 is domestic", func(t *testing.T) {
		t.Parallel()
		for i := 1; i <= 98; i++ {
			prefix := string([]byte{byte('0' + i/10), byte('0' + i%10)})
			res := taxid.CheckStructure(prefix + "00")
			assert.True(t, res.IsValid, prefix)
			assert.False(t, res.IsForeign, prefix)
			assert.Equal(t, i, res.RegionCode)
		}
	})

	t.Run("too short or non-digit", func(t *testing.T) {
		t.Parallel()
		assert.False(t, taxid.CheckStructure("77").IsValid)
		assert.False(t, taxid.CheckStructure("77A1").IsValid)
	})
}
