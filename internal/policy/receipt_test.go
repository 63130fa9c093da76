package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insurance-api/internal/models"
)

func TestRenderReceipt(t *testing.T) {
	t.Run("renders a PDF document", func(t *testing.T) {
		data, err := RenderReceipt(models.Policy{
			PolicyID:  "POL-AB12CD34EF56",
			PaymentID: "PAY-AB12CD34EF56",
			Plan:      models.PlanGold,
			Holder:    "Asha Rao",
			Product:   "Health Shield",
			Premium:   11750,
			Financing: &models.Financing{Months: 12, Monthly: 979.17, Total: 11750},
			IssuedAt:  time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		require.NotEmpty(t, data)
		assert.Equal(t, "%PDF", string(data[:4]))
	})

	t.Run("degraded policy still renders", func(t *testing.T) {
		data, err := RenderReceipt(models.Policy{
			PolicyID: "POL-DEGRADED1",
			Plan:     models.PlanSilver,
			Premium:  9500,
			Degraded: true,
			IssuedAt: time.Now(),
		})
		require.NoError(t, err)
		assert.Equal(t, "%PDF", string(data[:4]))
	})
}
