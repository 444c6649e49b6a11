package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivanoskov/money_tracker/internal/model"
)

func TestExpenseBreakdown(t *testing.T) {
	g := NewGenerator()

	summary := &model.Summary{
		ExpenseByCategory: map[string]float64{"Продукты": 40, "Жилье": 500},
		ExpenseCategories: []string{"Продукты", "Жилье"},
	}
	png, err := g.ExpenseBreakdown(summary)
	require.NoError(t, err)
	require.NotEmpty(t, png)
	// PNG-сигнатура.
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestExpenseBreakdownNothingToDraw(t *testing.T) {
	g := NewGenerator()

	png, err := g.ExpenseBreakdown(&model.Summary{
		ExpenseByCategory: map[string]float64{},
	})
	require.NoError(t, err)
	assert.Nil(t, png)

	// Неположительные суммы не рисуются.
	png, err = g.ExpenseBreakdown(&model.Summary{
		ExpenseByCategory: map[string]float64{"Продукты": -5, "Жилье": 0},
		ExpenseCategories: []string{"Продукты", "Жилье"},
	})
	require.NoError(t, err)
	assert.Nil(t, png)
}
