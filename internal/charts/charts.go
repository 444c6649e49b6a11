package charts

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/ivanoskov/money_tracker/internal/model"
)

// Generator рисует графики по статистике пользователя
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// ExpenseBreakdown рисует круговую диаграмму расходов по категориям.
// Возвращает nil без ошибки, когда рисовать нечего: нет категорий или все
// суммы неположительные (отрицательные записи журнал допускает).
func (g *Generator) ExpenseBreakdown(s *model.Summary) ([]byte, error) {
	values := make([]chart.Value, 0, len(s.ExpenseCategories))
	for _, cat := range s.ExpenseCategories {
		amount := s.ExpenseByCategory[cat]
		if amount <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%.2f)", cat, amount),
			Value: amount,
		})
	}
	if len(values) == 0 {
		return nil, nil
	}

	pie := chart.PieChart{
		Width:  600,
		Height: 600,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render expense chart: %w", err)
	}
	return buf.Bytes(), nil
}
