package model

// Summary содержит агрегированную статистику по журналу пользователя за период.
// Мапы по категориям содержат только категории хотя бы с одной записью;
// порядок для отображения хранится отдельно в срезах категорий
// (порядок первого появления записи, не сортировка).
type Summary struct {
	TotalIncome  float64
	TotalExpense float64
	Balance      float64

	IncomeByCategory  map[string]float64
	ExpenseByCategory map[string]float64
	IncomeCategories  []string
	ExpenseCategories []string

	IncomeCount  int
	ExpenseCount int
}
