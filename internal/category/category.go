// Package category определяет фиксированные наборы категорий доходов и
// расходов и нормализацию подписей кнопок к каноническим именам.
package category

import "strings"

// Подписи кнопок в том порядке, в котором они выводятся на клавиатуре.
var (
	Expenses = []string{
		"🍏 Продукты",
		"🍽️ Кафе и рестораны",
		"🚗 Транспорт",
		"🏠 Жилье",
		"🏥 Здоровье",
		"🎭 Развлечения",
		"✈️ Путешествия",
		"📦 Прочие расходы",
	}

	Incomes = []string{
		"💰 Зарплата",
		"🎁 Подарки",
		"🎓 Стипендия / Пенсия",
		"📥 Прочие доходы",
	}
)

var (
	expenseSet = make(map[string]struct{}, len(Expenses))
	incomeSet  = make(map[string]struct{}, len(Incomes))
	canonical  = make(map[string]string, len(Expenses)+len(Incomes))
)

func init() {
	for _, label := range Expenses {
		expenseSet[label] = struct{}{}
		canonical[label] = stripGlyph(label)
	}
	for _, label := range Incomes {
		incomeSet[label] = struct{}{}
		canonical[label] = stripGlyph(label)
	}
}

// stripGlyph отбрасывает декоративный префикс: всё до первого пробела
// включительно. У всех известных подписей первое "слово" - это глиф.
func stripGlyph(label string) string {
	if i := strings.Index(label, " "); i >= 0 {
		return strings.TrimSpace(label[i+1:])
	}
	return strings.TrimSpace(label)
}

// IsExpense проверяет, что label - одна из подписей категорий расходов.
func IsExpense(label string) bool {
	_, ok := expenseSet[label]
	return ok
}

// IsIncome проверяет, что label - одна из подписей категорий доходов.
func IsIncome(label string) bool {
	_, ok := incomeSet[label]
	return ok
}

// Known проверяет, что label - подпись любой известной категории.
func Known(label string) bool {
	return IsExpense(label) || IsIncome(label)
}

// Canonical возвращает каноническое (хранимое) имя категории: подпись кнопки
// без глифа. Неизвестный ввод возвращается без изменений, только обрезанный
// по пробелам, поэтому уже каноническое имя проходит насквозь.
func Canonical(label string) string {
	label = strings.TrimSpace(label)
	if c, ok := canonical[label]; ok {
		return c
	}
	return label
}
