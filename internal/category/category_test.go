package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalStripsGlyph(t *testing.T) {
	cases := []struct {
		label string
		want  string
	}{
		{"🎁 Подарки", "Подарки"},
		{"💰 Зарплата", "Зарплата"},
		{"🎓 Стипендия / Пенсия", "Стипендия / Пенсия"},
		{"🍏 Продукты", "Продукты"},
		{"🍽️ Кафе и рестораны", "Кафе и рестораны"},
		{"📦 Прочие расходы", "Прочие расходы"},
		{"📥 Прочие доходы", "Прочие доходы"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Canonical(tc.label), "label %q", tc.label)
	}
}

func TestCanonicalUnknownUnchanged(t *testing.T) {
	assert.Equal(t, "🤖 Роботы", Canonical("🤖 Роботы"))
	assert.Equal(t, "Кофе", Canonical("  Кофе  "))
	assert.Equal(t, "", Canonical("   "))
}

func TestCanonicalIdempotent(t *testing.T) {
	labels := append(append([]string{}, Expenses...), Incomes...)
	labels = append(labels, "🤖 Роботы", "Подарки")
	for _, label := range labels {
		once := Canonical(label)
		assert.Equal(t, once, Canonical(once), "label %q", label)
	}
}

func TestCategorySets(t *testing.T) {
	assert.Len(t, Expenses, 8)
	assert.Len(t, Incomes, 4)

	for _, label := range Expenses {
		assert.True(t, IsExpense(label), "label %q", label)
		assert.False(t, IsIncome(label), "label %q", label)
		assert.True(t, Known(label), "label %q", label)
	}
	for _, label := range Incomes {
		assert.True(t, IsIncome(label), "label %q", label)
		assert.False(t, IsExpense(label), "label %q", label)
		assert.True(t, Known(label), "label %q", label)
	}

	// Каноническое имя кнопкой не является.
	assert.False(t, Known("Подарки"))
	assert.False(t, Known("произвольный текст"))
}
