package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/domainequations/errors"
)

func TestTypeName(t *testing.T) {
	tests := []struct {
		name      string
		valueName string
		expected  string
	}{
		{name: "single word", valueName: "speed", expected: "Speed"},
		{name: "two words", valueName: "monthly_income", expected: "MonthlyIncome"},
		{name: "three words", valueName: "some_long_name", expected: "SomeLongName"},
		{name: "container suffix", valueName: "knife_container", expected: "KnifeContainer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TypeName(tt.valueName))
		})
	}
}

func TestPluralize(t *testing.T) {
	tests := []struct {
		word     string
		expected string
	}{
		{word: "speed", expected: "speeds"},
		{word: "test", expected: "tests"},
		{word: "phalanx", expected: "phalanxes"},
		{word: "bus", expected: "buses"},
		{word: "dish", expected: "dishes"},
		{word: "match", expected: "matches"},
		{word: "category", expected: "categories"},
		{word: "day", expected: "days"},
		{word: "knife", expected: "knives"},
		{word: "shelf", expected: "shelves"},
		{word: "monthly_income", expected: "monthly_incomes"},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.expected, Pluralize(tt.word))
		})
	}
}

func TestDocstring(t *testing.T) {
	assert.Equal(t, "monthly income", Docstring("monthly_income"))
	assert.Equal(t, "speed", Docstring("speed"))
}

func TestNewDerivesDefaults(t *testing.T) {
	n, err := New("foo_bar")
	require.NoError(t, err)

	assert.Equal(t, "foo_bar", n.ValueName)
	assert.Equal(t, "FooBar", n.ClassName)
	assert.Equal(t, "foo_bars", n.Plural)
	assert.Equal(t, "foo bar", n.Docstring)
	assert.Equal(t, "FooBar", n.TypeName())
	assert.Equal(t, "IFooBar", n.InterfaceName())
	assert.Equal(t,
		`{"type": "FooBar", "value": "foo_bar", "plural": "foo_bars", "docstring": "foo bar"}`,
		n.String())
}

func TestNewOverrides(t *testing.T) {
	n, err := New("person",
		WithPlural("people"),
		WithModule("crm"),
		WithDocstring("a person record"))
	require.NoError(t, err)

	assert.Equal(t, "people", n.Plural)
	assert.Equal(t, "crm.Person", n.TypeName())
	assert.Equal(t, "Person", n.ClassName)
	assert.Equal(t, "a person record", n.Docstring)
}

func TestNewRejectsInvalidNames(t *testing.T) {
	tests := []struct {
		name      string
		valueName string
	}{
		{name: "empty", valueName: ""},
		{name: "uppercase", valueName: "Speed"},
		{name: "leading underscore", valueName: "_speed"},
		{name: "digits", valueName: "speed2"},
		{name: "spaces", valueName: "top speed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.valueName)
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrInvalidLeafName)
		})
	}
}

func TestNewRejectsInvalidPluralOverride(t *testing.T) {
	_, err := New("speed", WithPlural("Speeds"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidLeafName)
}

func TestNewContainer(t *testing.T) {
	n, err := NewContainer("test")
	require.NoError(t, err)

	assert.Equal(t, "test_container", n.ValueName)
	assert.Equal(t, "TestContainer", n.ClassName)
	assert.Equal(t, "test_containers", n.Plural)
	assert.Equal(t, "test container", n.Docstring)

	t.Run("with module", func(t *testing.T) {
		n, err := NewContainer("knife", WithModule("kitchen"))
		require.NoError(t, err)
		assert.Equal(t, "kitchen.KnifeContainer", n.TypeName())
	})

	t.Run("invalid item name", func(t *testing.T) {
		_, err := NewContainer("Knife")
		assert.ErrorIs(t, err, errors.ErrInvalidLeafName)
	})
}

func TestTypeDescriptor(t *testing.T) {
	t.Run("unqualified", func(t *testing.T) {
		td := TypeDescriptor{ClassName: "float"}
		assert.Equal(t, "float", td.QualifiedName())
		assert.Equal(t, `{"type": "float"}`, td.String())
	})

	t.Run("qualified", func(t *testing.T) {
		td := TypeDescriptor{ClassName: "Knife", ModuleName: "accessories"}
		assert.Equal(t, "accessories.Knife", td.QualifiedName())
	})
}

func TestValidBuiltinName(t *testing.T) {
	assert.True(t, ValidBuiltinName("int32"))
	assert.True(t, ValidBuiltinName("string"))
	assert.False(t, ValidBuiltinName("Int32"))
	assert.False(t, ValidBuiltinName(""))
	assert.False(t, ValidBuiltinName("32int"))
}

func BenchmarkTypeName(b *testing.B) {
	for i := 0; i < b.N; i++ {
		TypeName("some_long_property_name")
	}
}
