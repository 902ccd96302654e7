package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressAccuracy(t *testing.T) {
	tests := []struct {
		name    string
		correct int
		wrong   int
		want    int
	}{
		{"no answers", 0, 0, 0},
		{"all correct", 10, 0, 100},
		{"all wrong", 0, 10, 0},
		{"rounds up", 2, 1, 67},
		{"rounds down", 1, 2, 33},
		{"eighty percent", 8, 2, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Progress{CorrectAnswers: tt.correct, WrongAnswers: tt.wrong}
			assert.Equal(t, tt.want, p.Accuracy())
		})
	}
}

func TestFullName(t *testing.T) {
	assert.Equal(t, "Ali Hassan", FullName("Ali", "Hassan"))
	assert.Equal(t, "Ali", FullName("Ali", ""))
	assert.Equal(t, "Hassan", FullName("", "Hassan"))
	assert.Equal(t, "", FullName("", ""))
	assert.Equal(t, "Ali Hassan", FullName("  Ali ", " Hassan "))
}

func TestEnumValidators(t *testing.T) {
	assert.True(t, ValidGender(GenderMale))
	assert.False(t, ValidGender("other"))

	assert.True(t, ValidItalianLevel(LevelVeryGood))
	assert.False(t, ValidItalianLevel("fluent"))

	assert.True(t, ValidLanguage(LanguageBoth))
	assert.False(t, ValidLanguage("en"))
}

func TestGeoLookups(t *testing.T) {
	assert.True(t, ValidProvince("Milano"))
	assert.True(t, ValidProvince("milano"), "province match is case-insensitive")
	assert.True(t, ValidProvince("Monza e Brianza"))
	assert.False(t, ValidProvince("Atlantide"))

	assert.True(t, ValidDialCode("+39"))
	assert.True(t, ValidDialCode("+966"))
	assert.False(t, ValidDialCode("+0"))
}
